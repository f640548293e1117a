package check

import (
	"context"
	"fmt"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/pipeline"
	"github.com/ga4gh-metadata/validator/record"
)

// AttributesCheck validates the open attribute map: keys must be non-empty
// and every value, at any nesting depth, must sit inside the recognized
// {string, number, boolean, list, map} union. Values outside the union are
// kept as an invalid variant at decode time and reported here with their
// full path.
//
// Text content is preserved verbatim; the check normalizes nothing.
type AttributesCheck struct{}

// NewAttributesCheck creates the attributes check.
func NewAttributesCheck() *AttributesCheck {
	return &AttributesCheck{}
}

// Name implements pipeline.Check.
func (c *AttributesCheck) Name() string {
	return "attributes"
}

// Check implements pipeline.Check.
func (c *AttributesCheck) Check(_ context.Context, rctx *pipeline.Context) []bv.Issue {
	rec := rctx.Record
	if rec == nil {
		return nil
	}
	return c.checkMap(rctx, rec.Attrs(), "attributes")
}

func (c *AttributesCheck) checkMap(rctx *pipeline.Context, attrs record.Attributes, path string) []bv.Issue {
	var issues []bv.Issue
	for key, value := range attrs {
		if key == "" {
			issues = append(issues, bv.Error(bv.KindMissingRequiredField).
				Record(rctx.RecordID).
				At(path).
				Check(c.Name()).
				Diagnostics("attribute key is empty").
				Build())
			continue
		}
		issues = append(issues, c.checkValue(rctx, value, path+"."+key)...)
	}
	return issues
}

func (c *AttributesCheck) checkValue(rctx *pipeline.Context, value record.Value, path string) []bv.Issue {
	switch value.Kind() {
	case record.ValueString, record.ValueNumber, record.ValueBool:
		return nil
	case record.ValueList:
		items, _ := value.List()
		var issues []bv.Issue
		for i, item := range items {
			issues = append(issues, c.checkValue(rctx, item, fmt.Sprintf("%s[%d]", path, i))...)
		}
		return issues
	case record.ValueMap:
		nested, _ := value.Map()
		return c.checkMap(rctx, nested, path)
	default:
		return []bv.Issue{bv.Error(bv.KindUnsupportedAttributeValue).
			Record(rctx.RecordID).
			At(path).
			Check(c.Name()).
			Diagnostics("value is outside the recognized {string, number, boolean, list, map} union").
			Build()}
	}
}
