package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

// Recognized attribute value kinds. The union is closed: anything outside
// it is an unsupported attribute value.
const (
	ValueInvalid ValueKind = iota
	ValueString
	ValueNumber
	ValueBool
	ValueList
	ValueMap
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	case ValueBool:
		return "boolean"
	case ValueList:
		return "list"
	case ValueMap:
		return "map"
	default:
		return "invalid"
	}
}

// Value is a tagged variant over the closed attribute value union
// {string, number, boolean, ordered list, nested map}. Numbers are carried
// as decimals so canonicalization never loses precision. The zero Value is
// invalid.
type Value struct {
	kind ValueKind
	str  string
	num  decimal.Decimal
	b    bool
	list []Value
	obj  Attributes
}

// StringValue returns a string variant. Text content is preserved verbatim;
// normalization never trims.
func StringValue(s string) Value {
	return Value{kind: ValueString, str: s}
}

// NumberValue returns a number variant.
func NumberValue(d decimal.Decimal) Value {
	return Value{kind: ValueNumber, num: d}
}

// BoolValue returns a boolean variant.
func BoolValue(b bool) Value {
	return Value{kind: ValueBool, b: b}
}

// ListValue returns an ordered-list variant.
func ListValue(items ...Value) Value {
	return Value{kind: ValueList, list: items}
}

// MapValue returns a nested-map variant.
func MapValue(m Attributes) Value {
	return Value{kind: ValueMap, obj: m}
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// Str returns the string content; ok is false for other variants.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == ValueString
}

// Num returns the numeric content; ok is false for other variants.
func (v Value) Num() (decimal.Decimal, bool) {
	return v.num, v.kind == ValueNumber
}

// Bool returns the boolean content; ok is false for other variants.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == ValueBool
}

// List returns the list content; ok is false for other variants.
func (v Value) List() ([]Value, bool) {
	return v.list, v.kind == ValueList
}

// Map returns the nested-map content; ok is false for other variants.
func (v Value) Map() (Attributes, bool) {
	return v.obj, v.kind == ValueMap
}

// Clone returns a deep copy.
func (v Value) Clone() Value {
	out := v
	if v.list != nil {
		out.list = make([]Value, len(v.list))
		for i := range v.list {
			out.list[i] = v.list[i].Clone()
		}
	}
	out.obj = v.obj.Clone()
	return out
}

// Equal reports deep equality between two values.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case ValueString:
		return v.str == other.str
	case ValueNumber:
		return v.num.Equal(other.num)
	case ValueBool:
		return v.b == other.b
	case ValueList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case ValueMap:
		return v.obj.Equal(other.obj)
	default:
		return true
	}
}

// FromJSON converts a decoded JSON value into the closed union. Numeric
// input should be json.Number (decode with UseNumber) to avoid float64
// round-tripping, but float64 is accepted. Anything outside the union,
// including null, yields an error.
func FromJSON(raw any) (Value, error) {
	switch x := raw.(type) {
	case string:
		return StringValue(x), nil
	case bool:
		return BoolValue(x), nil
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", x.String(), err)
		}
		return NumberValue(d), nil
	case float64:
		return NumberValue(decimal.NewFromFloat(x)), nil
	case []any:
		items := make([]Value, 0, len(x))
		for i, item := range x {
			v, err := FromJSON(item)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items = append(items, v)
		}
		return ListValue(items...), nil
	case map[string]any:
		m := make(Attributes, len(x))
		for k, item := range x {
			v, err := FromJSON(item)
			if err != nil {
				return Value{}, fmt.Errorf("%q: %w", k, err)
			}
			m[k] = v
		}
		return MapValue(m), nil
	default:
		return Value{}, fmt.Errorf("unsupported attribute value of type %T", raw)
	}
}

// MarshalJSON encodes the variant as plain JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueString:
		return json.Marshal(v.str)
	case ValueNumber:
		return []byte(v.num.String()), nil
	case ValueBool:
		return json.Marshal(v.b)
	case ValueList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case ValueMap:
		if v.obj == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.obj)
	default:
		return nil, fmt.Errorf("cannot marshal invalid attribute value")
	}
}

// UnmarshalJSON decodes arbitrary JSON into the union, preserving numeric
// precision.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	val, err := FromJSON(raw)
	if err != nil {
		// Defer the shape error to validation: keep the invalid variant so
		// the attributes check can report it with a field path.
		*v = Value{}
		return nil
	}
	*v = val
	return nil
}

// Attributes is the open key/value map attached to records. Values are
// members of the closed Value union.
type Attributes map[string]Value

// Clone returns a deep copy.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v.Clone()
	}
	return out
}

// Equal reports deep equality between two attribute maps.
func (a Attributes) Equal(other Attributes) bool {
	if len(a) != len(other) {
		return false
	}
	for k, v := range a {
		ov, ok := other[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
