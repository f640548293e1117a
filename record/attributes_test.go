package record

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		wantKind ValueKind
		wantErr  bool
	}{
		{"string", "hello", ValueString, false},
		{"bool", true, ValueBool, false},
		{"json number", json.Number("12.50"), ValueNumber, false},
		{"float64", 1.5, ValueNumber, false},
		{"list", []any{"a", json.Number("1")}, ValueList, false},
		{"map", map[string]any{"k": "v"}, ValueMap, false},
		{"null", nil, ValueInvalid, true},
		{"bad number", json.Number("not-a-number"), ValueInvalid, true},
		{"nested bad value", map[string]any{"k": nil}, ValueInvalid, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FromJSON(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromJSON error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && v.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", v.Kind(), tt.wantKind)
			}
		})
	}
}

func TestFromJSONPreservesPrecision(t *testing.T) {
	v, err := FromJSON(json.Number("0.10000000000000000001"))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	d, _ := v.Num()
	if d.String() != "0.10000000000000000001" {
		t.Errorf("decimal = %s, precision lost", d.String())
	}
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal strings", StringValue("x"), StringValue("x"), true},
		{"different strings", StringValue("x"), StringValue("y"), false},
		{"kind mismatch", StringValue("1"), NumberValue(decimal.New(1, 0)), false},
		{
			"number scale insensitive",
			NumberValue(decimal.RequireFromString("1.50")),
			NumberValue(decimal.RequireFromString("1.5")),
			true,
		},
		{
			"equal lists",
			ListValue(BoolValue(true), StringValue("a")),
			ListValue(BoolValue(true), StringValue("a")),
			true,
		},
		{
			"list order matters",
			ListValue(StringValue("a"), StringValue("b")),
			ListValue(StringValue("b"), StringValue("a")),
			false,
		},
		{
			"equal maps",
			MapValue(Attributes{"k": StringValue("v")}),
			MapValue(Attributes{"k": StringValue("v")}),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueCloneIsDeep(t *testing.T) {
	orig := MapValue(Attributes{
		"list": ListValue(StringValue("a")),
	})
	clone := orig.Clone()

	m, _ := clone.Map()
	l, _ := m["list"].List()
	l[0] = StringValue("changed")

	om, _ := orig.Map()
	ol, _ := om["list"].List()
	if s, _ := ol[0].Str(); s != "a" {
		t.Error("clone shares nested list storage")
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	in := []byte(`{"strain":"C57BL/6J","passage":3,"viable":true,"markers":["CD4","CD8"],"meta":{"depth":12.5}}`)

	var attrs Attributes
	if err := json.Unmarshal(in, &attrs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if attrs["strain"].Kind() != ValueString {
		t.Errorf("strain kind = %v", attrs["strain"].Kind())
	}
	if d, ok := attrs["passage"].Num(); !ok || !d.Equal(decimal.New(3, 0)) {
		t.Errorf("passage = %v, %v", d, ok)
	}
	if b, ok := attrs["viable"].Bool(); !ok || !b {
		t.Error("viable should be true")
	}
	if l, ok := attrs["markers"].List(); !ok || len(l) != 2 {
		t.Errorf("markers = %v, %v", l, ok)
	}
	if m, ok := attrs["meta"].Map(); !ok || m["depth"].Kind() != ValueNumber {
		t.Error("meta should be a nested map with numeric depth")
	}

	out, err := json.Marshal(attrs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var attrs2 Attributes
	if err := json.Unmarshal(out, &attrs2); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	if !attrs.Equal(attrs2) {
		t.Error("round trip changed attribute content")
	}
}

func TestValueUnmarshalNullKeepsInvalidVariant(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`null`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Kind() != ValueInvalid {
		t.Errorf("Kind() = %v, want invalid", v.Kind())
	}
}

func TestAttributesEqual(t *testing.T) {
	a := Attributes{"k": StringValue("v")}
	if !a.Equal(Attributes{"k": StringValue("v")}) {
		t.Error("identical maps should be equal")
	}
	if a.Equal(Attributes{"k": StringValue("v"), "extra": BoolValue(true)}) {
		t.Error("different sizes should not be equal")
	}
	if a.Equal(Attributes{"other": StringValue("v")}) {
		t.Error("different keys should not be equal")
	}
}
