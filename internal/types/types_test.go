package types

import "testing"

func TestDataTypeString(t *testing.T) {
	tests := []struct {
		dt       DataType
		expected string
	}{
		{Undefined, "undefined"},
		{Reference, "reference"},
		{Any, "any"},
		{Number, "number"},
		{Natural, "natural"},
		{Supernatural, "supernatural"},
		{Boolean, "boolean"},
		{Byte, "byte"},
		{String, "string"},
		{List, "list"},
		{Dict, "dict"},
		{DataType(999), "undefined"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.dt.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRegistryLookupBuiltins(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		name string
		dt   DataType
	}{
		{"any", Any}, {"number", Number}, {"natural", Natural},
		{"supernatural", Supernatural}, {"boolean", Boolean}, {"byte", Byte},
		{"string", String}, {"list", List}, {"reference", Reference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, ok := r.Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.name)
			}
			if rt.DataType != tt.dt {
				t.Errorf("DataType = %v, want %v", rt.DataType, tt.dt)
			}
		})
	}
}

func TestRegistryLookupCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"Number", "NUMBER", "nUmBeR"} {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("Lookup(%q) not found, want case-insensitive match", name)
		}
	}
}

func TestRegistryLookupMissing(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Lookup("nosuchtype"); ok {
		t.Error("Lookup should fail for an unregistered type")
	}
}

func TestRegistryRegisterIdempotent(t *testing.T) {
	r := NewRegistry()
	first := r.Register(&RuntimeType{Name: "Widget", DataType: Any, Instantiable: true})
	second := r.Register(&RuntimeType{Name: "widget", DataType: String, Instantiable: false})
	if first != second {
		t.Error("Register should return the existing descriptor for an already-interned name")
	}
	if second.DataType != Any {
		t.Errorf("DataType = %v, want %v (the first-registered descriptor)", second.DataType, Any)
	}
}

func TestRegistryMustLookupPanicsOnMissing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustLookup to panic for an unregistered type")
		}
	}()
	NewRegistry().MustLookup("nosuchtype")
}
