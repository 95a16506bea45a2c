// Package types implements the case-insensitive runtime type registry.
package types

import "strings"

// DataType is the closed set of payload shapes a Variant can hold.
type DataType int

const (
	Undefined DataType = iota
	Reference
	Any
	Number
	Natural
	Supernatural
	Boolean
	Byte
	String
	List
	Dict
)

var dataTypeNames = [...]string{
	Undefined: "undefined", Reference: "reference", Any: "any",
	Number: "number", Natural: "natural", Supernatural: "supernatural",
	Boolean: "boolean", Byte: "byte", String: "string", List: "list",
	Dict: "dict",
}

func (d DataType) String() string {
	if int(d) < 0 || int(d) >= len(dataTypeNames) {
		return "undefined"
	}
	return dataTypeNames[d]
}

// RuntimeType is an interned type descriptor.
type RuntimeType struct {
	Name         string
	DataType     DataType
	BaseTypeName string
	Instantiable bool
}

// Registry interns RuntimeType descriptors by lowercased name.
type Registry struct {
	byName map[string]*RuntimeType
}

// NewRegistry builds a registry seeded with NeoAda's built-in types.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]*RuntimeType)}
	for _, t := range []*RuntimeType{
		{Name: "any", DataType: Any, Instantiable: true},
		{Name: "number", DataType: Number, Instantiable: true},
		{Name: "natural", DataType: Natural, Instantiable: true},
		{Name: "supernatural", DataType: Supernatural, Instantiable: true},
		{Name: "boolean", DataType: Boolean, Instantiable: true},
		{Name: "byte", DataType: Byte, Instantiable: true},
		{Name: "string", DataType: String, Instantiable: true},
		{Name: "list", DataType: List, Instantiable: true},
		{Name: "reference", DataType: Reference, Instantiable: false},
	} {
		r.byName[t.Name] = t
	}
	return r
}

// Lookup finds a registered type by name, case-insensitively.
func (r *Registry) Lookup(name string) (*RuntimeType, bool) {
	t, ok := r.byName[strings.ToLower(name)]
	return t, ok
}

// Register interns a new type descriptor, returning the existing one if
// the name is already registered.
func (r *Registry) Register(t *RuntimeType) *RuntimeType {
	key := strings.ToLower(t.Name)
	if existing, ok := r.byName[key]; ok {
		return existing
	}
	r.byName[key] = t
	return t
}

// MustLookup looks up a built-in type by its canonical name, panicking if
// absent — used only for the fixed built-in set at construction sites that
// know the name is valid.
func (r *Registry) MustLookup(name string) *RuntimeType {
	t, ok := r.Lookup(name)
	if !ok {
		panic("types: unregistered built-in type " + name)
	}
	return t
}
