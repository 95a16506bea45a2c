package interp

import (
	"strings"

	"github.com/solarix95/neoada/internal/ast"
)

// ParamMode is a formal parameter's passing mode.
type ParamMode int

const (
	ModeIn ParamMode = iota
	ModeOut
)

// Formal is one formal parameter of a function/procedure entry.
type Formal struct {
	Name     string
	TypeName string
	Mode     ParamMode
}

// NativeFunc is a native callback bound via bindFnc; it returns the result
// to be written into the return slot.
type NativeFunc func(args map[string]*Variant) (*Variant, error)

// NativeProc is a native callback bound via bindPrc; it has no return
// value.
type NativeProc func(args map[string]*Variant) error

// FuncEntry is one overload in a function table bucket, per spec.md §3/§4.7.
type FuncEntry struct {
	ReturnType string // "" for procedures
	Formals    []Formal
	Body       *ast.Node // AST body, nil for native entries
	Native     NativeFunc
	NativeProc NativeProc
}

func (e *FuncEntry) IsProcedure() bool { return e.ReturnType == "" && e.Native == nil }

// FunctionTable is keyed by lowercased typeBucket, then lowercased
// functionName, to an ordered overload list. Lookup returns the first
// match by name (spec.md §4.7's documented first-match limitation).
type FunctionTable struct {
	buckets map[string]map[string][]*FuncEntry
}

func NewFunctionTable() *FunctionTable {
	return &FunctionTable{buckets: make(map[string]map[string][]*FuncEntry)}
}

func (ft *FunctionTable) bucketFor(typeBucket string) map[string][]*FuncEntry {
	key := strings.ToLower(typeBucket)
	b, ok := ft.buckets[key]
	if !ok {
		b = make(map[string][]*FuncEntry)
		ft.buckets[key] = b
	}
	return b
}

func (ft *FunctionTable) register(typeBucket, name string, entry *FuncEntry) {
	b := ft.bucketFor(typeBucket)
	key := strings.ToLower(name)
	b[key] = append(b[key], entry)
}

// Bind registers a script-defined function/procedure body.
func (ft *FunctionTable) Bind(typeBucket, name, returnType string, formals []Formal, body *ast.Node) {
	ft.register(typeBucket, name, &FuncEntry{ReturnType: returnType, Formals: formals, Body: body})
}

// BindFnc registers a native function (has a return value).
func (ft *FunctionTable) BindFnc(typeBucket, name string, formals []Formal, fn NativeFunc) {
	ft.register(typeBucket, name, &FuncEntry{ReturnType: "any", Formals: formals, Native: fn})
}

// BindPrc registers a native procedure (no return value).
func (ft *FunctionTable) BindPrc(typeBucket, name string, formals []Formal, proc NativeProc) {
	ft.register(typeBucket, name, &FuncEntry{Formals: formals, NativeProc: proc})
}

// Lookup finds the first overload registered under (typeBucket, name).
func (ft *FunctionTable) Lookup(typeBucket, name string) (*FuncEntry, bool) {
	b, ok := ft.buckets[strings.ToLower(typeBucket)]
	if !ok {
		return nil, false
	}
	entries, ok := b[strings.ToLower(name)]
	if !ok || len(entries) == 0 {
		return nil, false
	}
	return entries[0], true
}

// Has reports whether any overload exists under (typeBucket, name).
func (ft *FunctionTable) Has(typeBucket, name string) bool {
	_, ok := ft.Lookup(typeBucket, name)
	return ok
}
