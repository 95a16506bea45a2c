// Package neoada is the public embedding API for the NeoAda interpreter,
// mirroring spec.md §6's Runtime/State contract over internal/interp.
package neoada

import (
	"github.com/solarix95/neoada/internal/ast"
	"github.com/solarix95/neoada/internal/interp"
	"github.com/solarix95/neoada/internal/lexer"
	"github.com/solarix95/neoada/internal/parser"
)

// Formal re-exports interp.Formal so host code binding native
// functions/procedures doesn't need to import internal/interp directly.
type Formal = interp.Formal

// ParamMode re-exports interp.ParamMode.
type ParamMode = interp.ParamMode

const (
	In  = interp.ModeIn
	Out = interp.ModeOut
)

// Variant re-exports interp.Variant, the runtime value type host callbacks
// receive and return.
type Variant = interp.Variant

// Runtime is a NeoAda execution environment: one type registry, one global
// scope, one function table, reused across RunScript calls until Reset.
type Runtime struct {
	rt *interp.Runtime
}

// New creates a Runtime with a fresh State.
func New() *Runtime {
	return &Runtime{rt: interp.New()}
}

// Reset discards all globals and bound functions and starts over.
func (r *Runtime) Reset() { r.rt.Reset() }

// State exposes the embedding API: Define/Value/ValueRef/BindFnc/BindPrc/
// OnWith (spec.md §6).
func (r *Runtime) State() *interp.State { return r.rt.State() }

// LoadAddonAdaList registers the built-in "list" method pack unconditionally.
func (r *Runtime) LoadAddonAdaList() { r.rt.LoadAddonAdaList() }

// LoadAddonAdaString registers the built-in "string" method pack unconditionally.
func (r *Runtime) LoadAddonAdaString() { r.rt.LoadAddonAdaString() }

// Parse lexes and parses source without executing it, returning the raw
// AST and any accumulated static errors.
func (r *Runtime) Parse(source string) (*ast.Node, []error) {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	return program, p.Errors()
}

// RunScript lexes, parses, and interprets source against the Runtime's
// State, returning the value of its last Return statement (or Undefined).
func (r *Runtime) RunScript(source string) (*Variant, error) {
	return r.rt.RunScript(source)
}
