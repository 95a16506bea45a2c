package interp

import (
	"io"
	"os"
	"strings"

	"github.com/solarix95/neoada/internal/types"
)

// WithHandler is invoked when the program executes a `with "name";`
// statement, naming the addon the host should load (spec.md §4.8/§6).
type WithHandler func(state *State, addonName string) error

// State is the façade owning everything the interpreter needs across a
// run: the type registry, globals/call-stack, function table, return slot,
// and the with-statement callback — spec.md §4.8.
type State struct {
	Types     *types.Registry
	Symbols   *SymbolTable
	Functions *FunctionTable

	// ret is the return slot: Return statements write their value here and
	// each script function call resets it; expressions return their own
	// values instead of depositing them here.
	ret *Variant

	onWith WithHandler

	// ErrWriter receives non-fatal diagnostics (break/continue outside a
	// loop) per spec.md §7's "user-visible failures" policy.
	ErrWriter io.Writer

	Stdout io.Writer
}

// NewState builds a fresh State with built-in types registered and an
// empty global scope.
func NewState() *State {
	return &State{
		Types:     types.NewRegistry(),
		Symbols:   NewSymbolTable(),
		Functions: NewFunctionTable(),
		ret:       NewUndefined(nil),
		ErrWriter: os.Stderr,
		Stdout:    os.Stdout,
	}
}

// Define declares a global of the named type, per spec.md §6's
// State.define(name, type_name, volatile) contract. volatile is accepted
// for interface parity with the embedding API and ignored: a volatile
// global is declared, and checked for duplicates, like any other.
func (s *State) Define(name, typeName string, _ bool) bool {
	rt, ok := s.Types.Lookup(typeName)
	if !ok {
		return false
	}
	_, ok = s.Symbols.Declare(name, NewUndefined(rt))
	return ok
}

// Value returns the current value bound to name, or nil if undeclared.
func (s *State) Value(name string) (*Variant, bool) {
	sym, ok := s.Symbols.Find(name)
	if !ok {
		return nil, false
	}
	return sym.Variant, true
}

// ValueRef returns a Reference variant aliasing name's slot, for host
// mutation, per spec.md §6's State.value_ref.
func (s *State) ValueRef(name string) (*Variant, bool) {
	sym, ok := s.Symbols.Find(name)
	if !ok {
		return nil, false
	}
	refType := s.Types.MustLookup("reference")
	return NewReference(refType, sym.Variant), true
}

// BindFnc registers a native function callable from scripts.
func (s *State) BindFnc(typeBucket, name string, formals []Formal, fn NativeFunc) {
	s.Functions.BindFnc(typeBucket, name, formals, fn)
}

// BindPrc registers a native procedure callable from scripts.
func (s *State) BindPrc(typeBucket, name string, formals []Formal, proc NativeProc) {
	s.Functions.BindPrc(typeBucket, name, formals, proc)
}

// OnWith installs the handler invoked by `with "name";` statements.
func (s *State) OnWith(h WithHandler) { s.onWith = h }

func (s *State) handleWith(addonName string) error {
	if s.onWith == nil {
		return nil
	}
	return s.onWith(s, strings.TrimSpace(addonName))
}

// ReportDiagnostic writes a non-fatal message to ErrWriter (spec.md §7 —
// break/continue outside a loop).
func (s *State) ReportDiagnostic(msg string) {
	if s.ErrWriter != nil {
		io.WriteString(s.ErrWriter, msg+"\n")
	}
}
