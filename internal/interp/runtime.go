package interp

import (
	"fmt"

	"github.com/solarix95/neoada/internal/lexer"
	"github.com/solarix95/neoada/internal/parser"
)

// Runtime is the embedding façade of spec.md §4.8/§6, grounded on
// original_source/libneoada/runtime.h/.cc: owns one State across
// RunScript calls, rebuilding it on Reset, and wires the built-in
// "ada.list"/"ada.string" addon names to RegisterListAddon/
// RegisterStringAddon via State.OnWith.
type Runtime struct {
	state *State
}

// New creates a Runtime with a fresh State.
func New() *Runtime {
	r := &Runtime{}
	r.Reset()
	return r
}

// Reset discards the current State (losing all globals and bound
// functions) and starts over.
func (r *Runtime) Reset() {
	r.state = NewState()
	r.state.OnWith(func(st *State, addonName string) error {
		switch addonName {
		case "ada.list":
			RegisterListAddon(st)
		case "ada.string":
			RegisterStringAddon(st)
		default:
			return &RuntimeError{Code: "UnknownSymbol", Info: addonName}
		}
		return nil
	})
}

// State exposes the owned façade for direct embedding-API use
// (Define/Value/ValueRef/BindFnc/BindPrc).
func (r *Runtime) State() *State { return r.state }

// LoadAddonAdaList registers the "list" method pack unconditionally,
// without requiring a `with "ada.list";` statement in the script.
func (r *Runtime) LoadAddonAdaList() { RegisterListAddon(r.state) }

// LoadAddonAdaString registers the "string" method pack unconditionally.
func (r *Runtime) LoadAddonAdaString() { RegisterStringAddon(r.state) }

// RunScript lexes, parses, and interprets script against the owned State.
// Static lexer/parser errors are returned as a single combined error;
// the caller decides how to render them.
func (r *Runtime) RunScript(script string) (*Variant, error) {
	if r.state == nil {
		r.Reset()
	}

	l := lexer.New(script)
	p := parser.New(l)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("%d static error(s), first: %w", len(errs), errs[0])
	}

	it := NewInterpreter(r.state)
	if err := it.Run(program); err != nil {
		return nil, err
	}
	return r.state.ret, nil
}
