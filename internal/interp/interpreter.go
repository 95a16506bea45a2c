// Package interp implements the NeoAda value model, scope chain, function
// table, and tree-walking interpreter (spec.md §3, §4.4–§4.8).
package interp

import (
	"fmt"

	"github.com/solarix95/neoada/internal/ast"
	"github.com/solarix95/neoada/internal/types"
)

// execState is the interpreter's small execution-state machine (spec.md
// §4.4): statement iteration in a block stops as soon as it goes
// non-Running.
type execState int

const (
	running execState = iota
	returning
	breaking
	continuing
)

// Interpreter walks an ast.Node tree against a State. Expression evaluation
// here uses ordinary Go (*Variant, error) return values rather than
// threading a single mutable return-slot field through every call — see
// DESIGN.md for why this departs from original_source's literal "ret"
// field while still honoring its purpose (state.ret) for Return statements
// surviving scope teardown.
type Interpreter struct {
	st *State
}

// NewInterpreter creates an Interpreter over st.
func NewInterpreter(st *State) *Interpreter { return &Interpreter{st: st} }

// State returns the owned façade.
func (it *Interpreter) State() *State { return it.st }

// Run executes a parsed Program node to completion.
func (it *Interpreter) Run(program *ast.Node) error {
	_, err := it.execBlockLike(program.Children)
	return err
}

func (it *Interpreter) execBlockLike(stmts []*ast.Node) (execState, error) {
	for _, stmt := range stmts {
		state, err := it.execStmt(stmt)
		if err != nil {
			return running, err
		}
		if state != running {
			return state, nil
		}
	}
	return running, nil
}

func (it *Interpreter) execBlock(block *ast.Node) (execState, error) {
	return it.execBlockLike(block.Children)
}

func (it *Interpreter) execStmt(n *ast.Node) (execState, error) {
	switch n.Kind {
	case ast.Declaration, ast.VolatileDeclaration:
		return running, it.execDeclaration(n)
	case ast.Assignment:
		return running, it.execAssignment(n)
	case ast.FunctionCall, ast.StaticMethodCall, ast.InstanceMethodCall:
		_, err := it.evalExpr(n)
		return running, err
	case ast.IfStatement:
		return it.execIf(n)
	case ast.WhileLoop:
		return it.execWhile(n)
	case ast.ForLoop:
		return it.execFor(n)
	case ast.Return:
		return it.execReturn(n)
	case ast.Break:
		return it.execBreakContinue(n, breaking)
	case ast.Continue:
		return it.execBreakContinue(n, continuing)
	case ast.Procedure:
		it.defineProcedure(n)
		return running, nil
	case ast.Function:
		it.defineFunction(n)
		return running, nil
	case ast.WithAddon:
		return running, it.st.handleWith(n.Value)
	default:
		_, err := it.evalExpr(n)
		return running, err
	}
}

func (it *Interpreter) execDeclaration(n *ast.Node) error {
	typeNode := n.Children[0]
	rt, ok := it.st.Types.Lookup(typeNode.Value)
	if !ok {
		return &RuntimeError{Code: "DeclarationError", Line: n.Line, Column: n.Column, Info: typeNode.Value}
	}
	slot := NewUndefined(rt)
	if _, ok := it.st.Symbols.Declare(n.Value, slot); !ok {
		return &RuntimeError{Code: "DeclarationError", Line: n.Line, Column: n.Column, Info: "duplicate symbol " + n.Value}
	}
	if len(n.Children) > 1 {
		val, err := it.evalExpr(n.Children[1])
		if err != nil {
			return err
		}
		if err := slot.Assign(val); err != nil {
			return withPos(err, n.Line, n.Column)
		}
	}
	return nil
}

func (it *Interpreter) execAssignment(n *ast.Node) error {
	ref, err := it.evalLValue(n.Children[0])
	if err != nil {
		return err
	}
	if ref.DeclaredType() == nil || ref.DeclaredType().DataType != types.Reference {
		return &RuntimeError{Code: "InvalidAssignment", Line: n.Line, Column: n.Column}
	}
	rhs, err := it.evalExpr(n.Children[1])
	if err != nil {
		return err
	}
	if err := ref.Assign(rhs); err != nil {
		return withPos(err, n.Line, n.Column)
	}
	return nil
}

// evalLValue resolves an Identifier or AccessOperator node to a Reference
// variant aliasing the target slot (spec.md §4.4).
func (it *Interpreter) evalLValue(n *ast.Node) (*Variant, error) {
	switch n.Kind {
	case ast.Identifier:
		sym, ok := it.st.Symbols.Find(n.Value)
		if !ok {
			return nil, &RuntimeError{Code: "UnknownSymbol", Line: n.Line, Column: n.Column, Info: n.Value}
		}
		return NewReference(it.st.Types.MustLookup("reference"), sym.Variant), nil
	case ast.AccessOperator:
		target, err := it.evalExpr(n.Children[0])
		if err != nil {
			return nil, err
		}
		if target.EffectiveType().DataType != types.List {
			return nil, &RuntimeError{Code: "InvalidContainerType", Line: n.Line, Column: n.Column}
		}
		idxVal, err := it.evalExpr(n.Children[1])
		if err != nil {
			return nil, err
		}
		idx, ok := exactNonNegativeInt(idxVal)
		if !ok {
			return nil, &RuntimeError{Code: "InvalidAccessValue", Line: n.Line, Column: n.Column}
		}
		ref, werr := target.WriteAccess(idx, it.st.Types.MustLookup("reference"))
		if werr != nil {
			return nil, withPos(werr, n.Line, n.Column)
		}
		return ref, nil
	default:
		return nil, &RuntimeError{Code: "InvalidAssignment", Line: n.Line, Column: n.Column}
	}
}

func exactNonNegativeInt(v *Variant) (int, bool) {
	d := v.Deref()
	switch d.EffectiveType().DataType {
	case types.Natural:
		if d.nat < 0 {
			return 0, false
		}
		return int(d.nat), true
	case types.Supernatural:
		return int(d.sup), true
	case types.Byte:
		return int(d.byt), true
	case types.Number:
		if d.num < 0 || d.num != float64(int64(d.num)) {
			return 0, false
		}
		return int(d.num), true
	default:
		return 0, false
	}
}

func (it *Interpreter) execIf(n *ast.Node) (execState, error) {
	cond := n.Children[0]
	ok, err := it.evalCondition(cond)
	if err != nil {
		return running, err
	}
	if ok {
		return it.execBlock(n.Children[1])
	}
	for _, child := range n.Children[2:] {
		switch child.Kind {
		case ast.Elsif:
			ok, err := it.evalCondition(child.Children[0])
			if err != nil {
				return running, err
			}
			if ok {
				return it.execBlock(child.Children[1])
			}
		case ast.Else:
			return it.execBlock(child.Children[0])
		}
	}
	return running, nil
}

// evalCondition coerces an expression to boolean, resolving Open Question
// §9.1 strictly: a non-boolean-coercible condition raises InvalidCondition
// (see SPEC_FULL.md's Open Question resolutions).
func (it *Interpreter) evalCondition(n *ast.Node) (bool, error) {
	v, err := it.evalExpr(n)
	if err != nil {
		return false, err
	}
	b, ok := v.ToBool()
	if !ok {
		return false, &RuntimeError{Code: "InvalidCondition", Line: n.Line, Column: n.Column}
	}
	return b, nil
}

func (it *Interpreter) execWhile(n *ast.Node) (execState, error) {
	cond, body := n.Children[0], n.Children[1]
	it.st.Symbols.PushScope(LoopScope)
	defer it.st.Symbols.PopScope()
	for {
		ok, err := it.evalCondition(cond)
		if err != nil {
			return running, err
		}
		if !ok {
			return running, nil
		}
		state, err := it.execBlock(body)
		if err != nil {
			return running, err
		}
		switch state {
		case breaking:
			return running, nil
		case continuing:
			continue
		case returning:
			return returning, nil
		}
	}
}

func (it *Interpreter) execFor(n *ast.Node) (execState, error) {
	rangeNode, body := n.Children[0], n.Children[1]
	fromVal, err := it.evalExpr(rangeNode.Children[0])
	if err != nil {
		return running, err
	}
	toVal, err := it.evalExpr(rangeNode.Children[1])
	if err != nil {
		return running, err
	}
	from, ok1 := exactInt(fromVal)
	to, ok2 := exactInt(toVal)
	if !ok1 || !ok2 {
		return running, &RuntimeError{Code: "InvalidRangeOrIterable", Line: n.Line, Column: n.Column}
	}

	naturalType := it.st.Types.MustLookup("natural")
	it.st.Symbols.PushScope(LoopScope)
	defer it.st.Symbols.PopScope()

	loopVar, _ := it.st.Symbols.Declare(n.Value, NewNatural(naturalType, from))

	for i := from; i <= to; i++ {
		loopVar.Variant.nat = i
		state, err := it.execBlock(body)
		if err != nil {
			return running, err
		}
		switch state {
		case breaking:
			return running, nil
		case continuing:
			continue
		case returning:
			return returning, nil
		}
	}
	return running, nil
}

func exactInt(v *Variant) (int64, bool) {
	d := v.Deref()
	switch d.EffectiveType().DataType {
	case types.Natural:
		return d.nat, true
	case types.Supernatural:
		return int64(d.sup), true
	case types.Byte:
		return int64(d.byt), true
	case types.Number:
		if d.num == float64(int64(d.num)) {
			return int64(d.num), true
		}
	}
	return 0, false
}

func (it *Interpreter) execReturn(n *ast.Node) (execState, error) {
	if len(n.Children) == 0 {
		it.st.ret = NewUndefined(it.st.Types.MustLookup("any"))
		return returning, nil
	}
	v, err := it.evalExpr(n.Children[0])
	if err != nil {
		return running, err
	}
	it.st.ret = copyValue(v.Deref())
	return returning, nil
}

// execBreakContinue implements spec.md §4.4/§9.3: valid only inside a Loop
// scope; an optional "when" condition makes the jump conditional; outside
// any loop scope it's a non-fatal diagnostic, not an error.
func (it *Interpreter) execBreakContinue(n *ast.Node, target execState) (execState, error) {
	if len(n.Children) > 0 {
		ok, err := it.evalCondition(n.Children[0])
		if err != nil {
			return running, err
		}
		if !ok {
			return running, nil
		}
	}
	if !it.st.Symbols.InLoopScope() {
		word := "break"
		if target == continuing {
			word = "continue"
		}
		it.st.ReportDiagnostic(fmt.Sprintf("Error: %s outside a loop at line %d, column %d", word, n.Line, n.Column))
		return running, nil
	}
	return target, nil
}

func (it *Interpreter) defineProcedure(n *ast.Node) {
	bucket, name, formals, body := it.splitDef(n, false)
	it.st.Functions.Bind(bucket, name, "", formals, body)
}

func (it *Interpreter) defineFunction(n *ast.Node) {
	bucket, name, formals, body := it.splitDef(n, true)
	// Function children layout: [MethodContext?, FormalParameters, ReturnType, Block]
	retType := n.Children[len(n.Children)-2].Value
	it.st.Functions.Bind(bucket, name, retType, formals, body)
}

func (it *Interpreter) splitDef(n *ast.Node, isFunc bool) (bucket, name string, formals []Formal, body *ast.Node) {
	children := n.Children
	idx := 0
	if children[idx].Kind == ast.MethodContext {
		bucket = children[idx].Value
		idx++
	}
	formalsNode := children[idx]
	for _, f := range formalsNode.Children {
		mode := ModeIn
		typeName := f.Children[0].Value
		if len(f.Children) > 1 && f.Children[1].Value == "out" {
			mode = ModeOut
		}
		formals = append(formals, Formal{Name: f.Value, TypeName: typeName, Mode: mode})
	}
	body = children[len(children)-1]
	name = n.Value
	return bucket, name, formals, body
}
