package interp

import (
	"math"
	"strings"

	"github.com/solarix95/neoada/internal/ast"
	"github.com/solarix95/neoada/internal/lexer"
	"github.com/solarix95/neoada/internal/types"
)

// evalExpr dispatches on an expression node's Kind. Unlike the C++
// original's single mutable return slot, each call here returns its own
// (*Variant, error) pair — see interpreter.go's doc comment for why.
func (it *Interpreter) evalExpr(n *ast.Node) (*Variant, error) {
	switch n.Kind {
	case ast.Number:
		return it.evalNumber(n)
	case ast.Literal:
		return NewString(it.st.Types.MustLookup("string"), n.Value), nil
	case ast.BooleanLiteral:
		return NewBoolean(it.st.Types.MustLookup("boolean"), strings.EqualFold(n.Value, "true")), nil
	case ast.Identifier:
		sym, ok := it.st.Symbols.Find(n.Value)
		if !ok {
			return nil, &RuntimeError{Code: "UnknownSymbol", Line: n.Line, Column: n.Column, Info: n.Value}
		}
		return sym.Variant, nil
	case ast.AccessOperator:
		return it.evalAccess(n)
	case ast.UnaryOperator:
		return it.evalUnary(n)
	case ast.BinaryOperator:
		return it.evalBinary(n)
	case ast.FunctionCall, ast.StaticMethodCall, ast.InstanceMethodCall:
		return it.evalCall(n)
	case ast.ListLiteral:
		return it.evalListLiteral(n)
	}
	return nil, &RuntimeError{Code: "InvalidToken", Line: n.Line, Column: n.Column}
}

// evalNumber parses (and caches, on the node itself) the literal's shape
// per spec.md §4.4's numeral recognition rules.
func (it *Interpreter) evalNumber(n *ast.Node) (*Variant, error) {
	if n.Literal == nil {
		num, err := lexer.ParseNumeral(n.Value)
		if err != nil {
			return nil, &RuntimeError{Code: "InvalidNumericValue", Line: n.Line, Column: n.Column, Info: n.Value}
		}
		n.Literal = &ast.LiteralValue{Int: num.Int, Uint: num.Uint, Float: num.Float, NumKind: int(num.Kind)}
	}
	lv := n.Literal
	switch lexer.NumeralKind(lv.NumKind) {
	case lexer.KindNatural:
		return NewNatural(it.st.Types.MustLookup("natural"), lv.Int), nil
	case lexer.KindSupernatural:
		return NewSupernatural(it.st.Types.MustLookup("supernatural"), lv.Uint), nil
	case lexer.KindNumber:
		return NewNumber(it.st.Types.MustLookup("number"), lv.Float), nil
	case lexer.KindByte:
		return NewByte(it.st.Types.MustLookup("byte"), byte(lv.Int)), nil
	}
	return nil, &RuntimeError{Code: "InvalidNumericValue", Line: n.Line, Column: n.Column, Info: n.Value}
}

func (it *Interpreter) evalAccess(n *ast.Node) (*Variant, error) {
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
	v, rerr := target.ReadAccess(idx)
	if rerr != nil {
		return nil, withPos(rerr, n.Line, n.Column)
	}
	return v, nil
}

func (it *Interpreter) evalUnary(n *ast.Node) (*Variant, error) {
	operand, err := it.evalExpr(n.Children[0])
	if err != nil {
		return nil, err
	}
	d := operand.Deref()
	switch n.Value {
	case "-":
		switch d.EffectiveType().DataType {
		case types.Number:
			return NewNumber(d.rt, -d.num), nil
		case types.Natural:
			return NewNatural(d.rt, -d.nat), nil
		default:
			return nil, &RuntimeError{Code: "OperatorTypeError", Line: n.Line, Column: n.Column}
		}
	case "+":
		switch d.EffectiveType().DataType {
		case types.Number, types.Natural, types.Supernatural, types.Byte:
			return d, nil
		default:
			return nil, &RuntimeError{Code: "OperatorTypeError", Line: n.Line, Column: n.Column}
		}
	case "not":
		b, ok := d.ToBool()
		if !ok {
			return nil, &RuntimeError{Code: "OperatorTypeError", Line: n.Line, Column: n.Column}
		}
		return NewBoolean(it.st.Types.MustLookup("boolean"), !b), nil
	case "#":
		return NewNatural(it.st.Types.MustLookup("natural"), d.LengthOperator()), nil
	}
	return nil, &RuntimeError{Code: "InvalidToken", Line: n.Line, Column: n.Column}
}

func (it *Interpreter) evalBinary(n *ast.Node) (*Variant, error) {
	op := n.Value
	if op == "and" || op == "or" || op == "xor" {
		return it.evalLogical(op, n)
	}

	left, err := it.evalExpr(n.Children[0])
	if err != nil {
		return nil, err
	}
	right, err := it.evalExpr(n.Children[1])
	if err != nil {
		return nil, err
	}

	switch op {
	case "=", "<>", "<", "<=", ">", ">=":
		return it.evalCompare(op, left, right, n)
	case "&":
		return it.evalConcat(left, right, n)
	case "+", "-", "*", "/", "mod", "rem", "**":
		return it.evalArith(op, left, right, n)
	}
	return nil, &RuntimeError{Code: "InvalidToken", Line: n.Line, Column: n.Column}
}

// evalLogical implements spec.md §4.4's and/or/xor: both operands are
// always evaluated (no short-circuit) and coerced to boolean.
func (it *Interpreter) evalLogical(op string, n *ast.Node) (*Variant, error) {
	left, err := it.evalExpr(n.Children[0])
	if err != nil {
		return nil, err
	}
	right, err := it.evalExpr(n.Children[1])
	if err != nil {
		return nil, err
	}
	lb, ok1 := left.ToBool()
	rb, ok2 := right.ToBool()
	if !ok1 || !ok2 {
		return nil, &RuntimeError{Code: "OperatorTypeError", Line: n.Line, Column: n.Column}
	}
	var result bool
	switch op {
	case "and":
		result = lb && rb
	case "or":
		result = lb || rb
	case "xor":
		result = lb != rb
	}
	return NewBoolean(it.st.Types.MustLookup("boolean"), result), nil
}

// evalCompare resolves Open Question §9.2: ">=" is implemented directly as
// cmp >= 0 (greater or equal), not replicated from the original's bug of
// returning only the ">" result.
func (it *Interpreter) evalCompare(op string, left, right *Variant, n *ast.Node) (*Variant, error) {
	cmp, ok := Spaceship(left, right)
	if !ok {
		return nil, &RuntimeError{Code: "OperatorTypeError", Line: n.Line, Column: n.Column}
	}
	var result bool
	switch op {
	case "=":
		result = cmp == 0
	case "<>":
		result = cmp != 0
	case "<":
		result = cmp < 0
	case "<=":
		result = cmp <= 0
	case ">":
		result = cmp > 0
	case ">=":
		result = cmp >= 0
	}
	return NewBoolean(it.st.Types.MustLookup("boolean"), result), nil
}

func (it *Interpreter) evalConcat(left, right *Variant, n *ast.Node) (*Variant, error) {
	ld, rd := left.Deref(), right.Deref()
	if ld.EffectiveType().DataType == types.String && rd.EffectiveType().DataType == types.String {
		return NewString(it.st.Types.MustLookup("string"), ld.StringValue()+rd.StringValue()), nil
	}
	if ld.EffectiveType().DataType == types.List && rd.EffectiveType().DataType == types.List {
		items := make([]*Variant, 0, len(ld.ListItems())+len(rd.ListItems()))
		for _, i := range ld.ListItems() {
			items = append(items, copyValue(i))
		}
		for _, i := range rd.ListItems() {
			items = append(items, copyValue(i))
		}
		return NewList(it.st.Types.MustLookup("list"), items), nil
	}
	return nil, &RuntimeError{Code: "OperatorTypeError", Line: n.Line, Column: n.Column}
}

// evalArith implements spec.md §4.5's arithmetic rules: both operands must
// share the same DataType (no implicit widening, unlike comparisons), so
// the result simply reuses the left operand's rt. Division/mod by zero
// traps for every integer kind; Number division keeps IEEE 754 semantics
// (±Inf/NaN); Supernatural subtraction wraps — per the Open Question
// resolutions in SPEC_FULL.md.
func (it *Interpreter) evalArith(op string, left, right *Variant, n *ast.Node) (*Variant, error) {
	ld, rd := left.Deref(), right.Deref()
	lt, rt := ld.EffectiveType().DataType, rd.EffectiveType().DataType
	if lt != rt {
		return nil, &RuntimeError{Code: "OperatorTypeError", Line: n.Line, Column: n.Column}
	}

	switch lt {
	case types.Number:
		a, b := ld.num, rd.num
		switch op {
		case "+":
			return NewNumber(ld.rt, a+b), nil
		case "-":
			return NewNumber(ld.rt, a-b), nil
		case "*":
			return NewNumber(ld.rt, a*b), nil
		case "/":
			return NewNumber(ld.rt, a/b), nil
		case "**":
			return NewNumber(ld.rt, math.Pow(a, b)), nil
		}
	case types.Natural:
		a, b := ld.nat, rd.nat
		switch op {
		case "+":
			return NewNatural(ld.rt, a+b), nil
		case "-":
			return NewNatural(ld.rt, a-b), nil
		case "*":
			return NewNatural(ld.rt, a*b), nil
		case "/":
			if b == 0 {
				return nil, &RuntimeError{Code: "OperatorTypeError", Line: n.Line, Column: n.Column, Info: "division by zero"}
			}
			return NewNatural(ld.rt, a/b), nil
		case "mod":
			if b == 0 {
				return nil, &RuntimeError{Code: "OperatorTypeError", Line: n.Line, Column: n.Column, Info: "mod by zero"}
			}
			return NewNatural(ld.rt, ((a%b)+b)%b), nil
		case "rem":
			if b == 0 {
				return nil, &RuntimeError{Code: "OperatorTypeError", Line: n.Line, Column: n.Column, Info: "rem by zero"}
			}
			return NewNatural(ld.rt, a%b), nil
		case "**":
			return NewNatural(ld.rt, intPow(a, b)), nil
		}
	case types.Supernatural:
		a, b := ld.sup, rd.sup
		switch op {
		case "+":
			return NewSupernatural(ld.rt, a+b), nil
		case "-":
			return NewSupernatural(ld.rt, a-b), nil
		case "*":
			return NewSupernatural(ld.rt, a*b), nil
		case "/":
			if b == 0 {
				return nil, &RuntimeError{Code: "OperatorTypeError", Line: n.Line, Column: n.Column, Info: "division by zero"}
			}
			return NewSupernatural(ld.rt, a/b), nil
		case "mod", "rem":
			if b == 0 {
				return nil, &RuntimeError{Code: "OperatorTypeError", Line: n.Line, Column: n.Column, Info: "mod by zero"}
			}
			return NewSupernatural(ld.rt, a%b), nil
		case "**":
			return NewSupernatural(ld.rt, uintPow(a, b)), nil
		}
	case types.Byte:
		a, b := ld.byt, rd.byt
		switch op {
		case "+":
			return NewByte(ld.rt, a+b), nil
		case "-":
			return NewByte(ld.rt, a-b), nil
		case "*":
			return NewByte(ld.rt, a*b), nil
		case "/":
			if b == 0 {
				return nil, &RuntimeError{Code: "OperatorTypeError", Line: n.Line, Column: n.Column, Info: "division by zero"}
			}
			return NewByte(ld.rt, a/b), nil
		case "mod", "rem":
			if b == 0 {
				return nil, &RuntimeError{Code: "OperatorTypeError", Line: n.Line, Column: n.Column, Info: "mod by zero"}
			}
			return NewByte(ld.rt, a%b), nil
		}
	}
	return nil, &RuntimeError{Code: "OperatorTypeError", Line: n.Line, Column: n.Column}
}

func intPow(base, exp int64) int64 {
	if exp < 0 {
		return 0
	}
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func uintPow(base, exp uint64) uint64 {
	result := uint64(1)
	for i := uint64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func (it *Interpreter) evalListLiteral(n *ast.Node) (*Variant, error) {
	items := make([]*Variant, len(n.Children))
	for i, c := range n.Children {
		v, err := it.evalExpr(c)
		if err != nil {
			return nil, err
		}
		items[i] = copyValue(v.Deref())
	}
	return NewList(it.st.Types.MustLookup("list"), items), nil
}

// evalCall dispatches FunctionCall (free) and StaticMethodCall/
// InstanceMethodCall (bucketed) nodes. The parser always emits
// StaticMethodCall for "name : member(args)" syntax (see parser/expr.go);
// resolveMethodTarget decides at evaluation time whether name is a
// declared instance (bucket = its runtime type, self bound) or a
// registered type name (bucket = itself, static, no self) — the
// unification documented in DESIGN.md.
func (it *Interpreter) evalCall(n *ast.Node) (*Variant, error) {
	switch n.Kind {
	case ast.FunctionCall:
		return it.callFunction("", n.Value, n.Children, nil, n)
	case ast.StaticMethodCall, ast.InstanceMethodCall:
		ctx := n.Children[0]
		bucket, selfRef, err := it.resolveMethodTarget(ctx)
		if err != nil {
			return nil, err
		}
		return it.callFunction(bucket, n.Value, n.Children[1:], selfRef, n)
	}
	return nil, &RuntimeError{Code: "InvalidStatement", Line: n.Line, Column: n.Column}
}

func (it *Interpreter) resolveMethodTarget(ctx *ast.Node) (bucket string, selfRef *Variant, err error) {
	name := ctx.Value
	if sym, ok := it.st.Symbols.Find(name); ok {
		bucket = sym.Variant.EffectiveType().Name
		selfRef = NewReference(it.st.Types.MustLookup("reference"), sym.Variant)
		return bucket, selfRef, nil
	}
	if rt, ok := it.st.Types.Lookup(name); ok {
		return rt.Name, nil, nil
	}
	return "", nil, &RuntimeError{Code: "UnknownSymbol", Line: ctx.Line, Column: ctx.Column, Info: name}
}

// callFunction binds argNodes against entry.Formals positionally: In
// formals get a fresh slot of their own declared type, assigned from the
// evaluated argument (so assign()'s widening/mismatch rules apply at the
// call boundary); Out formals bind an evalLValue reference directly. Then
// dispatches to a native callback or a script body, per spec.md §4.7/§4.4.
func (it *Interpreter) callFunction(bucket, name string, argNodes []*ast.Node, selfRef *Variant, n *ast.Node) (*Variant, error) {
	entry, ok := it.st.Functions.Lookup(bucket, name)
	if !ok {
		return nil, &RuntimeError{Code: "UnknownSymbol", Line: n.Line, Column: n.Column, Info: name}
	}

	args := make(map[string]*Variant)
	if selfRef != nil {
		args["this"] = selfRef
	}
	for i, formal := range entry.Formals {
		if i >= len(argNodes) {
			break
		}
		if formal.Mode == ModeOut {
			ref, err := it.evalLValue(argNodes[i])
			if err != nil {
				return nil, err
			}
			args[formal.Name] = ref
		} else {
			v, err := it.evalExpr(argNodes[i])
			if err != nil {
				return nil, err
			}
			formalType, ok := it.st.Types.Lookup(formal.TypeName)
			if !ok {
				return nil, &RuntimeError{Code: "UnknownSymbol", Line: n.Line, Column: n.Column, Info: formal.TypeName}
			}
			slot := NewUndefined(formalType)
			if err := slot.Assign(v.Deref()); err != nil {
				return nil, withPos(err, n.Line, n.Column)
			}
			args[formal.Name] = slot
		}
	}

	switch {
	case entry.Native != nil:
		res, err := entry.Native(args)
		if err != nil {
			return nil, withPos(err, n.Line, n.Column)
		}
		return res, nil
	case entry.NativeProc != nil:
		if err := entry.NativeProc(args); err != nil {
			return nil, withPos(err, n.Line, n.Column)
		}
		return NewUndefined(it.st.Types.MustLookup("any")), nil
	default:
		return it.callScriptFunction(entry, args)
	}
}

func (it *Interpreter) callScriptFunction(entry *FuncEntry, args map[string]*Variant) (*Variant, error) {
	it.st.Symbols.PushStack(LocalScope)
	defer it.st.Symbols.PopStack()

	if self, ok := args["this"]; ok {
		it.st.Symbols.Declare("this", self)
	}
	for _, formal := range entry.Formals {
		v, ok := args[formal.Name]
		if !ok {
			rt, _ := it.st.Types.Lookup(formal.TypeName)
			v = NewUndefined(rt)
		}
		it.st.Symbols.Declare(formal.Name, v)
	}

	anyType := it.st.Types.MustLookup("any")
	it.st.ret = NewUndefined(anyType)

	state, err := it.execBlock(entry.Body)
	if err != nil {
		return nil, err
	}
	if state == breaking || state == continuing {
		it.st.ReportDiagnostic("Error: break/continue outside a loop")
	}
	return it.st.ret, nil
}
