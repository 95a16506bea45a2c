package parser

import (
	"github.com/solarix95/neoada/internal/ast"
	"github.com/solarix95/neoada/internal/token"
)

// parseExpression is the entry point for the precedence ladder of
// spec.md §4.2: logical(or/xor) → logical(and) → equality → relational →
// concat → additive → multiplicative → power → unary → primary.
func (p *Parser) parseExpression() *ast.Node {
	return p.parseOrXor()
}

func (p *Parser) parseOrXor() *ast.Node {
	left := p.parseAnd()
	for p.isKeyword("or") || p.isKeyword("xor") {
		op := p.advance()
		right := p.parseAnd()
		left = binOp(op, left, right)
	}
	return left
}

func (p *Parser) parseAnd() *ast.Node {
	left := p.parseEquality()
	for p.isKeyword("and") {
		op := p.advance()
		right := p.parseEquality()
		left = binOp(op, left, right)
	}
	return left
}

func (p *Parser) parseEquality() *ast.Node {
	left := p.parseRelational()
	for p.isOperator("=") || p.isOperator("<>") || p.isOperator("/=") {
		op := p.advance()
		right := p.parseRelational()
		left = binOpNormalized(op, left, right)
	}
	return left
}

func (p *Parser) parseRelational() *ast.Node {
	left := p.parseConcat()
	for p.isOperator("<") || p.isOperator("<=") || p.isOperator(">") || p.isOperator(">=") {
		op := p.advance()
		right := p.parseConcat()
		left = binOp(op, left, right)
	}
	return left
}

func (p *Parser) parseConcat() *ast.Node {
	left := p.parseAdditive()
	for p.isOperator("&") {
		op := p.advance()
		right := p.parseAdditive()
		left = binOp(op, left, right)
	}
	return left
}

func (p *Parser) parseAdditive() *ast.Node {
	left := p.parseMultiplicative()
	for p.isOperator("+") || p.isOperator("-") {
		op := p.advance()
		right := p.parseMultiplicative()
		left = binOp(op, left, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() *ast.Node {
	left := p.parsePower()
	for p.isOperator("*") || p.isOperator("/") || p.isKeyword("mod") || p.isKeyword("rem") {
		op := p.advance()
		right := p.parsePower()
		left = binOp(op, left, right)
	}
	return left
}

// parsePower is right-associative: a ** b ** c == a ** (b ** c).
func (p *Parser) parsePower() *ast.Node {
	left := p.parseUnary()
	if p.isOperator("**") {
		op := p.advance()
		right := p.parsePower()
		return binOp(op, left, right)
	}
	return left
}

func (p *Parser) parseUnary() *ast.Node {
	if p.isOperator("+") || p.isOperator("-") || p.isOperator("#") || p.isKeyword("not") {
		op := p.advance()
		operand := p.parseUnary()
		return ast.New(ast.UnaryOperator, lowered(op), op.Pos, operand)
	}
	return p.parsePrimary()
}

func binOp(op token.Token, left, right *ast.Node) *ast.Node {
	return ast.New(ast.BinaryOperator, lowered(op), op.Pos, left, right)
}

// binOpNormalized folds "/=" into the canonical "<>" inequality lexeme so
// the interpreter dispatches on a single operator value.
func binOpNormalized(op token.Token, left, right *ast.Node) *ast.Node {
	value := lowered(op)
	if value == "/=" {
		value = "<>"
	}
	return ast.New(ast.BinaryOperator, value, op.Pos, left, right)
}

func (p *Parser) parsePrimary() *ast.Node {
	t := p.cur()

	switch t.Kind {
	case token.Number:
		p.advance()
		return ast.New(ast.Number, t.Lexeme, t.Pos)
	case token.String:
		p.advance()
		return ast.New(ast.Literal, t.Lexeme, t.Pos)
	case token.BooleanLiteral:
		p.advance()
		return ast.New(ast.BooleanLiteral, t.Lexeme, t.Pos)
	case token.Identifier:
		return p.parseIdentifierExpr()
	case token.Separator:
		switch t.Lexeme {
		case "(":
			p.advance()
			inner := p.parseExpression()
			p.expectSeparator(")")
			return inner
		case "[":
			return p.parseListLiteral()
		}
	}

	p.errorf("InvalidToken", t.Pos, t.Lexeme)
	p.advance()
	return ast.New(ast.Literal, "", t.Pos)
}

// parseIdentifierExpr parses an identifier used as an expression: a bare
// variable reference, a list access (possibly chained), a free function
// call, a "name : member(args)" colon-call, or a "name.member(args)"
// dot-call — both method-call spellings resolve to the same
// StaticMethodCall/InstanceMethodCall dispatch at evaluation time, static
// vs. instance disambiguated by the interpreter (see DESIGN.md).
func (p *Parser) parseIdentifierExpr() *ast.Node {
	nameTok := p.advance()

	switch {
	case p.isSeparator("("):
		return p.parseCallArgs(ast.FunctionCall, nameTok.Lexeme, nameTok.Pos, nil)
	case p.isSeparator(":"):
		p.advance()
		methodTok, ok := p.expectIdentifier()
		if !ok {
			return ast.New(ast.Identifier, nameTok.Lexeme, nameTok.Pos)
		}
		ctx := ast.New(ast.MethodContext, nameTok.Lexeme, nameTok.Pos)
		return p.parseCallArgs(ast.StaticMethodCall, methodTok.Lexeme, nameTok.Pos, ctx)
	case p.isSeparator("."):
		p.advance()
		methodTok, ok := p.expectIdentifier()
		if !ok {
			return ast.New(ast.Identifier, nameTok.Lexeme, nameTok.Pos)
		}
		ctx := ast.New(ast.MethodContext, nameTok.Lexeme, nameTok.Pos)
		return p.parseCallArgs(ast.InstanceMethodCall, methodTok.Lexeme, nameTok.Pos, ctx)
	default:
		return p.parseAccessSuffix(ast.New(ast.Identifier, nameTok.Lexeme, nameTok.Pos))
	}
}

func (p *Parser) parseListLiteral() *ast.Node {
	open := p.advance() // '['
	var children []*ast.Node
	if !p.isSeparator("]") {
		children = append(children, p.parseExpression())
		for p.isSeparator(",") {
			p.advance()
			children = append(children, p.parseExpression())
		}
	}
	p.expectSeparator("]")
	return ast.New(ast.ListLiteral, "", open.Pos, children...)
}
