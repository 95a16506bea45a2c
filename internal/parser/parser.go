// Package parser implements the NeoAda recursive-descent parser described
// in spec.md §4.2, producing the generic ast.Node tree of §3/§4.3.
package parser

import (
	"fmt"
	"strings"

	"github.com/solarix95/neoada/internal/ast"
	"github.com/solarix95/neoada/internal/lexer"
	"github.com/solarix95/neoada/internal/token"
)

// Error is a static parse error, always carrying the offending token's
// position, per spec.md §4.2.
type Error struct {
	Code string
	Pos  token.Position
	Info string
}

func (e *Error) Error() string {
	if e.Info != "" {
		return fmt.Sprintf("%s ('%s') at line %d, column %d", e.Code, e.Info, e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("%s at line %d, column %d", e.Code, e.Pos.Line, e.Pos.Column)
}

func (e *Error) ErrorCode() string        { return e.Code }
func (e *Error) Position() token.Position { return e.Pos }

// Parser turns a token stream into an ast.Node tree, accumulating errors
// rather than aborting at the first one (matching the teacher's
// internal/parser error-accumulation idiom).
type Parser struct {
	lex  *lexer.Lexer
	errs []error
}

// New creates a Parser reading tokens from l.
func New(l *lexer.Lexer) *Parser {
	return &Parser{lex: l}
}

// Errors returns every accumulated lexer and parser error.
func (p *Parser) Errors() []error {
	all := append([]error(nil), p.lex.Errors()...)
	return append(all, p.errs...)
}

func (p *Parser) cur() token.Token     { return p.lex.Peek(0) }
func (p *Parser) advance() token.Token { return p.lex.Next() }

func (p *Parser) errorf(code string, pos token.Position, info string) {
	p.errs = append(p.errs, &Error{Code: code, Pos: pos, Info: info})
}

func lowered(t token.Token) string { return strings.ToLower(t.Lexeme) }

func (p *Parser) isKeyword(word string) bool {
	t := p.cur()
	return t.Kind == token.Keyword && lowered(t) == word
}

func (p *Parser) isOperator(op string) bool {
	t := p.cur()
	return t.Kind == token.Operator && t.Lexeme == op
}

func (p *Parser) isSeparator(sep string) bool {
	t := p.cur()
	return t.Kind == token.Separator && t.Lexeme == sep
}

func (p *Parser) expectKeyword(word string) (token.Token, bool) {
	if p.isKeyword(word) {
		return p.advance(), true
	}
	t := p.cur()
	p.errorf("KeywordExpected", t.Pos, word)
	return t, false
}

func (p *Parser) expectSeparator(sep string) (token.Token, bool) {
	if p.isSeparator(sep) {
		return p.advance(), true
	}
	t := p.cur()
	p.errorf("InvalidToken", t.Pos, sep)
	return t, false
}

func (p *Parser) expectIdentifier() (token.Token, bool) {
	t := p.cur()
	if t.Kind == token.Identifier {
		return p.advance(), true
	}
	p.errorf("IdentifierExpected", t.Pos, t.Lexeme)
	return t, false
}

// ParseProgram parses the whole token stream into a Program node.
func (p *Parser) ParseProgram() *ast.Node {
	pos := p.cur().Pos
	prog := &ast.Node{Kind: ast.Program, Line: pos.Line, Column: pos.Column}
	for p.cur().Kind != token.EOF {
		stmt := p.parseStatement()
		if stmt == nil {
			// Avoid an infinite loop on an unrecoverable token: skip it.
			if p.cur().Kind != token.EOF {
				p.advance()
			}
			continue
		}
		prog.Children = append(prog.Children, stmt)
	}
	return prog
}

func (p *Parser) parseStatement() *ast.Node {
	t := p.cur()

	if t.Kind == token.Keyword {
		switch lowered(t) {
		case "declare":
			return p.finishWithSemicolon(p.parseDeclaration())
		case "if":
			return p.finishWithSemicolon(p.parseIfStatement())
		case "while":
			return p.finishWithSemicolon(p.parseWhileLoop())
		case "for":
			return p.finishWithSemicolon(p.parseForLoop())
		case "procedure":
			return p.finishWithSemicolon(p.parseProcedure())
		case "function":
			return p.finishWithSemicolon(p.parseFunction())
		case "with":
			return p.finishWithSemicolon(p.parseWithStatement())
		case "return":
			return p.finishWithSemicolon(p.parseReturn())
		case "break":
			return p.finishWithSemicolon(p.parseBreakContinue(ast.Break))
		case "continue":
			return p.finishWithSemicolon(p.parseBreakContinue(ast.Continue))
		}
	}

	if t.Kind == token.Identifier {
		return p.finishWithSemicolon(p.parseIdentifierStatement())
	}

	p.errorf("InvalidStatement", t.Pos, t.Lexeme)
	return nil
}

func (p *Parser) finishWithSemicolon(stmt *ast.Node) *ast.Node {
	if stmt == nil {
		return nil
	}
	p.expectSeparator(";")
	return stmt
}

func (p *Parser) parseDeclaration() *ast.Node {
	kw := p.advance() // "declare"
	kind := ast.Declaration
	if p.cur().Kind == token.Identifier && lowered(p.cur()) == token.ContextualVolatile {
		p.advance()
		kind = ast.VolatileDeclaration
	}
	nameTok, ok := p.expectIdentifier()
	if !ok {
		return nil
	}
	p.expectSeparator(":")
	typeTok, ok := p.expectIdentifier()
	if !ok {
		return nil
	}
	typeNode := ast.New(ast.Identifier, typeTok.Lexeme, typeTok.Pos)

	node := ast.New(kind, nameTok.Lexeme, kw.Pos, typeNode)
	if p.isOperator(":=") {
		p.advance()
		init := p.parseExpression()
		node.Children = append(node.Children, init)
	}
	return node
}

// parseIdentifierStatement parses the two identifier-led statement forms:
// "call ';'" (a bare call expression) and "lvalue := expression ';'".
func (p *Parser) parseIdentifierStatement() *ast.Node {
	pos := p.cur().Pos
	expr := p.parseIdentifierExpr()

	switch expr.Kind {
	case ast.FunctionCall, ast.StaticMethodCall, ast.InstanceMethodCall:
		return expr
	case ast.Identifier, ast.AccessOperator:
		if _, ok := p.expectOperator(":="); !ok {
			return nil
		}
		rhs := p.parseExpression()
		return ast.New(ast.Assignment, "", pos, expr, rhs)
	}

	p.errorf("InvalidStatement", pos, "")
	return nil
}

func (p *Parser) expectOperator(op string) (token.Token, bool) {
	if p.isOperator(op) {
		return p.advance(), true
	}
	t := p.cur()
	p.errorf("InvalidToken", t.Pos, op)
	return t, false
}

func (p *Parser) parseAccessSuffix(target *ast.Node) *ast.Node {
	for p.isSeparator("[") {
		p.advance()
		idx := p.parseExpression()
		p.expectSeparator("]")
		target = &ast.Node{
			Kind:     ast.AccessOperator,
			Line:     target.Line,
			Column:   target.Column,
			Children: []*ast.Node{target, idx},
		}
	}
	return target
}

func (p *Parser) parseCallArgs(kind ast.Kind, name string, pos token.Position, ctx *ast.Node) *ast.Node {
	p.advance() // '('
	var children []*ast.Node
	if ctx != nil {
		children = append(children, ctx)
	}
	if !p.isSeparator(")") {
		children = append(children, p.parseExpression())
		for p.isSeparator(",") {
			p.advance()
			children = append(children, p.parseExpression())
		}
	}
	p.expectSeparator(")")
	return ast.New(kind, name, pos, children...)
}

func (p *Parser) parseBlock(terminators ...string) *ast.Node {
	pos := p.cur().Pos
	block := &ast.Node{Kind: ast.Block, Line: pos.Line, Column: pos.Column}
	for !p.atBlockEnd(terminators) {
		stmt := p.parseStatement()
		if stmt == nil {
			if p.cur().Kind == token.EOF {
				p.errorf("UnexpectedEof", p.cur().Pos, "")
				break
			}
			p.advance()
			continue
		}
		block.Children = append(block.Children, stmt)
	}
	return block
}

func (p *Parser) atBlockEnd(terminators []string) bool {
	if p.cur().Kind == token.EOF {
		return true
	}
	if p.cur().Kind != token.Keyword {
		return false
	}
	low := lowered(p.cur())
	for _, term := range terminators {
		if low == term {
			return true
		}
	}
	return false
}

func (p *Parser) parseIfStatement() *ast.Node {
	kw := p.advance() // "if"
	cond := p.parseExpression()
	p.expectKeyword("then")
	thenBlock := p.parseBlock("elsif", "else", "end")

	children := []*ast.Node{cond, thenBlock}
	for p.isKeyword("elsif") {
		ePos := p.advance().Pos
		eCond := p.parseExpression()
		p.expectKeyword("then")
		eBlock := p.parseBlock("elsif", "else", "end")
		children = append(children, ast.New(ast.Elsif, "", ePos, eCond, eBlock))
	}
	if p.isKeyword("else") {
		ePos := p.advance().Pos
		eBlock := p.parseBlock("end")
		children = append(children, ast.New(ast.Else, "", ePos, eBlock))
	}
	p.expectKeyword("end")
	p.expectKeyword("if")
	return ast.New(ast.IfStatement, "", kw.Pos, children...)
}

func (p *Parser) parseWhileLoop() *ast.Node {
	kw := p.advance() // "while"
	cond := p.parseExpression()
	p.expectKeyword("loop")
	body := p.parseBlock("end")
	p.expectKeyword("end")
	p.expectKeyword("loop")
	return ast.New(ast.WhileLoop, "", kw.Pos, cond, body)
}

func (p *Parser) parseForLoop() *ast.Node {
	kw := p.advance() // "for"
	nameTok, _ := p.expectIdentifier()
	p.expectKeyword("in")
	fromExpr := p.parseExpression()
	p.expectOperator("..")
	toExpr := p.parseExpression()
	rangeNode := ast.New(ast.Range, "", nameTok.Pos, fromExpr, toExpr)
	p.expectKeyword("loop")
	body := p.parseBlock("end")
	p.expectKeyword("end")
	p.expectKeyword("loop")
	return ast.New(ast.ForLoop, nameTok.Lexeme, kw.Pos, rangeNode, body)
}

func (p *Parser) parseWithStatement() *ast.Node {
	kw := p.advance() // "with"
	t := p.cur()
	if t.Kind != token.String {
		p.errorf("InvalidToken", t.Pos, "string literal")
		return nil
	}
	p.advance()
	return ast.New(ast.WithAddon, t.Lexeme, kw.Pos)
}

func (p *Parser) parseReturn() *ast.Node {
	kw := p.advance() // "return"
	if p.isSeparator(";") {
		return ast.New(ast.Return, "", kw.Pos)
	}
	expr := p.parseExpression()
	return ast.New(ast.Return, "", kw.Pos, expr)
}

func (p *Parser) parseBreakContinue(kind ast.Kind) *ast.Node {
	kw := p.advance() // "break" or "continue"
	if p.cur().Kind == token.Identifier && lowered(p.cur()) == token.ContextualWhen {
		p.advance()
		cond := p.parseExpression()
		return ast.New(kind, "", kw.Pos, cond)
	}
	return ast.New(kind, "", kw.Pos)
}

// parseFormals parses "formals := [ formal { ';' formal } ]".
func (p *Parser) parseFormals() *ast.Node {
	pos := p.cur().Pos
	params := &ast.Node{Kind: ast.FormalParameters, Line: pos.Line, Column: pos.Column}
	if p.isSeparator(")") {
		return params
	}
	params.Children = append(params.Children, p.parseFormal())
	for p.isSeparator(";") {
		p.advance()
		params.Children = append(params.Children, p.parseFormal())
	}
	return params
}

func (p *Parser) parseFormal() *ast.Node {
	nameTok, _ := p.expectIdentifier()
	p.expectSeparator(":")
	var mode *ast.Node
	if p.isKeyword("in") {
		mPos := p.advance().Pos
		mode = ast.New(ast.FormalParameterMode, "in", mPos)
	} else if p.isKeyword("out") {
		mPos := p.advance().Pos
		mode = ast.New(ast.FormalParameterMode, "out", mPos)
	}
	typeTok, _ := p.expectIdentifier()
	typeNode := ast.New(ast.Identifier, typeTok.Lexeme, typeTok.Pos)
	children := []*ast.Node{typeNode}
	if mode != nil {
		children = append(children, mode)
	}
	return ast.New(ast.FormalParameter, nameTok.Lexeme, nameTok.Pos, children...)
}

// parseMethodContext parses the optional "IDENT ':'" method-context prefix
// shared by procedure_def/function_def ("[ IDENT ':' ] IDENT").
func (p *Parser) parseMethodContext() (*ast.Node, string, token.Token) {
	first, _ := p.expectIdentifier()
	if p.isSeparator(":") {
		p.advance()
		nameTok, _ := p.expectIdentifier()
		return ast.New(ast.MethodContext, first.Lexeme, first.Pos), nameTok.Lexeme, nameTok
	}
	return nil, first.Lexeme, first
}

func (p *Parser) parseProcedure() *ast.Node {
	kw := p.advance() // "procedure"
	ctx, name, _ := p.parseMethodContext()
	p.expectSeparator("(")
	formals := p.parseFormals()
	p.expectSeparator(")")
	p.expectKeyword("is")
	if p.isKeyword("begin") {
		p.advance()
	}
	body := p.parseBlock("end")
	p.expectKeyword("end")
	p.expectIdentifier() // closing name, not re-validated

	var children []*ast.Node
	if ctx != nil {
		children = append(children, ctx)
	}
	children = append(children, formals, body)
	return ast.New(ast.Procedure, name, kw.Pos, children...)
}

func (p *Parser) parseFunction() *ast.Node {
	kw := p.advance() // "function"
	ctx, name, _ := p.parseMethodContext()
	p.expectSeparator("(")
	formals := p.parseFormals()
	p.expectSeparator(")")
	p.expectKeyword("return")
	retTok, _ := p.expectIdentifier()
	retType := ast.New(ast.Identifier, retTok.Lexeme, retTok.Pos)
	p.expectKeyword("is")
	if p.isKeyword("begin") {
		p.advance()
	}
	body := p.parseBlock("end")
	p.expectKeyword("end")
	p.expectIdentifier()

	var children []*ast.Node
	if ctx != nil {
		children = append(children, ctx)
	}
	children = append(children, formals, retType, body)
	return ast.New(ast.Function, name, kw.Pos, children...)
}
