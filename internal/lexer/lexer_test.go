package lexer

import (
	"testing"

	"github.com/solarix95/neoada/internal/token"
)

func collectKinds(src string) []token.Kind {
	l := New(src)
	var kinds []token.Kind
	for {
		tok := l.Next()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}
	return kinds
}

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []token.Kind
	}{
		{"empty", "", []token.Kind{token.EOF}},
		{"identifier", "x", []token.Kind{token.Identifier, token.EOF}},
		{"keyword", "declare", []token.Kind{token.Keyword, token.EOF}},
		{"bool literal", "true false", []token.Kind{token.BooleanLiteral, token.BooleanLiteral, token.EOF}},
		{"number", "42", []token.Kind{token.Number, token.EOF}},
		{"string", `"hi"`, []token.Kind{token.String, token.EOF}},
		{"operator", ":=", []token.Kind{token.Operator, token.EOF}},
		{"separator", ";", []token.Kind{token.Separator, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kinds := collectKinds(tt.src)
			if len(kinds) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d %v", len(kinds), kinds, len(tt.expected), tt.expected)
			}
			for i := range kinds {
				if kinds[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, kinds[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerLineComment(t *testing.T) {
	l := New("x -- comment\ny")
	first := l.Next()
	second := l.Next()
	if first.Lexeme != "x" || second.Lexeme != "y" {
		t.Fatalf("comment not skipped: %q, %q", first.Lexeme, second.Lexeme)
	}
	if second.Pos.Line != 2 {
		t.Errorf("expected y on line 2, got %d", second.Pos.Line)
	}
}

func TestLexerStringEscaping(t *testing.T) {
	l := New(`"a""b"`)
	tok := l.Next()
	if tok.Kind != token.String {
		t.Fatalf("expected String token, got %v", tok.Kind)
	}
	if tok.Lexeme != `a"b` {
		t.Errorf("got %q, want %q", tok.Lexeme, `a"b`)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	l.Next()
	if len(l.Errors()) == 0 {
		t.Fatal("expected an error for unterminated string")
	}
}

func TestLexerTwoCharOperators(t *testing.T) {
	tests := []string{":=", "**", "/=", "<>", "<=", ">=", ".."}
	for _, op := range tests {
		t.Run(op, func(t *testing.T) {
			l := New(op)
			tok := l.Next()
			if tok.Kind != token.Operator || tok.Lexeme != op {
				t.Errorf("got %v %q, want Operator %q", tok.Kind, tok.Lexeme, op)
			}
		})
	}
}

func TestLexerRangeOperatorNotTwoDots(t *testing.T) {
	l := New("1..10")
	first := l.Next()
	op := l.Next()
	last := l.Next()
	if first.Kind != token.Number || first.Lexeme != "1" {
		t.Fatalf("expected Number 1, got %v %q", first.Kind, first.Lexeme)
	}
	if op.Kind != token.Operator || op.Lexeme != ".." {
		t.Fatalf("expected Operator .., got %v %q", op.Kind, op.Lexeme)
	}
	if last.Kind != token.Number || last.Lexeme != "10" {
		t.Fatalf("expected Number 10, got %v %q", last.Kind, last.Lexeme)
	}
}

func TestLexerDotIsASeparator(t *testing.T) {
	l := New("a.append")
	first := l.Next()
	dot := l.Next()
	second := l.Next()
	if first.Kind != token.Identifier || first.Lexeme != "a" {
		t.Fatalf("expected Identifier a, got %v %q", first.Kind, first.Lexeme)
	}
	if dot.Kind != token.Separator || dot.Lexeme != "." {
		t.Fatalf("expected Separator ., got %v %q", dot.Kind, dot.Lexeme)
	}
	if second.Kind != token.Identifier || second.Lexeme != "append" {
		t.Fatalf("expected Identifier append, got %v %q", second.Kind, second.Lexeme)
	}
}

func TestLexerDotDoesNotBreakFloatOrRange(t *testing.T) {
	num := New("3.5")
	tok := num.Next()
	if tok.Kind != token.Number || tok.Lexeme != "3.5" {
		t.Fatalf("expected Number 3.5, got %v %q", tok.Kind, tok.Lexeme)
	}

	rng := New("1..10")
	first := rng.Next()
	op := rng.Next()
	if first.Lexeme != "1" || op.Kind != token.Operator || op.Lexeme != ".." {
		t.Fatalf("expected Number(1) Operator(..), got %q %v %q", first.Lexeme, op.Kind, op.Lexeme)
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := New("a b")
	peeked := l.Peek(0)
	next := l.Next()
	if peeked.Lexeme != next.Lexeme {
		t.Errorf("Peek(0) = %q, Next() = %q, want equal", peeked.Lexeme, next.Lexeme)
	}
	if l.Peek(0).Lexeme != "b" {
		t.Errorf("after consuming a, Peek(0) = %q, want b", l.Peek(0).Lexeme)
	}
}

func TestLexerInvalidCharacter(t *testing.T) {
	l := New("@")
	tok := l.Next()
	if tok.Kind != token.Unknown {
		t.Fatalf("expected Unknown token, got %v", tok.Kind)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(l.Errors()))
	}
}

func TestLexerWithLookaheadOption(t *testing.T) {
	l := New("a b c", WithLookahead(5))
	if l.Peek(3).Lexeme != "" && l.Peek(3).Kind != token.EOF {
		t.Errorf("unexpected token at depth 3: %v", l.Peek(3))
	}
}
