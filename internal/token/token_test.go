package token

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{Unknown, "Unknown"},
		{Identifier, "Identifier"},
		{Keyword, "Keyword"},
		{Number, "Number"},
		{String, "String"},
		{BooleanLiteral, "BooleanLiteral"},
		{Operator, "Operator"},
		{Separator, "Separator"},
		{EOF, "EOF"},
		{Kind(999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Column: 7}
	if got, want := p.String(), "3:7"; got != want {
		t.Errorf("String() = %v, want %v", got, want)
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: Identifier, Lexeme: "x", Pos: Position{Line: 1, Column: 1}}
	if got, want := tok.String(), `Identifier("x")@1:1`; got != want {
		t.Errorf("String() = %v, want %v", got, want)
	}
}

func TestKeywordsSet(t *testing.T) {
	mustBeKeyword := []string{"declare", "if", "then", "else", "elsif", "end",
		"while", "for", "loop", "break", "continue", "procedure", "function",
		"return", "is", "begin", "not", "and", "or", "mod", "rem", "xor",
		"in", "out", "true", "false", "null", "with", "range"}
	for _, kw := range mustBeKeyword {
		if !Keywords[kw] {
			t.Errorf("expected %q to be a keyword", kw)
		}
	}

	mustNotBeKeyword := []string{"volatile", "when", "foo", ""}
	for _, kw := range mustNotBeKeyword {
		if Keywords[kw] {
			t.Errorf("expected %q to not be a fixed keyword", kw)
		}
	}
}
