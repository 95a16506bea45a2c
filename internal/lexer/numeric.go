package lexer

import (
	"strings"

	"github.com/solarix95/neoada/internal/token"
)

// NumberSuffix is the trailing one-character type hint on a numeric literal.
type NumberSuffix byte

const (
	SuffixNone NumberSuffix = 0
	SuffixNatural NumberSuffix = 'n'
	SuffixSupernatural NumberSuffix = 'u'
	SuffixNumber NumberSuffix = 'd'
	SuffixByte NumberSuffix = 'b'
)

// scanNumber recognizes, in order: based numerals
// ("base#digits#[exponent]"), floating/decimal numerals, then a trailing
// one-character type suffix. Grounded on original_source/libneoada/numericparser.cc's
// recognition order: the suffix is stripped by the caller before the
// numeral body is parsed, never consumed by the numeral recognizer itself.
func (l *Lexer) scanNumber() token.Token {
	start := l.pos()
	var sb strings.Builder

	// base "#" based_numeral "#" [ exponent ]
	if isBasedLiteralAhead(l) {
		return l.scanBasedLiteral(start)
	}

	for !l.eof() && (isDigit(l.peekByte(0)) || l.peekByte(0) == '_') {
		sb.WriteByte(l.advance())
	}

	if !l.eof() && l.peekByte(0) == '.' && isDigit(l.peekByte(1)) {
		sb.WriteByte(l.advance())
		for !l.eof() && (isDigit(l.peekByte(0)) || l.peekByte(0) == '_') {
			sb.WriteByte(l.advance())
		}
	}

	if ok, exp := l.tryScanExponent(); ok {
		sb.WriteString(exp)
	} else if l.exponentAttempted {
		l.errorf("InvalidExponent", start, sb.String())
	}

	if suf, ok := l.tryScanSuffix(); ok {
		sb.WriteByte(suf)
	}

	return token.Token{Kind: token.Number, Lexeme: sb.String(), Pos: start}
}

// isBasedLiteralAhead reports whether the upcoming numeral looks like
// "digits#...#" rather than a plain decimal/floating numeral.
func isBasedLiteralAhead(l *Lexer) bool {
	i := 0
	for isDigit(l.peekByte(i)) {
		i++
	}
	return i > 0 && l.peekByte(i) == '#'
}

func (l *Lexer) scanBasedLiteral(start token.Position) token.Token {
	var sb strings.Builder
	for isDigit(l.peekByte(0)) {
		sb.WriteByte(l.advance())
	}
	sb.WriteByte(l.advance()) // '#'

	digits := 0
	for !l.eof() && (isHexDigit(l.peekByte(0)) || l.peekByte(0) == '_') {
		sb.WriteByte(l.advance())
		digits++
	}
	if l.eof() || l.peekByte(0) != '#' {
		l.errorf("InvalidBasedLiteral", start, sb.String())
		return token.Token{Kind: token.Unknown, Lexeme: sb.String(), Pos: start}
	}
	sb.WriteByte(l.advance()) // closing '#'
	if digits == 0 {
		l.errorf("InvalidBasedLiteral", start, sb.String())
		return token.Token{Kind: token.Unknown, Lexeme: sb.String(), Pos: start}
	}

	if ok, exp := l.tryScanExponent(); ok {
		sb.WriteString(exp)
	}
	if suf, ok := l.tryScanSuffix(); ok {
		sb.WriteByte(suf)
	}
	return token.Token{Kind: token.Number, Lexeme: sb.String(), Pos: start}
}

func (l *Lexer) tryScanExponent() (bool, string) {
	if l.eof() {
		l.exponentAttempted = false
		return false, ""
	}
	b := l.peekByte(0)
	if b != 'e' && b != 'E' {
		l.exponentAttempted = false
		return false, ""
	}
	save := l.offset
	saveLine, saveCol := l.line, l.column
	var sb strings.Builder
	sb.WriteByte(l.advance())
	if !l.eof() && (l.peekByte(0) == '+' || l.peekByte(0) == '-') {
		sb.WriteByte(l.advance())
	}
	digits := 0
	for !l.eof() && isDigit(l.peekByte(0)) {
		sb.WriteByte(l.advance())
		digits++
	}
	if digits == 0 {
		l.offset, l.line, l.column = save, saveLine, saveCol
		l.exponentAttempted = true
		return false, ""
	}
	l.exponentAttempted = false
	return true, sb.String()
}

func (l *Lexer) tryScanSuffix() (byte, bool) {
	if l.eof() {
		return 0, false
	}
	b := l.peekByte(0)
	switch b {
	case 'n', 'u', 'd', 'b':
		if isAlnum(l.peekByte(1)) {
			return 0, false // part of a longer identifier-ish trailer, not a suffix
		}
		l.advance()
		return b, true
	}
	return 0, false
}
