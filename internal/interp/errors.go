package interp

import "fmt"

// RuntimeError is a NeoAda runtime failure, carrying the same
// code/position/extra-info shape as the lexer/parser's static errors, per
// spec.md §7. messagePhrase mirrors
// original_source/libneoada/exception.cc's messageByCode table.
type RuntimeError struct {
	Code   string
	Line   int
	Column int
	Info   string
}

func (e *RuntimeError) Error() string {
	phrase := messagePhrase(e.Code)
	if e.Info != "" {
		return fmt.Sprintf("Error: %s ('%s') at line %d, column %d", phrase, e.Info, e.Line, e.Column)
	}
	return fmt.Sprintf("Error: %s at line %d, column %d", phrase, e.Line, e.Column)
}

// messagePhrase maps a runtime error code to its human-readable phrase,
// grounded on original_source/libneoada/exception.cc::messageByCode.
func messagePhrase(code string) string {
	if p, ok := errorPhrases[code]; ok {
		return p
	}
	return code
}

var errorPhrases = map[string]string{
	"UnknownSymbol":        "unknown symbol",
	"DeclarationError":     "declaration failed",
	"AssignmentError":      "assignment type mismatch",
	"IllegalComparison":    "illegal comparison",
	"OperatorTypeError":    "operator not applicable to operand types",
	"InvalidAssignment":    "invalid assignment target",
	"InvalidCondition":     "condition is not boolean-coercible",
	"InvalidJump":          "break/continue outside a loop",
	"InvalidContainerType": "value is not a container",
	"InvalidAccessValue":   "invalid container access",
	"InvalidNumericValue":  "invalid numeric value",
}

// withPos stamps line/column onto a *RuntimeError produced without a
// position (most Variant-level helpers don't know their call site).
func withPos(err error, line, column int) error {
	if re, ok := err.(*RuntimeError); ok && re.Line == 0 && re.Column == 0 {
		re.Line, re.Column = line, column
		return re
	}
	return err
}
