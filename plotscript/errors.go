package plotscript

import "fmt"

// SemanticError is returned for every failure during evaluation.
type SemanticError struct {
	msg string
}

func (e *SemanticError) Error() string {
	return e.msg
}

func semanticError(format string, args ...any) error {
	return &SemanticError{msg: fmt.Sprintf("Error: "+format, args...)}
}

// ErrInterrupted is returned by any evaluation started while the
// interrupt token is set.
var ErrInterrupted error = &SemanticError{msg: "Error: interpreter kernel interrupted"}

// ParseError reports input that is not exactly one well-formed expression.
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.msg
}

func parseErrorf(format string, args ...any) error {
	return &ParseError{msg: fmt.Sprintf(format, args...)}
}
