package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"smol/internal/ast"
)

// SyntaxError is a located error in smol source or tiny IR text.
type SyntaxError struct {
	Code     string
	Message  string
	Position ast.Position
	Length   int
}

func (e *SyntaxError) Error() string {
	if e.Position.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Position.Filename, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Position.Filename, e.Position.Line, e.Position.Column, e.Message)
}

// Diagnostic converts the error into a renderable CompilerError.
func (e *SyntaxError) Diagnostic() CompilerError {
	diag := CompilerError{
		Level:    Error,
		Code:     e.Code,
		Message:  e.Message,
		Position: e.Position,
		Length:   e.Length,
	}
	switch e.Code {
	case ErrorInvalidNumber:
		diag.Notes = append(diag.Notes, "integers are signed 64-bit values")
	case ErrorUnknownOperator:
		diag.Suggestions = append(diag.Suggestions, Suggestion{Message: "use one of + - * / <"})
	}
	return diag
}

// NewSyntaxError builds a SyntaxError at pos covering length characters.
func NewSyntaxError(code string, pos ast.Position, length int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
		Length:   length,
	}
}

// PositionOf converts a participle lexer position.
func PositionOf(pos lexer.Position) ast.Position {
	return ast.Position{
		Filename: pos.Filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}

// FromParticiple turns a participle parse or lex error into a *SyntaxError.
// Other errors are returned unchanged.
func FromParticiple(err error) error {
	if err == nil {
		return nil
	}

	var pe participle.Error
	if !stderrors.As(err, &pe) {
		return err
	}

	length := 1
	var unexpected *participle.UnexpectedTokenError
	if stderrors.As(err, &unexpected) && len(unexpected.Unexpected.Value) > 0 {
		length = len(unexpected.Unexpected.Value)
	}

	return &SyntaxError{
		Code:     ErrorUnexpectedToken,
		Message:  pe.Message(),
		Position: PositionOf(pe.Position()),
		Length:   length,
	}
}

// AsSyntaxError reports whether err wraps a *SyntaxError and returns it.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}
