package errors

// Error codes for the smol toolchain. They appear in rendered diagnostics and
// in LSP diagnostics so a message can be looked up independently of its text.
//
// Error code ranges:
// E0100-E0199: Syntax errors (smol source and tiny IR text)
// E0600-E0699: Program structure errors
// E0900-E0999: Runtime errors
// W0001-W0099: Warnings

const (
	// E0100: Token that the grammar does not accept at this point
	ErrorUnexpectedToken = "E0100"

	// E0101: Integer literal that does not fit in 64 bits
	ErrorInvalidNumber = "E0101"

	// E0102: Variable declared twice in a tiny IR header
	ErrorDuplicateVariable = "E0102"

	// E0103: Two tiny IR blocks with the same name
	ErrorDuplicateBlock = "E0103"

	// E0104: Operator outside + - * / <
	ErrorUnknownOperator = "E0104"

	// E0600: Program rejected by the tiny IR verifier
	ErrorInvalidProgram = "E0600"

	// E0900: Input could not be read or output could not be written
	ErrorRuntimeIO = "E0900"

	// W0001: Variable used without ever being assigned or read
	WarningUnassignedVariable = "W0001"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnexpectedToken:
		return "Unexpected token"
	case ErrorInvalidNumber:
		return "Integer literal does not fit in a signed 64-bit integer"
	case ErrorDuplicateVariable:
		return "Variable is declared more than once"
	case ErrorDuplicateBlock:
		return "Block name is used more than once"
	case ErrorUnknownOperator:
		return "Unknown arithmetic operator"
	case ErrorInvalidProgram:
		return "Program violates a tiny IR invariant"
	case ErrorRuntimeIO:
		return "Program input or output failed"
	case WarningUnassignedVariable:
		return "Variable is used but never assigned, so it is always 0"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code != "" && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case IsWarning(code):
		return "Warning"
	case code >= "E0100" && code < "E0200":
		return "Syntax"
	case code >= "E0600" && code < "E0700":
		return "Program Structure"
	case code >= "E0900" && code < "E1000":
		return "Runtime"
	default:
		return "Unknown"
	}
}
