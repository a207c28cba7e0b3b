package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"smol/internal/errors"
)

const source = "smol"

// ConvertError turns a *errors.SyntaxError into a diagnostic. Any other
// error is not a problem in the document and is reported as !ok.
func ConvertError(err error) (protocol.Diagnostic, bool) {
	se, ok := errors.AsSyntaxError(err)
	if !ok {
		return protocol.Diagnostic{}, false
	}
	return ConvertCompilerError(se.Diagnostic()), true
}

// ConvertCompilerError maps a reporter diagnostic onto an LSP range. Lines
// and columns are 1-based on our side and 0-based on the wire.
func ConvertCompilerError(ce errors.CompilerError) protocol.Diagnostic {
	line := uint32(max(ce.Position.Line-1, 0))
	start := uint32(max(ce.Position.Column-1, 0))
	length := uint32(max(ce.Length, 1))

	severity := protocol.DiagnosticSeverityError
	if ce.Level == errors.Warning {
		severity = protocol.DiagnosticSeverityWarning
	}

	message := ce.Message
	for _, s := range ce.Suggestions {
		message += "\nhelp: " + s.Message
	}
	if len(ce.Notes) > 0 {
		message += "\nnote: " + strings.Join(ce.Notes, "\nnote: ")
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: start},
			End:   protocol.Position{Line: line, Character: start + length},
		},
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: ce.Code},
		Source:   ptrString(source),
		Message:  message,
	}
}

func ptrString(s string) *string {
	return &s
}
