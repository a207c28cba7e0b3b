package errors

import (
	"fmt"
	"strings"

	"smol/internal/ast"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics
type DiagnosticBuilder struct {
	err CompilerError
}

func NewError(code, message string, pos ast.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{err: CompilerError{Level: Error, Code: code, Message: message, Position: pos, Length: 1}}
}

func NewWarning(code, message string, pos ast.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{err: CompilerError{Level: Warning, Code: code, Message: message, Position: pos, Length: 1}}
}

func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

// UnassignedVariable warns about a variable that is only ever used. Such a
// variable keeps its initial value 0; a close match among the assigned names
// is offered as a likely typo.
func UnassignedVariable(name string, pos ast.Position, assigned []string) CompilerError {
	builder := NewWarning(WarningUnassignedVariable,
		fmt.Sprintf("variable '%s' is never assigned", name), pos).
		WithLength(len(name))

	similar := findSimilarNames(name, assigned)
	switch len(similar) {
	case 0:
		builder = builder.WithNote("unassigned variables always hold 0")
	case 1:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	default:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}
	return builder.Build()
}

// findSimilarNames returns the candidates within a small edit distance of name.
func findSimilarNames(name string, candidates []string) []string {
	var similar []string
	limit := len(name)/3 + 1
	for _, candidate := range candidates {
		if candidate == name {
			continue
		}
		if levenshteinDistance(name, candidate) <= limit {
			similar = append(similar, candidate)
		}
	}
	return similar
}

func levenshteinDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
