package grammar

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
)

var (
	sourceParser = participle.MustBuild[Program](
		participle.Lexer(SmolLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)

	tirParser = participle.MustBuild[TIRProgram](
		participle.Lexer(TIRLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)
)

// ParseSource parses smol source text. Errors are participle.Error values
// carrying the offending position.
func ParseSource(filename, source string) (*Program, error) {
	return sourceParser.ParseString(filename, source)
}

// ParseTIR parses textual tiny IR.
func ParseTIR(filename, source string) (*TIRProgram, error) {
	return tirParser.ParseString(filename, source)
}

func ParseFile(path string) (*Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(path, string(source))
}
