package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"smol/grammar"
	"smol/internal/errors"
	"smol/token"
)

var ruleNames = lexer.SymbolsByRune(grammar.SmolLexer)

// ScanTokens splits smol source into tokens, dropping whitespace and
// comments. It stops at the first character no token rule accepts and
// returns the tokens scanned so far together with a *errors.SyntaxError.
func ScanTokens(filename, source string) ([]token.Token, error) {
	lex, err := grammar.SmolLexer.Lex(filename, strings.NewReader(source))
	if err != nil {
		return nil, errors.FromParticiple(err)
	}

	var tokens []token.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return tokens, errors.FromParticiple(err)
		}
		if tok.EOF() {
			return tokens, nil
		}

		var kind token.TokenType
		switch ruleNames[tok.Type] {
		case "Whitespace", "Comment":
			continue
		case "Ident":
			kind = token.IDENT
		case "Num":
			kind = token.NUM
		case "Keyword":
			kind = token.LookupIdent(tok.Value)
		default:
			kind = token.LookupOperator(tok.Value)
		}

		tokens = append(tokens, token.Token{
			Type:    kind,
			Literal: tok.Value,
			Line:    tok.Pos.Line,
			Column:  tok.Pos.Column,
		})
	}
}
