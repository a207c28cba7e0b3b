// Package token SPDX-License-Identifier: Apache-2.0
package token

import "fmt"

type TokenType string

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT = "id"  // x, total, max_value
	NUM   = "num" // 0, 42

	// Operators
	ASSIGN   = ":="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	LT       = "<"

	// Delimiters
	LBRACE = "{"
	RBRACE = "}"

	// Keywords
	PRINT = "$print"
	READ  = "$read"
	IF    = "$if"
)

var keywords = map[string]TokenType{
	"$print": PRINT,
	"$read":  READ,
	"$if":    IF,
}

var operators = map[string]TokenType{
	":=": ASSIGN,
	"+":  PLUS,
	"-":  MINUS,
	"*":  ASTERISK,
	"/":  SLASH,
	"<":  LT,
	"{":  LBRACE,
	"}":  RBRACE,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// LookupOperator maps punctuation to its token type, or ILLEGAL.
func LookupOperator(text string) TokenType {
	if tok, ok := operators[text]; ok {
		return tok
	}
	return ILLEGAL
}

// String renders the token the way `smolc -o tokens` lists it.
func (t Token) String() string {
	return fmt.Sprintf("kind: '%s', part of input: '%s'", t.Type, t.Literal)
}
