package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// SmolLexer tokenizes smol source programs.
var SmolLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{"Comment", `//[^\n]*`, nil},

		// Keywords come before identifiers so "$if" is never split
		{"Keyword", `\$(print|read|if)\b`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		// Integer literals are decimal and unsigned; negation is "- 0 n"
		{"Num", `[0-9]+`, nil},

		{"Assign", `:=`, nil},
		{"Op", `[-+*/<]`, nil},
		{"Brace", `[{}]`, nil},

		// Whitespace
		{"Whitespace", `[ \t\f\r\n\v]+`, nil},
	},
})

// TIRLexer tokenizes the textual tiny IR form. Identifiers may start with '$'
// so compiler generated names ($entry, $t0, $then1) cannot collide with
// source variables; instruction keywords are identifiers matched by value.
var TIRLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Ident", `\$?[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Int", `-?[0-9]+`, nil},
		{"Op", `[-+*/<]`, nil},
		{"Punct", `[:;]`, nil},
		{"Whitespace", `[ \t\f\r\n\v]+`, nil},
	},
})
