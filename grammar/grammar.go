package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Smol source grammar. Expressions are written in prefix form, so the
// grammar is LL(1):
//
//	:= x + 40 2
//	$if < a b { $print b } { $print a }

type Program struct {
	Statements []*Statement `@@*`
}

type Statement struct {
	Pos    lexer.Position
	Assign *AssignStmt `  @@`
	Print  *PrintStmt  `| @@`
	Read   *ReadStmt   `| @@`
	If     *IfStmt     `| @@`
}

type AssignStmt struct {
	Pos    lexer.Position
	Target *Name `":=" @@`
	Value  *Expr `@@`
}

type PrintStmt struct {
	Pos   lexer.Position
	Value *Expr `"$print" @@`
}

type ReadStmt struct {
	Pos    lexer.Position
	Target *Name `"$read" @@`
}

type IfStmt struct {
	Pos   lexer.Position
	Guard *Expr        `"$if" @@`
	Then  []*Statement `"{" @@* "}"`
	Else  []*Statement `"{" @@* "}"`
}

type Name struct {
	Pos   lexer.Position
	Value string `@Ident`
}

type Expr struct {
	Pos    lexer.Position
	Binary *BinaryExpr `  @@`
	Number *string     `| @Num`
	Ident  *string     `| @Ident`
}

type BinaryExpr struct {
	Pos lexer.Position
	Op  string `@Op`
	Lhs *Expr  `@@`
	Rhs *Expr  `@@`
}
