package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Textual tiny IR:
//
//	program ::= id* ';' block*
//	block   ::= id ':' insn* term

type TIRProgram struct {
	Vars   []*TIRName  `@@* ";"`
	Blocks []*TIRBlock `@@*`
}

type TIRName struct {
	Pos  lexer.Position
	Name string `@Ident`
}

type TIRBlock struct {
	Pos          lexer.Position
	Name         string            `@Ident ":"`
	Instructions []*TIRInstruction `@@*`
	Terminator   *TIRTerminator    `@@`
}

type TIRInstruction struct {
	Pos   lexer.Position
	Copy  *TIRCopy  `  @@`
	Const *TIRConst `| @@`
	Arith *TIRArith `| @@`
	Read  *string   `| "$read" @Ident`
	Print *string   `| "$print" @Ident`
}

type TIRCopy struct {
	Dst string `"$copy" @Ident`
	Src string `@Ident`
}

type TIRConst struct {
	Dst   string `"$const" @Ident`
	Value string `@Int`
}

type TIRArith struct {
	Op  string `"$arith" @Op`
	Dst string `@Ident`
	Lhs string `@Ident`
	Rhs string `@Ident`
}

type TIRTerminator struct {
	Pos    lexer.Position
	Jump   *string    `  "$jump" @Ident`
	Branch *TIRBranch `| @@`
	Exit   bool       `| @"$exit"`
}

type TIRBranch struct {
	Cond  string `"$branch" @Ident`
	True  string `@Ident`
	False string `@Ident`
}
