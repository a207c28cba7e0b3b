package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"smol/internal/ast"
	"smol/internal/errors"
	"smol/internal/parser"
	"smol/internal/tir"
)

func lowerSource(t *testing.T, source string) *tir.Program {
	t.Helper()
	program, err := parser.ParseSource("test.smol", source)
	require.NoError(t, err)
	lowered, err := Lower(program)
	require.NoError(t, err)
	require.NoError(t, tir.Verify(lowered))
	return lowered
}

func TestLowerEmptyProgram(t *testing.T) {
	assert.Equal(t, ";\n$entry:\n  $exit\n", tir.Format(lowerSource(t, "")))
}

func TestLowerAssignment(t *testing.T) {
	expected := "$t0 $t1 x;\n" +
		"$entry:\n" +
		"  $const $t0 40\n" +
		"  $const $t1 2\n" +
		"  $arith + x $t0 $t1\n" +
		"  $print x\n" +
		"  $exit\n"
	assert.Equal(t, expected, tir.Format(lowerSource(t, ":= x + 40 2 $print x")))
}

func TestLowerDirectStores(t *testing.T) {
	expected := "x y;\n" +
		"$entry:\n" +
		"  $const x 7\n" +
		"  $copy y x\n" +
		"  $read x\n" +
		"  $print y\n" +
		"  $exit\n"
	assert.Equal(t, expected, tir.Format(lowerSource(t, ":= x 7 := y x $read x $print y")))
}

func TestLowerNestedExpression(t *testing.T) {
	expected := "$t0 $t1 $t2 $t3 a;\n" +
		"$entry:\n" +
		"  $const $t1 2\n" +
		"  $arith * $t0 a $t1\n" +
		"  $const $t3 1\n" +
		"  $arith - $t2 a $t3\n" +
		"  $arith / a $t0 $t2\n" +
		"  $print a\n" +
		"  $exit\n"
	assert.Equal(t, expected, tir.Format(lowerSource(t, ":= a / * a 2 - a 1 $print a")))
}

func TestLowerIf(t *testing.T) {
	expected := "$t0 a b;\n" +
		"$entry:\n" +
		"  $read a\n" +
		"  $read b\n" +
		"  $arith < $t0 a b\n" +
		"  $branch $t0 $then0 $else0\n" +
		"\n" +
		"$else0:\n" +
		"  $print a\n" +
		"  $jump $join0\n" +
		"\n" +
		"$join0:\n" +
		"  $exit\n" +
		"\n" +
		"$then0:\n" +
		"  $print b\n" +
		"  $jump $join0\n"
	assert.Equal(t, expected, tir.Format(lowerSource(t, "$read a $read b $if < a b { $print b } { $print a }")))
}

func TestLowerNestedIfNumbersBlocksInOrder(t *testing.T) {
	program := lowerSource(t, "$read c $if c { $if c { } { $print c } } { } $print c")

	var names []string
	for _, name := range program.SortedBlocks() {
		names = append(names, name.String())
	}
	assert.Equal(t, []string{"$entry", "$else0", "$else1", "$join0", "$join1", "$then0", "$then1"}, names)

	join0 := program.Blocks[program.SortedBlocks()[3]]
	assert.Equal(t, "$print c", join0.Instructions[0].String())
	assert.IsType(t, &tir.Exit{}, join0.Terminator)

	join1 := program.Blocks[program.SortedBlocks()[4]]
	assert.Equal(t, "$jump $join0", join1.Terminator.String())
}

func TestLowerRejectsUnknownOperator(t *testing.T) {
	program := &ast.Program{Statements: []ast.Stmt{
		&ast.PrintStmt{Value: &ast.BinaryExpr{Op: "%", Lhs: &ast.NumberLit{Value: 1}, Rhs: &ast.NumberLit{Value: 2}}},
	}}
	_, err := Lower(program)
	assert.ErrorContains(t, err, "unknown operator")
}

func TestCheckReportsUnassignedVariables(t *testing.T) {
	program, err := parser.ParseSource("test.smol", ":= total 1\n$print + totl totl\n$if flag { $print total } { }")
	require.NoError(t, err)

	diagnostics := Check(program)
	require.Len(t, diagnostics, 2)

	assert.Equal(t, errors.WarningUnassignedVariable, diagnostics[0].Code)
	assert.Contains(t, diagnostics[0].Message, "'totl'")
	assert.Equal(t, 2, diagnostics[0].Position.Line)
	assert.Equal(t, 10, diagnostics[0].Position.Column)
	require.Len(t, diagnostics[0].Suggestions, 1)
	assert.Contains(t, diagnostics[0].Suggestions[0].Message, "'total'")

	assert.Contains(t, diagnostics[1].Message, "'flag'")
}

func TestCheckAcceptsReadVariables(t *testing.T) {
	program, err := parser.ParseSource("test.smol", "$if x { $read x } { } $print x")
	require.NoError(t, err)
	assert.Empty(t, Check(program))
}
