package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"smol/grammar"
)

func TestParseSourceProgram(t *testing.T) {
	program, err := grammar.ParseSource("max.smol", `// max of two inputs
$read a
$read b
$if < a b { $print b } { $print a }
:= total + a b`)
	require.NoError(t, err)
	require.Len(t, program.Statements, 4)

	assert.Equal(t, "a", program.Statements[0].Read.Target.Value)

	ifStmt := program.Statements[2].If
	require.NotNil(t, ifStmt)
	assert.Equal(t, "<", ifStmt.Guard.Binary.Op)
	assert.Equal(t, "a", *ifStmt.Guard.Binary.Lhs.Ident)
	require.Len(t, ifStmt.Then, 1)
	assert.Equal(t, "b", *ifStmt.Then[0].Print.Value.Ident)
	require.Len(t, ifStmt.Else, 1)

	assign := program.Statements[3].Assign
	require.NotNil(t, assign)
	assert.Equal(t, "total", assign.Target.Value)
	assert.Equal(t, 5, assign.Pos.Line)
}

func TestParseSourceNumbers(t *testing.T) {
	program, err := grammar.ParseSource("n.smol", "$print 0042")
	require.NoError(t, err)
	assert.Equal(t, "0042", *program.Statements[0].Print.Value.Number)
}

func TestParseSourceRejectsTrailingInput(t *testing.T) {
	_, err := grammar.ParseSource("bad.smol", "$print 1 }")
	assert.Error(t, err)
}

func TestParseTIRProgram(t *testing.T) {
	program, err := grammar.ParseTIR("p.tir", `x $t0; // vars
$entry:
  $const $t0 -3
  $arith / x $t0 $t0
  $copy x $t0
  $read x
  $print x
  $branch x $a $b
$a:
  $jump $b
$b:
  $exit
`)
	require.NoError(t, err)
	require.Len(t, program.Vars, 2)
	assert.Equal(t, "$t0", program.Vars[1].Name)
	require.Len(t, program.Blocks, 3)

	entry := program.Blocks[0]
	assert.Equal(t, "$entry", entry.Name)
	require.Len(t, entry.Instructions, 5)
	assert.Equal(t, "-3", entry.Instructions[0].Const.Value)
	assert.Equal(t, "/", entry.Instructions[1].Arith.Op)
	assert.Equal(t, "$t0", entry.Instructions[2].Copy.Src)
	assert.Equal(t, "x", *entry.Instructions[3].Read)
	assert.Equal(t, "x", *entry.Instructions[4].Print)
	assert.Equal(t, "$a", entry.Terminator.Branch.True)
	assert.Equal(t, 3, entry.Instructions[0].Pos.Line)

	assert.Equal(t, "$b", *program.Blocks[1].Terminator.Jump)
	assert.True(t, program.Blocks[2].Terminator.Exit)
}

func TestParseTIRRequiresHeader(t *testing.T) {
	_, err := grammar.ParseTIR("p.tir", "$entry:\n  $exit\n")
	assert.Error(t, err)
}
