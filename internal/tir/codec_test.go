package tir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"smol/internal/errors"
	"smol/internal/symbol"
)

const diamondText = `$t0 a b;
$entry:
  $read a
  $read b
  $arith < $t0 a b
  $branch $t0 $then0 $else0

$else0:
  $print a
  $jump $join0

$join0:
  $exit

$then0:
  $print b
  $jump $join0
`

func TestPrintLayout(t *testing.T) {
	program := mustParse(t, `b a;
$entry:
  $read a
  $const b -3
  $arith * a a b
  $print a
  $exit
`)
	expected := "a b;\n" +
		"$entry:\n" +
		"  $read a\n" +
		"  $const b -3\n" +
		"  $arith * a a b\n" +
		"  $print a\n" +
		"  $exit\n"
	assert.Equal(t, expected, Format(program))
}

func TestPrintIsCanonical(t *testing.T) {
	assert.Equal(t, diamondText, Format(mustParse(t, diamondText)))
}

func TestPrintEmptyDeclarations(t *testing.T) {
	program := NewProgram()
	program.AddBlock(Entry).Terminator = &Exit{}
	assert.Equal(t, ";\n$entry:\n  $exit\n", Format(program))
}

func TestRoundTrip(t *testing.T) {
	x, y := symbol.Intern("x"), symbol.Intern("y")
	program := NewProgram()
	program.Declare(x, y)
	entry := program.AddBlock(Entry)
	entry.Append(
		&Read{Dst: x},
		&Const{Dst: y, Value: -9223372036854775808},
		&Arith{Op: OpDiv, Dst: y, Lhs: x, Rhs: y},
		&Copy{Dst: x, Src: y},
	)
	entry.Terminator = &Branch{Cond: x, True: symbol.Intern("$l"), False: symbol.Intern("$r")}

	left := program.AddBlock(symbol.Intern("$l"))
	left.Append(&Print{Src: x})
	left.Terminator = &Exit{}
	program.AddBlock(symbol.Intern("$r")).Terminator = &Jump{Target: symbol.Intern("$l")}

	parsed, err := Parse("roundtrip.tir", Format(program))
	require.NoError(t, err)
	assert.Equal(t, program, parsed)
	assert.Equal(t, Format(program), Format(parsed))
}

func TestParseSkipsComments(t *testing.T) {
	program := mustParse(t, `// header
x; // declarations
$entry: // start
  $const x 7 // seven
  $print x
  $exit
`)
	require.Len(t, program.Blocks[Entry].Instructions, 2)
	assert.Equal(t, int64(7), program.Blocks[Entry].Instructions[0].(*Const).Value)
}

func TestParseDuplicateVariable(t *testing.T) {
	_, err := Parse("dup.tir", "x y x;\n$entry:\n  $exit\n")

	se, ok := errors.AsSyntaxError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorDuplicateVariable, se.Code)
	assert.Equal(t, 1, se.Position.Line)
	assert.Equal(t, 5, se.Position.Column)
}

func TestParseDuplicateBlock(t *testing.T) {
	_, err := Parse("dup.tir", ";\n$entry:\n  $exit\n$entry:\n  $exit\n")

	se, ok := errors.AsSyntaxError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorDuplicateBlock, se.Code)
	assert.Equal(t, 4, se.Position.Line)
	assert.Contains(t, se.Error(), "dup.tir:4:1")
}

func TestParseOutOfRangeConstant(t *testing.T) {
	_, err := Parse("big.tir", "x;\n$entry:\n  $const x 9223372036854775808\n  $exit\n")

	se, ok := errors.AsSyntaxError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorInvalidNumber, se.Code)
	assert.Equal(t, 3, se.Position.Line)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("bad.tir", "x;\n$entry:\n  $bogus x\n  $exit\n")

	se, ok := errors.AsSyntaxError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorUnexpectedToken, se.Code)
	assert.Equal(t, "bad.tir", se.Position.Filename)
	assert.Equal(t, 3, se.Position.Line)
}

func TestParseRequiresTerminator(t *testing.T) {
	_, err := Parse("open.tir", "x;\n$entry:\n  $read x\n")
	require.Error(t, err)
}

func TestParseDoesNotVerify(t *testing.T) {
	program, err := Parse("loop.tir", ";\n$entry:\n  $jump $entry\n")
	require.NoError(t, err)
	assert.Error(t, Verify(program))
}
