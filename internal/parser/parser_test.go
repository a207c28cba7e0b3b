package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"smol/internal/ast"
	"smol/internal/errors"
)

func TestParseEmptyProgram(t *testing.T) {
	program, err := ParseSource("empty.smol", "  // nothing here\n")
	require.NoError(t, err)
	assert.Empty(t, program.Statements)
	assert.Equal(t, "empty.smol", program.Pos.Filename)
}

func TestParseStatements(t *testing.T) {
	source := `:= x + 40 2
$read y
$print x`

	program, err := ParseSource("test.smol", source)
	require.NoError(t, err)
	require.Len(t, program.Statements, 3)

	assign, ok := program.Statements[0].(*ast.AssignStmt)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Target.Value)
	assert.Equal(t, 1, assign.Target.Pos.Line)
	assert.Equal(t, 4, assign.Target.Pos.Column)

	sum, ok := assign.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", sum.Op)
	assert.Equal(t, int64(40), sum.Lhs.(*ast.NumberLit).Value)
	assert.Equal(t, int64(2), sum.Rhs.(*ast.NumberLit).Value)

	read, ok := program.Statements[1].(*ast.ReadStmt)
	require.True(t, ok)
	assert.Equal(t, "y", read.Target.Value)
	assert.Equal(t, 2, read.Pos.Line)

	print, ok := program.Statements[2].(*ast.PrintStmt)
	require.True(t, ok)
	assert.Equal(t, "x", print.Value.(*ast.Ident).Value)
}

func TestParseNestedPrefixExpressions(t *testing.T) {
	program, err := ParseSource("test.smol", ":= r / * a 3 - b 1")
	require.NoError(t, err)

	assign := program.Statements[0].(*ast.AssignStmt)
	assert.Equal(t, "/ * a 3 - b 1", assign.Value.String())
}

func TestParseIf(t *testing.T) {
	source := `$read a
$read b
$if < a b {
  $print b
} {
  $print a
  $if 0 { } { }
}`

	program, err := ParseSource("max.smol", source)
	require.NoError(t, err)
	require.Len(t, program.Statements, 3)

	ifStmt, ok := program.Statements[2].(*ast.IfStmt)
	require.True(t, ok)
	assert.Equal(t, "< a b", ifStmt.Guard.String())
	assert.Len(t, ifStmt.Then, 1)
	require.Len(t, ifStmt.Else, 2)

	inner := ifStmt.Else[1].(*ast.IfStmt)
	assert.Empty(t, inner.Then)
	assert.Empty(t, inner.Else)
}

func TestParseRoundTripsThroughString(t *testing.T) {
	source := ":= x + 40 2\n$if < x 50 {\n  $print x\n} { }"

	program, err := ParseSource("test.smol", source)
	require.NoError(t, err)
	assert.Equal(t, source, program.String())

	again, err := ParseSource("again.smol", program.String())
	require.NoError(t, err)
	assert.Equal(t, program.String(), again.String())
}

func TestParseKeywordNeedsBoundary(t *testing.T) {
	_, err := ParseSource("test.smol", "$printx")
	assert.Error(t, err)
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		line   int
	}{
		{"missing operand", ":= x + 1", 1},
		{"missing else arm", "$if 1 { $print 1 }", 1},
		{"assign to literal", "$print 1\n:= 3 4", 2},
		{"unknown character", "$print 1\n$print %", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource("bad.smol", tt.source)
			se, ok := errors.AsSyntaxError(err)
			require.True(t, ok, "expected a syntax error, got %v", err)
			assert.Equal(t, errors.ErrorUnexpectedToken, se.Code)
			assert.Equal(t, tt.line, se.Position.Line)
			assert.Equal(t, "bad.smol", se.Position.Filename)
		})
	}
}

func TestParseOutOfRangeLiteral(t *testing.T) {
	_, err := ParseSource("big.smol", "$print 9223372036854775807\n$print 9223372036854775808")

	se, ok := errors.AsSyntaxError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorInvalidNumber, se.Code)
	assert.Equal(t, 2, se.Position.Line)
	assert.Equal(t, 8, se.Position.Column)
	assert.Equal(t, 19, se.Length)
}
