package riscv

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"smol/internal/symbol"
	"smol/internal/tir"
)

func parse(t *testing.T, text string) *tir.Program {
	t.Helper()
	program, err := tir.Parse("test.tir", text)
	require.NoError(t, err)
	require.NoError(t, tir.Verify(program))
	return program
}

func lines(asm string) []string {
	var out []string
	for _, line := range strings.Split(asm, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func TestGenerateEmptyProgram(t *testing.T) {
	asm := Generate(parse(t, ";\n$entry:\n  $exit\n"))

	assert.Equal(t, []string{
		".text",
		".globl main",
		".type main, @function",
		"main:",
		"addi sp, sp, -16",
		"sd ra, 8(sp)",
		"sd s0, 0(sp)",
		"addi s0, sp, 16",
		".LBB0:\t\t# $entry",
		"j .Lreturn",
		".Lreturn:",
		"li a0, 0",
		"ld ra, 8(sp)",
		"ld s0, 0(sp)",
		"addi sp, sp, 16",
		"ret",
		".size main, .-main",
	}, lines(asm))
}

func TestGenerateArithmetic(t *testing.T) {
	asm := Generate(parse(t, "a b c;\n$entry:\n  $read a\n  $const b 7\n  $arith / c a b\n  $print c\n  $exit\n"))

	// three slots round up to 32 bytes
	assert.Contains(t, asm, "\taddi s0, sp, 16\n\taddi sp, sp, -32\n")
	assert.Contains(t, asm, "\tli a0, 0\n\taddi sp, s0, -16\n")
	assert.Contains(t, asm, "\tsd zero, -24(s0)\n\tsd zero, -32(s0)\n\tsd zero, -40(s0)\n")
	assert.Contains(t, asm, "\tcall _smol_read_int\n\tsd a0, -24(s0)\n")
	assert.Contains(t, asm, "\tli t0, 7\n\tsd t0, -32(s0)\n")
	assert.Contains(t, asm, "\tld t0, -24(s0)\n\tld t1, -32(s0)\n\tdiv t0, t0, t1\n\tsd t0, -40(s0)\n")
	assert.Contains(t, asm, "\tld a0, -40(s0)\n\tcall _smol_print_int\n")
}

func TestGenerateBranches(t *testing.T) {
	asm := Generate(parse(t, "c;\n$entry:\n  $read c\n  $branch c $yes $no\n$no:\n  $jump $yes\n$yes:\n  $print c\n  $exit\n"))

	// labels follow sorted block order: $entry, $no, $yes
	assert.Contains(t, asm, ".LBB0:\t\t# $entry\n")
	assert.Contains(t, asm, ".LBB1:\t\t# $no\n")
	assert.Contains(t, asm, ".LBB2:\t\t# $yes\n")
	assert.Contains(t, asm, "\tld t0, -24(s0)\n\tbnez t0, .LBB2\n\tj .LBB1\n")
	assert.Contains(t, asm, ".LBB1:\t\t# $no\n\tj .LBB2\n")
}

func TestGenerateComparison(t *testing.T) {
	asm := Generate(parse(t, "a b c;\n$entry:\n  $arith < c a b\n  $exit\n"))
	assert.Contains(t, asm, "\tslt t0, t0, t1\n")
}

func TestGenerateLargeFrame(t *testing.T) {
	program := tir.NewProgram()
	var vars []symbol.ID
	for i := 0; i < 300; i++ {
		vars = append(vars, symbol.Intern("v"+strings.Repeat("x", i/26)+string(rune('a'+i%26))))
	}
	program.Declare(vars...)
	last := program.SortedVars()[len(vars)-1]
	entry := program.AddBlock(tir.Entry)
	entry.Append(&tir.Const{Dst: last, Value: 1})
	entry.Terminator = &tir.Exit{}
	require.NoError(t, tir.Verify(program))

	asm := Generate(program)
	assert.Contains(t, asm, "\tli t0, -2400\n\tadd sp, sp, t0\n")
	assert.Contains(t, asm, "\tli t2, -2416\n\tadd t2, s0, t2\n\tsd t0, 0(t2)\n")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestGeneratorReportsWriteErrors(t *testing.T) {
	err := NewGenerator(failingWriter{}).Generate(parse(t, ";\n$entry:\n  $exit\n"))
	assert.EqualError(t, err, "disk full")
}
