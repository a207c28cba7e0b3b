// Package riscv emits RV64 GNU assembly for a tiny IR program.
//
// Every variable lives in an 8-byte stack slot below the frame pointer; each
// instruction loads its operands into t0/t1 and stores the result back. I/O
// goes through two runtime functions linked in from outside:
//
//	int64_t _smol_read_int(void);
//	void    _smol_print_int(int64_t);
package riscv

import (
	"fmt"
	"io"
	"strings"

	"github.com/tliron/commonlog"
	"smol/internal/symbol"
	"smol/internal/tir"
)

var log = commonlog.GetLogger("smol.riscv")

const (
	ReadFunction  = "_smol_read_int"
	PrintFunction = "_smol_print_int"
)

// Generator writes assembly to w
type Generator struct {
	w      io.Writer
	err    error
	slots  map[symbol.ID]int
	labels map[symbol.ID]string
	frame  int
}

func NewGenerator(w io.Writer) *Generator {
	return &Generator{w: w}
}

// Generate returns the assembly for program as a string.
func Generate(program *tir.Program) string {
	var b strings.Builder
	// strings.Builder never fails to write
	_ = NewGenerator(&b).Generate(program)
	return b.String()
}

// Generate emits a complete `main` for program. Blocks appear in
// SortedBlocks order, so $entry falls through from the prologue.
func (g *Generator) Generate(program *tir.Program) error {
	g.layout(program)
	log.Debugf("generating riscv64 assembly: %d slots, %d blocks", len(g.slots), len(g.labels))

	g.emit("\t.text")
	g.emit("\t.globl main")
	g.emit("\t.type main, @function")
	g.emit("main:")

	// Prologue: ra and s0 sit directly below the caller's sp, slots below them.
	g.emit("\taddi sp, sp, -16")
	g.emit("\tsd ra, 8(sp)")
	g.emit("\tsd s0, 0(sp)")
	g.emit("\taddi s0, sp, 16")
	g.adjustSP(-g.frame)
	for _, v := range program.SortedVars() {
		g.store("zero", v)
	}

	for _, name := range program.SortedBlocks() {
		block := program.Blocks[name]
		g.emit("%s:\t\t# %s", g.labels[name], name)
		for _, inst := range block.Instructions {
			g.instruction(inst)
		}
		g.terminator(block.Terminator)
	}

	// Epilogue
	g.emit(".Lreturn:")
	g.emit("\tli a0, 0")
	if g.frame > 0 {
		g.emit("\taddi sp, s0, -16")
	}
	g.emit("\tld ra, 8(sp)")
	g.emit("\tld s0, 0(sp)")
	g.emit("\taddi sp, sp, 16")
	g.emit("\tret")
	g.emit("\t.size main, .-main")

	return g.err
}

func (g *Generator) layout(program *tir.Program) {
	g.slots = make(map[symbol.ID]int, len(program.Vars))
	for i, v := range program.SortedVars() {
		g.slots[v] = -24 - 8*i
	}
	g.labels = make(map[symbol.ID]string, len(program.Blocks))
	for i, name := range program.SortedBlocks() {
		g.labels[name] = fmt.Sprintf(".LBB%d", i)
	}

	// slot area, kept 16-byte aligned
	g.frame = 8 * len(program.Vars)
	if g.frame%16 != 0 {
		g.frame += 8
	}
}

func (g *Generator) adjustSP(delta int) {
	switch {
	case delta == 0:
	case delta >= -2048:
		g.emit("\taddi sp, sp, %d", delta)
	default:
		g.emit("\tli t0, %d", delta)
		g.emit("\tadd sp, sp, t0")
	}
}

func (g *Generator) instruction(inst tir.Instruction) {
	g.emit("\t# %s", inst)
	switch i := inst.(type) {
	case *tir.Copy:
		g.load("t0", i.Src)
		g.store("t0", i.Dst)
	case *tir.Const:
		g.emit("\tli t0, %d", i.Value)
		g.store("t0", i.Dst)
	case *tir.Arith:
		g.load("t0", i.Lhs)
		g.load("t1", i.Rhs)
		g.emit("\t%s t0, t0, t1", mnemonic(i.Op))
		g.store("t0", i.Dst)
	case *tir.Read:
		g.emit("\tcall %s", ReadFunction)
		g.store("a0", i.Dst)
	case *tir.Print:
		g.load("a0", i.Src)
		g.emit("\tcall %s", PrintFunction)
	}
}

func (g *Generator) terminator(term tir.Terminator) {
	switch t := term.(type) {
	case *tir.Jump:
		g.emit("\tj %s", g.labels[t.Target])
	case *tir.Branch:
		g.load("t0", t.Cond)
		g.emit("\tbnez t0, %s", g.labels[t.True])
		g.emit("\tj %s", g.labels[t.False])
	default:
		g.emit("\tj .Lreturn")
	}
}

// mnemonic maps an operator to its RV64M instruction. RISC-V division already
// yields -1 for a zero divisor and wraps MinInt64 / -1, as smol requires.
func mnemonic(op tir.Op) string {
	switch op {
	case tir.OpAdd:
		return "add"
	case tir.OpSub:
		return "sub"
	case tir.OpMul:
		return "mul"
	case tir.OpDiv:
		return "div"
	default:
		return "slt"
	}
}

func (g *Generator) load(reg string, v symbol.ID) {
	g.access("ld", reg, v)
}

func (g *Generator) store(reg string, v symbol.ID) {
	g.access("sd", reg, v)
}

// access emits a slot load or store. Offsets outside the 12-bit immediate
// range go through t2.
func (g *Generator) access(op, reg string, v symbol.ID) {
	offset := g.slots[v]
	if offset >= -2048 {
		g.emit("\t%s %s, %d(s0)", op, reg, offset)
		return
	}
	g.emit("\tli t2, %d", offset)
	g.emit("\tadd t2, s0, t2")
	g.emit("\t%s %s, 0(t2)", op, reg)
}

func (g *Generator) emit(format string, args ...interface{}) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, format+"\n", args...)
}
