package tir

import (
	"fmt"
	"slices"

	"smol/internal/symbol"
)

// Tiny IR: a flat set of 64-bit integer variables and a DAG of basic blocks.
// Blocks name their successors instead of pointing at them, so the block map
// is the only owner of blocks.

// Entry is the name of the block where execution starts.
var Entry = symbol.Intern("$entry")

// Program is a whole tiny IR program.
type Program struct {
	Vars   map[symbol.ID]struct{}
	Blocks map[symbol.ID]*BasicBlock
}

// BasicBlock is a straight-line instruction sequence ending in one terminator.
type BasicBlock struct {
	Name         symbol.ID
	Instructions []Instruction
	Terminator   Terminator
}

// Op is an arithmetic operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpLt
)

var opSymbols = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpLt:  "<",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opSymbols) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opSymbols[o]
}

// ParseOp maps an operator symbol to its Op.
func ParseOp(s string) (Op, bool) {
	for op, sym := range opSymbols {
		if sym == s {
			return Op(op), true
		}
	}
	return 0, false
}

// Eval applies op with smol's arithmetic: + - * wrap around, / truncates
// toward zero and yields -1 for a zero divisor, < yields 1 or 0.
func Eval(op Op, lhs, rhs int64) int64 {
	switch op {
	case OpAdd:
		return lhs + rhs
	case OpSub:
		return lhs - rhs
	case OpMul:
		return lhs * rhs
	case OpDiv:
		if rhs == 0 {
			return -1
		}
		return lhs / rhs
	case OpLt:
		if lhs < rhs {
			return 1
		}
		return 0
	}
	panic(fmt.Sprintf("tir: unknown operator %d", int(op)))
}

// Instructions

type Instruction interface {
	GetResult() (symbol.ID, bool)
	GetOperands() []symbol.ID
	GetEffects() []Effect
	String() string
}

// Terminators end basic blocks
type Terminator interface {
	GetOperands() []symbol.ID
	GetSuccessors() []symbol.ID
	String() string
}

type Copy struct {
	Dst symbol.ID
	Src symbol.ID
}

type Const struct {
	Dst   symbol.ID
	Value int64
}

type Arith struct {
	Op  Op
	Dst symbol.ID
	Lhs symbol.ID
	Rhs symbol.ID
}

type Read struct {
	Dst symbol.ID
}

type Print struct {
	Src symbol.ID
}

type Jump struct {
	Target symbol.ID
}

type Branch struct {
	Cond  symbol.ID
	True  symbol.ID
	False symbol.ID
}

type Exit struct{}

func (c *Copy) GetResult() (symbol.ID, bool) { return c.Dst, true }
func (c *Copy) GetOperands() []symbol.ID     { return []symbol.ID{c.Src} }
func (c *Copy) String() string               { return fmt.Sprintf("$copy %s %s", c.Dst, c.Src) }

func (c *Const) GetResult() (symbol.ID, bool) { return c.Dst, true }
func (c *Const) GetOperands() []symbol.ID     { return nil }
func (c *Const) String() string               { return fmt.Sprintf("$const %s %d", c.Dst, c.Value) }

func (a *Arith) GetResult() (symbol.ID, bool) { return a.Dst, true }
func (a *Arith) GetOperands() []symbol.ID     { return []symbol.ID{a.Lhs, a.Rhs} }
func (a *Arith) String() string {
	return fmt.Sprintf("$arith %s %s %s %s", a.Op, a.Dst, a.Lhs, a.Rhs)
}

func (r *Read) GetResult() (symbol.ID, bool) { return r.Dst, true }
func (r *Read) GetOperands() []symbol.ID     { return nil }
func (r *Read) String() string               { return fmt.Sprintf("$read %s", r.Dst) }

func (p *Print) GetResult() (symbol.ID, bool) { return 0, false }
func (p *Print) GetOperands() []symbol.ID     { return []symbol.ID{p.Src} }
func (p *Print) String() string               { return fmt.Sprintf("$print %s", p.Src) }

func (j *Jump) GetOperands() []symbol.ID   { return nil }
func (j *Jump) GetSuccessors() []symbol.ID { return []symbol.ID{j.Target} }
func (j *Jump) String() string             { return fmt.Sprintf("$jump %s", j.Target) }

func (b *Branch) GetOperands() []symbol.ID   { return []symbol.ID{b.Cond} }
func (b *Branch) GetSuccessors() []symbol.ID { return []symbol.ID{b.True, b.False} }
func (b *Branch) String() string {
	return fmt.Sprintf("$branch %s %s %s", b.Cond, b.True, b.False)
}

func (e *Exit) GetOperands() []symbol.ID   { return nil }
func (e *Exit) GetSuccessors() []symbol.ID { return nil }
func (e *Exit) String() string             { return "$exit" }

// Construction helpers

// NewProgram returns an empty program with no variables and no blocks.
func NewProgram() *Program {
	return &Program{
		Vars:   make(map[symbol.ID]struct{}),
		Blocks: make(map[symbol.ID]*BasicBlock),
	}
}

// Declare adds variables to the declared set.
func (p *Program) Declare(vars ...symbol.ID) {
	for _, v := range vars {
		p.Vars[v] = struct{}{}
	}
}

// IsDeclared reports whether v is in the declared set.
func (p *Program) IsDeclared(v symbol.ID) bool {
	_, ok := p.Vars[v]
	return ok
}

// AddBlock creates an empty, unterminated block. An existing block with the
// same name is replaced.
func (p *Program) AddBlock(name symbol.ID) *BasicBlock {
	block := &BasicBlock{Name: name}
	p.Blocks[name] = block
	return block
}

// SortedVars returns the declared variables ordered by name.
func (p *Program) SortedVars() []symbol.ID {
	vars := make([]symbol.ID, 0, len(p.Vars))
	for v := range p.Vars {
		vars = append(vars, v)
	}
	slices.SortFunc(vars, symbol.Compare)
	return vars
}

// SortedBlocks returns block names with $entry first and the rest ordered by name.
func (p *Program) SortedBlocks() []symbol.ID {
	names := make([]symbol.ID, 0, len(p.Blocks))
	for name := range p.Blocks {
		if name != Entry {
			names = append(names, name)
		}
	}
	slices.SortFunc(names, symbol.Compare)
	if _, ok := p.Blocks[Entry]; ok {
		names = append([]symbol.ID{Entry}, names...)
	}
	return names
}

// Append adds instructions to the end of the block.
func (b *BasicBlock) Append(insts ...Instruction) {
	b.Instructions = append(b.Instructions, insts...)
}

// Clone returns a deep copy of the program.
func (p *Program) Clone() *Program {
	clone := NewProgram()
	for v := range p.Vars {
		clone.Vars[v] = struct{}{}
	}
	for name, block := range p.Blocks {
		nb := &BasicBlock{
			Name:         block.Name,
			Instructions: make([]Instruction, 0, len(block.Instructions)),
			Terminator:   cloneTerminator(block.Terminator),
		}
		for _, inst := range block.Instructions {
			nb.Instructions = append(nb.Instructions, cloneInstruction(inst))
		}
		clone.Blocks[name] = nb
	}
	return clone
}

func cloneInstruction(inst Instruction) Instruction {
	switch i := inst.(type) {
	case *Copy:
		c := *i
		return &c
	case *Const:
		c := *i
		return &c
	case *Arith:
		c := *i
		return &c
	case *Read:
		c := *i
		return &c
	case *Print:
		c := *i
		return &c
	}
	return inst
}

func cloneTerminator(term Terminator) Terminator {
	switch t := term.(type) {
	case *Jump:
		c := *t
		return &c
	case *Branch:
		c := *t
		return &c
	case *Exit:
		return &Exit{}
	}
	return term
}
