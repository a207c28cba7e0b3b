package tir

import (
	"fmt"
	"strings"
)

// Printer renders a program in the textual tiny IR form accepted by Parse.
type Printer struct {
	indent int
	output strings.Builder
}

func NewPrinter() *Printer {
	return &Printer{}
}

// Format returns the textual form of program. Variables are listed in sorted
// order, $entry comes first and the other blocks follow by name.
func Format(program *Program) string {
	p := NewPrinter()
	p.printProgram(program)
	return p.output.String()
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) printProgram(program *Program) {
	vars := program.SortedVars()
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.String()
	}
	p.writeLine("%s;", strings.Join(names, " "))

	for i, name := range program.SortedBlocks() {
		if i > 0 {
			p.output.WriteString("\n")
		}
		p.printBlock(program.Blocks[name])
	}
}

func (p *Printer) printBlock(block *BasicBlock) {
	p.writeLine("%s:", block.Name)
	p.indent++
	for _, inst := range block.Instructions {
		p.writeLine("%s", inst.String())
	}
	if block.Terminator != nil {
		p.writeLine("%s", block.Terminator.String())
	} else {
		p.writeLine("// missing terminator")
	}
	p.indent--
}
