package vm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/tliron/commonlog"
	"smol/internal/symbol"
	"smol/internal/tir"
)

var log = commonlog.GetLogger("smol.vm")

// RuntimeIOError reports that a $read found no usable input or a $print
// could not be written. Err is io.ErrUnexpectedEOF at end of input, the
// strconv error for a malformed token, or the writer's error.
type RuntimeIOError struct {
	Op  string
	Err error
}

func (e *RuntimeIOError) Error() string {
	return fmt.Sprintf("runtime I/O error in %s: %v", e.Op, e.Err)
}

func (e *RuntimeIOError) Unwrap() error {
	return e.Err
}

// Machine executes one tiny IR program. Every declared variable starts at 0.
type Machine struct {
	program *tir.Program
	input   *bufio.Scanner
	output  io.Writer
	vars    map[symbol.ID]int64
	steps   int
}

// New prepares a machine reading whitespace separated integers from in and
// writing one integer per line to out. The program is assumed verified.
func New(program *tir.Program, in io.Reader, out io.Writer) *Machine {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	vars := make(map[symbol.ID]int64, len(program.Vars))
	for v := range program.Vars {
		vars[v] = 0
	}

	return &Machine{
		program: program,
		input:   scanner,
		output:  out,
		vars:    vars,
	}
}

// Execute verifies program and runs it to completion.
func Execute(program *tir.Program, in io.Reader, out io.Writer) error {
	if err := tir.Verify(program); err != nil {
		return err
	}
	return New(program, in, out).Run()
}

// Run executes from $entry until $exit or the first I/O error.
func (m *Machine) Run() error {
	current := tir.Entry
	for {
		block, ok := m.program.Blocks[current]
		if !ok {
			return fmt.Errorf("vm: control reached unknown block %s", current)
		}
		m.steps++

		for _, inst := range block.Instructions {
			if err := m.exec(inst); err != nil {
				return err
			}
		}

		switch term := block.Terminator.(type) {
		case *tir.Jump:
			current = term.Target
		case *tir.Branch:
			if m.vars[term.Cond] != 0 {
				current = term.True
			} else {
				current = term.False
			}
		case *tir.Exit:
			log.Debugf("exit after %d blocks", m.steps)
			return nil
		default:
			return fmt.Errorf("vm: block %s has no terminator", current)
		}
	}
}

func (m *Machine) exec(inst tir.Instruction) error {
	switch i := inst.(type) {
	case *tir.Copy:
		m.vars[i.Dst] = m.vars[i.Src]
	case *tir.Const:
		m.vars[i.Dst] = i.Value
	case *tir.Arith:
		m.vars[i.Dst] = tir.Eval(i.Op, m.vars[i.Lhs], m.vars[i.Rhs])
	case *tir.Read:
		value, err := m.read()
		if err != nil {
			return err
		}
		m.vars[i.Dst] = value
	case *tir.Print:
		if _, err := fmt.Fprintf(m.output, "%d\n", m.vars[i.Src]); err != nil {
			return &RuntimeIOError{Op: "$print", Err: err}
		}
	default:
		return fmt.Errorf("vm: unsupported instruction %T", inst)
	}
	return nil
}

func (m *Machine) read() (int64, error) {
	if !m.input.Scan() {
		if err := m.input.Err(); err != nil {
			return 0, &RuntimeIOError{Op: "$read", Err: err}
		}
		return 0, &RuntimeIOError{Op: "$read", Err: io.ErrUnexpectedEOF}
	}
	value, err := strconv.ParseInt(m.input.Text(), 10, 64)
	if err != nil {
		return 0, &RuntimeIOError{Op: "$read", Err: err}
	}
	return value, nil
}

// Steps reports how many blocks have been entered so far.
func (m *Machine) Steps() int {
	return m.steps
}

// Value returns the current value of a variable.
func (m *Machine) Value(v symbol.ID) int64 {
	return m.vars[v]
}
