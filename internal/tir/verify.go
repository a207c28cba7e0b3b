package tir

import (
	"fmt"
	"strings"

	"smol/internal/symbol"
)

// VerificationKind identifies which well-formedness rule a program broke.
type VerificationKind int

const (
	MissingEntry VerificationKind = iota
	BlockNameMismatch
	InvalidInstruction
	UndeclaredVariable
	MissingTerminator
	UnknownTarget
	CycleDetected
)

func (k VerificationKind) String() string {
	switch k {
	case MissingEntry:
		return "missing entry block"
	case BlockNameMismatch:
		return "block name mismatch"
	case InvalidInstruction:
		return "invalid instruction"
	case UndeclaredVariable:
		return "undeclared variable"
	case MissingTerminator:
		return "missing terminator"
	case UnknownTarget:
		return "unknown jump target"
	case CycleDetected:
		return "control-flow cycle"
	}
	return fmt.Sprintf("VerificationKind(%d)", int(k))
}

// VerificationError describes the first violation found in a program.
// Index is the instruction index inside Block, or -1 for the terminator and
// for violations that do not belong to a single instruction.
type VerificationError struct {
	Kind    VerificationKind
	Block   symbol.ID
	Index   int
	Message string
	Cycle   []symbol.ID
}

func (e *VerificationError) Error() string {
	switch {
	case e.Block.IsZero():
		return fmt.Sprintf("tir verification failed: %s: %s", e.Kind, e.Message)
	case e.Index >= 0:
		return fmt.Sprintf("tir verification failed: %s in block %s, instruction %d: %s",
			e.Kind, e.Block, e.Index, e.Message)
	default:
		return fmt.Sprintf("tir verification failed: %s in block %s: %s", e.Kind, e.Block, e.Message)
	}
}

// Verify checks the well-formedness invariants and returns the first
// violation as a *VerificationError. Blocks are visited in SortedBlocks order
// and instructions in index order, so the reported violation is stable.
// Unreachable blocks are allowed.
func Verify(program *Program) error {
	if _, ok := program.Blocks[Entry]; !ok {
		return &VerificationError{
			Kind:    MissingEntry,
			Index:   -1,
			Message: fmt.Sprintf("program has no %s block", Entry),
		}
	}

	for _, name := range program.SortedBlocks() {
		if err := verifyBlock(program, name); err != nil {
			return err
		}
	}

	if cycle := findCycle(program); cycle != nil {
		names := make([]string, len(cycle))
		for i, name := range cycle {
			names[i] = name.String()
		}
		return &VerificationError{
			Kind:    CycleDetected,
			Block:   cycle[len(cycle)-2],
			Index:   -1,
			Message: "back edge closes cycle " + strings.Join(names, " -> "),
			Cycle:   cycle,
		}
	}

	return nil
}

func verifyBlock(program *Program, name symbol.ID) error {
	block := program.Blocks[name]
	if block == nil || block.Name != name {
		return &VerificationError{
			Kind:    BlockNameMismatch,
			Block:   name,
			Index:   -1,
			Message: "block is stored under a different name",
		}
	}

	for i, inst := range block.Instructions {
		if inst == nil {
			return &VerificationError{Kind: InvalidInstruction, Block: name, Index: i, Message: "nil instruction"}
		}
		vars := inst.GetOperands()
		if dst, ok := inst.GetResult(); ok {
			vars = append([]symbol.ID{dst}, vars...)
		}
		for _, v := range vars {
			if !program.IsDeclared(v) {
				return &VerificationError{
					Kind:    UndeclaredVariable,
					Block:   name,
					Index:   i,
					Message: fmt.Sprintf("%q is not declared (in %s)", v.String(), inst),
				}
			}
		}
	}

	if block.Terminator == nil {
		return &VerificationError{
			Kind:    MissingTerminator,
			Block:   name,
			Index:   -1,
			Message: "block does not end in $jump, $branch or $exit",
		}
	}
	for _, v := range block.Terminator.GetOperands() {
		if !program.IsDeclared(v) {
			return &VerificationError{
				Kind:    UndeclaredVariable,
				Block:   name,
				Index:   -1,
				Message: fmt.Sprintf("%q is not declared (in %s)", v.String(), block.Terminator),
			}
		}
	}
	for _, target := range block.Terminator.GetSuccessors() {
		if _, ok := program.Blocks[target]; !ok {
			return &VerificationError{
				Kind:    UnknownTarget,
				Block:   name,
				Index:   -1,
				Message: fmt.Sprintf("target %q does not exist", target.String()),
			}
		}
	}
	return nil
}

// findCycle runs an iterative depth-first search from $entry and then from
// every other block in sorted order. It returns the block path of the first
// back edge found, starting and ending with the same block, or nil.
func findCycle(program *Program) []symbol.ID {
	const (
		unvisited = iota
		onStack
		done
	)
	type frame struct {
		name symbol.ID
		next int
	}

	state := make(map[symbol.ID]int, len(program.Blocks))
	for _, root := range program.SortedBlocks() {
		if state[root] != unvisited {
			continue
		}

		stack := []frame{{name: root}}
		state[root] = onStack
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succs := successors(program, top.name)
			if top.next == len(succs) {
				state[top.name] = done
				stack = stack[:len(stack)-1]
				continue
			}

			succ := succs[top.next]
			top.next++
			switch state[succ] {
			case onStack:
				var cycle []symbol.ID
				for i := range stack {
					if stack[i].name == succ {
						for _, f := range stack[i:] {
							cycle = append(cycle, f.name)
						}
						break
					}
				}
				return append(cycle, succ)
			case unvisited:
				state[succ] = onStack
				stack = append(stack, frame{name: succ})
			}
		}
	}
	return nil
}

// successors returns the targets of a block's terminator, or nil for a
// missing block or terminator.
func successors(program *Program, name symbol.ID) []symbol.ID {
	block := program.Blocks[name]
	if block == nil || block.Terminator == nil {
		return nil
	}
	return block.Terminator.GetSuccessors()
}
