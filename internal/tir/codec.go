package tir

import (
	"strconv"

	"smol/grammar"
	"smol/internal/errors"
	"smol/internal/symbol"
)

// Parse reads the textual tiny IR form. The result is not verified; callers
// run Verify before executing or optimizing it.
func Parse(filename, text string) (*Program, error) {
	tree, err := grammar.ParseTIR(filename, text)
	if err != nil {
		return nil, errors.FromParticiple(err)
	}

	program := NewProgram()
	for _, v := range tree.Vars {
		id := symbol.Intern(v.Name)
		if program.IsDeclared(id) {
			return nil, errors.NewSyntaxError(errors.ErrorDuplicateVariable, errors.PositionOf(v.Pos), len(v.Name),
				"variable '%s' is declared more than once", v.Name)
		}
		program.Declare(id)
	}

	for _, b := range tree.Blocks {
		name := symbol.Intern(b.Name)
		if _, exists := program.Blocks[name]; exists {
			return nil, errors.NewSyntaxError(errors.ErrorDuplicateBlock, errors.PositionOf(b.Pos), len(b.Name),
				"block '%s' is defined more than once", b.Name)
		}

		block := program.AddBlock(name)
		for _, insn := range b.Instructions {
			inst, err := convertInstruction(insn)
			if err != nil {
				return nil, err
			}
			block.Append(inst)
		}
		block.Terminator = convertTerminator(b.Terminator)
	}

	return program, nil
}

func convertInstruction(insn *grammar.TIRInstruction) (Instruction, error) {
	switch {
	case insn.Copy != nil:
		return &Copy{Dst: symbol.Intern(insn.Copy.Dst), Src: symbol.Intern(insn.Copy.Src)}, nil
	case insn.Const != nil:
		value, err := strconv.ParseInt(insn.Const.Value, 10, 64)
		if err != nil {
			return nil, errors.NewSyntaxError(errors.ErrorInvalidNumber, errors.PositionOf(insn.Pos), len(insn.Const.Value),
				"integer literal %s is out of range", insn.Const.Value)
		}
		return &Const{Dst: symbol.Intern(insn.Const.Dst), Value: value}, nil
	case insn.Arith != nil:
		op, ok := ParseOp(insn.Arith.Op)
		if !ok {
			return nil, errors.NewSyntaxError(errors.ErrorUnknownOperator, errors.PositionOf(insn.Pos), len(insn.Arith.Op),
				"unknown operator '%s'", insn.Arith.Op)
		}
		return &Arith{
			Op:  op,
			Dst: symbol.Intern(insn.Arith.Dst),
			Lhs: symbol.Intern(insn.Arith.Lhs),
			Rhs: symbol.Intern(insn.Arith.Rhs),
		}, nil
	case insn.Read != nil:
		return &Read{Dst: symbol.Intern(*insn.Read)}, nil
	default:
		return &Print{Src: symbol.Intern(*insn.Print)}, nil
	}
}

func convertTerminator(term *grammar.TIRTerminator) Terminator {
	switch {
	case term.Jump != nil:
		return &Jump{Target: symbol.Intern(*term.Jump)}
	case term.Branch != nil:
		return &Branch{
			Cond:  symbol.Intern(term.Branch.Cond),
			True:  symbol.Intern(term.Branch.True),
			False: symbol.Intern(term.Branch.False),
		}
	default:
		return &Exit{}
	}
}
