package lower

import (
	"fmt"

	"smol/internal/ast"
	"smol/internal/symbol"
	"smol/internal/tir"
)

// Builder converts a smol AST into tiny IR
type Builder struct {
	program      *tir.Program
	currentBlock *tir.BasicBlock
	tempCounter  int
	blockCounter int
}

func NewBuilder() *Builder {
	return &Builder{program: tir.NewProgram()}
}

// Lower translates program into a fresh tiny IR program. Source variables are
// declared under their own names; literal and intermediate values live in
// temporaries $t0, $t1, ... . Each $if becomes a branch to $thenN and $elseN
// that both jump to $joinN.
func Lower(program *ast.Program) (*tir.Program, error) {
	return NewBuilder().Build(program)
}

func (b *Builder) Build(program *ast.Program) (*tir.Program, error) {
	b.currentBlock = b.program.AddBlock(tir.Entry)
	if err := b.lowerStatements(program.Statements); err != nil {
		return nil, err
	}
	b.currentBlock.Terminator = &tir.Exit{}
	return b.program, nil
}

func (b *Builder) lowerStatements(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := b.lowerStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) lowerStatement(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		return b.lowerInto(b.variable(s.Target.Value), s.Value)

	case *ast.PrintStmt:
		src, err := b.lowerExpr(s.Value)
		if err != nil {
			return err
		}
		b.emit(&tir.Print{Src: src})

	case *ast.ReadStmt:
		b.emit(&tir.Read{Dst: b.variable(s.Target.Value)})

	case *ast.IfStmt:
		return b.lowerIf(s)

	default:
		return fmt.Errorf("lower: unsupported statement %T", stmt)
	}
	return nil
}

func (b *Builder) lowerIf(s *ast.IfStmt) error {
	guard, err := b.lowerExpr(s.Guard)
	if err != nil {
		return err
	}

	n := b.blockCounter
	b.blockCounter++
	thenBlock := b.program.AddBlock(symbol.Intern(fmt.Sprintf("$then%d", n)))
	elseBlock := b.program.AddBlock(symbol.Intern(fmt.Sprintf("$else%d", n)))
	joinBlock := b.program.AddBlock(symbol.Intern(fmt.Sprintf("$join%d", n)))

	b.currentBlock.Terminator = &tir.Branch{Cond: guard, True: thenBlock.Name, False: elseBlock.Name}

	b.currentBlock = thenBlock
	if err := b.lowerStatements(s.Then); err != nil {
		return err
	}
	b.currentBlock.Terminator = &tir.Jump{Target: joinBlock.Name}

	b.currentBlock = elseBlock
	if err := b.lowerStatements(s.Else); err != nil {
		return err
	}
	b.currentBlock.Terminator = &tir.Jump{Target: joinBlock.Name}

	b.currentBlock = joinBlock
	return nil
}

// lowerInto stores the value of expr into dst without an intermediate copy.
func (b *Builder) lowerInto(dst symbol.ID, expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.NumberLit:
		b.emit(&tir.Const{Dst: dst, Value: e.Value})
	case *ast.Ident:
		b.emit(&tir.Copy{Dst: dst, Src: b.variable(e.Value)})
	case *ast.BinaryExpr:
		op, ok := tir.ParseOp(e.Op)
		if !ok {
			return fmt.Errorf("lower: unknown operator %q at %d:%d", e.Op, e.Pos.Line, e.Pos.Column)
		}
		lhs, err := b.lowerExpr(e.Lhs)
		if err != nil {
			return err
		}
		rhs, err := b.lowerExpr(e.Rhs)
		if err != nil {
			return err
		}
		b.emit(&tir.Arith{Op: op, Dst: dst, Lhs: lhs, Rhs: rhs})
	default:
		return fmt.Errorf("lower: unsupported expression %T", expr)
	}
	return nil
}

// lowerExpr returns the variable holding the value of expr. Identifiers are
// used directly; everything else is evaluated into a new temporary.
func (b *Builder) lowerExpr(expr ast.Expr) (symbol.ID, error) {
	if ident, ok := expr.(*ast.Ident); ok {
		return b.variable(ident.Value), nil
	}
	temp := b.newTemp()
	if err := b.lowerInto(temp, expr); err != nil {
		return 0, err
	}
	return temp, nil
}

func (b *Builder) variable(name string) symbol.ID {
	id := symbol.Intern(name)
	b.program.Declare(id)
	return id
}

func (b *Builder) newTemp() symbol.ID {
	temp := b.variable(fmt.Sprintf("$t%d", b.tempCounter))
	b.tempCounter++
	return temp
}

func (b *Builder) emit(inst tir.Instruction) {
	b.currentBlock.Append(inst)
}
