package ast

import (
	"fmt"
	"strings"
)

// String renders the program back as smol source.
func (p *Program) String() string {
	var b strings.Builder
	for i, stmt := range p.Statements {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(stmt.String())
	}
	return b.String()
}

func (i *Ident) String() string {
	return i.Value
}

func (a *AssignStmt) String() string {
	return fmt.Sprintf(":= %s %s", a.Target.Value, a.Value.String())
}

func (p *PrintStmt) String() string {
	return "$print " + p.Value.String()
}

func (r *ReadStmt) String() string {
	return "$read " + r.Target.Value
}

func (i *IfStmt) String() string {
	var b strings.Builder
	b.WriteString("$if ")
	b.WriteString(i.Guard.String())
	b.WriteString(" ")
	writeArm(&b, i.Then)
	b.WriteString(" ")
	writeArm(&b, i.Else)
	return b.String()
}

func writeArm(b *strings.Builder, stmts []Stmt) {
	if len(stmts) == 0 {
		b.WriteString("{ }")
		return
	}
	b.WriteString("{\n")
	for _, stmt := range stmts {
		b.WriteString("  " + strings.ReplaceAll(stmt.String(), "\n", "\n  ") + "\n")
	}
	b.WriteString("}")
}

func (n *NumberLit) String() string {
	if n.Text != "" {
		return n.Text
	}
	return fmt.Sprintf("%d", n.Value)
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("%s %s %s", b.Op, b.Lhs.String(), b.Rhs.String())
}

// Dump renders the program as an indented s-expression, one statement per line.
func Dump(p *Program) string {
	var b strings.Builder
	b.WriteString("(program")
	for _, stmt := range p.Statements {
		b.WriteString("\n  ")
		b.WriteString(dumpStmt(stmt, 1))
	}
	b.WriteString(")\n")
	return b.String()
}

func dumpStmt(stmt Stmt, depth int) string {
	switch s := stmt.(type) {
	case *AssignStmt:
		return fmt.Sprintf("(assign %s %s)", s.Target.Value, dumpExpr(s.Value))
	case *PrintStmt:
		return fmt.Sprintf("(print %s)", dumpExpr(s.Value))
	case *ReadStmt:
		return fmt.Sprintf("(read %s)", s.Target.Value)
	case *IfStmt:
		var b strings.Builder
		b.WriteString("(if ")
		b.WriteString(dumpExpr(s.Guard))
		dumpArm(&b, "then", s.Then, depth+1)
		dumpArm(&b, "else", s.Else, depth+1)
		b.WriteString(")")
		return b.String()
	default:
		return fmt.Sprintf("(unknown %T)", stmt)
	}
}

func dumpArm(b *strings.Builder, label string, stmts []Stmt, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString("\n" + indent + "(" + label)
	for _, stmt := range stmts {
		b.WriteString("\n" + indent + "  ")
		b.WriteString(dumpStmt(stmt, depth+1))
	}
	b.WriteString(")")
}

func dumpExpr(expr Expr) string {
	switch e := expr.(type) {
	case *Ident:
		return e.Value
	case *NumberLit:
		return fmt.Sprintf("%d", e.Value)
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.Op, dumpExpr(e.Lhs), dumpExpr(e.Rhs))
	default:
		return fmt.Sprintf("(unknown %T)", expr)
	}
}
