package lower

import (
	"slices"

	"smol/internal/ast"
	"smol/internal/errors"
)

// Check reports variables that are used but never assigned or read anywhere
// in the program, once per name at its first use. Such code is legal; the
// variable reads as 0.
func Check(program *ast.Program) []errors.CompilerError {
	assigned := make(map[string]bool)
	ast.Walk(program.Statements, func(stmt ast.Stmt) {
		switch s := stmt.(type) {
		case *ast.AssignStmt:
			assigned[s.Target.Value] = true
		case *ast.ReadStmt:
			assigned[s.Target.Value] = true
		}
	})

	names := make([]string, 0, len(assigned))
	for name := range assigned {
		names = append(names, name)
	}
	slices.Sort(names)

	var diagnostics []errors.CompilerError
	reported := make(map[string]bool)
	ast.Walk(program.Statements, func(stmt ast.Stmt) {
		for _, ident := range usedIdents(stmt) {
			if assigned[ident.Value] || reported[ident.Value] {
				continue
			}
			reported[ident.Value] = true
			diagnostics = append(diagnostics, errors.UnassignedVariable(ident.Value, ident.Pos, names))
		}
	})
	return diagnostics
}

// usedIdents lists the identifiers a statement reads, left to right. The arms
// of an $if are not included; Walk visits them separately.
func usedIdents(stmt ast.Stmt) []*ast.Ident {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		return exprIdents(s.Value, nil)
	case *ast.PrintStmt:
		return exprIdents(s.Value, nil)
	case *ast.IfStmt:
		return exprIdents(s.Guard, nil)
	}
	return nil
}

func exprIdents(expr ast.Expr, acc []*ast.Ident) []*ast.Ident {
	switch e := expr.(type) {
	case *ast.Ident:
		acc = append(acc, e)
	case *ast.BinaryExpr:
		acc = exprIdents(e.Lhs, acc)
		acc = exprIdents(e.Rhs, acc)
	}
	return acc
}
