package parser

import (
	"fmt"
	"os"
	"strconv"

	"smol/grammar"
	"smol/internal/ast"
	"smol/internal/errors"
)

func ParseFile(path string) (*ast.Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseSource(path, string(source))
}

// ParseSource parses smol source into an AST. Syntax errors and integer
// literals that do not fit in 64 bits are reported as *errors.SyntaxError.
func ParseSource(sourceName string, source string) (*ast.Program, error) {
	tree, err := grammar.ParseSource(sourceName, source)
	if err != nil {
		return nil, errors.FromParticiple(err)
	}

	stmts, err := convertStatements(tree.Statements)
	if err != nil {
		return nil, err
	}
	return &ast.Program{
		Pos:        ast.Position{Filename: sourceName, Line: 1, Column: 1},
		Statements: stmts,
	}, nil
}

func convertStatements(nodes []*grammar.Statement) ([]ast.Stmt, error) {
	stmts := make([]ast.Stmt, 0, len(nodes))
	for _, node := range nodes {
		stmt, err := convertStatement(node)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func convertStatement(node *grammar.Statement) (ast.Stmt, error) {
	switch {
	case node.Assign != nil:
		value, err := convertExpr(node.Assign.Value)
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{
			Pos:    errors.PositionOf(node.Assign.Pos),
			Target: convertName(node.Assign.Target),
			Value:  value,
		}, nil

	case node.Print != nil:
		value, err := convertExpr(node.Print.Value)
		if err != nil {
			return nil, err
		}
		return &ast.PrintStmt{Pos: errors.PositionOf(node.Print.Pos), Value: value}, nil

	case node.Read != nil:
		return &ast.ReadStmt{
			Pos:    errors.PositionOf(node.Read.Pos),
			Target: convertName(node.Read.Target),
		}, nil

	case node.If != nil:
		guard, err := convertExpr(node.If.Guard)
		if err != nil {
			return nil, err
		}
		then, err := convertStatements(node.If.Then)
		if err != nil {
			return nil, err
		}
		els, err := convertStatements(node.If.Else)
		if err != nil {
			return nil, err
		}
		return &ast.IfStmt{Pos: errors.PositionOf(node.If.Pos), Guard: guard, Then: then, Else: els}, nil
	}

	return nil, errors.NewSyntaxError(errors.ErrorUnexpectedToken, errors.PositionOf(node.Pos), 1, "empty statement")
}

func convertExpr(node *grammar.Expr) (ast.Expr, error) {
	pos := errors.PositionOf(node.Pos)
	switch {
	case node.Binary != nil:
		lhs, err := convertExpr(node.Binary.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := convertExpr(node.Binary.Rhs)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Pos: pos, Op: node.Binary.Op, Lhs: lhs, Rhs: rhs}, nil

	case node.Number != nil:
		value, err := strconv.ParseInt(*node.Number, 10, 64)
		if err != nil {
			return nil, errors.NewSyntaxError(errors.ErrorInvalidNumber, pos, len(*node.Number),
				"integer literal %s is out of range", *node.Number)
		}
		return &ast.NumberLit{Pos: pos, Value: value, Text: *node.Number}, nil

	default:
		return &ast.Ident{Pos: pos, Value: *node.Ident}, nil
	}
}

func convertName(node *grammar.Name) ast.Ident {
	return ast.Ident{Pos: errors.PositionOf(node.Pos), Value: node.Value}
}
