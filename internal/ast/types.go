package ast

type NodeType int

const (
	ILLEGAL NodeType = iota

	PROGRAM

	// Statements
	ASSIGN_STMT
	PRINT_STMT
	READ_STMT
	IF_STMT

	// Expressions
	IDENT
	NUMBER_LIT
	BINARY_EXPR
)

var nodeTypeNames = [...]string{
	ILLEGAL:     "ILLEGAL",
	PROGRAM:     "PROGRAM",
	ASSIGN_STMT: "ASSIGN_STMT",
	PRINT_STMT:  "PRINT_STMT",
	READ_STMT:   "READ_STMT",
	IF_STMT:     "IF_STMT",
	IDENT:       "IDENT",
	NUMBER_LIT:  "NUMBER_LIT",
	BINARY_EXPR: "BINARY_EXPR",
}

func (t NodeType) String() string {
	if int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "ILLEGAL"
}

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Program is a whole smol source file: a flat list of statements.
type Program struct {
	Pos        Position
	Statements []Stmt
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

// Ident names a source variable.
// Example: "x", "max_value"
type Ident struct {
	Pos   Position
	Value string
}

// AssignStmt stores the value of an expression into a variable.
// Example: := x + 40 2
type AssignStmt struct {
	Pos    Position
	Target Ident
	Value  Expr
}

// PrintStmt writes the value of an expression followed by a newline.
// Example: $print x
type PrintStmt struct {
	Pos   Position
	Value Expr
}

// ReadStmt reads one integer from the input into a variable.
// Example: $read x
type ReadStmt struct {
	Pos    Position
	Target Ident
}

// IfStmt runs Then when Guard is nonzero and Else otherwise. Both arms are
// always present, possibly empty.
// Example: $if < a b { $print b } { $print a }
type IfStmt struct {
	Pos   Position
	Guard Expr
	Then  []Stmt
	Else  []Stmt
}

// NumberLit is a decimal literal. Text keeps the source spelling.
type NumberLit struct {
	Pos   Position
	Value int64
	Text  string
}

// BinaryExpr applies one of + - * / < to two operands, written in prefix form.
// Example: + 40 2
type BinaryExpr struct {
	Pos Position
	Op  string
	Lhs Expr
	Rhs Expr
}

func (*AssignStmt) stmtNode() {}
func (*PrintStmt) stmtNode()  {}
func (*ReadStmt) stmtNode()   {}
func (*IfStmt) stmtNode()     {}

func (*Ident) exprNode()      {}
func (*NumberLit) exprNode()  {}
func (*BinaryExpr) exprNode() {}
