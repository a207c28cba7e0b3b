package ast

type Node interface {
	NodePos() Position
	NodeType() NodeType
	String() string
}

func (p *Program) NodePos() Position { return p.Pos }
func (*Program) NodeType() NodeType  { return PROGRAM }

func (i *Ident) NodePos() Position { return i.Pos }
func (*Ident) NodeType() NodeType  { return IDENT }

func (a *AssignStmt) NodePos() Position { return a.Pos }
func (*AssignStmt) NodeType() NodeType  { return ASSIGN_STMT }

func (p *PrintStmt) NodePos() Position { return p.Pos }
func (*PrintStmt) NodeType() NodeType  { return PRINT_STMT }

func (r *ReadStmt) NodePos() Position { return r.Pos }
func (*ReadStmt) NodeType() NodeType  { return READ_STMT }

func (i *IfStmt) NodePos() Position { return i.Pos }
func (*IfStmt) NodeType() NodeType  { return IF_STMT }

func (n *NumberLit) NodePos() Position { return n.Pos }
func (*NumberLit) NodeType() NodeType  { return NUMBER_LIT }

func (b *BinaryExpr) NodePos() Position { return b.Pos }
func (*BinaryExpr) NodeType() NodeType  { return BINARY_EXPR }

// Walk calls fn for every statement in stmts, descending into both arms of
// each $if before moving on.
func Walk(stmts []Stmt, fn func(Stmt)) {
	for _, stmt := range stmts {
		fn(stmt)
		if ifStmt, ok := stmt.(*IfStmt); ok {
			Walk(ifStmt.Then, fn)
			Walk(ifStmt.Else, fn)
		}
	}
}
