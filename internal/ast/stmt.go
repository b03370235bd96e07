package ast

import (
	"github.com/linkpy/neolang/internal/source"
)

// StmtFlags are the debug-printing hints that may prefix a statement
// ('#' + name). Unknown flag names are diagnosed and dropped.
type StmtFlags uint8

const (
	// FlagDumpAST asks the driver to print the annotated statement after
	// a successful check.
	FlagDumpAST StmtFlags = 1 << iota
	// FlagDumpCode asks the driver to print the statement's compiled
	// bytecode.
	FlagDumpCode
)

// Has reports whether all bits of other are set.
func (f StmtFlags) Has(other StmtFlags) bool { return f&other == other }

// Stmt is implemented by ConstStmt and ProcStmt.
type Stmt interface {
	Node
	stmtNode()
}

// Node is the common interface of every AST node.
type Node interface {
	NodeSpan() source.Span
}

// ConstStmt is 'const' Name (':' Type)? '=' Value ';'.
type ConstStmt struct {
	Span  source.Span
	Doc   string
	Flags StmtFlags
	Name  *IdentExpr
	// TypeExpr is the optional explicit type annotation; nil when the
	// type is inferred from the value.
	TypeExpr Expr
	Value    Expr
}

func (s *ConstStmt) NodeSpan() source.Span { return s.Span }
func (s *ConstStmt) stmtNode()             {}

// ProcStmt is 'proc' Name FnDecl* 'begin' Statement* 'end'.
type ProcStmt struct {
	Span       source.Span
	Doc        string
	Flags      StmtFlags
	Name       *IdentExpr
	Recursive  bool
	EntryPoint bool
	Params     []*Param
	// Returns is the optional return type expression.
	Returns Expr
	Body    []Stmt
}

func (s *ProcStmt) NodeSpan() source.Span { return s.Span }
func (s *ProcStmt) stmtNode()             {}

// Param is one 'param' Name TypeAtom declaration.
type Param struct {
	Span     source.Span
	Name     *IdentExpr
	TypeExpr Expr
}

func (p *Param) NodeSpan() source.Span { return p.Span }
