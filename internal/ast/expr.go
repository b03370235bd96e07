package ast

import (
	"github.com/linkpy/neolang/internal/source"
	"github.com/linkpy/neolang/internal/symbols"
	"github.com/linkpy/neolang/internal/token"
	"github.com/linkpy/neolang/internal/types"
)

// ExprBase carries the annotations shared by every expression node.
// Constness starts out unknown; Type starts invalid; Value starts none.
type ExprBase struct {
	Span      source.Span
	Constness types.Constness
	Type      types.Type
	// Value caches the compile-time value for integer and unary nodes.
	Value types.Variant
}

func (b *ExprBase) NodeSpan() source.Span { return b.Span }

// Base returns the shared annotation record.
func (b *ExprBase) Base() *ExprBase { return b }

// Resolved reports whether the type resolver already annotated this node.
func (b *ExprBase) Resolved() bool { return b.Type.IsValid() }

// Expr is implemented by every expression variant.
type Expr interface {
	Node
	Base() *ExprBase
	exprNode()
}

// IdentExpr is a single identifier usage or definition. Sym is written by
// the identifier resolver once the name is bound.
type IdentExpr struct {
	ExprBase
	Name string
	Sym  symbols.SymbolID
}

func (*IdentExpr) exprNode() {}

// IntExpr is an integer literal. Flag is set by the parser: FlagCt for an
// untyped compile-time integer, otherwise the concrete width suffix.
type IntExpr struct {
	ExprBase
	Text string
	Flag token.IntFlag
}

func (*IntExpr) exprNode() {}

// StringExpr is a string literal. Raw keeps the source slice including
// quotes; Text is the contents.
type StringExpr struct {
	ExprBase
	Raw  string
	Text string
}

func (*StringExpr) exprNode() {}

// BinaryExpr applies Op to Left and Right. All binary operators share one
// precedence level.
type BinaryExpr struct {
	ExprBase
	Op    types.BinaryOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr applies Op to Operand.
type UnaryExpr struct {
	ExprBase
	Op      types.UnaryOp
	Operand Expr
}

func (*UnaryExpr) exprNode() {}

// CallExpr calls Callee. A zero-argument call is spelled with a trailing
// '!' (Bang true); otherwise Args holds the comma chain.
type CallExpr struct {
	ExprBase
	Callee Expr
	Args   []Expr
	Bang   bool
}

func (*CallExpr) exprNode() {}

// GroupExpr is a parenthesized expression.
type GroupExpr struct {
	ExprBase
	Inner Expr
}

func (*GroupExpr) exprNode() {}

// FieldExpr is slash-delimited access: Target '/' Name. Segmented names
// parse but have no resolver semantics yet.
type FieldExpr struct {
	ExprBase
	Target Expr
	Name   *IdentExpr
}

func (*FieldExpr) exprNode() {}
