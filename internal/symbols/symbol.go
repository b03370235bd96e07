package symbols

import (
	"github.com/linkpy/neolang/internal/source"
	"github.com/linkpy/neolang/internal/types"
)

// SymbolID uniquely identifies an identifier entry in a Table.
// IDs are dense and 1-based; NoSymbolID marks an unbound identifier.
type SymbolID uint32

// NoSymbolID is the absent symbol.
const NoSymbolID SymbolID = 0

// IsValid reports whether the ID refers to an allocated entry.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// DataKind tags the payload attached to an entry.
type DataKind uint8

const (
	// DataNone marks an entry whose payload has not been resolved yet.
	DataNone DataKind = iota
	// DataExpr marks an entry bound to an expression (constants, builtins).
	DataExpr
)

// ExprData is everything the type resolver knows about an entry bound to
// an expression.
type ExprData struct {
	Constness types.Constness
	Type      types.Type
}

// Entry records everything known about one bound name. Builtins carry a
// zero Span as their sentinel location.
type Entry struct {
	ID      SymbolID
	Name    source.StringID
	Builtin bool
	Span    source.Span
	// BeingDefined is set while the constant introducing this entry is
	// having its own initializer resolved; usages seen in that window are
	// invalid recursion.
	BeingDefined bool
	Data         DataKind
	Expr         ExprData
	Value        types.Variant
}
