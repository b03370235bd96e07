package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/linkpy/neolang/internal/source"
	"github.com/linkpy/neolang/internal/types"
)

// Hints provide optional capacity suggestions for the table.
type Hints struct{ Symbols uint }

// Table is the global identifier storage for one compilation. Entries are
// addressed by dense SymbolID; the table lives as long as the compilation
// and every AST node refers to it by id only.
type Table struct {
	entries []Entry
	Strings *source.Interner
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	if strings == nil {
		strings = source.NewInterner()
	}
	if _, err := safecast.Conv[uint32](h.Symbols); err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	t := &Table{
		entries: make([]Entry, 0, h.Symbols),
		Strings: strings,
	}
	t.seedBuiltins()
	return t
}

// Allocate creates a new entry for name declared at span and returns its id.
func (t *Table) Allocate(name string, span source.Span) SymbolID {
	lenEntries, err := safecast.Conv[uint32](len(t.entries))
	if err != nil {
		panic(fmt.Errorf("len entries overflow: %w", err))
	}
	id := SymbolID(lenEntries + 1)
	t.entries = append(t.entries, Entry{
		ID:   id,
		Name: t.Strings.Intern(name),
		Span: span,
	})
	return id
}

// Get returns the entry for the given id, or nil.
func (t *Table) Get(id SymbolID) *Entry {
	if !id.IsValid() || int(id) > len(t.entries) {
		return nil
	}
	return &t.entries[id-1]
}

// Len returns the number of allocated entries, builtins included.
func (t *Table) Len() int {
	return len(t.entries)
}

// Name returns the interned name of an entry.
func (t *Table) Name(id SymbolID) string {
	e := t.Get(id)
	if e == nil {
		return ""
	}
	return t.Strings.MustLookup(e.Name)
}

// SetBeingDefined toggles the recursion guard on an entry.
func (t *Table) SetBeingDefined(id SymbolID, on bool) {
	if e := t.Get(id); e != nil {
		e.BeingDefined = on
	}
}

// BindExpr records the resolved expression payload of an entry.
func (t *Table) BindExpr(id SymbolID, constness types.Constness, typ types.Type) {
	if e := t.Get(id); e != nil {
		e.Data = DataExpr
		e.Expr = ExprData{Constness: constness, Type: typ}
	}
}

// SetValue stores the compile-time value of an entry.
func (t *Table) SetValue(id SymbolID, v types.Variant) {
	if e := t.Get(id); e != nil {
		e.Value = v
	}
}
