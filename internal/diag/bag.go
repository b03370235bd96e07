package diag

import (
	"cmp"
	"slices"

	"github.com/linkpy/neolang/internal/source"
)

type Bag struct {
	items []Diagnostic
	max   uint16
}

func NewBag(max int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   uint16(max),
	}
}

// Add appends a diagnostic, honoring the limit. It returns false when
// the bag is already full.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// HasErrors reports whether at least one diagnostic has Severity >= Error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether at least one diagnostic has Severity >= Warning.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of diagnostics with Severity >= Error.
func (b *Bag) ErrorCount() int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			n++
		}
	}
	return n
}

// Len returns the number of stored diagnostics.
func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the diagnostics. The slice aliases
// the bag's internal array; do not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends every diagnostic from another Bag, growing the limit
// when needed to fit them all.
func (b *Bag) Merge(other *Bag) {
	newTotal := len(b.items) + len(other.items)
	if uint16(newTotal) > b.max {
		b.max = uint16(newTotal)
	}
	b.items = append(b.items, other.items...)
}

// compare orders two diagnostics for display: source position first, then
// the more severe entry, then the numeric code. Codes are compared
// numerically on purpose — the LEX/SYN/BND/SEM/VM spaces are assigned in
// pipeline order, so ties at one span list earlier-phase complaints first.
func (d Diagnostic) compare(other Diagnostic) int {
	if c := cmp.Compare(d.Primary.File, other.Primary.File); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Primary.Start, other.Primary.Start); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Primary.End, other.Primary.End); c != 0 {
		return c
	}
	if c := cmp.Compare(other.Severity, d.Severity); c != 0 {
		return c
	}
	return cmp.Compare(d.Code, other.Code)
}

// Sort orders the bag for rendering. The sort is stable, so insertion
// order survives within a single source range.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, Diagnostic.compare)
}

// diagKey identifies one complaint: the code plus the exact source range
// it is anchored to. Severity and message are derived from those two in
// every phase, so they stay out of the key.
type diagKey struct {
	Code Code
	Span source.Span
}

// Dedup drops repeated diagnostics sharing a code and primary span.
func (b *Bag) Dedup() {
	seen := make(map[diagKey]struct{}, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		key := diagKey{Code: d.Code, Span: d.Primary}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, d)
	}
	b.items = kept
}
