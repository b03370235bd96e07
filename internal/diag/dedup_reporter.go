package diag

import "github.com/linkpy/neolang/internal/source"

// DedupReporter suppresses the repeats the type resolver's fixed-point
// loop would otherwise emit once per pass: a revisited node reports the
// same code at the same span, so that pair alone identifies the
// complaint (see diagKey). Later passes never know more about a node
// than the pass that first diagnosed it, which is why the message does
// not participate.
type DedupReporter struct {
	next Reporter
	seen map[diagKey]struct{}
}

// NewDedupReporter returns a Reporter that forwards the first diagnostic
// for each (code, span) pair to next and drops the rest.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[diagKey]struct{}),
	}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil || r.next == nil {
		return
	}
	key := diagKey{Code: code, Span: primary}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes)
}
