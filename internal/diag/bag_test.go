package diag_test

import (
	"testing"

	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	bag := diag.NewBag(2)
	if !bag.Add(diag.NewError(diag.LexUnknownChar, span(0, 1), "a")) {
		t.Error("first add")
	}
	if !bag.Add(diag.NewError(diag.LexUnknownChar, span(1, 2), "b")) {
		t.Error("second add")
	}
	if bag.Add(diag.NewError(diag.LexUnknownChar, span(2, 3), "c")) {
		t.Error("limit must reject")
	}
	if bag.Len() != 2 {
		t.Errorf("len: %d", bag.Len())
	}
}

func TestHasErrors(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.SynInfo, span(0, 1), "w"))
	if bag.HasErrors() {
		t.Error("warning is not an error")
	}
	if !bag.HasWarnings() {
		t.Error("warning should count")
	}
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(0, 1), "e"))
	if !bag.HasErrors() || bag.ErrorCount() != 1 {
		t.Error("error not counted")
	}
}

func TestSortStableWithinRange(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(5, 6), "later"))
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(0, 1), "first"))
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(0, 1), "second"))
	bag.Sort()

	items := bag.Items()
	if items[0].Message != "first" || items[1].Message != "second" {
		t.Errorf("insertion order within one range must survive sorting: %v", items)
	}
	if items[2].Message != "later" {
		t.Error("spans must order first")
	}
}

func TestDedup(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(0, 1), "x"))
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(0, 1), "x"))
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(1, 2), "x"))
	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("len after dedup: %d", bag.Len())
	}
}

func TestMerge(t *testing.T) {
	a := diag.NewBag(1)
	a.Add(diag.NewError(diag.SynUnexpectedToken, span(0, 1), "a"))
	b := diag.NewBag(1)
	b.Add(diag.NewError(diag.SynUnexpectedToken, span(1, 2), "b"))
	a.Merge(b)
	if a.Len() != 2 {
		t.Errorf("merge lost items: %d", a.Len())
	}
}

func TestBuilderNotes(t *testing.T) {
	bag := diag.NewBag(10)
	reporter := &diag.BagReporter{Bag: bag}
	diag.ReportError(reporter, diag.BindRecursiveUse, span(0, 1), "bad").
		WithNote(span(5, 6), "declared here").
		Emit()
	if bag.Len() != 1 {
		t.Fatalf("len: %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || d.Notes[0].Msg != "declared here" {
		t.Errorf("notes: %v", d.Notes)
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[diag.Code]string{
		diag.LexUnknownChar:     "LEX1001",
		diag.SynUnexpectedToken: "SYN2001",
		diag.BindOvershadow:     "BND3001",
		diag.SemaCoerceFailed:   "SEM4003",
		diag.VMDivisionByZero:   "VM5005",
		diag.IOLoadFileError:    "IO6001",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d: got %q, want %q", code, got, want)
		}
	}
}
