package diagfmt_test

import (
	"strings"
	"testing"

	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/diagfmt"
	"github.com/linkpy/neolang/internal/source"
)

func makeBag(t *testing.T, input string, start, end uint32) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.AddVirtual("test.nl", []byte(input))
	if err != nil {
		t.Fatal(err)
	}
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: start, End: end}, "Unexpected token 'x'."))
	return bag, fs
}

func TestPrettyHeaderAndUnderline(t *testing.T) {
	bag, fs := makeBag(t, "const x = 1;", 6, 7)
	var b strings.Builder
	diagfmt.Pretty(&b, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})

	out := b.String()
	if !strings.Contains(out, "test.nl:1:7: ERROR [SYN2001]: Unexpected token 'x'.") {
		t.Errorf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "const x = 1;") {
		t.Errorf("source line missing:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("too few lines:\n%s", out)
	}
	underline := lines[2]
	if !strings.Contains(underline, "^") {
		t.Errorf("underline missing:\n%s", out)
	}
	if got := strings.Index(underline, "^"); got != 4+6 {
		// 4-space gutter plus 6 prefix characters
		t.Errorf("caret at %d:\n%s", got, out)
	}
}

func TestPrettyNotesNarrowGutter(t *testing.T) {
	fs := source.NewFileSet()
	id, err := fs.AddVirtual("test.nl", []byte("const a = a;"))
	if err != nil {
		t.Fatal(err)
	}
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.BindRecursiveUse, source.Span{File: id, Start: 10, End: 11}, "Invalid recursive use of 'a'.").
		WithNote(source.Span{File: id, Start: 6, End: 7}, "'a' is declared here."))

	var b strings.Builder
	diagfmt.Pretty(&b, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})
	out := b.String()
	if !strings.Contains(out, "NOTE") {
		t.Errorf("note missing:\n%s", out)
	}
	if !strings.Contains(out, "  test.nl:1:7:") {
		t.Errorf("note should use a narrower gutter:\n%s", out)
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs := makeBag(t, "const x = 1;", 6, 7)
	var b strings.Builder
	if err := diagfmt.JSON(&b, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{`"SYN2001"`, `"ERROR"`, `"line": 1`, `"col": 7`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON missing %s:\n%s", want, out)
		}
	}
}
