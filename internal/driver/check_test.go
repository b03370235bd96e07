package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/linkpy/neolang/internal/ast"
	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/driver"
	"github.com/linkpy/neolang/internal/types"
)

func check(t *testing.T, input string) *driver.CheckResult {
	t.Helper()
	result, err := driver.CheckVirtual("test.nl", []byte(input), 100)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	return result
}

func TestEmptyFileEndToEnd(t *testing.T) {
	result := check(t, "")
	if !result.OK || result.Bag.Len() != 0 || len(result.Stmts) != 0 {
		t.Errorf("empty file: ok=%v diags=%d stmts=%d", result.OK, result.Bag.Len(), len(result.Stmts))
	}
}

func TestScenarioBuiltinArithmetic(t *testing.T) {
	result := check(t, "const a: i4 = 1 + 2;")
	if !result.OK {
		t.Fatalf("diags: %v", result.Bag.Items())
	}
	c := result.Stmts[0].(*ast.ConstStmt)
	if !c.Name.Type.SameAs(types.MakeInt(types.Width4, true)) {
		t.Errorf("type: %s", c.Name.Type)
	}
	if c.Name.Value.Kind != types.VarI4 || c.Name.Value.Int != 3 {
		t.Errorf("value: %s", c.Name.Value)
	}
}

func TestScenarioFailuresStopPipeline(t *testing.T) {
	// syntax error: neither resolver nor checker may run
	result := check(t, "const = 1;")
	if result.OK {
		t.Fatal("expected failure")
	}
	if result.Syms != nil {
		t.Error("resolution must not run after parse errors")
	}
}

func TestScenarioSelfReference(t *testing.T) {
	result := check(t, "const a = a;")
	if result.OK {
		t.Fatal("expected failure")
	}
	found := false
	for _, d := range result.Bag.Items() {
		if d.Message == "Invalid recursive use of 'a'." {
			found = true
			if len(d.Notes) != 1 {
				t.Error("expected a note at the declaration")
			}
		}
	}
	if !found {
		t.Errorf("missing diagnostic: %v", result.Bag.Items())
	}
}

// Invariant 3: after resolution every identifier has an entry whose
// name matches the source.
func TestIdentifiersBound(t *testing.T) {
	result := check(t, "const a: i4 = 1; const b = a + 2;")
	if !result.OK {
		t.Fatalf("diags: %v", result.Bag.Items())
	}
	w := &ast.Walker{
		VisitIdent: func(id *ast.IdentExpr) {
			if !id.Sym.IsValid() {
				t.Errorf("identifier %q unbound", id.Name)
				return
			}
			if got := result.Syms.Name(id.Sym); got != id.Name {
				t.Errorf("entry name %q != source name %q", got, id.Name)
			}
		},
	}
	w.WalkStmts(result.Stmts)
}

func TestDumpCode(t *testing.T) {
	result := check(t, "#dump_code const a: i4 = 1 + 2;")
	if !result.OK {
		t.Fatalf("diags: %v", result.Bag.Items())
	}
	if len(result.Dumps) != 1 || result.Dumps[0].Name != "a" {
		t.Fatalf("dumps: %v", result.Dumps)
	}
	if len(result.Dumps[0].Code) == 0 {
		t.Error("empty bytecode dump")
	}
}

func TestDumpAST(t *testing.T) {
	result := check(t, "#dump_ast const a = 1; const b = 2;")
	if !result.OK {
		t.Fatalf("diags: %v", result.Bag.Items())
	}
	dumped := result.DumpASTStmts()
	if len(dumped) != 1 {
		t.Fatalf("expected 1 dumped statement, got %d", len(dumped))
	}
}

func TestCheckDirDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.nl", "const x = 1;")
	writeFile(t, dir, "a.nl", "const y = 2;")
	writeFile(t, dir, "c.nl", "const broken = ;")

	files, err := driver.ListFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 || filepath.Base(files[0]) != "a.nl" {
		t.Fatalf("files not sorted: %v", files)
	}

	results, err := driver.CheckDir(context.Background(), files, driver.DirOptions{
		MaxDiagnostics: 100,
		Jobs:           2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("results: %d", len(results))
	}
	if !results[0].Result.OK || !results[1].Result.OK {
		t.Error("a.nl and b.nl should pass")
	}
	if results[2].Result.OK {
		t.Error("c.nl should fail")
	}
}

func TestCheckDirEvents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.nl", "const x = 1;")
	files, err := driver.ListFiles(dir)
	if err != nil {
		t.Fatal(err)
	}

	events := make(chan driver.Event, 16)
	collected := make(chan []driver.Event, 1)
	go func() {
		var all []driver.Event
		for ev := range events {
			all = append(all, ev)
		}
		collected <- all
	}()

	if _, err := driver.CheckDir(context.Background(), files, driver.DirOptions{
		MaxDiagnostics: 100,
		Jobs:           1,
		Events:         events,
	}); err != nil {
		t.Fatal(err)
	}
	all := <-collected
	if len(all) == 0 {
		t.Fatal("no events received")
	}
	last := all[len(all)-1]
	if last.Status != driver.StatusDone {
		t.Errorf("final event: %+v", last)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cacheRoot := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheRoot)

	cache, err := driver.OpenDiskCache("nl-test")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := writeFile(t, dir, "a.nl", "const x = 1;")

	if _, ok := cache.Lookup(path); ok {
		t.Fatal("cache should start empty")
	}

	result, err := driver.Check(path, 100)
	if err != nil || !result.OK {
		t.Fatalf("check: %v", err)
	}
	if err := cache.Store(path, result); err != nil {
		t.Fatal(err)
	}

	payload, ok := cache.Lookup(path)
	if !ok || !payload.OK {
		t.Fatal("expected cache hit")
	}

	// editing the file invalidates the record
	if err := os.WriteFile(path, []byte("const x = 2;"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Lookup(path); ok {
		t.Error("stale hash must miss")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// End-to-end scenarios rendered in the stable short format.
func TestShortDiagnosticScenarios(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		wants []string
	}{
		{
			name:  "overshadow",
			src:   "const a = 1; const a = 2;",
			wants: []string{"error BND3001 test.nl:1:20 Declaration of 'a' overshadows a previous declaration."},
		},
		{
			name: "self reference",
			src:  "const a = a;",
			wants: []string{
				"error BND3003 test.nl:1:11 Invalid recursive use of 'a'.",
				"note BND3003 test.nl:1:7 'a' is declared here.",
			},
		},
		{
			name:  "coercion",
			src:   "const a: bool = 1 + 2;",
			wants: []string{"error SEM4003 test.nl:1:17 'ct_int' cannot be coerced to 'bool'."},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := driver.CheckVirtual("test.nl", []byte(tc.src), 100)
			if err != nil {
				t.Fatal(err)
			}
			if result.OK {
				t.Fatal("expected failure")
			}
			out := diag.FormatShortDiagnostics(result.Bag.Items(), result.FileSet, true)
			for _, want := range tc.wants {
				if !strings.Contains(out, want) {
					t.Errorf("missing %q in:\n%s", want, out)
				}
			}
		})
	}
}
