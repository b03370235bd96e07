package sema_test

import (
	"strings"
	"testing"

	"github.com/linkpy/neolang/internal/ast"
	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/lexer"
	"github.com/linkpy/neolang/internal/parser"
	"github.com/linkpy/neolang/internal/sema"
	"github.com/linkpy/neolang/internal/source"
	"github.com/linkpy/neolang/internal/symbols"
)

func parseInput(t *testing.T, input string) ([]ast.Stmt, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID, err := fs.AddVirtual("test.nl", []byte(input))
	if err != nil {
		t.Fatal(err)
	}
	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	result := parser.ParseFile(lx, parser.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("parse errors in %q", input)
	}
	return result.Stmts, bag
}

func resolveInput(t *testing.T, input string) (bool, []ast.Stmt, *symbols.Table, *diag.Bag) {
	t.Helper()
	stmts, bag := parseInput(t, input)
	table := symbols.NewTable(symbols.Hints{}, nil)
	resolver := sema.NewResolver(table, &diag.BagReporter{Bag: bag})
	ok := resolver.Resolve(stmts)
	return ok, stmts, table, bag
}

func findMessage(bag *diag.Bag, substr string) *diag.Diagnostic {
	for i, d := range bag.Items() {
		if strings.Contains(d.Message, substr) {
			return &bag.Items()[i]
		}
	}
	return nil
}

func TestResolveBuiltinUsage(t *testing.T) {
	ok, stmts, table, bag := resolveInput(t, "const a: i4 = 1;")
	if !ok {
		t.Fatalf("resolution failed: %v", bag.Items())
	}
	c := stmts[0].(*ast.ConstStmt)
	if !c.Name.Sym.IsValid() {
		t.Fatal("constant name unbound")
	}
	typeIdent := c.TypeExpr.(*ast.IdentExpr)
	if !typeIdent.Sym.IsValid() {
		t.Fatal("type identifier unbound")
	}
	if !table.Get(typeIdent.Sym).Builtin {
		t.Error("i4 should resolve to a builtin entry")
	}
	if table.Name(c.Name.Sym) != "a" {
		t.Error("entry name mismatch")
	}
}

func TestOvershadowing(t *testing.T) {
	ok, _, _, bag := resolveInput(t, "const a = 1; const a = 2;")
	if ok {
		t.Fatal("expected failure")
	}
	d := findMessage(bag, "Declaration of 'a' overshadows a previous declaration.")
	if d == nil {
		t.Fatalf("missing overshadow diagnostic: %v", bag.Items())
	}
	// anchored at the second 'a'
	if d.Primary.Start != 19 {
		t.Errorf("expected anchor at the second 'a' (offset 19), got %d", d.Primary.Start)
	}
}

func TestForwardReference(t *testing.T) {
	ok, stmts, _, bag := resolveInput(t, "const a = b; const b = 3;")
	if !ok {
		t.Fatalf("forward references must resolve: %v", bag.Items())
	}
	a := stmts[0].(*ast.ConstStmt)
	use := a.Value.(*ast.IdentExpr)
	bDecl := stmts[1].(*ast.ConstStmt)
	if use.Sym != bDecl.Name.Sym {
		t.Error("usage of 'b' should bind to its declaration")
	}
}

func TestSelfReference(t *testing.T) {
	ok, _, _, bag := resolveInput(t, "const a = a;")
	if ok {
		t.Fatal("expected failure")
	}
	d := findMessage(bag, "Invalid recursive use of 'a'.")
	if d == nil {
		t.Fatalf("missing recursion diagnostic: %v", bag.Items())
	}
	if len(d.Notes) != 1 {
		t.Fatalf("expected a secondary note pointing at the declaration, got %d", len(d.Notes))
	}
}

func TestUndeclared(t *testing.T) {
	ok, _, _, bag := resolveInput(t, "const a = missing;")
	if ok {
		t.Fatal("expected failure")
	}
	if findMessage(bag, "Usage of undeclared identifier 'missing'.") == nil {
		t.Fatalf("missing diagnostic: %v", bag.Items())
	}
}

// The resolver does not stop at the first error.
func TestAccumulatesErrors(t *testing.T) {
	ok, _, _, bag := resolveInput(t, "const a = x; const b = y;")
	if ok {
		t.Fatal("expected failure")
	}
	if findMessage(bag, "'x'") == nil || findMessage(bag, "'y'") == nil {
		t.Errorf("both usages should be diagnosed: %v", bag.Items())
	}
}

func TestProcScope(t *testing.T) {
	input := `
proc p
  param x i4
begin
  const inner = x;
end
const outer = 1;`
	ok, stmts, _, bag := resolveInput(t, input)
	if !ok {
		t.Fatalf("resolution failed: %v", bag.Items())
	}
	p := stmts[0].(*ast.ProcStmt)
	inner := p.Body[0].(*ast.ConstStmt)
	use := inner.Value.(*ast.IdentExpr)
	if use.Sym != p.Params[0].Name.Sym {
		t.Error("body usage should bind to the parameter")
	}
}

func TestParamNotVisibleOutside(t *testing.T) {
	input := `
proc p
  param x i4
begin
end
const a = x;`
	ok, _, _, bag := resolveInput(t, input)
	if ok {
		t.Fatal("parameter must not leak out of the proc scope")
	}
	if findMessage(bag, "undeclared identifier 'x'") == nil {
		t.Errorf("expected undeclared 'x': %v", bag.Items())
	}
}

func TestSameNameInNestedScope(t *testing.T) {
	input := `
const x = 1;
proc p
  param x i4
begin
end`
	ok, _, _, bag := resolveInput(t, input)
	if !ok {
		t.Fatalf("param may shadow an outer const (different scope): %v", bag.Items())
	}
}

func TestSegmentedIdentifierFails(t *testing.T) {
	ok, _, _, bag := resolveInput(t, "const a = 1; const b = a/field;")
	if ok {
		t.Fatal("segmented identifiers must fail resolution")
	}
	d := findMessage(bag, "Segmented identifiers")
	if d == nil || d.Code != diag.BindSegmentedNames {
		t.Fatalf("expected the explicit not-implemented sentinel: %v", bag.Items())
	}
}

func TestScoutStopsResolve(t *testing.T) {
	// overshadow during scout: the resolve pass must not add 'undeclared'
	ok, _, _, bag := resolveInput(t, "const a = 1; const a = zzz;")
	if ok {
		t.Fatal("expected failure")
	}
	if findMessage(bag, "undeclared") != nil {
		t.Error("resolve pass must not run after scout errors")
	}
}
