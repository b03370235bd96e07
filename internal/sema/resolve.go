// Package sema performs semantic analysis of a parsed NL file: two-pass
// identifier resolution followed by iterative type resolution with
// compile-time constant evaluation.
package sema

import (
	"github.com/linkpy/neolang/internal/ast"
	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/symbols"
)

// Resolver binds identifier usages to identifier storage entries. It runs
// two traversals over the top-level statement list sharing one scope
// stack whose root holds the builtin bindings:
//
// The scout pass visits only identifier definitions and allocates their
// entries; the resolve pass connects usages and enforces the recursion
// rule. The resolver never aborts mid-tree: it accumulates every error
// and reports success iff the error count stays zero.
type Resolver struct {
	syms     *symbols.Table
	scope    *symbols.Scope
	reporter diag.Reporter
	errors   uint
}

// NewResolver builds a resolver over the given identifier storage.
func NewResolver(syms *symbols.Table, reporter diag.Reporter) *Resolver {
	return &Resolver{
		syms:     syms,
		scope:    symbols.NewRootScope(syms),
		reporter: reporter,
	}
}

// Resolve runs both passes. When the scout pass records any error the
// resolve pass is skipped entirely.
func (r *Resolver) Resolve(stmts []ast.Stmt) bool {
	r.scout(stmts)
	if r.errors != 0 {
		return false
	}
	r.resolve(stmts)
	return r.errors == 0
}

// ===== Scout pass =====

// scout allocates an entry for every identifier definition (constant
// names, procedure names, parameter names). A name already bound in the
// current scope is an overshadowing error.
func (r *Resolver) scout(stmts []ast.Stmt) {
	w := &ast.Walker{
		VisitIdentDef:  r.scoutDef,
		EnterProcScope: r.pushProcScope,
		ExitProc:       r.popProcScope,
	}
	w.WalkStmts(stmts)
}

func (r *Resolver) scoutDef(id *ast.IdentExpr) {
	if _, exists := r.scope.LookupLocal(id.Name); exists {
		r.errorAt(diag.BindOvershadow, id,
			"Declaration of '"+id.Name+"' overshadows a previous declaration.").Emit()
		return
	}
	sym := r.syms.Allocate(id.Name, id.Span)
	id.Sym = sym
	r.scope.Bind(id.Name, sym)
}

// ===== Resolve pass =====

func (r *Resolver) resolve(stmts []ast.Stmt) {
	w := &ast.Walker{
		EnterConst: func(c *ast.ConstStmt) {
			r.syms.SetBeingDefined(c.Name.Sym, true)
		},
		ExitConst: func(c *ast.ConstStmt) {
			r.syms.SetBeingDefined(c.Name.Sym, false)
		},
		VisitIdentDef:  r.rebindDef,
		VisitIdentUse:  r.resolveUse,
		EnterField:     r.rejectSegmented,
		EnterProcScope: r.pushProcScope,
		ExitProc:       r.popProcScope,
	}
	w.WalkStmts(stmts)
}

// rebindDef re-binds a definition whose entry the scout pass already
// allocated, so that nested scopes see their own definitions.
func (r *Resolver) rebindDef(id *ast.IdentExpr) {
	if id.Sym.IsValid() {
		r.scope.Bind(id.Name, id.Sym)
	}
}

func (r *Resolver) resolveUse(id *ast.IdentExpr) {
	sym, ok := r.scope.Lookup(id.Name)
	if !ok {
		r.errorAt(diag.BindUndeclared, id,
			"Usage of undeclared identifier '"+id.Name+"'.").Emit()
		return
	}
	entry := r.syms.Get(sym)
	if entry.BeingDefined {
		r.errorAt(diag.BindRecursiveUse, id,
			"Invalid recursive use of '"+id.Name+"'.").
			WithNote(entry.Span, "'"+id.Name+"' is declared here.").
			Emit()
		return
	}
	id.Sym = sym
}

// rejectSegmented is the explicit not-implemented sentinel for segmented
// identifiers: they parse, but no resolution path may hand them a default
// binding.
func (r *Resolver) rejectSegmented(f *ast.FieldExpr) {
	r.errors++
	if r.reporter != nil {
		diag.ReportError(r.reporter, diag.BindSegmentedNames, f.Span,
			"Segmented identifiers are not implemented yet.").Emit()
	}
}

// ===== Scopes =====

func (r *Resolver) pushProcScope(*ast.ProcStmt) {
	r.scope = r.scope.Push(symbols.ScopeProc)
}

func (r *Resolver) popProcScope(*ast.ProcStmt) {
	if r.scope.Parent != nil {
		r.scope = r.scope.Parent
	}
}

func (r *Resolver) errorAt(code diag.Code, id *ast.IdentExpr, msg string) *diag.ReportBuilder {
	r.errors++
	return diag.ReportError(r.reporter, code, id.Span, msg)
}
