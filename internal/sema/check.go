package sema

import (
	"errors"
	"fmt"
	"math"

	"github.com/linkpy/neolang/internal/ast"
	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/symbols"
	"github.com/linkpy/neolang/internal/types"
	"github.com/linkpy/neolang/internal/vm"
)

// ErrStuck is returned when a type-resolution pass fails to make forward
// progress. It is an internal invariant violation, not a user error: the
// driver aborts the compilation instead of rendering a diagnostic.
var ErrStuck = errors.New("type resolution made no forward progress")

// status classifies the outcome of resolving one node.
type status uint8

const (
	// stOK means the node is fully resolved.
	stOK status = iota
	// stSuspend means the node depends on a not-yet-resolved entry;
	// retry on the next pass.
	stSuspend
	// stBroken means the node errored; the diagnostic is already out and
	// the node counts as resolved-but-broken.
	stBroken
)

func (s status) worst(other status) status {
	if other > s {
		return other
	}
	return s
}

// Checker runs the iterative least-fixed-point type resolution over a
// file. Each pass traverses statements in source order and resolves
// expressions depth-first, left-to-right; a pass that fails to strictly
// decrease the unresolved count aborts with ErrStuck.
type Checker struct {
	syms     *symbols.Table
	reporter diag.Reporter
	eval     *vm.Evaluator

	unresolved uint
	errors     uint
	done       map[ast.Stmt]bool
	broken     map[ast.Expr]bool
}

// NewChecker builds a checker over the given identifier storage.
func NewChecker(syms *symbols.Table, reporter diag.Reporter) *Checker {
	return &Checker{
		syms:     syms,
		reporter: reporter,
		eval:     vm.NewEvaluator(syms, reporter),
		done:     make(map[ast.Stmt]bool),
		broken:   make(map[ast.Expr]bool),
	}
}

// Check resolves the whole file. It returns false when semantic errors
// were reported, and a non-nil error only for internal invariant
// violations.
func (c *Checker) Check(stmts []ast.Stmt) (bool, error) {
	prev := uint(math.MaxUint)
	for {
		c.unresolved = 0
		for _, s := range stmts {
			c.resolveStmt(s)
		}
		if c.unresolved == 0 {
			break
		}
		if c.unresolved >= prev {
			return false, fmt.Errorf("%w: %d expressions unresolved", ErrStuck, c.unresolved)
		}
		prev = c.unresolved
	}
	return c.errors == 0, nil
}

// ===== Statements =====

func (c *Checker) resolveStmt(s ast.Stmt) {
	if c.done[s] {
		return
	}
	switch st := s.(type) {
	case *ast.ConstStmt:
		c.resolveConst(st)
	case *ast.ProcStmt:
		c.resolveProc(st)
	}
}

// resolveConst types a constant declaration: the optional type expression
// is evaluated to a concrete type first, then the initializer is resolved,
// coerced, required constant, and finally evaluated down to a Variant
// stored on both the identifier node and its storage entry.
func (c *Checker) resolveConst(st *ast.ConstStmt) {
	// already resolved by a previous run; applying again changes nothing
	if entry := c.syms.Get(st.Name.Sym); entry != nil &&
		entry.Data == symbols.DataExpr && entry.Expr.Type.IsValid() {
		c.done[st] = true
		return
	}

	target := types.Type{}
	if st.TypeExpr != nil {
		switch typ, ok := c.resolveTypeExpr(st.TypeExpr); ok {
		case stSuspend:
			return
		case stBroken:
			c.finishBroken(st)
			return
		default:
			target = typ
		}
	}

	switch c.resolveExpr(st.Value) {
	case stSuspend:
		return
	case stBroken:
		c.finishBroken(st)
		return
	}

	valueType := st.Value.Base().Type
	if target.IsValid() {
		if !types.Coercible(valueType, target) {
			c.errorAt(diag.SemaCoerceFailed, st.Value,
				"'"+valueType.String()+"' cannot be coerced to '"+target.String()+"'.")
			c.finishBroken(st)
			return
		}
	} else {
		target = valueType
	}

	if st.Value.Base().Constness != types.ConstnessConst {
		c.errorAt(diag.SemaNotConstant, st.Value,
			"Initializer of '"+st.Name.Name+"' is not a constant expression.")
		c.finishBroken(st)
		return
	}

	value, ok := c.eval.Evaluate(st.Value, target)
	if !ok {
		c.errors++
		c.finishBroken(st)
		return
	}

	st.Name.Type = target
	st.Name.Constness = types.ConstnessConst
	st.Name.Value = value
	c.syms.BindExpr(st.Name.Sym, types.ConstnessConst, target)
	c.syms.SetValue(st.Name.Sym, value)
	c.done[st] = true
}

// resolveProc types the procedure header: parameter and return type
// expressions evaluate to concrete types and the parameter entries are
// bound as non-constant values of those types. Full analysis of bodies
// beyond what constants require is deferred.
func (c *Checker) resolveProc(st *ast.ProcStmt) {
	for _, p := range st.Params {
		entry := c.syms.Get(p.Name.Sym)
		if entry != nil && entry.Data == symbols.DataExpr {
			continue
		}
		switch typ, ok := c.resolveTypeExpr(p.TypeExpr); ok {
		case stSuspend:
			return
		case stBroken:
			c.finishBroken(st)
			return
		default:
			p.Name.Type = typ
			p.Name.Constness = types.ConstnessNotConst
			c.syms.BindExpr(p.Name.Sym, types.ConstnessNotConst, typ)
		}
	}

	if st.Returns != nil {
		switch _, ok := c.resolveTypeExpr(st.Returns); ok {
		case stSuspend:
			return
		case stBroken:
			c.finishBroken(st)
			return
		}
	}

	// the body holds nested statements only, same as the top level
	allDone := true
	for _, inner := range st.Body {
		c.resolveStmt(inner)
		if !c.done[inner] {
			allDone = false
		}
	}
	if !allDone {
		return
	}

	if st.Name.Sym.IsValid() {
		// procedures are not values yet: the entry never gets a type, and
		// using the name inside an expression is its own error
		st.Name.Constness = types.ConstnessNotConst
	}
	c.done[st] = true
}

// finishBroken marks a statement resolved-but-broken so later passes skip
// it.
func (c *Checker) finishBroken(st ast.Stmt) {
	c.done[st] = true
}

// resolveTypeExpr resolves an expression that must denote a type and
// evaluates it to the concrete type value.
func (c *Checker) resolveTypeExpr(e ast.Expr) (types.Type, status) {
	if st := c.resolveExpr(e); st != stOK {
		return types.Type{}, st
	}
	base := e.Base()
	if !base.Type.IsType() {
		c.errorAt(diag.SemaNotAType, e,
			"Expression of type '"+base.Type.String()+"' does not denote a type.")
		return types.Type{}, stBroken
	}
	if base.Constness != types.ConstnessConst {
		c.errorAt(diag.SemaNotConstant, e, "Type expression is not constant.")
		return types.Type{}, stBroken
	}
	value, ok := c.eval.Evaluate(e, types.Type{})
	if !ok {
		c.errors++
		return types.Type{}, stBroken
	}
	if value.Kind != types.VarType {
		c.errorAt(diag.SemaNotAType, e, "Type expression does not evaluate to a type.")
		return types.Type{}, stBroken
	}
	return value.Type, stOK
}
