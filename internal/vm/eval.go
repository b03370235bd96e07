// Package vm implements the bytecode virtual machine used to evaluate
// compile-time-constant NL expressions during semantic analysis.
package vm

import (
	"github.com/linkpy/neolang/internal/ast"
	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/symbols"
	"github.com/linkpy/neolang/internal/types"
)

// Evaluator is a thin facade over the compiler and the VM: compile one
// expression with zero parameters, run it, translate any failure into a
// diagnostic on the expression's source range. The State it builds lives
// for exactly one call.
type Evaluator struct {
	syms     *symbols.Table
	reporter diag.Reporter
}

// NewEvaluator binds an evaluator to identifier storage and a reporter.
func NewEvaluator(syms *symbols.Table, reporter diag.Reporter) *Evaluator {
	return &Evaluator{syms: syms, reporter: reporter}
}

// Evaluate compiles and runs expr. When hint is a valid type different
// from the expression's own, the result is cast into it. Failures are
// reported as semantic diagnostics and return ok=false.
func (ev *Evaluator) Evaluate(expr ast.Expr, hint types.Type) (types.Variant, bool) {
	code, cerr := ev.compileOnly(expr, hint)
	if cerr != nil {
		ev.report(expr, cerr)
		return types.None(), false
	}

	state := NewState(ev.syms, code, nil)
	result, rerr := state.Run()
	if rerr != nil {
		ev.report(expr, rerr)
		return types.None(), false
	}
	return result, true
}

// Compile returns the bytecode of expr without running it (used by the
// dump_code statement flag).
func (ev *Evaluator) Compile(expr ast.Expr, hint types.Type) ([]Instr, bool) {
	code, cerr := ev.compileOnly(expr, hint)
	if cerr != nil {
		ev.report(expr, cerr)
		return nil, false
	}
	return code, true
}

func (ev *Evaluator) compileOnly(expr ast.Expr, hint types.Type) ([]Instr, *Error) {
	c := NewCompiler(ev.syms, 0)
	if err := c.CompileExpr(expr, hint); err != nil {
		return nil, err
	}
	return c.Finish(), nil
}

func (ev *Evaluator) report(expr ast.Expr, vmErr *Error) {
	if ev.reporter == nil {
		return
	}
	diag.ReportError(ev.reporter, diag.SemaEvalFailed, expr.NodeSpan(),
		"Evaluation failed: "+vmErr.Msg+".").Emit()
}
