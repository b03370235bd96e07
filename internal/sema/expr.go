package sema

import (
	"math"
	"strconv"

	"github.com/linkpy/neolang/internal/ast"
	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/symbols"
	"github.com/linkpy/neolang/internal/types"
	"github.com/linkpy/neolang/internal/vm"
)

// resolveExpr annotates one expression depth-first. An already annotated
// node is skipped; a node that previously errored stays broken without a
// second diagnostic.
func (c *Checker) resolveExpr(e ast.Expr) status {
	if c.broken[e] {
		return stBroken
	}
	if e.Base().Resolved() {
		return stOK
	}

	switch ex := e.(type) {
	case *ast.IdentExpr:
		return c.resolveIdent(ex)
	case *ast.IntExpr:
		return c.resolveInteger(ex)
	case *ast.StringExpr:
		return c.markBroken(e, diag.SemaNotImplemented,
			"String literals are not supported in constant expressions yet.")
	case *ast.BinaryExpr:
		return c.resolveBinary(ex)
	case *ast.UnaryExpr:
		return c.resolveUnary(ex)
	case *ast.GroupExpr:
		st := c.resolveExpr(ex.Inner)
		if st != stOK {
			if st == stBroken {
				c.broken[e] = true
			}
			return st
		}
		inner := ex.Inner.Base()
		ex.Type = inner.Type
		ex.Constness = inner.Constness
		return stOK
	case *ast.CallExpr:
		for _, a := range ex.Args {
			c.resolveExpr(a)
		}
		return c.markBroken(e, diag.SemaNotImplemented,
			"Calls are not supported in constant expressions yet.")
	case *ast.FieldExpr:
		return c.markBroken(e, diag.SemaNotImplemented,
			"Field access is not supported in constant expressions yet.")
	}
	return c.markBroken(e, diag.SemaInfo, "Unexpected expression node.")
}

// resolveIdent pulls the type of an identifier from its storage entry. An
// entry that has no resolved payload yet is a suspension, not an error.
func (c *Checker) resolveIdent(ex *ast.IdentExpr) status {
	if !ex.Sym.IsValid() {
		// the resolver left it unbound; the file already failed
		c.broken[ex] = true
		return stBroken
	}
	entry := c.syms.Get(ex.Sym)
	if entry.Data != symbols.DataExpr {
		c.suspend()
		return stSuspend
	}
	if !entry.Expr.Type.IsValid() {
		if entry.Expr.Constness == types.ConstnessNotConst {
			// procedure name: payload present, type absent for good
			return c.markBroken(ex, diag.SemaNotImplemented,
				"'"+ex.Name+"' is a procedure and cannot be used as a value yet.")
		}
		c.suspend()
		return stSuspend
	}
	ex.Type = entry.Expr.Type
	ex.Constness = entry.Expr.Constness
	return stOK
}

// resolveInteger parses the literal digits and caches the value under the
// parser-set width flag. Out-of-range values truncate with the VM's wrap
// semantics; that is deliberate and produces no diagnostic here.
func (c *Checker) resolveInteger(ex *ast.IntExpr) status {
	flagType, ok := types.IntFromIndex(uint8(ex.Flag))
	if !ok {
		return c.markBroken(ex, diag.SemaInfo, "Invalid integer type flag.")
	}

	bits, err := strconv.ParseUint(ex.Text, 10, 64)
	if err != nil {
		// overflows 64 bits: saturate, the cast wraps from there
		bits = math.MaxUint64
	}

	ex.Type = flagType
	ex.Constness = types.ConstnessConst
	ex.Value = vm.MakeInt(flagType, bits)
	return stOK
}

func (c *Checker) resolveBinary(ex *ast.BinaryExpr) status {
	st := c.resolveExpr(ex.Left).worst(c.resolveExpr(ex.Right))
	if st != stOK {
		if st == stBroken {
			c.broken[ex] = true
		}
		return st
	}

	left := ex.Left.Base()
	right := ex.Right.Base()
	result, ok := types.BinaryResultType(ex.Op, left.Type, right.Type)
	if !ok {
		return c.markBroken(ex, diag.SemaOperandMismatch,
			"Operator '"+ex.Op.String()+"' cannot be applied to '"+
				left.Type.String()+"' and '"+right.Type.String()+"'.")
	}

	ex.Type = result
	ex.Constness = left.Constness.Mix(right.Constness)
	return stOK
}

// resolveUnary types a unary node and, when the operand is constant,
// folds the operation immediately: the bytecode has no unary opcodes, so
// the compiler replays the cached value instead.
func (c *Checker) resolveUnary(ex *ast.UnaryExpr) status {
	st := c.resolveExpr(ex.Operand)
	if st != stOK {
		if st == stBroken {
			c.broken[ex] = true
		}
		return st
	}

	operand := ex.Operand.Base()
	result, ok := types.UnaryResultType(ex.Op, operand.Type)
	if !ok {
		return c.markBroken(ex, diag.SemaUnsupportedUnary,
			"Operator '"+ex.Op.String()+"' cannot be applied to '"+operand.Type.String()+"'.")
	}

	ex.Type = result
	ex.Constness = operand.Constness

	if operand.Constness == types.ConstnessConst {
		operandValue, ok := c.eval.Evaluate(ex.Operand, types.Type{})
		if !ok {
			c.errors++
			c.broken[ex] = true
			ex.Type = types.Type{}
			return stBroken
		}
		folded, err := vm.ApplyUnary(ex.Op, operandValue)
		if err != nil {
			return c.markBroken(ex, diag.SemaEvalFailed,
				"Evaluation failed: "+err.Msg+".")
		}
		ex.Value = folded
	}
	return stOK
}

// ===== Helpers =====

func (c *Checker) suspend() {
	c.unresolved++
}

func (c *Checker) markBroken(e ast.Expr, code diag.Code, msg string) status {
	c.broken[e] = true
	c.errorAt(code, e, msg)
	return stBroken
}

func (c *Checker) errorAt(code diag.Code, e ast.Expr, msg string) {
	c.errors++
	if c.reporter != nil {
		diag.ReportError(c.reporter, code, e.NodeSpan(), msg).Emit()
	}
}
