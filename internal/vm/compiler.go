package vm

import (
	"github.com/linkpy/neolang/internal/ast"
	"github.com/linkpy/neolang/internal/symbols"
	"github.com/linkpy/neolang/internal/types"
)

// Compiler translates annotated AST expressions into bytecode. Operands
// are compiled naïvely and then coerced with explicit cast_int
// instructions, so the VM never has to guess widths.
type Compiler struct {
	syms   *symbols.Table
	code   []Instr
	params int
}

// NewCompiler builds a compiler with the given parameter count. Constant
// evaluation always uses zero parameters.
func NewCompiler(syms *symbols.Table, params int) *Compiler {
	return &Compiler{
		syms:   syms,
		code:   make([]Instr, 0, 16),
		params: params,
	}
}

func (c *Compiler) emit(in Instr) {
	c.code = append(c.code, in)
}

// Finish appends the closing ret and hands the instruction vector over.
func (c *Compiler) Finish() []Instr {
	c.emit(Instr{Op: OpRet})
	return c.code
}

// CompileExpr compiles one expression. When hint is a valid integer type
// different from the expression's resolved type, a trailing cast_int
// converts the result.
func (c *Compiler) CompileExpr(e ast.Expr, hint types.Type) *Error {
	if err := c.compile(e); err != nil {
		return err
	}
	return c.castTo(e.Base().Type, hint)
}

// castTo emits a cast_int from one integer type to another when they
// differ. Non-integer types never need a cast.
func (c *Compiler) castTo(from, to types.Type) *Error {
	if !to.IsValid() || !from.IsInt() || !to.IsInt() || from.SameAs(to) {
		return nil
	}
	fromIdx, ok := types.IntIndex(from)
	if !ok {
		return errBadIntType("no bytecode index for type %s", from)
	}
	toIdx, ok := types.IntIndex(to)
	if !ok {
		return errBadIntType("no bytecode index for type %s", to)
	}
	c.emit(Instr{Op: OpCastInt, A: PackCast(fromIdx, toIdx)})
	return nil
}

func (c *Compiler) compile(e ast.Expr) *Error {
	base := e.Base()
	if !base.Resolved() {
		return errEvalFailed("expression has no resolved type")
	}

	switch ex := e.(type) {
	case *ast.IntExpr:
		if ex.Value.IsNone() {
			return errEvalFailed("integer literal has no cached value")
		}
		c.emit(Instr{Op: OpLoadData, Data: ex.Value})
		return nil

	case *ast.UnaryExpr:
		// unary nodes are folded during type resolution; the compiler
		// only replays the cached value
		if ex.Value.IsNone() {
			return errNotImplemented("evaluation of a non-constant unary expression")
		}
		c.emit(Instr{Op: OpLoadData, Data: ex.Value})
		return nil

	case *ast.IdentExpr:
		if !ex.Sym.IsValid() {
			return errEvalFailed("identifier '" + ex.Name + "' is unbound")
		}
		c.emit(Instr{Op: OpLoadID, A: uint32(ex.Sym)})
		return nil

	case *ast.BinaryExpr:
		return c.compileBinary(ex)

	case *ast.GroupExpr:
		return c.compile(ex.Inner)

	case *ast.CallExpr:
		return errNotImplemented("evaluation of calls")

	case *ast.FieldExpr:
		return errNotImplemented("evaluation of field access")

	case *ast.StringExpr:
		return errNotImplemented("evaluation of string literals")

	default:
		return errInvalidData("unexpected expression node %T", e)
	}
}

func (c *Compiler) compileBinary(ex *ast.BinaryExpr) *Error {
	if ex.Op.IsLogical() {
		if err := c.compile(ex.Left); err != nil {
			return err
		}
		if err := c.compile(ex.Right); err != nil {
			return err
		}
		if ex.Op == types.BinLAnd {
			c.emit(Instr{Op: OpLand})
		} else {
			c.emit(Instr{Op: OpLor})
		}
		return nil
	}

	// Both sides are coerced to the peer type before the operator. For
	// arithmetic the peer is the annotated result type; comparisons
	// annotate bool, so the peer is recomputed from the operand types
	// with the same function the type resolver used.
	target := ex.Type
	if ex.Op.IsComparison() {
		peer, ok := types.Peer(ex.Left.Base().Type, ex.Right.Base().Type)
		if !ok {
			return errBadIntType("comparison operands %s and %s have no peer type",
				ex.Left.Base().Type, ex.Right.Base().Type)
		}
		target = peer
	}

	tIdx, ok := types.IntIndex(target)
	if !ok {
		return errBadIntType("operator %s has no integer operand type (got %s)", ex.Op, target)
	}

	if err := c.compile(ex.Left); err != nil {
		return err
	}
	if err := c.castTo(ex.Left.Base().Type, target); err != nil {
		return err
	}
	if err := c.compile(ex.Right); err != nil {
		return err
	}
	if err := c.castTo(ex.Right.Base().Type, target); err != nil {
		return err
	}

	c.emit(Instr{Op: binaryOpcode(ex.Op), A: uint32(tIdx)})
	return nil
}

func binaryOpcode(op types.BinaryOp) Opcode {
	switch op {
	case types.BinAdd:
		return OpAddInt
	case types.BinSub:
		return OpSubInt
	case types.BinMul:
		return OpMulInt
	case types.BinDiv:
		return OpDivInt
	case types.BinMod:
		return OpModInt
	case types.BinShl:
		return OpShlInt
	case types.BinShr:
		return OpShrInt
	case types.BinBAnd:
		return OpBandInt
	case types.BinBOr:
		return OpBorInt
	case types.BinBXor:
		return OpBxorInt
	case types.BinEq:
		return OpEqInt
	case types.BinNe:
		return OpNeInt
	case types.BinLt:
		return OpLtInt
	case types.BinLe:
		return OpLeInt
	case types.BinGt:
		return OpGtInt
	case types.BinGe:
		return OpGeInt
	}
	return OpErr
}

// ApplyUnary folds a unary operator over an already evaluated operand,
// with the same wrap semantics the VM uses.
func ApplyUnary(op types.UnaryOp, operand types.Variant) (types.Variant, *Error) {
	switch op {
	case types.UnId:
		if !operand.IsInt() {
			return types.None(), errBadIntType("unary '+' on %s", operand.Kind)
		}
		return operand, nil

	case types.UnNeg:
		if !operand.IsInt() {
			return types.None(), errBadIntType("unary '-' on %s", operand.Kind)
		}
		return makeInt(operand.TypeOf(), -operand.AsUint64()), nil

	case types.UnBNot:
		if !operand.IsInt() {
			return types.None(), errBadIntType("unary '~' on %s", operand.Kind)
		}
		return makeInt(operand.TypeOf(), ^operand.AsUint64()), nil

	case types.UnLNot:
		if operand.Kind != types.VarBool {
			return types.None(), errBadIntType("'not' on %s", operand.Kind)
		}
		return types.BoolValue(!operand.Bool), nil
	}
	return types.None(), errInvalidData("unexpected unary operator %s", op)
}
