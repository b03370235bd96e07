package vm

import (
	"fmt"

	"github.com/linkpy/neolang/internal/types"
)

// Opcode identifies one bytecode instruction. Stack patterns are noted as
// "before -- after".
type Opcode uint8

const (
	// OpNoop does nothing. ( -- )
	OpNoop Opcode = iota
	// OpLoadID pushes the value of identifier entry A. ( -- x )
	OpLoadID
	// OpLoadParam pushes parameter A. ( -- x )
	OpLoadParam
	// OpLoadLocal pushes local A. ( -- x )
	OpLoadLocal
	// OpLoadData pushes the embedded variant. ( -- v )
	OpLoadData
	// OpWriteLocal pops into local A. ( x -- )
	OpWriteLocal
	// OpEnd terminates with none. ( -- )
	OpEnd
	// OpRet terminates with the top of the stack. ( x -- )
	OpRet
	// OpErr terminates with a failure. ( -- )
	OpErr
	// OpDrop pops A values. ( x1..xA -- )
	OpDrop
	// OpDup pops the top and pushes A copies of it. ( x -- x..x )
	OpDup
	// OpSwap exchanges the two topmost values. ( a b -- b a )
	OpSwap
	// OpCastInt reinterprets the top integer from one integer type to
	// another; A packs the two 4-bit type indices. ( x -- y )
	OpCastInt

	// Typed integer arithmetic; A is the operand type index. ( a b -- c )
	OpAddInt
	OpSubInt
	OpMulInt
	OpDivInt
	OpModInt
	OpShlInt
	OpShrInt
	OpBandInt
	OpBorInt
	OpBxorInt

	// Typed integer comparisons; A is the operand type index. ( a b -- bool )
	OpEqInt
	OpNeInt
	OpLtInt
	OpLeInt
	OpGtInt
	OpGeInt

	// OpLand is boolean and. ( a b -- c )
	OpLand
	// OpLor is boolean or. ( a b -- c )
	OpLor

	opcodeCount
)

var opcodeNames = [opcodeCount]string{
	OpNoop:       "noop",
	OpLoadID:     "load_id",
	OpLoadParam:  "load_param",
	OpLoadLocal:  "load_local",
	OpLoadData:   "load_data",
	OpWriteLocal: "write_local",
	OpEnd:        "end",
	OpRet:        "ret",
	OpErr:        "err",
	OpDrop:       "drop",
	OpDup:        "dup",
	OpSwap:       "swap",
	OpCastInt:    "cast_int",
	OpAddInt:     "add_int",
	OpSubInt:     "sub_int",
	OpMulInt:     "mul_int",
	OpDivInt:     "div_int",
	OpModInt:     "mod_int",
	OpShlInt:     "shl_int",
	OpShrInt:     "shr_int",
	OpBandInt:    "band_int",
	OpBorInt:     "bor_int",
	OpBxorInt:    "bxor_int",
	OpEqInt:      "eq_int",
	OpNeInt:      "ne_int",
	OpLtInt:      "lt_int",
	OpLeInt:      "le_int",
	OpGtInt:      "gt_int",
	OpGeInt:      "ge_int",
	OpLand:       "land",
	OpLor:        "lor",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", op)
}

// Instr is one decoded instruction. A carries the id/index/count operand;
// Data carries the embedded variant of load_data.
type Instr struct {
	Op   Opcode
	A    uint32
	Data types.Variant
}

// PackCast encodes the cast_int operand: two 4-bit integer type indices.
func PackCast(from, to uint8) uint32 {
	return uint32(from)<<4 | uint32(to)
}

// UnpackCast decodes the cast_int operand.
func UnpackCast(a uint32) (from, to uint8) {
	return uint8(a>>4) & 0xF, uint8(a) & 0xF
}

func (in Instr) String() string {
	switch in.Op {
	case OpLoadData:
		return fmt.Sprintf("%s %s", in.Op, in.Data)
	case OpCastInt:
		from, to := UnpackCast(in.A)
		fromT, _ := types.IntFromIndex(from)
		toT, _ := types.IntFromIndex(to)
		return fmt.Sprintf("%s %s,%s", in.Op, fromT, toT)
	case OpAddInt, OpSubInt, OpMulInt, OpDivInt, OpModInt,
		OpShlInt, OpShrInt, OpBandInt, OpBorInt, OpBxorInt,
		OpEqInt, OpNeInt, OpLtInt, OpLeInt, OpGtInt, OpGeInt:
		t, _ := types.IntFromIndex(uint8(in.A)) //nolint:gosec // index is validated on execution
		return fmt.Sprintf("%s %s", in.Op, t)
	case OpLoadID, OpLoadParam, OpLoadLocal, OpWriteLocal, OpDrop, OpDup:
		return fmt.Sprintf("%s %d", in.Op, in.A)
	default:
		return in.Op.String()
	}
}
