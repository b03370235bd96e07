package vm

import (
	"math"

	"github.com/linkpy/neolang/internal/types"
)

// Integer overflow policy: every cast and every arithmetic operation wraps
// two's-complement into the destination width. Division and modulo by zero
// fail evaluation; shift counts are masked to the operand width.

// widthMask returns the value mask for an integer type (all ones for
// 64-bit widths).
func widthMask(t types.Type) uint64 {
	size := t.ByteSize()
	if size >= 8 {
		return math.MaxUint64
	}
	return (uint64(1) << (8 * uint(size))) - 1
}

// MakeInt normalizes raw bits into a variant of integer type t: truncate
// to the width, then sign-extend when t is signed. The type resolver uses
// it to materialize literal values with the same wrap semantics the VM
// applies.
func MakeInt(t types.Type, bits uint64) types.Variant {
	return makeInt(t, bits)
}

// makeInt normalizes raw bits into a variant of integer type t:
// truncate to the width, then sign-extend when t is signed.
func makeInt(t types.Type, bits uint64) types.Variant {
	size := t.ByteSize()
	if size < 8 {
		bits &= widthMask(t)
		if t.Signed {
			signBit := uint64(1) << (8*uint(size) - 1)
			if bits&signBit != 0 {
				bits |= ^widthMask(t)
			}
		}
	}
	if t.IsCtInt() {
		return types.CtInt(int64(bits)) //nolint:gosec // two's-complement reinterpretation
	}
	if t.Signed {
		return types.SignedInt(t.Width, int64(bits)) //nolint:gosec // two's-complement reinterpretation
	}
	return types.UnsignedInt(t.Width, bits)
}

// castInt reinterprets an integer variant as integer type to.
func castInt(v types.Variant, to types.Type) types.Variant {
	return makeInt(to, v.AsUint64())
}

// shiftMask limits a shift count to the operand's bit width (i1 shifts use
// only the low 3 bits, i8 the low 6, and so on).
func shiftMask(t types.Type) uint64 {
	switch t.BitSize() {
	case 8:
		return 0x7
	case 16:
		return 0xF
	case 32:
		return 0x1F
	default:
		return 0x3F
	}
}

// intArith applies a typed arithmetic opcode to two operands of type t.
func intArith(op Opcode, t types.Type, a, b types.Variant) (types.Variant, *Error) {
	x := a.AsUint64()
	y := b.AsUint64()

	switch op {
	case OpAddInt:
		return makeInt(t, x+y), nil
	case OpSubInt:
		return makeInt(t, x-y), nil
	case OpMulInt:
		return makeInt(t, x*y), nil

	case OpDivInt:
		if y == 0 {
			return types.None(), errDivByZero()
		}
		if t.Signed {
			sx, sy := a.AsInt64(), b.AsInt64()
			if sx == math.MinInt64 && sy == -1 {
				// signed division overflow wraps
				return makeInt(t, uint64(sx)), nil
			}
			return makeInt(t, uint64(sx/sy)), nil //nolint:gosec // wrap semantics
		}
		return makeInt(t, x/y), nil

	case OpModInt:
		if y == 0 {
			return types.None(), errDivByZero()
		}
		if t.Signed {
			sx, sy := a.AsInt64(), b.AsInt64()
			if sx == math.MinInt64 && sy == -1 {
				return makeInt(t, 0), nil
			}
			return makeInt(t, uint64(sx%sy)), nil //nolint:gosec // wrap semantics
		}
		return makeInt(t, x%y), nil

	case OpShlInt:
		return makeInt(t, x<<(y&shiftMask(t))), nil

	case OpShrInt:
		count := y & shiftMask(t)
		if t.Signed {
			return makeInt(t, uint64(a.AsInt64()>>count)), nil //nolint:gosec // arithmetic shift
		}
		return makeInt(t, (x&widthMask(t))>>count), nil

	case OpBandInt:
		return makeInt(t, x&y), nil
	case OpBorInt:
		return makeInt(t, x|y), nil
	case OpBxorInt:
		return makeInt(t, x^y), nil
	}

	return types.None(), errInvalidData("intArith: unexpected opcode %s", op)
}

// intCompare applies a typed comparison opcode to two operands of type t.
func intCompare(op Opcode, t types.Type, a, b types.Variant) bool {
	if t.Signed {
		x, y := a.AsInt64(), b.AsInt64()
		switch op {
		case OpEqInt:
			return x == y
		case OpNeInt:
			return x != y
		case OpLtInt:
			return x < y
		case OpLeInt:
			return x <= y
		case OpGtInt:
			return x > y
		case OpGeInt:
			return x >= y
		}
		return false
	}
	x, y := a.AsUint64(), b.AsUint64()
	switch op {
	case OpEqInt:
		return x == y
	case OpNeInt:
		return x != y
	case OpLtInt:
		return x < y
	case OpLeInt:
		return x <= y
	case OpGtInt:
		return x > y
	case OpGeInt:
		return x >= y
	}
	return false
}
