package vm_test

import (
	"testing"

	"github.com/linkpy/neolang/internal/types"
	"github.com/linkpy/neolang/internal/vm"
)

// Casting between every pair of integer types: the result always has
// the destination type; the value reinterprets in the destination width.
func TestCastMatrix(t *testing.T) {
	samples := []uint64{0, 1, 0x7F, 0x80, 0xFF, 0x8000, 0xFFFF_FFFF, 0x8000_0000_0000_0000}

	for from := uint8(0); from < types.IntIndexCount; from++ {
		fromT, _ := types.IntFromIndex(from)
		for to := uint8(0); to < types.IntIndexCount; to++ {
			toT, _ := types.IntFromIndex(to)
			for _, bits := range samples {
				src := vm.MakeInt(fromT, bits)
				v := mustRun(t, []vm.Instr{
					data(src),
					{Op: vm.OpCastInt, A: vm.PackCast(from, to)},
					ret(),
				})
				if !v.TypeOf().SameAs(toT) {
					t.Fatalf("cast %s->%s: result type %s", fromT, toT, v.TypeOf())
				}
				want := vm.MakeInt(toT, src.AsUint64())
				if v != want {
					t.Errorf("cast %s->%s of %#x: got %s, want %s", fromT, toT, bits, v, want)
				}
			}
		}
	}
}

func TestMakeIntNormalizes(t *testing.T) {
	i1 := types.MakeInt(types.Width1, true)
	if v := vm.MakeInt(i1, 0xFF); v.Int != -1 {
		t.Errorf("0xFF as i1 = %d, want -1", v.Int)
	}
	u2 := types.MakeInt(types.Width2, false)
	if v := vm.MakeInt(u2, 0x1_0001); v.Uint != 1 {
		t.Errorf("0x10001 as u2 = %d, want 1", v.Uint)
	}
	ct := types.MakeCtInt()
	if v := vm.MakeInt(ct, 0xFFFF_FFFF_FFFF_FFFF); v.Int != -1 {
		t.Errorf("all-ones as ct = %d, want -1", v.Int)
	}
}

func TestApplyUnary(t *testing.T) {
	i4 := types.MakeInt(types.Width4, true)

	v, err := vm.ApplyUnary(types.UnNeg, vm.MakeInt(i4, 5))
	if err != nil || v.Int != -5 {
		t.Errorf("-5: %s %v", v, err)
	}
	// negating the minimum i4 wraps back to itself
	minI4 := vm.MakeInt(i4, 0x8000_0000)
	v, err = vm.ApplyUnary(types.UnNeg, minI4)
	if err != nil || v.Int != minI4.Int {
		t.Errorf("-min wraps: %s %v", v, err)
	}

	v, err = vm.ApplyUnary(types.UnBNot, vm.MakeInt(i4, 0))
	if err != nil || v.Int != -1 {
		t.Errorf("~0: %s %v", v, err)
	}

	v, err = vm.ApplyUnary(types.UnId, vm.MakeInt(i4, 9))
	if err != nil || v.Int != 9 {
		t.Errorf("+9: %s %v", v, err)
	}

	v, err = vm.ApplyUnary(types.UnLNot, types.BoolValue(false))
	if err != nil || !v.Bool {
		t.Errorf("not false: %s %v", v, err)
	}

	if _, err := vm.ApplyUnary(types.UnNeg, types.BoolValue(true)); err == nil {
		t.Error("-bool must fail")
	}
	if _, err := vm.ApplyUnary(types.UnLNot, vm.MakeInt(i4, 1)); err == nil {
		t.Error("'not' on integer must fail")
	}
}
