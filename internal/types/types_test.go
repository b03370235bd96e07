package types_test

import (
	"testing"

	"github.com/linkpy/neolang/internal/types"
)

var (
	ctInt = types.MakeCtInt()
	i1    = types.MakeInt(types.Width1, true)
	i4    = types.MakeInt(types.Width4, true)
	i8    = types.MakeInt(types.Width8, true)
	u4    = types.MakeInt(types.Width4, false)
	iptr  = types.MakeInt(types.WidthPtr, true)
	uptr  = types.MakeInt(types.WidthPtr, false)
	boolT = types.MakeBool()
	typeT = types.MakeType()
)

func TestSameAs(t *testing.T) {
	if !ctInt.SameAs(types.MakeCtInt()) {
		t.Error("ct_int == ct_int")
	}
	if ctInt.SameAs(i4) {
		t.Error("ct_int is only equal to ct_int")
	}
	if i4.SameAs(u4) {
		t.Error("signedness must match")
	}
	if !boolT.SameAs(types.MakeBool()) || boolT.SameAs(typeT) {
		t.Error("bool equality broken")
	}
}

func TestCoercible(t *testing.T) {
	cases := []struct {
		from, to types.Type
		want     bool
	}{
		{ctInt, i4, true},
		{i4, ctInt, true}, // dynamic coerces both ways
		{i1, i4, true},
		{i4, i1, false},
		{i4, i4, true},
		{i4, u4, false},
		{iptr, iptr, true},
		{iptr, i8, false}, // pointer only to pointer
		{i8, iptr, false},
		{boolT, boolT, true},
		{boolT, i4, false},
		{typeT, typeT, true},
	}
	for _, tc := range cases {
		if got := types.Coercible(tc.from, tc.to); got != tc.want {
			t.Errorf("Coercible(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestPeer(t *testing.T) {
	cases := []struct {
		a, b   types.Type
		want   types.Type
		wantOK bool
	}{
		{ctInt, ctInt, ctInt, true},
		{ctInt, i4, i4, true},
		{i4, ctInt, i4, true},
		{i1, i4, i4, true},
		{i4, i8, i8, true},
		{i4, u4, types.Type{}, false},
		{i4, iptr, types.Type{}, false}, // byte widths never peer with pointer
		{iptr, iptr, iptr, true},
		{uptr, ctInt, uptr, true},
		{boolT, boolT, boolT, true},
		{boolT, i4, types.Type{}, false},
	}
	for _, tc := range cases {
		got, ok := types.Peer(tc.a, tc.b)
		if ok != tc.wantOK {
			t.Errorf("Peer(%s, %s) ok = %v, want %v", tc.a, tc.b, ok, tc.wantOK)
			continue
		}
		if ok && !got.SameAs(tc.want) {
			t.Errorf("Peer(%s, %s) = %s, want %s", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestBinaryResultType(t *testing.T) {
	if got, ok := types.BinaryResultType(types.BinAdd, ctInt, i4); !ok || !got.SameAs(i4) {
		t.Errorf("ct + i4 = %v %v", got, ok)
	}
	if got, ok := types.BinaryResultType(types.BinLt, i1, i4); !ok || !got.IsBool() {
		t.Errorf("i1 < i4 = %v %v", got, ok)
	}
	if _, ok := types.BinaryResultType(types.BinLt, i4, u4); ok {
		t.Error("comparison of mismatched signedness must fail")
	}
	if got, ok := types.BinaryResultType(types.BinLAnd, boolT, boolT); !ok || !got.IsBool() {
		t.Errorf("bool and bool = %v %v", got, ok)
	}
	if _, ok := types.BinaryResultType(types.BinLAnd, i4, boolT); ok {
		t.Error("'and' requires booleans")
	}
	if _, ok := types.BinaryResultType(types.BinAdd, boolT, boolT); ok {
		t.Error("arithmetic on booleans must fail")
	}
}

func TestUnaryResultType(t *testing.T) {
	if got, ok := types.UnaryResultType(types.UnNeg, i4); !ok || !got.SameAs(i4) {
		t.Errorf("-i4 = %v %v", got, ok)
	}
	if got, ok := types.UnaryResultType(types.UnLNot, boolT); !ok || !got.IsBool() {
		t.Errorf("not bool = %v %v", got, ok)
	}
	if _, ok := types.UnaryResultType(types.UnLNot, i4); ok {
		t.Error("'not' on integer must fail")
	}
	if _, ok := types.UnaryResultType(types.UnBNot, boolT); ok {
		t.Error("'~' on bool must fail")
	}
}

func TestConstnessMix(t *testing.T) {
	c, u, n := types.ConstnessConst, types.ConstnessUnknown, types.ConstnessNotConst
	if c.Mix(c) != c {
		t.Error("const+const")
	}
	if c.Mix(u) != u || u.Mix(c) != u {
		t.Error("const+unknown = unknown")
	}
	if u.Mix(n) != n || c.Mix(n) != n {
		t.Error("x+not_const = not_const")
	}
}

func TestIntIndexRoundTrip(t *testing.T) {
	for idx := uint8(0); idx < types.IntIndexCount; idx++ {
		typ, ok := types.IntFromIndex(idx)
		if !ok {
			t.Fatalf("IntFromIndex(%d) failed", idx)
		}
		back, ok := types.IntIndex(typ)
		if !ok || back != idx {
			t.Errorf("index %d (%s) round-trips to %d", idx, typ, back)
		}
	}
	if _, ok := types.IntFromIndex(types.IntIndexCount); ok {
		t.Error("out-of-range index accepted")
	}
	if _, ok := types.IntIndex(boolT); ok {
		t.Error("bool has no integer index")
	}
}

func TestVariantTypeOf(t *testing.T) {
	cases := []struct {
		v    types.Variant
		want types.Type
	}{
		{types.CtInt(5), ctInt},
		{types.SignedInt(types.Width4, -1), i4},
		{types.UnsignedInt(types.Width4, 1), u4},
		{types.SignedInt(types.WidthPtr, 0), iptr},
		{types.BoolValue(true), boolT},
		{types.TypeValue(i4), typeT},
	}
	for _, tc := range cases {
		if got := tc.v.TypeOf(); !got.SameAs(tc.want) {
			t.Errorf("TypeOf(%s) = %s, want %s", tc.v, got, tc.want)
		}
	}
	if !types.None().IsNone() {
		t.Error("None should be none")
	}
}
