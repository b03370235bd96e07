package sema_test

import (
	"fmt"
	"testing"

	"github.com/linkpy/neolang/internal/ast"
	"github.com/linkpy/neolang/internal/types"
)

// Full semantic run of every binary operator over integers: the
// bytecode result matches symbolic evaluation on int64.
func TestBinaryOperatorSemantics(t *testing.T) {
	cases := []struct {
		op   string
		a, b int64
		want int64
	}{
		{"+", 7, 5, 12},
		{"-", 7, 5, 2},
		{"*", 7, 5, 35},
		{"/", 7, 5, 1},
		{"%", 7, 5, 2},
		{"<<", 7, 2, 28},
		{">>", 7, 1, 3},
		{"&", 0b0110, 0b0011, 0b0010},
		{"|", 0b0110, 0b0011, 0b0111},
		{"^", 0b0110, 0b0011, 0b0101},
	}
	for _, tc := range cases {
		src := fmt.Sprintf("const r: i8 = %d %s %d;", tc.a, tc.op, tc.b)
		stmts, _ := mustCheck(t, src)
		v := constValue(t, stmts[0])
		if v.Kind != types.VarI8 || v.Int != tc.want {
			t.Errorf("%d %s %d = %s, want %d", tc.a, tc.op, tc.b, v, tc.want)
		}
	}
}

func TestComparisonOperatorSemantics(t *testing.T) {
	cases := []struct {
		op   string
		a, b int64
		want bool
	}{
		{"==", 3, 3, true},
		{"==", 3, 4, false},
		{"!=", 3, 4, true},
		{"<", 3, 4, true},
		{"<=", 4, 4, true},
		{">", 3, 4, false},
		{">=", 4, 3, true},
	}
	for _, tc := range cases {
		src := fmt.Sprintf("const r = %d %s %d;", tc.a, tc.op, tc.b)
		stmts, _ := mustCheck(t, src)
		v := constValue(t, stmts[0])
		if v.Kind != types.VarBool || v.Bool != tc.want {
			t.Errorf("%d %s %d = %s, want %t", tc.a, tc.op, tc.b, v, tc.want)
		}
	}
}

func TestLogicalOperatorSemantics(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"const r = (1 == 1) and (2 == 2);", true},
		{"const r = (1 == 1) and (2 == 3);", false},
		{"const r = (1 == 2) or (2 == 2);", true},
		{"const r = (1 == 2) or (2 == 3);", false},
		{"const r = not (1 == 2);", true},
	}
	for _, tc := range cases {
		stmts, _ := mustCheck(t, tc.src)
		v := constValue(t, stmts[0])
		if v.Kind != types.VarBool || v.Bool != tc.want {
			t.Errorf("%s = %s, want %t", tc.src, v, tc.want)
		}
	}
}

// Invariant 6: for every arithmetic binary node of type T both
// operands are coercible to T.
func TestBinaryCoercionInvariant(t *testing.T) {
	stmts, _ := mustCheck(t, "const a = 1i2 + 2; const b: i8 = 3 * 4i4; const c = (1 + 2) & 7;")
	w := &ast.Walker{
		EnterBinary: func(e *ast.BinaryExpr) {
			if e.Op.IsComparison() || e.Op.IsLogical() {
				return
			}
			if !types.Coercible(e.Left.Base().Type, e.Type) {
				t.Errorf("left operand %s not coercible to %s", e.Left.Base().Type, e.Type)
			}
			if !types.Coercible(e.Right.Base().Type, e.Type) {
				t.Errorf("right operand %s not coercible to %s", e.Right.Base().Type, e.Type)
			}
		},
	}
	w.WalkStmts(stmts)
}
