package symbols

import (
	"github.com/linkpy/neolang/internal/types"
)

// builtinTypes lists every name seeded into a fresh table before any user
// code is scouted, in id-allocation order.
var builtinTypes = []struct {
	name string
	typ  types.Type
}{
	{"ct_int", types.MakeCtInt()},
	{"i1", types.MakeInt(types.Width1, true)},
	{"i2", types.MakeInt(types.Width2, true)},
	{"i4", types.MakeInt(types.Width4, true)},
	{"i8", types.MakeInt(types.Width8, true)},
	{"u1", types.MakeInt(types.Width1, false)},
	{"u2", types.MakeInt(types.Width2, false)},
	{"u4", types.MakeInt(types.Width4, false)},
	{"u8", types.MakeInt(types.Width8, false)},
	{"iptr", types.MakeInt(types.WidthPtr, true)},
	{"uptr", types.MakeInt(types.WidthPtr, false)},
	{"bool", types.MakeBool()},
	{"type", types.MakeType()},
}

// seedBuiltins allocates the builtin entries. Each is a fully resolved
// constant of type 'type' whose value is the named type itself.
func (t *Table) seedBuiltins() {
	for _, b := range builtinTypes {
		id := t.Allocate(b.name, zeroSpan())
		e := t.Get(id)
		e.Builtin = true
		e.Data = DataExpr
		e.Expr = ExprData{
			Constness: types.ConstnessConst,
			Type:      types.MakeType(),
		}
		e.Value = types.TypeValue(b.typ)
	}
}

// BindBuiltins binds every builtin name into scope (the root scope of a
// compilation).
func (t *Table) BindBuiltins(scope *Scope) {
	for i := range builtinTypes {
		// builtin ids are allocated first: 1..len(builtinTypes)
		scope.Bind(builtinTypes[i].name, SymbolID(i+1)) //nolint:gosec // small fixed table
	}
}
