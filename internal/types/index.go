package types

// The cast_int opcode packs two 4-bit integer-type indices. The index
// assignment is part of the bytecode format:
//
//	ct_int=0 i1=1 i2=2 i4=3 i8=4 u1=5 u2=6 u4=7 u8=8 iptr=9 uptr=10

// IntIndexCount is the number of valid integer-type indices.
const IntIndexCount = 11

var intIndexTable = [IntIndexCount]Type{
	MakeCtInt(),
	MakeInt(Width1, true),
	MakeInt(Width2, true),
	MakeInt(Width4, true),
	MakeInt(Width8, true),
	MakeInt(Width1, false),
	MakeInt(Width2, false),
	MakeInt(Width4, false),
	MakeInt(Width8, false),
	MakeInt(WidthPtr, true),
	MakeInt(WidthPtr, false),
}

// IntIndex maps an integer type to its bytecode index.
func IntIndex(t Type) (uint8, bool) {
	if !t.IsInt() {
		return 0, false
	}
	for i, candidate := range intIndexTable {
		if t.SameAs(candidate) {
			return uint8(i), true
		}
	}
	return 0, false
}

// IntFromIndex maps a bytecode index back to an integer type.
func IntFromIndex(idx uint8) (Type, bool) {
	if idx >= IntIndexCount {
		return Type{}, false
	}
	return intIndexTable[idx], true
}
