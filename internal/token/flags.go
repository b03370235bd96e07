package token

// IntFlag identifies the width suffix of an integer literal. The zero
// value FlagCt is the untyped compile-time integer.
type IntFlag uint8

const (
	// FlagCt marks a literal whose width has not been fixed.
	FlagCt IntFlag = iota
	FlagI1
	FlagI2
	FlagI4
	FlagI8
	FlagU1
	FlagU2
	FlagU4
	FlagU8
	FlagIPtr
	FlagUPtr
)

var intFlags = map[string]IntFlag{
	"ct":   FlagCt,
	"i1":   FlagI1,
	"i2":   FlagI2,
	"i4":   FlagI4,
	"i8":   FlagI8,
	"u1":   FlagU1,
	"u2":   FlagU2,
	"u4":   FlagU4,
	"u8":   FlagU8,
	"iptr": FlagIPtr,
	"uptr": FlagUPtr,
}

// LookupIntFlag maps an identifier to an integer type flag.
// The lexicon is closed: exactly {ct, i1..i8, u1..u8, iptr, uptr}.
func LookupIntFlag(ident string) (IntFlag, bool) {
	f, ok := intFlags[ident]
	return f, ok
}

func (f IntFlag) String() string {
	switch f {
	case FlagCt:
		return "ct"
	case FlagI1:
		return "i1"
	case FlagI2:
		return "i2"
	case FlagI4:
		return "i4"
	case FlagI8:
		return "i8"
	case FlagU1:
		return "u1"
	case FlagU2:
		return "u2"
	case FlagU4:
		return "u4"
	case FlagU8:
		return "u8"
	case FlagIPtr:
		return "iptr"
	case FlagUPtr:
		return "uptr"
	}
	return "invalid"
}
