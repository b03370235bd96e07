package types

// Coercible reports whether a value of type from can be coerced to type to.
// For integers: either side being ct_int allows coercion in both
// directions; otherwise signedness must match and the source width must not
// exceed the destination width (pointer widths only coerce to pointer
// widths). Booleans coerce only to booleans, types only to types.
func Coercible(from, to Type) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if from.Kind != to.Kind {
		return false
	}
	switch from.Kind {
	case KindInt:
		if from.Width == WidthDynamic || to.Width == WidthDynamic {
			return true
		}
		if from.Signed != to.Signed {
			return false
		}
		if from.Width == WidthPtr || to.Width == WidthPtr {
			return from.Width == to.Width
		}
		return from.Width <= to.Width
	case KindBool, KindType:
		return true
	default:
		return false
	}
}

// Peer returns the unique type both a and b coerce to, if any. ct_int acts
// as an untyped literal: paired with a sized integer it adopts that
// integer's type. Two sized integers peer iff their signedness matches;
// the wider wins, and byte widths never peer with pointer widths.
//
// Both the type resolver and the bytecode compiler's coercion emitter go
// through this function so the two agree by construction.
func Peer(a, b Type) (Type, bool) {
	if !a.IsValid() || !b.IsValid() || a.Kind != b.Kind {
		return Type{}, false
	}
	switch a.Kind {
	case KindInt:
		if a.Width == WidthDynamic && b.Width == WidthDynamic {
			return a, true
		}
		if a.Width == WidthDynamic {
			return b, true
		}
		if b.Width == WidthDynamic {
			return a, true
		}
		if a.Signed != b.Signed {
			return Type{}, false
		}
		if a.Width == WidthPtr || b.Width == WidthPtr {
			if a.Width == b.Width {
				return a, true
			}
			return Type{}, false
		}
		if a.Width >= b.Width {
			return a, true
		}
		return b, true
	case KindBool, KindType:
		return a, true
	default:
		return Type{}, false
	}
}
