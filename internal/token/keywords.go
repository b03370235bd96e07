package token

var keywords = map[string]Kind{
	"const":       KwConst,
	"proc":        KwProc,
	"is":          KwIs,
	"recursive":   KwRecursive,
	"entry_point": KwEntryPoint,
	"param":       KwParam,
	"returns":     KwReturns,
	"begin":       KwBegin,
	"return":      KwReturn,
	"then":        KwThen,
	"else":        KwElse,
	"end":         KwEnd,
	"mut":         KwMut,
	"imm":         KwImm,
	"or":          KwOr,
	"and":         KwAnd,
	"not":         KwNot,
}

// LookupKeyword returns the kind and true when ident is a keyword.
// Keywords are case-sensitive; only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
