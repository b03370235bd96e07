package token

import (
	"github.com/linkpy/neolang/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is an integer or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwConst, KwProc, KwIs, KwRecursive, KwEntryPoint, KwParam, KwReturns,
		KwBegin, KwReturn, KwThen, KwElse, KwEnd, KwMut, KwImm, KwOr, KwAnd, KwNot:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
