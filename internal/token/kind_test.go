package token_test

import (
	"testing"

	"github.com/linkpy/neolang/internal/token"
)

func TestKeywordLookup(t *testing.T) {
	cases := map[string]token.Kind{
		"const":       token.KwConst,
		"proc":        token.KwProc,
		"is":          token.KwIs,
		"recursive":   token.KwRecursive,
		"entry_point": token.KwEntryPoint,
		"param":       token.KwParam,
		"returns":     token.KwReturns,
		"begin":       token.KwBegin,
		"return":      token.KwReturn,
		"then":        token.KwThen,
		"else":        token.KwElse,
		"end":         token.KwEnd,
		"mut":         token.KwMut,
		"imm":         token.KwImm,
		"or":          token.KwOr,
		"and":         token.KwAnd,
		"not":         token.KwNot,
	}
	for text, want := range cases {
		got, ok := token.LookupKeyword(text)
		if !ok || got != want {
			t.Errorf("LookupKeyword(%q) = %v %v", text, got, ok)
		}
	}

	for _, notKw := range []string{"Const", "CONST", "consts", "", "main"} {
		if _, ok := token.LookupKeyword(notKw); ok {
			t.Errorf("%q must not be a keyword", notKw)
		}
	}
}

func TestIntFlagLexicon(t *testing.T) {
	known := []string{"ct", "i1", "i2", "i4", "i8", "u1", "u2", "u4", "u8", "iptr", "uptr"}
	for _, text := range known {
		flag, ok := token.LookupIntFlag(text)
		if !ok {
			t.Errorf("flag %q missing", text)
			continue
		}
		if flag.String() != text {
			t.Errorf("flag %q round-trips to %q", text, flag.String())
		}
	}
	for _, unknown := range []string{"i3", "u16", "int", "f4", ""} {
		if _, ok := token.LookupIntFlag(unknown); ok {
			t.Errorf("%q must not be a flag", unknown)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	for _, k := range []token.Kind{token.Whitespace, token.Comment, token.Doc} {
		if !k.IsSkippable() {
			t.Errorf("%v should be skippable", k)
		}
	}
	if token.Ident.IsSkippable() || token.EOF.IsSkippable() {
		t.Error("significant kinds are not skippable")
	}

	binOps := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.Shl, token.Shr, token.Amp, token.Pipe, token.Caret,
		token.KwAnd, token.KwOr,
	}
	for _, k := range binOps {
		if !k.IsBinaryOp() {
			t.Errorf("%v should be a binary operator", k)
		}
	}
	if token.Tilde.IsBinaryOp() || token.Bang.IsBinaryOp() {
		t.Error("'~' and '!' are not binary operators")
	}
	for _, k := range []token.Kind{token.Plus, token.Minus, token.Tilde, token.KwNot} {
		if !k.IsUnaryOp() {
			t.Errorf("%v should be unary", k)
		}
	}
}

func TestTokenPredicates(t *testing.T) {
	if !(token.Token{Kind: token.IntLit}).IsLiteral() {
		t.Error("int literal")
	}
	if !(token.Token{Kind: token.StringLit}).IsLiteral() {
		t.Error("string literal")
	}
	if (token.Token{Kind: token.Ident}).IsLiteral() {
		t.Error("ident is not a literal")
	}
	if !(token.Token{Kind: token.KwConst}).IsKeyword() {
		t.Error("const keyword")
	}
	if !(token.Token{Kind: token.Ident}).IsIdent() {
		t.Error("ident predicate")
	}
}
