package lexer

import (
	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/token"
)

// scanWhitespace собирает подряд идущие пробельные байты в один токен.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isSpace(lx.cursor.PeekByte()) {
		lx.cursor.Bump()
	}
	return lx.make(token.Whitespace, start)
}

// scanComment scans '//' and '///' lines. Documentation lines begin with
// exactly '///'; '////' and longer runs are ordinary comments again. The
// trailing newline is not part of the token.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	slashes := uint32(0)
	for lx.peekIs(slashes, '/') {
		slashes++
	}
	lx.cursor.Advance(slashes)

	kind := token.Comment
	if slashes == 3 {
		kind = token.Doc
	}
	for !lx.cursor.EOF() && lx.cursor.PeekByte() != '\n' {
		lx.cursor.Bump()
	}
	return lx.make(kind, start)
}

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые (только lowercase). Token.Text — ровно
// исходный срез, поэтому keyword не матчится, если дальше идёт
// продолжение идентификатора.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.PeekByte()) {
		lx.cursor.Bump()
	}

	tok := lx.make(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanNumber scans a run of decimal digits. Width flags (1i4, 2ct, ...)
// are separate identifier tokens consumed by the parser.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isDec(lx.cursor.PeekByte()) {
		lx.cursor.Bump()
	}
	return lx.make(token.IntLit, start)
}

// scanString scans a double-quoted literal. There are no escapes; the
// literal ends at the next '"'. Reaching EOF first is reported at the
// opening quote.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	openOff := lx.cursor.Off
	lx.cursor.Bump() // opening quote
	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedString,
				spanAt(sp.File, openOff, openOff+1),
				"Unexpected end of string.")
			tok := lx.make(token.Invalid, start)
			return tok
		}
		if lx.cursor.Bump() == '"' {
			return lx.make(token.StringLit, start)
		}
	}
}

// scanOperatorOrPunct scans operators and punctuation; every byte that is
// not an accepted prefix joins one coalesced "unrecognized input" run.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try2('=', '='):
		return lx.make(token.EqEq, start)
	case lx.try2('!', '='):
		return lx.make(token.BangEq, start)
	case lx.try2('<', '='):
		return lx.make(token.LtEq, start)
	case lx.try2('>', '='):
		return lx.make(token.GtEq, start)
	case lx.try2('<', '<'):
		return lx.make(token.Shl, start)
	case lx.try2('>', '>'):
		return lx.make(token.Shr, start)
	}

	single := map[byte]token.Kind{
		'+': token.Plus,
		'-': token.Minus,
		'*': token.Star,
		'/': token.Slash,
		'%': token.Percent,
		'<': token.Lt,
		'>': token.Gt,
		'&': token.Amp,
		'|': token.Pipe,
		'^': token.Caret,
		'~': token.Tilde,
		'!': token.Bang,
		'=': token.Assign,
		':': token.Colon,
		';': token.Semicolon,
		',': token.Comma,
		'#': token.Hash,
		'(': token.LParen,
		')': token.RParen,
	}

	if kind, ok := single[lx.cursor.PeekByte()]; ok {
		lx.cursor.Bump()
		return lx.make(kind, start)
	}

	// неизвестные байты склеиваются в один Invalid токен
	for !lx.cursor.EOF() && !lx.recognized(lx.cursor.PeekByte()) {
		lx.cursor.Bump()
	}
	tok := lx.make(token.Invalid, start)
	lx.report(diag.LexUnknownChar, tok.Span, "Unrecognized input.")
	return tok
}

// recognized reports whether the byte can start some token.
func (lx *Lexer) recognized(b byte) bool {
	if isSpace(b) || isIdentStartByte(b) || isDec(b) || b == '"' {
		return true
	}
	switch b {
	case '+', '-', '*', '/', '%', '<', '>', '&', '|', '^', '~', '!', '=',
		':', ';', ',', '#', '(', ')':
		return true
	}
	return false
}
