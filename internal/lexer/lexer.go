package lexer

import (
	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/source"
	"github.com/linkpy/neolang/internal/token"
)

// Lexer produces the token stream for one file. Whitespace, comments and
// documentation lines come out as ordinary tokens; nothing is dropped, so
// the concatenated Text of all tokens reproduces the input bytes.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	opts     Options
	look     *token.Token // 1 элементный буфер для токена
	suppress bool         // не репортить лексические ошибки (режим восстановления парсера)
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
	}
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
			Text: "",
		}
	}

	ch := lx.cursor.PeekByte()

	switch {
	case isSpace(ch):
		return lx.scanWhitespace()

	case ch == '/' && lx.peekIs(1, '/'):
		return lx.scanComment()

	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '"':
		return lx.scanString()

	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// SetSuppressErrors toggles swallowing of lexical diagnostics. The parser
// enables this while it skips tokens during error recovery.
func (lx *Lexer) SetSuppressErrors(on bool) {
	lx.suppress = on
}

// EmptySpan returns a zero-length span at the current cursor position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) peekIs(n uint32, b byte) bool {
	got, ok := lx.cursor.Peek(n)
	return ok && got == b
}

func (lx *Lexer) report(code diag.Code, span source.Span, msg string) {
	if lx.suppress || lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, span, msg).Emit()
}

func (lx *Lexer) make(kind token.Kind, m Mark) token.Token {
	return token.Token{
		Kind: kind,
		Span: lx.cursor.SpanFrom(m),
		Text: string(lx.cursor.SliceFrom(m)),
	}
}
