package parser

import (
	"strings"

	"github.com/linkpy/neolang/internal/ast"
	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/lexer"
	"github.com/linkpy/neolang/internal/source"
	"github.com/linkpy/neolang/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Stmts []ast.Stmt
	Bag   *diag.Bag
}

// Parser — состояние парсера на один файл.
// Один значимый токен lookahead (плюс буфер на второй для '/'-доступа);
// пробельные токены и комментарии пропускаются жадно, documentation-токены
// копятся и приклеиваются к следующему statement.
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	buf      []token.Token // незанятые значимые токены (0..2)
	docLines []string      // накопленные '///' строки
	lastSpan source.Span   // span последнего съеденного токена для лучшей диагностики
}

// ParseFile — входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:       lx,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	stmts := p.parseStatements(false)

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		Stmts: stmts,
		Bag:   bag,
	}
}

// IsError reports whether any syntax error was recorded.
func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// ===== Поток значимых токенов =====

// fill pulls significant tokens from the lexer into the lookahead buffer,
// collecting documentation lines on the way.
func (p *Parser) fill(n int) {
	for len(p.buf) < n {
		tok := p.lx.Next()
		if tok.Kind.IsSkippable() {
			if tok.Kind == token.Doc {
				p.docLines = append(p.docLines, docText(tok.Text))
			}
			continue
		}
		p.buf = append(p.buf, tok)
	}
}

func (p *Parser) peek() token.Token {
	p.fill(1)
	return p.buf[0]
}

func (p *Parser) peek2() token.Token {
	p.fill(2)
	return p.buf[1]
}

func (p *Parser) next() token.Token {
	p.fill(1)
	tok := p.buf[0]
	p.buf = p.buf[1:]
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// expect consumes a token of the given kind or reports one of the generic
// expectation diagnostics.
func (p *Parser) expect(k token.Kind, code diag.Code, what string) (token.Token, bool) {
	tok := p.peek()
	if tok.Kind == k {
		return p.next(), true
	}
	if tok.Kind == token.EOF {
		p.errorAt(diag.SynUnexpectedEOF, tok.Span, "Unexpected end of file, expected "+what+".")
	} else if tok.Kind != token.Invalid {
		p.errorAt(code, tok.Span, "Unexpected token '"+tok.Text+"', expected "+what+".")
	}
	return tok, false
}

// takeDoc consumes the accumulated documentation block.
func (p *Parser) takeDoc() string {
	if len(p.docLines) == 0 {
		return ""
	}
	doc := strings.Join(p.docLines, "\n")
	p.docLines = nil
	return doc
}

func docText(raw string) string {
	text := strings.TrimPrefix(raw, "///")
	return strings.TrimPrefix(text, " ")
}

// ===== Диагностика =====

func (p *Parser) errorAt(code diag.Code, span source.Span, msg string) {
	p.opts.CurrentErrors++
	if p.opts.Reporter == nil || p.opts.Enough() {
		return
	}
	diag.ReportError(p.opts.Reporter, code, span, msg).Emit()
}
