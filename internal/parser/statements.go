package parser

import (
	"github.com/linkpy/neolang/internal/ast"
	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/token"
)

// parseStatements parses statements until EOF (top level) or a closing
// 'end' (inside a proc body when nested is true).
func (p *Parser) parseStatements(nested bool) []ast.Stmt {
	stmts := make([]ast.Stmt, 0)
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF:
			if nested {
				p.errorAt(diag.SynUnexpectedEOF, tok.Span, "Unexpected end of file, expected 'end'.")
			}
			return stmts

		case token.KwEnd:
			if nested {
				return stmts
			}
			p.errorAt(diag.SynUnexpectedToken, tok.Span, "Unexpected token 'end'.")
			p.next()

		case token.Invalid:
			// лексер уже зарепортил
			p.next()

		default:
			if s := p.parseStatement(); s != nil {
				stmts = append(stmts, s)
			}
		}
	}
}

// parseStatement parses (StatementFlags)? (Constant | Function).
func (p *Parser) parseStatement() ast.Stmt {
	doc := p.takeDoc()
	flags := p.parseStmtFlags()

	tok := p.peek()
	switch tok.Kind {
	case token.KwConst:
		return p.parseConstant(doc, flags)
	case token.KwProc:
		return p.parseProc(doc, flags)
	default:
		if tok.Kind != token.Invalid {
			p.errorAt(diag.SynUnexpectedToken, tok.Span,
				"Unexpected token '"+tok.Text+"', expected a statement.")
		}
		p.next()
		return nil
	}
}

// parseStmtFlags parses '#' Name pairs. Unknown names are diagnosed and
// dropped; the statement itself still parses.
func (p *Parser) parseStmtFlags() ast.StmtFlags {
	var flags ast.StmtFlags
	for p.at(token.Hash) {
		hash := p.next()
		name, ok := p.expect(token.Ident, diag.SynInvalidStmtFlag, "a statement flag name")
		if !ok {
			return flags
		}
		switch name.Text {
		case "dump_ast":
			flags |= ast.FlagDumpAST
		case "dump_code":
			flags |= ast.FlagDumpCode
		default:
			p.errorAt(diag.SynInvalidStmtFlag, hash.Span.Cover(name.Span),
				"Invalid statement flag '"+name.Text+"'.")
		}
	}
	return flags
}

// parseConstant parses 'const' Name (':' Atom)? '=' CallExpr ';'.
// On failure it resynchronizes to the next ';' at zero nesting depth.
func (p *Parser) parseConstant(doc string, flags ast.StmtFlags) ast.Stmt {
	kw := p.next() // 'const'

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "a constant name")
	if !ok {
		p.recoverConstant()
		return nil
	}
	name := identFromToken(nameTok)

	var typeExpr ast.Expr
	if p.at(token.Colon) {
		p.next()
		typeExpr = p.parseAtom()
		if typeExpr == nil {
			p.recoverConstant()
			return nil
		}
	}

	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "'='"); !ok {
		p.recoverConstant()
		return nil
	}

	value := p.parseCallExpr()
	if value == nil {
		p.recoverConstant()
		return nil
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "';'")
	if !ok {
		p.recoverConstant()
		return nil
	}

	return &ast.ConstStmt{
		Span:     kw.Span.Cover(semi.Span),
		Doc:      doc,
		Flags:    flags,
		Name:     name,
		TypeExpr: typeExpr,
		Value:    value,
	}
}

// parseProc parses 'proc' Name FnDecl* 'begin' Statement* 'end'.
// On failure it resynchronizes to the matching-depth 'end'.
func (p *Parser) parseProc(doc string, flags ast.StmtFlags) ast.Stmt {
	kw := p.next() // 'proc'

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "a procedure name")
	if !ok {
		p.recoverProc()
		return nil
	}

	proc := &ast.ProcStmt{
		Doc:   doc,
		Flags: flags,
		Name:  identFromToken(nameTok),
	}

	for {
		tok := p.peek()
		switch tok.Kind {
		case token.KwIs:
			p.next()
			trait := p.peek()
			switch trait.Kind {
			case token.KwRecursive:
				p.next()
				proc.Recursive = true
			case token.KwEntryPoint:
				p.next()
				proc.EntryPoint = true
			default:
				p.errorAt(diag.SynUnexpectedToken, trait.Span,
					"Unexpected token '"+trait.Text+"', expected 'recursive' or 'entry_point'.")
				p.recoverProc()
				return nil
			}

		case token.KwParam:
			p.next()
			pnameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "a parameter name")
			if !ok {
				p.recoverProc()
				return nil
			}
			ptype := p.parseAtom()
			if ptype == nil {
				p.recoverProc()
				return nil
			}
			proc.Params = append(proc.Params, &ast.Param{
				Span:     pnameTok.Span.Cover(ptype.NodeSpan()),
				Name:     identFromToken(pnameTok),
				TypeExpr: ptype,
			})

		case token.KwReturns:
			p.next()
			ret := p.parseAtom()
			if ret == nil {
				p.recoverProc()
				return nil
			}
			proc.Returns = ret

		case token.KwBegin:
			p.next()
			proc.Body = p.parseStatements(true)
			endTok, ok := p.expect(token.KwEnd, diag.SynExpectEnd, "'end'")
			if !ok {
				return nil
			}
			proc.Span = kw.Span.Cover(endTok.Span)
			return proc

		case token.EOF:
			p.errorAt(diag.SynUnexpectedEOF, tok.Span, "Unexpected end of file inside a procedure header.")
			return nil

		default:
			p.errorAt(diag.SynUnexpectedToken, tok.Span,
				"Unexpected token '"+tok.Text+"', expected 'is', 'param', 'returns' or 'begin'.")
			p.recoverProc()
			return nil
		}
	}
}

// ===== Восстановление после ошибок =====

// recoverConstant skips tokens until the next ';' at zero nesting depth
// (parens and begin/end both count). Lexical unknown-input errors found
// while skipping are swallowed.
func (p *Parser) recoverConstant() {
	p.lx.SetSuppressErrors(true)
	defer p.lx.SetSuppressErrors(false)

	depth := 0
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF:
			return
		case token.LParen, token.KwBegin:
			depth++
		case token.RParen:
			if depth > 0 {
				depth--
			}
		case token.KwEnd:
			if depth > 0 {
				depth--
			}
		case token.Semicolon:
			if depth == 0 {
				p.next()
				return
			}
		}
		p.next()
	}
}

// recoverProc skips tokens until the matching-depth 'end'. Failures
// happen in the procedure header (body statements recover on their own),
// so the procedure's own 'begin' is still ahead: skip to it first, then
// balance nested begin/end pairs.
func (p *Parser) recoverProc() {
	p.lx.SetSuppressErrors(true)
	defer p.lx.SetSuppressErrors(false)

	for !p.at(token.KwBegin) {
		if p.at(token.EOF) {
			return
		}
		p.next()
	}
	p.next() // 'begin'

	depth := 0
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF:
			return
		case token.KwBegin:
			depth++
		case token.KwEnd:
			if depth == 0 {
				p.next()
				return
			}
			depth--
		}
		p.next()
	}
}

func identFromToken(tok token.Token) *ast.IdentExpr {
	return &ast.IdentExpr{
		ExprBase: ast.ExprBase{Span: tok.Span},
		Name:     tok.Text,
	}
}
