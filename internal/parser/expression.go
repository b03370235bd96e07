package parser

import (
	"github.com/linkpy/neolang/internal/ast"
	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/token"
	"github.com/linkpy/neolang/internal/types"
)

var binaryOps = map[token.Kind]types.BinaryOp{
	token.Plus:    types.BinAdd,
	token.Minus:   types.BinSub,
	token.Star:    types.BinMul,
	token.Slash:   types.BinDiv,
	token.Percent: types.BinMod,
	token.EqEq:    types.BinEq,
	token.BangEq:  types.BinNe,
	token.Lt:      types.BinLt,
	token.LtEq:    types.BinLe,
	token.Gt:      types.BinGt,
	token.GtEq:    types.BinGe,
	token.Shl:     types.BinShl,
	token.Shr:     types.BinShr,
	token.Amp:     types.BinBAnd,
	token.Pipe:    types.BinBOr,
	token.Caret:   types.BinBXor,
	token.KwAnd:   types.BinLAnd,
	token.KwOr:    types.BinLOr,
}

var unaryOps = map[token.Kind]types.UnaryOp{
	token.Plus:  types.UnId,
	token.Minus: types.UnNeg,
	token.Tilde: types.UnBNot,
	token.KwNot: types.UnLNot,
}

// parseCallExpr parses the top-level expression production:
//
//	CallExpr := Unary ( '!' | CallExpr (',' CallExpr)* | BinaryTail )?
//
// A zero-argument call ends with '!'. A call with arguments is a
// right-recursive comma chain (each argument may itself be a call). When
// the token after the unary expression is neither '!' nor an argument
// starter, the expression becomes the LHS of a binary chain instead.
func (p *Parser) parseCallExpr() ast.Expr {
	lhs := p.parseUnary()
	if lhs == nil {
		return nil
	}

	tok := p.peek()
	switch {
	case tok.Kind == token.Bang:
		bang := p.next()
		return &ast.CallExpr{
			ExprBase: ast.ExprBase{Span: lhs.NodeSpan().Cover(bang.Span)},
			Callee:   lhs,
			Bang:     true,
		}

	case p.startsArgument(tok.Kind):
		call := &ast.CallExpr{
			ExprBase: ast.ExprBase{Span: lhs.NodeSpan()},
			Callee:   lhs,
		}
		for {
			arg := p.parseCallExpr()
			if arg == nil {
				return nil
			}
			call.Args = append(call.Args, arg)
			call.Span = call.Span.Cover(arg.NodeSpan())
			if !p.at(token.Comma) {
				return call
			}
			p.next()
		}

	case tok.Kind.IsBinaryOp():
		return p.parseBinaryTail(lhs)

	default:
		return lhs
	}
}

// startsArgument reports whether the kind can begin a call argument.
// Binary operator tokens never do — they bind the expression into a binary
// chain instead.
func (p *Parser) startsArgument(k token.Kind) bool {
	switch k {
	case token.Ident, token.IntLit, token.StringLit, token.LParen,
		token.Tilde, token.KwNot:
		return true
	default:
		return false
	}
}

// parseBinaryTail folds '<op> Unary' repetitions left-to-right. There is
// no operator precedence; parentheses are the only grouping mechanism.
func (p *Parser) parseBinaryTail(lhs ast.Expr) ast.Expr {
	for {
		tok := p.peek()
		op, ok := binaryOps[tok.Kind]
		if !ok {
			return lhs
		}
		p.next()
		rhs := p.parseUnary()
		if rhs == nil {
			return nil
		}
		lhs = &ast.BinaryExpr{
			ExprBase: ast.ExprBase{Span: lhs.NodeSpan().Cover(rhs.NodeSpan())},
			Op:       op,
			Left:     lhs,
			Right:    rhs,
		}
	}
}

// parseUnary parses ('+'|'-'|'~'|'not')* Postfix.
func (p *Parser) parseUnary() ast.Expr {
	tok := p.peek()
	if op, ok := unaryOps[tok.Kind]; ok {
		opTok := p.next()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpr{
			ExprBase: ast.ExprBase{Span: opTok.Span.Cover(operand.NodeSpan())},
			Op:       op,
			Operand:  operand,
		}
	}
	return p.parsePostfix()
}

// parsePostfix parses Atom ('/' Identifier)* — slash-delimited field
// access. A '/' followed by anything but an identifier is left for the
// binary chain (division).
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parseAtom()
	if expr == nil {
		return nil
	}
	for p.at(token.Slash) && p.peek2().Kind == token.Ident {
		p.next() // '/'
		nameTok := p.next()
		name := identFromToken(nameTok)
		expr = &ast.FieldExpr{
			ExprBase: ast.ExprBase{Span: expr.NodeSpan().Cover(nameTok.Span)},
			Target:   expr,
			Name:     name,
		}
	}
	return expr
}

// parseAtom parses Identifier | Integer | String | '(' CallExpr ')'.
func (p *Parser) parseAtom() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.next()
		return identFromToken(tok)

	case token.IntLit:
		p.next()
		return p.finishInteger(tok)

	case token.StringLit:
		p.next()
		text := tok.Text
		if len(text) >= 2 {
			text = text[1 : len(text)-1]
		}
		return &ast.StringExpr{
			ExprBase: ast.ExprBase{Span: tok.Span},
			Raw:      tok.Text,
			Text:     text,
		}

	case token.LParen:
		open := p.next()
		inner := p.parseCallExpr()
		if inner == nil {
			return nil
		}
		closeTok, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "')'")
		if !ok {
			return nil
		}
		return &ast.GroupExpr{
			ExprBase: ast.ExprBase{Span: open.Span.Cover(closeTok.Span)},
			Inner:    inner,
		}

	case token.Invalid:
		// лексер уже зарепортил нераспознанный ввод
		p.next()
		return nil

	case token.EOF:
		p.errorAt(diag.SynUnexpectedEOF, tok.Span, "Unexpected end of file, expected an expression.")
		return nil

	default:
		p.errorAt(diag.SynExpectExpression, tok.Span,
			"Unexpected token '"+tok.Text+"', expected an expression.")
		return nil
	}
}

// finishInteger attaches the optional width flag to an integer literal.
// The flag lexicon is closed; an identifier right after the literal that
// is not a known flag is diagnosed and the literal keeps 'ct'.
func (p *Parser) finishInteger(tok token.Token) ast.Expr {
	node := &ast.IntExpr{
		ExprBase: ast.ExprBase{Span: tok.Span},
		Text:     tok.Text,
		Flag:     token.FlagCt,
	}
	if p.at(token.Ident) {
		flagTok := p.peek()
		if flag, ok := token.LookupIntFlag(flagTok.Text); ok {
			p.next()
			node.Flag = flag
			node.Span = node.Span.Cover(flagTok.Span)
		} else {
			p.next()
			p.errorAt(diag.SynUnknownIntFlag, flagTok.Span,
				"Unknown integer type flag '"+flagTok.Text+"'.")
		}
	}
	return node
}
