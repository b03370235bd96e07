package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/linkpy/neolang/internal/ast"
	"github.com/linkpy/neolang/internal/source"
)

// ASTPretty prints the annotated tree, one node per line. Resolved nodes
// show their type, constness and cached value so the output doubles as
// the result dump of 'nl check'.
func ASTPretty(w io.Writer, stmts []ast.Stmt, fs *source.FileSet) {
	p := astPrinter{w: w, fs: fs}
	for _, s := range stmts {
		p.stmt(s, 0)
	}
}

type astPrinter struct {
	w  io.Writer
	fs *source.FileSet
}

func (p *astPrinter) line(depth int, format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *astPrinter) pos(span source.Span) string {
	start, _ := p.fs.Resolve(span)
	return fmt.Sprintf("%d:%d", start.Line, start.Col)
}

func (p *astPrinter) stmt(s ast.Stmt, depth int) {
	switch st := s.(type) {
	case *ast.ConstStmt:
		p.line(depth, "const %s @%s%s%s", st.Name.Name, p.pos(st.Span), annotations(&st.Name.ExprBase), stmtFlags(st.Flags))
		if st.Doc != "" {
			p.line(depth+1, "doc: %q", st.Doc)
		}
		if st.TypeExpr != nil {
			p.line(depth+1, "type:")
			p.expr(st.TypeExpr, depth+2)
		}
		p.line(depth+1, "value:")
		p.expr(st.Value, depth+2)

	case *ast.ProcStmt:
		traits := ""
		if st.Recursive {
			traits += " recursive"
		}
		if st.EntryPoint {
			traits += " entry_point"
		}
		p.line(depth, "proc %s @%s%s%s", st.Name.Name, p.pos(st.Span), traits, stmtFlags(st.Flags))
		if st.Doc != "" {
			p.line(depth+1, "doc: %q", st.Doc)
		}
		for _, param := range st.Params {
			p.line(depth+1, "param %s%s", param.Name.Name, annotations(&param.Name.ExprBase))
			p.expr(param.TypeExpr, depth+2)
		}
		if st.Returns != nil {
			p.line(depth+1, "returns:")
			p.expr(st.Returns, depth+2)
		}
		for _, inner := range st.Body {
			p.stmt(inner, depth+1)
		}
	}
}

func (p *astPrinter) expr(e ast.Expr, depth int) {
	switch ex := e.(type) {
	case *ast.IdentExpr:
		sym := ""
		if ex.Sym.IsValid() {
			sym = fmt.Sprintf(" #%d", ex.Sym)
		}
		p.line(depth, "ident %s%s%s", ex.Name, sym, annotations(&ex.ExprBase))

	case *ast.IntExpr:
		p.line(depth, "int %s %s%s", ex.Text, ex.Flag, annotations(&ex.ExprBase))

	case *ast.StringExpr:
		p.line(depth, "string %q%s", ex.Text, annotations(&ex.ExprBase))

	case *ast.BinaryExpr:
		p.line(depth, "binary '%s'%s", ex.Op, annotations(&ex.ExprBase))
		p.expr(ex.Left, depth+1)
		p.expr(ex.Right, depth+1)

	case *ast.UnaryExpr:
		p.line(depth, "unary '%s'%s", ex.Op, annotations(&ex.ExprBase))
		p.expr(ex.Operand, depth+1)

	case *ast.CallExpr:
		p.line(depth, "call%s", annotations(&ex.ExprBase))
		p.expr(ex.Callee, depth+1)
		for _, a := range ex.Args {
			p.expr(a, depth+1)
		}

	case *ast.GroupExpr:
		p.line(depth, "group%s", annotations(&ex.ExprBase))
		p.expr(ex.Inner, depth+1)

	case *ast.FieldExpr:
		p.line(depth, "field /%s%s", ex.Name.Name, annotations(&ex.ExprBase))
		p.expr(ex.Target, depth+1)
	}
}

func annotations(base *ast.ExprBase) string {
	var b strings.Builder
	if base.Type.IsValid() {
		fmt.Fprintf(&b, " : %s", base.Type)
	}
	fmt.Fprintf(&b, " [%s]", base.Constness)
	if !base.Value.IsNone() {
		fmt.Fprintf(&b, " = %s", base.Value)
	}
	return b.String()
}

func stmtFlags(flags ast.StmtFlags) string {
	var parts []string
	if flags.Has(ast.FlagDumpAST) {
		parts = append(parts, "#dump_ast")
	}
	if flags.Has(ast.FlagDumpCode) {
		parts = append(parts, "#dump_code")
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}
