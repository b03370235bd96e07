package diagfmt

import (
	"fmt"
	"io"

	"github.com/linkpy/neolang/internal/ast"
	"github.com/linkpy/neolang/internal/source"
)

// ASTTree prints the annotated tree with box-drawing connectors.
func ASTTree(w io.Writer, stmts []ast.Stmt, fs *source.FileSet) {
	t := treePrinter{w: w, fs: fs}
	for i, s := range stmts {
		t.stmt(s, "", i == len(stmts)-1)
	}
}

type treePrinter struct {
	w  io.Writer
	fs *source.FileSet
}

func (t *treePrinter) node(prefix string, last bool, format string, args ...any) string {
	connector := "├─ "
	childPrefix := prefix + "│  "
	if last {
		connector = "└─ "
		childPrefix = prefix + "   "
	}
	fmt.Fprintf(t.w, "%s%s%s\n", prefix, connector, fmt.Sprintf(format, args...))
	return childPrefix
}

func (t *treePrinter) pos(span source.Span) string {
	start, _ := t.fs.Resolve(span)
	return fmt.Sprintf("@%d:%d", start.Line, start.Col)
}

func (t *treePrinter) stmt(s ast.Stmt, prefix string, last bool) {
	switch st := s.(type) {
	case *ast.ConstStmt:
		child := t.node(prefix, last, "const %s %s%s%s", st.Name.Name, t.pos(st.Span), annotations(&st.Name.ExprBase), stmtFlags(st.Flags))
		if st.TypeExpr != nil {
			t.expr(st.TypeExpr, child, false)
		}
		t.expr(st.Value, child, true)

	case *ast.ProcStmt:
		traits := ""
		if st.Recursive {
			traits += " recursive"
		}
		if st.EntryPoint {
			traits += " entry_point"
		}
		child := t.node(prefix, last, "proc %s %s%s%s", st.Name.Name, t.pos(st.Span), traits, stmtFlags(st.Flags))

		rest := len(st.Body)
		if st.Returns != nil {
			rest++
		}
		for i, p := range st.Params {
			paramLast := rest == 0 && i == len(st.Params)-1
			paramChild := t.node(child, paramLast, "param %s%s", p.Name.Name, annotations(&p.Name.ExprBase))
			t.expr(p.TypeExpr, paramChild, true)
		}
		if st.Returns != nil {
			retChild := t.node(child, len(st.Body) == 0, "returns")
			t.expr(st.Returns, retChild, true)
		}
		for i, inner := range st.Body {
			t.stmt(inner, child, i == len(st.Body)-1)
		}
	}
}

func (t *treePrinter) expr(e ast.Expr, prefix string, last bool) {
	switch ex := e.(type) {
	case *ast.IdentExpr:
		t.node(prefix, last, "ident %s%s", ex.Name, annotations(&ex.ExprBase))

	case *ast.IntExpr:
		t.node(prefix, last, "int %s %s%s", ex.Text, ex.Flag, annotations(&ex.ExprBase))

	case *ast.StringExpr:
		t.node(prefix, last, "string %q%s", ex.Text, annotations(&ex.ExprBase))

	case *ast.BinaryExpr:
		child := t.node(prefix, last, "binary '%s'%s", ex.Op, annotations(&ex.ExprBase))
		t.expr(ex.Left, child, false)
		t.expr(ex.Right, child, true)

	case *ast.UnaryExpr:
		child := t.node(prefix, last, "unary '%s'%s", ex.Op, annotations(&ex.ExprBase))
		t.expr(ex.Operand, child, true)

	case *ast.CallExpr:
		child := t.node(prefix, last, "call%s", annotations(&ex.ExprBase))
		t.expr(ex.Callee, child, len(ex.Args) == 0)
		for i, a := range ex.Args {
			t.expr(a, child, i == len(ex.Args)-1)
		}

	case *ast.GroupExpr:
		child := t.node(prefix, last, "group%s", annotations(&ex.ExprBase))
		t.expr(ex.Inner, child, true)

	case *ast.FieldExpr:
		child := t.node(prefix, last, "field /%s%s", ex.Name.Name, annotations(&ex.ExprBase))
		t.expr(ex.Target, child, true)
	}
}
