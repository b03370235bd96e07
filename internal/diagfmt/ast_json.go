package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/linkpy/neolang/internal/ast"
)

type jsonExpr struct {
	Node      string     `json:"node"`
	Name      string     `json:"name,omitempty"`
	Text      string     `json:"text,omitempty"`
	Op        string     `json:"op,omitempty"`
	Flag      string     `json:"flag,omitempty"`
	Sym       uint32     `json:"sym,omitempty"`
	Type      string     `json:"type,omitempty"`
	Constness string     `json:"constness"`
	Value     string     `json:"value,omitempty"`
	Children  []jsonExpr `json:"children,omitempty"`
}

type jsonParam struct {
	Name string   `json:"name"`
	Type jsonExpr `json:"type"`
}

type jsonStmt struct {
	Node       string      `json:"node"`
	Name       string      `json:"name"`
	Doc        string      `json:"doc,omitempty"`
	Flags      []string    `json:"flags,omitempty"`
	Recursive  bool        `json:"recursive,omitempty"`
	EntryPoint bool        `json:"entry_point,omitempty"`
	Type       *jsonExpr   `json:"type,omitempty"`
	Value      *jsonExpr   `json:"value,omitempty"`
	Result     string      `json:"result,omitempty"`
	Params     []jsonParam `json:"params,omitempty"`
	Returns    *jsonExpr   `json:"returns,omitempty"`
	Body       []jsonStmt  `json:"body,omitempty"`
}

// ASTJSON serializes the annotated tree.
func ASTJSON(w io.Writer, stmts []ast.Stmt) error {
	out := make([]jsonStmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, makeJSONStmt(s))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func makeJSONStmt(s ast.Stmt) jsonStmt {
	switch st := s.(type) {
	case *ast.ConstStmt:
		js := jsonStmt{
			Node:  "const",
			Name:  st.Name.Name,
			Doc:   st.Doc,
			Flags: flagNames(st.Flags),
		}
		if st.TypeExpr != nil {
			t := makeJSONExpr(st.TypeExpr)
			js.Type = &t
		}
		v := makeJSONExpr(st.Value)
		js.Value = &v
		if !st.Name.Value.IsNone() {
			js.Result = st.Name.Value.String()
		}
		return js

	case *ast.ProcStmt:
		js := jsonStmt{
			Node:       "proc",
			Name:       st.Name.Name,
			Doc:        st.Doc,
			Flags:      flagNames(st.Flags),
			Recursive:  st.Recursive,
			EntryPoint: st.EntryPoint,
		}
		for _, p := range st.Params {
			js.Params = append(js.Params, jsonParam{
				Name: p.Name.Name,
				Type: makeJSONExpr(p.TypeExpr),
			})
		}
		if st.Returns != nil {
			r := makeJSONExpr(st.Returns)
			js.Returns = &r
		}
		for _, inner := range st.Body {
			js.Body = append(js.Body, makeJSONStmt(inner))
		}
		return js
	}
	return jsonStmt{Node: "invalid"}
}

func makeJSONExpr(e ast.Expr) jsonExpr {
	base := e.Base()
	je := jsonExpr{
		Constness: base.Constness.String(),
	}
	if base.Type.IsValid() {
		je.Type = base.Type.String()
	}
	if !base.Value.IsNone() {
		je.Value = base.Value.String()
	}

	switch ex := e.(type) {
	case *ast.IdentExpr:
		je.Node = "ident"
		je.Name = ex.Name
		je.Sym = uint32(ex.Sym)
	case *ast.IntExpr:
		je.Node = "int"
		je.Text = ex.Text
		je.Flag = ex.Flag.String()
	case *ast.StringExpr:
		je.Node = "string"
		je.Text = ex.Text
	case *ast.BinaryExpr:
		je.Node = "binary"
		je.Op = ex.Op.String()
		je.Children = []jsonExpr{makeJSONExpr(ex.Left), makeJSONExpr(ex.Right)}
	case *ast.UnaryExpr:
		je.Node = "unary"
		je.Op = ex.Op.String()
		je.Children = []jsonExpr{makeJSONExpr(ex.Operand)}
	case *ast.CallExpr:
		je.Node = "call"
		je.Children = append(je.Children, makeJSONExpr(ex.Callee))
		for _, a := range ex.Args {
			je.Children = append(je.Children, makeJSONExpr(a))
		}
	case *ast.GroupExpr:
		je.Node = "group"
		je.Children = []jsonExpr{makeJSONExpr(ex.Inner)}
	case *ast.FieldExpr:
		je.Node = "field"
		je.Name = ex.Name.Name
		je.Children = []jsonExpr{makeJSONExpr(ex.Target)}
	}
	return je
}

func flagNames(flags ast.StmtFlags) []string {
	var names []string
	if flags.Has(ast.FlagDumpAST) {
		names = append(names, "dump_ast")
	}
	if flags.Has(ast.FlagDumpCode) {
		names = append(names, "dump_code")
	}
	return names
}
