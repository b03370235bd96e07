package ast

// Walker bundles the optional callbacks of one traversal. Every field may
// be nil; the traverser calls what is set and recurses in a fixed order:
// enter, children left-to-right, exit.
//
// The same traversal drives both mutating analysis passes and read-only
// printers, so callbacks receive the nodes directly.
type Walker struct {
	EnterConst func(*ConstStmt)
	ExitConst  func(*ConstStmt)

	EnterProc func(*ProcStmt)
	// EnterProcScope fires after the proc name has been visited but
	// before its params and body, so passes can push a nested scope with
	// the proc itself already bound outside of it.
	EnterProcScope func(*ProcStmt)
	ExitProc       func(*ProcStmt)

	EnterParam func(*Param)
	ExitParam  func(*Param)

	EnterBinary func(*BinaryExpr)
	ExitBinary  func(*BinaryExpr)
	EnterUnary  func(*UnaryExpr)
	ExitUnary   func(*UnaryExpr)
	EnterCall   func(*CallExpr)
	ExitCall    func(*CallExpr)
	EnterGroup  func(*GroupExpr)
	ExitGroup   func(*GroupExpr)
	EnterField  func(*FieldExpr)
	ExitField   func(*FieldExpr)

	// VisitIdent fires for every identifier; VisitIdentDef and
	// VisitIdentUse additionally fire for defining and using positions.
	VisitIdent    func(*IdentExpr)
	VisitIdentDef func(*IdentExpr)
	VisitIdentUse func(*IdentExpr)
	VisitInteger  func(*IntExpr)
	VisitString   func(*StringExpr)
}

// WalkStmts traverses a statement list in source order.
func (w *Walker) WalkStmts(stmts []Stmt) {
	for _, s := range stmts {
		w.WalkStmt(s)
	}
}

// WalkStmt traverses one statement.
func (w *Walker) WalkStmt(s Stmt) {
	switch st := s.(type) {
	case *ConstStmt:
		call(w.EnterConst, st)
		w.ident(st.Name, true)
		if st.TypeExpr != nil {
			w.WalkExpr(st.TypeExpr)
		}
		w.WalkExpr(st.Value)
		call(w.ExitConst, st)

	case *ProcStmt:
		call(w.EnterProc, st)
		w.ident(st.Name, true)
		call(w.EnterProcScope, st)
		for _, p := range st.Params {
			call(w.EnterParam, p)
			w.ident(p.Name, true)
			w.WalkExpr(p.TypeExpr)
			call(w.ExitParam, p)
		}
		if st.Returns != nil {
			w.WalkExpr(st.Returns)
		}
		w.WalkStmts(st.Body)
		call(w.ExitProc, st)
	}
}

// WalkExpr traverses one expression depth-first, left-to-right.
func (w *Walker) WalkExpr(e Expr) {
	switch ex := e.(type) {
	case *IdentExpr:
		w.ident(ex, false)

	case *IntExpr:
		call(w.VisitInteger, ex)

	case *StringExpr:
		call(w.VisitString, ex)

	case *BinaryExpr:
		call(w.EnterBinary, ex)
		w.WalkExpr(ex.Left)
		w.WalkExpr(ex.Right)
		call(w.ExitBinary, ex)

	case *UnaryExpr:
		call(w.EnterUnary, ex)
		w.WalkExpr(ex.Operand)
		call(w.ExitUnary, ex)

	case *CallExpr:
		call(w.EnterCall, ex)
		w.WalkExpr(ex.Callee)
		for _, a := range ex.Args {
			w.WalkExpr(a)
		}
		call(w.ExitCall, ex)

	case *GroupExpr:
		call(w.EnterGroup, ex)
		w.WalkExpr(ex.Inner)
		call(w.ExitGroup, ex)

	case *FieldExpr:
		call(w.EnterField, ex)
		w.WalkExpr(ex.Target)
		// Field names are not usages on their own; their meaning would
		// depend on the target, which has no resolver semantics yet.
		if ex.Name != nil {
			call(w.VisitIdent, ex.Name)
		}
		call(w.ExitField, ex)
	}
}

func (w *Walker) ident(id *IdentExpr, def bool) {
	if id == nil {
		return
	}
	call(w.VisitIdent, id)
	if def {
		call(w.VisitIdentDef, id)
	} else {
		call(w.VisitIdentUse, id)
	}
}

func call[T any](f func(T), arg T) {
	if f != nil {
		f(arg)
	}
}
