package driver

import (
	"time"

	"github.com/linkpy/neolang/internal/ast"
	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/sema"
	"github.com/linkpy/neolang/internal/source"
	"github.com/linkpy/neolang/internal/symbols"
	"github.com/linkpy/neolang/internal/types"
	"github.com/linkpy/neolang/internal/vm"
)

// CheckResult carries the fully annotated tree of one file plus the
// artifacts the debug statement flags asked for.
type CheckResult struct {
	FileSet *source.FileSet
	File    *source.File
	Stmts   []ast.Stmt
	Syms    *symbols.Table
	Bag     *diag.Bag
	// OK is true iff no error diagnostics were emitted by any phase.
	OK bool
	// Dumps are the bytecode listings requested with #dump_code.
	Dumps   []CodeDump
	Timings Timings
}

// CodeDump is one compiled constant initializer.
type CodeDump struct {
	Name string
	Code []vm.Instr
}

// Check runs the full pipeline on one file: tokenize+parse, identifier
// resolution, type resolution. A failing phase prevents the next from
// running; an internal invariant violation comes back as a Go error.
func Check(filePath string, maxDiagnostics int) (*CheckResult, error) {
	parsed, err := Parse(filePath, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return checkParsed(parsed)
}

// CheckVirtual checks in-memory source.
func CheckVirtual(name string, content []byte, maxDiagnostics int) (*CheckResult, error) {
	parsed, err := ParseVirtual(name, content, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return checkParsed(parsed)
}

func checkParsed(parsed *ParseResult) (*CheckResult, error) {
	result := &CheckResult{
		FileSet: parsed.FileSet,
		File:    parsed.File,
		Stmts:   parsed.Stmts,
		Bag:     parsed.Bag,
	}
	reporter := &diag.BagReporter{Bag: parsed.Bag}

	if parsed.Bag.HasErrors() {
		return result, nil
	}

	syms := symbols.NewTable(symbols.Hints{Symbols: 64}, nil)
	result.Syms = syms

	resolveStart := time.Now()
	resolver := sema.NewResolver(syms, reporter)
	if !resolver.Resolve(parsed.Stmts) {
		result.Timings.Resolve = time.Since(resolveStart)
		return result, nil
	}
	result.Timings.Resolve = time.Since(resolveStart)

	checkStart := time.Now()
	// fixed-point passes may revisit nodes; the dedup layer drops repeats
	checker := sema.NewChecker(syms, diag.NewDedupReporter(reporter))
	ok, err := checker.Check(parsed.Stmts)
	result.Timings.Check = time.Since(checkStart)
	if err != nil {
		return nil, err
	}
	if !ok {
		return result, nil
	}

	result.OK = !parsed.Bag.HasErrors()
	if result.OK {
		result.collectDumps()
	}
	return result, nil
}

// collectDumps compiles the initializers of constants flagged with
// #dump_code.
func (r *CheckResult) collectDumps() {
	ev := vm.NewEvaluator(r.Syms, nil)
	for _, s := range r.Stmts {
		c, ok := s.(*ast.ConstStmt)
		if !ok || !c.Flags.Has(ast.FlagDumpCode) {
			continue
		}
		hint := types.Type{}
		if c.Name != nil {
			hint = c.Name.Type
		}
		if code, ok := ev.Compile(c.Value, hint); ok {
			r.Dumps = append(r.Dumps, CodeDump{Name: c.Name.Name, Code: code})
		}
	}
}

// DumpASTStmts returns the statements flagged with #dump_ast.
func (r *CheckResult) DumpASTStmts() []ast.Stmt {
	var out []ast.Stmt
	for _, s := range r.Stmts {
		switch st := s.(type) {
		case *ast.ConstStmt:
			if st.Flags.Has(ast.FlagDumpAST) {
				out = append(out, s)
			}
		case *ast.ProcStmt:
			if st.Flags.Has(ast.FlagDumpAST) {
				out = append(out, s)
			}
		}
	}
	return out
}
