package driver

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/linkpy/neolang/internal/ast"
	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/lexer"
	"github.com/linkpy/neolang/internal/parser"
	"github.com/linkpy/neolang/internal/source"
)

// ParseResult carries the syntax tree of one file.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Stmts   []ast.Stmt
	Bag     *diag.Bag
}

// Parse loads, tokenizes and parses a single file.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	return parseLoaded(fs, fs.Get(fileID), maxDiagnostics)
}

// ParseVirtual parses in-memory source, mostly for tests and stdin.
func ParseVirtual(name string, content []byte, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.AddVirtual(name, content)
	if err != nil {
		return nil, err
	}
	return parseLoaded(fs, fs.Get(fileID), maxDiagnostics)
}

func parseLoaded(fs *source.FileSet, file *source.File, maxDiagnostics int) (*ParseResult, error) {
	bag := diag.NewBag(maxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, fmt.Errorf("max diagnostics overflow: %w", err)
	}

	result := parser.ParseFile(lx, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Stmts:   result.Stmts,
		Bag:     bag,
	}, nil
}
