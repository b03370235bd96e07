// Package driver wires the compilation phases together: tokenize, parse,
// resolve, type-check. Phases communicate through a shared FileSet,
// identifier storage and diagnostic bag; each phase runs only when the
// previous one succeeded.
package driver

import (
	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/lexer"
	"github.com/linkpy/neolang/internal/source"
	"github.com/linkpy/neolang/internal/token"
)

// TokenizeResult carries the token stream of one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads and tokenizes a single file.
func Tokenize(filePath string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	tokens := make([]token.Token, 0, 256)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
