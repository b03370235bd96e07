package lexer

import "github.com/linkpy/neolang/internal/diag"

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics. Nil drops them.
	Reporter diag.Reporter
}
