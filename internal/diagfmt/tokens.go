package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/linkpy/neolang/internal/source"
	"github.com/linkpy/neolang/internal/token"
)

// Tokens prints one token per line: kind, position and source slice.
func Tokens(w io.Writer, tokens []token.Token, fs *source.FileSet) {
	for _, t := range tokens {
		start, _ := fs.Resolve(t.Span)
		fmt.Fprintf(w, "%3d:%-3d %-12s %q\n", start.Line, start.Col, t.Kind, t.Text)
	}
}

type jsonToken struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Line  uint32 `json:"line"`
	Col   uint32 `json:"col"`
}

// TokensJSON serializes the token stream.
func TokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	out := make([]jsonToken, 0, len(tokens))
	for _, t := range tokens {
		start, _ := fs.Resolve(t.Span)
		out = append(out, jsonToken{
			Kind:  t.Kind.String(),
			Text:  t.Text,
			Start: t.Span.Start,
			End:   t.Span.End,
			Line:  start.Line,
			Col:   start.Col,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
