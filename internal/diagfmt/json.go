package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/source"
)

type jsonPos struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

type jsonSpan struct {
	File  string   `json:"file"`
	Start uint32   `json:"start"`
	End   uint32   `json:"end"`
	Pos   *jsonPos `json:"pos,omitempty"`
}

type jsonNote struct {
	Span jsonSpan `json:"span"`
	Msg  string   `json:"msg"`
}

type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Span     jsonSpan   `json:"span"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

// JSON serializes diagnostics for machine consumption.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	out := make([]jsonDiagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Span:     makeJSONSpan(fs, d.Primary, opts),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				jd.Notes = append(jd.Notes, jsonNote{
					Span: makeJSONSpan(fs, n.Span, opts),
					Msg:  n.Msg,
				})
			}
		}
		out = append(out, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func makeJSONSpan(fs *source.FileSet, span source.Span, opts JSONOpts) jsonSpan {
	file := fs.Get(span.File)
	js := jsonSpan{
		File:  file.FormatPath(opts.PathMode.key(), ""),
		Start: span.Start,
		End:   span.End,
	}
	if opts.IncludePositions {
		start, _ := fs.Resolve(span)
		js.Pos = &jsonPos{Line: start.Line, Col: start.Col}
	}
	return js
}
