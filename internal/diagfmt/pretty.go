package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/linkpy/neolang/internal/diag"
	"github.com/linkpy/neolang/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	noteColor = color.New(color.FgCyan)
	spanColor = color.New(color.FgGreen, color.Bold)
)

// Pretty renders diagnostics for humans. It walks bag.Items() (call
// bag.Sort() first) and prints "<path>:<line>:<col>: <SEV> [<CODE>]:
// <Message>", then the covered source line with a ^~~~ underline, then
// the notes with a narrower gutter.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeader(w, fs, d.Severity, d.Code, d.Primary, d.Message, opts, true)
		writeContext(w, fs, d.Primary, opts, true)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				writeHeader(w, fs, diag.SevNote, d.Code, n.Span, n.Msg, opts, false)
				writeContext(w, fs, n.Span, opts, false)
			}
		}
	}
}

func writeHeader(w io.Writer, fs *source.FileSet, sev diag.Severity, code diag.Code,
	span source.Span, msg string, opts PrettyOpts, primary bool) {
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)

	gutter := ""
	if !primary {
		gutter = "  "
	}

	sevText := sev.String()
	if opts.Color {
		sevText = severityColor(sev).Sprint(sevText)
	}

	fmt.Fprintf(w, "%s%s:%d:%d: %s [%s]: %s\n",
		gutter, file.FormatPath(opts.PathMode.key(), ""),
		start.Line, start.Col, sevText, code.ID(), msg)
}

// writeContext prints the first source line the span covers with a caret
// underline. Secondary notes use a narrower gutter.
func writeContext(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts, primary bool) {
	file := fs.Get(span.File)
	if file == nil || len(file.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" && span.Len() == 0 {
		return
	}

	gutter := "    "
	if !primary {
		gutter = "      "
	}

	fmt.Fprintf(w, "%s%s\n", gutter, line)

	// underline: prefix width measured with runewidth
	prefixLen := int(start.Col) - 1
	if prefixLen > len(line) {
		prefixLen = len(line)
	}
	pad := runewidth.StringWidth(line[:prefixLen])

	caretLen := 1
	if end.Line == start.Line && end.Col > start.Col {
		caretLen = int(end.Col - start.Col)
	} else if end.Line > start.Line {
		caretLen = len(line) - prefixLen
	}
	if caretLen < 1 {
		caretLen = 1
	}

	underline := "^" + strings.Repeat("~", caretLen-1)
	if opts.Color {
		underline = spanColor.Sprint(underline)
	}
	fmt.Fprintf(w, "%s%s%s\n", gutter, strings.Repeat(" ", pad), underline)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return noteColor
	}
}
