package diag

import (
	"fmt"
	"io"
	"strings"
)

// Formatter renders diagnostics with source code snippets and underlines.
type Formatter struct {
	w io.Writer

	sources map[string]string // source text keyed by filename ("" for anonymous input)
}

// NewFormatter creates a formatter writing to w.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{
		w:       w,
		sources: make(map[string]string),
	}
}

// AddSource registers source text so spans pointing into it can be rendered
// as snippets. The empty filename registers anonymous input such as a REPL line.
func (f *Formatter) AddSource(filename, src string) {
	f.sources[filename] = src
}

// Format writes a single diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)

	src, ok := f.sources[d.Span.Filename]
	if !ok || !d.Span.IsValid() {
		if d.Span.IsValid() {
			fmt.Fprintf(f.w, "  --> %s\n", d.Span.String())
		}
		return
	}

	f.printSnippet(src, d.Span)
}

// printHeader prints the severity header ("error[CODE]: message").
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}

	if d.Code != "" {
		fmt.Fprintf(f.w, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.w, "%s: %s\n", severity, d.Message)
	}
}

// printSnippet prints the offending source line with a caret underline.
func (f *Formatter) printSnippet(src string, span Span) {
	lines := strings.Split(src, "\n")
	if span.Line > len(lines) {
		fmt.Fprintf(f.w, "  --> %s\n", span.String())
		return
	}

	lineContent := lines[span.Line-1]
	lineNum := fmt.Sprintf("%d", span.Line)
	pad := strings.Repeat(" ", len(lineNum))

	fmt.Fprintf(f.w, "  --> %s\n", span.String())
	fmt.Fprintf(f.w, " %s |\n", pad)
	fmt.Fprintf(f.w, " %s | %s\n", lineNum, lineContent)

	width := span.End - span.Start
	if width < 1 {
		width = 1
	}
	col := span.Column - 1
	if col < 0 {
		col = 0
	}
	if col > len(lineContent) {
		col = len(lineContent)
	}
	if col+width > len(lineContent)+1 {
		width = len(lineContent) + 1 - col
		if width < 1 {
			width = 1
		}
	}

	underline := strings.Repeat(" ", col) + strings.Repeat("^", width)
	fmt.Fprintf(f.w, " %s | %s\n", pad, underline)
}
