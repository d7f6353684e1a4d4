// Package debug contains helpers producing human readable dumps for debug
// reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates one entry per line, each indented by its depth.
type TreeWriter struct {
	sb     strings.Builder
	Indent string
}

// NewTreeWriter returns writer indenting by two spaces.
func NewTreeWriter() *TreeWriter {
	return &TreeWriter{Indent: "  "}
}

func (tw *TreeWriter) String() string {
	return tw.sb.String()
}

// Line writes formatted entry at depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.sb.WriteString(strings.Repeat(tw.Indent, depth))
	fmt.Fprintf(&tw.sb, format, args...)
	tw.sb.WriteByte('\n')
}

// TextBlock writes "label: value" with value quoted, so values spanning
// lines stay on one.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.Line(depth, "%s: %s", label, Quote(value))
}

// Quote makes whitespace and empty values visible.
func Quote(raw string) string {
	return strconv.Quote(raw)
}
