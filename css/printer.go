package css

import (
	"io"
	"strings"
)

// Printer serializes a stylesheet tree back to CSS text.
//
// The zero value produces compact output: no whitespace between tokens of the
// structure and no trailing semicolon after the last declaration of a block,
// e.g. "h1{color:black;margin:0}". With Pretty set every rule opens on its own
// line and declarations are indented by Indent (two spaces when empty).
type Printer struct {
	Pretty bool
	Indent string
}

// Print returns CSS text of the stylesheet.
func (p *Printer) Print(s *Stylesheet) string {
	var sb strings.Builder
	p.WriteTo(&sb, s) //nolint:errcheck
	return sb.String()
}

// WriteTo writes the stylesheet to w, returning number of bytes written.
func (p *Printer) WriteTo(w io.Writer, s *Stylesheet) (int64, error) {
	sw := &stickyWriter{w: w}
	if s == nil {
		return 0, nil
	}
	indent := p.Indent
	if indent == "" {
		indent = "  "
	}
	if p.Pretty {
		pw := prettyWriter{stickyWriter: sw, indent: indent}
		pw.nodes(s.Nodes, 0)
	} else {
		cw := compactWriter{stickyWriter: sw}
		cw.nodes(s.Nodes)
	}
	return sw.n, sw.err
}

// stickyWriter remembers the first error and ignores writes after it.
type stickyWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (sw *stickyWriter) write(parts ...string) {
	for _, s := range parts {
		if sw.err != nil {
			return
		}
		n, err := io.WriteString(sw.w, s)
		sw.n += int64(n)
		sw.err = err
	}
}

type compactWriter struct {
	*stickyWriter
}

func (cw compactWriter) nodes(nodes []Node) {
	for i, n := range nodes {
		switch {
		case n.Rule != nil:
			cw.write(n.Rule.Selector, "{")
			cw.nodes(n.Rule.Nodes)
			cw.write("}")
		case n.AtRule != nil:
			cw.write("@", n.AtRule.Name)
			if n.AtRule.Params != "" {
				cw.write(" ", n.AtRule.Params)
			}
			if !n.AtRule.Block {
				cw.write(";")
				continue
			}
			cw.write("{")
			cw.nodes(n.AtRule.Nodes)
			cw.write("}")
		case n.Declaration != nil:
			cw.write(n.Declaration.Property, ":", n.Declaration.Value)
			if i < len(nodes)-1 {
				cw.write(";")
			}
		case n.Comment != nil:
			cw.write(n.Comment.Text)
		}
	}
}

type prettyWriter struct {
	*stickyWriter
	indent string
}

func (pw prettyWriter) pad(depth int) {
	for range depth {
		pw.write(pw.indent)
	}
}

func (pw prettyWriter) nodes(nodes []Node, depth int) {
	for i, n := range nodes {
		// Add blank line between top-level blocks
		if depth == 0 && i > 0 {
			pw.write("\n")
		}
		pw.pad(depth)
		switch {
		case n.Rule != nil:
			pw.write(n.Rule.Selector, " {\n")
			pw.nodes(n.Rule.Nodes, depth+1)
			pw.pad(depth)
			pw.write("}\n")
		case n.AtRule != nil:
			pw.write("@", n.AtRule.Name)
			if n.AtRule.Params != "" {
				pw.write(" ", n.AtRule.Params)
			}
			if !n.AtRule.Block {
				pw.write(";\n")
				continue
			}
			pw.write(" {\n")
			pw.nodes(n.AtRule.Nodes, depth+1)
			pw.pad(depth)
			pw.write("}\n")
		case n.Declaration != nil:
			pw.write(n.Declaration.Property, ": ", n.Declaration.Value, ";\n")
		case n.Comment != nil:
			pw.write(n.Comment.Text, "\n")
		}
	}
}
