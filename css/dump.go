package css

import (
	"cssthis/utils/debug"
)

// Dump renders the tree as indented text, one node per line. Used for debug
// reports and test failure messages.
func Dump(s *Stylesheet) string {
	tw := debug.NewTreeWriter()
	if s != nil {
		dumpNodes(tw, s.Nodes, 0)
	}
	return tw.String()
}

func dumpNodes(tw *debug.TreeWriter, nodes []Node, depth int) {
	for _, n := range nodes {
		switch kind := n.Kind(); kind {
		case KindRule:
			tw.Line(depth, "%s %s", kind, debug.Quote(n.Rule.Selector))
		case KindAtRule:
			if n.AtRule.Block {
				tw.Line(depth, "%s @%s %s", kind, n.AtRule.Name, debug.Quote(n.AtRule.Params))
			} else {
				tw.Line(depth, "%s @%s %s (statement)", kind, n.AtRule.Name, debug.Quote(n.AtRule.Params))
			}
		case KindDeclaration:
			tw.TextBlock(depth, kind.String()+" "+n.Declaration.Property, n.Declaration.Value)
		case KindComment:
			tw.Line(depth, "%s %s", kind, debug.Quote(n.Comment.Text))
		}
		dumpNodes(tw, n.Children(), depth+1)
	}
}
