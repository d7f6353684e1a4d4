package scope

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"cssthis/css"
)

var globalPrefix = regexp.MustCompile(`:global\s+`)

// Walker applies selector and declaration rewriting to a stylesheet tree.
type Walker struct {
	log *zap.Logger
}

// NewWalker creates a new tree walker.
func NewWalker(log *zap.Logger) *Walker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Walker{log: log.Named("scope")}
}

// Walk rewrites nodes in place and returns the same slice. Selectors of rules
// are rewritten only when nested is false; children of a rule are always
// visited as nested. Walk takes ownership of the tree: callers must not keep
// using pre-walk text of the nodes.
func Walk(nodes []css.Node, nested bool) []css.Node {
	return (&Walker{log: zap.NewNop()}).Walk(nodes, nested)
}

// Walk rewrites nodes in place and returns the same slice.
func (w *Walker) Walk(nodes []css.Node, nested bool) []css.Node {
	for _, n := range nodes {
		switch {
		case n.Rule != nil:
			if !nested {
				from := n.Rule.Selector
				n.Rule.Selector = ScopeSelector(from)
				w.log.Debug("Scoped selector", zap.String("from", from), zap.String("to", n.Rule.Selector))
			}
			w.Walk(n.Rule.Nodes, true)

		case n.AtRule != nil:
			name := strings.ToLower(n.AtRule.Name)
			if strings.Contains(name, "media") {
				// media queries do not scope anything themselves
				w.Walk(n.AtRule.Nodes, false)
			}
			if strings.Contains(name, "keyframes") && n.AtRule.Params != "" && !IsScopedName(n.AtRule.Params) {
				from := n.AtRule.Params
				n.AtRule.Params = ScopedName(from)
				w.log.Debug("Scoped keyframes", zap.String("from", from), zap.String("to", n.AtRule.Params))
			}

		case n.Declaration != nil:
			n.Declaration.Value = RewriteDeclaration(n.Declaration.Property, n.Declaration.Value)
		}
	}
	return nodes
}

// ScopeSelector rewrites a top-level selector list. Items starting with
// :global lose every ":global " token, items not starting with :this or
// :host are treated as ":this <item>". Items which already carry Marker are
// left alone so running the rewrite twice changes nothing. A bare :global
// selects nothing and is kept as written rather than turned into an empty
// selector.
func ScopeSelector(selector string) string {
	return SplitMap(selector, func(item string, _ int) string {
		switch {
		case strings.Contains(item, Marker), item == ":global":
			return item
		case strings.HasPrefix(item, ":global"):
			item = globalPrefix.ReplaceAllString(item, "")
		case !startsWithScoping(item, "this", "host"):
			item = ":this " + item
		}
		return RewriteSelector(item)
	})
}
