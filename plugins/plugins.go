// Package plugins contains optional tree transforms which may be put in front
// of scope rewriting.
package plugins

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"cssthis/css"
	"cssthis/pipeline"
)

const (
	StripCommentsName = "strip-comments"
	DropEmptyName     = "drop-empty"
)

type stripComments struct{}

// StripComments removes comments at every depth.
func StripComments() pipeline.Plugin {
	return stripComments{}
}

func (stripComments) Name() string {
	return StripCommentsName
}

func (stripComments) Apply(_ context.Context, sheet *css.Stylesheet) (*css.Stylesheet, error) {
	sheet.Nodes = css.Filter(sheet.Nodes, func(n css.Node) bool {
		return n.Kind() != css.KindComment
	})
	return sheet, nil
}

type dropEmpty struct{}

// DropEmpty removes rules and block at-rules left without content. Blocks
// which contain only empty blocks are removed as well.
func DropEmpty() pipeline.Plugin {
	return dropEmpty{}
}

func (dropEmpty) Name() string {
	return DropEmptyName
}

func (dropEmpty) Apply(_ context.Context, sheet *css.Stylesheet) (*css.Stylesheet, error) {
	sheet.Nodes = dropEmptyNodes(sheet.Nodes)
	return sheet, nil
}

func dropEmptyNodes(nodes []css.Node) []css.Node {
	out := nodes[:0]
	for _, n := range nodes {
		switch n.Kind() {
		case css.KindRule:
			if n.Rule.Nodes = dropEmptyNodes(n.Rule.Nodes); len(n.Rule.Nodes) == 0 {
				continue
			}
		case css.KindAtRule:
			if n.AtRule.Block {
				if n.AtRule.Nodes = dropEmptyNodes(n.AtRule.Nodes); len(n.AtRule.Nodes) == 0 {
					continue
				}
			}
		}
		out = append(out, n)
	}
	return out
}

var registry = map[string]func() pipeline.Plugin{
	StripCommentsName: StripComments,
	DropEmptyName:     DropEmpty,
}

// Names returns names of all known plugins.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ByName returns plugins in the requested order.
func ByName(names ...string) ([]pipeline.Plugin, error) {
	list := make([]pipeline.Plugin, 0, len(names))
	for _, name := range names {
		create, ok := registry[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown plugin %q (supported: %s)", name, strings.Join(Names(), ", "))
		}
		list = append(list, create())
	}
	return list, nil
}
