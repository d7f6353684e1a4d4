package plugins

import (
	"context"
	"strings"
	"testing"

	"cssthis/css"
)

func TestStripComments(t *testing.T) {
	sheet := &css.Stylesheet{Nodes: []css.Node{
		css.CommentNode("/* top */"),
		css.RuleNode("a", css.CommentNode("/* inner */"), css.DeclNode("b", "c")),
	}}

	out, err := StripComments().Apply(context.Background(), sheet)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := out.String(); got != "a{b:c}" {
		t.Errorf("after strip-comments = %q", got)
	}
}

func TestDropEmpty(t *testing.T) {
	sheet := &css.Stylesheet{Nodes: []css.Node{
		css.RuleNode("empty"),
		css.AtRuleNode("media", "print", css.RuleNode("also-empty")),
		css.StatementNode("import", `"x.css"`),
		css.RuleNode("a", css.RuleNode("b"), css.DeclNode("c", "d")),
	}}

	out, err := DropEmpty().Apply(context.Background(), sheet)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got, want := out.String(), `@import "x.css";a{c:d}`; got != want {
		t.Errorf("after drop-empty = %q, want %q", got, want)
	}
}

func TestByName(t *testing.T) {
	list, err := ByName("drop-empty", " Strip-Comments ")
	if err != nil {
		t.Fatalf("ByName() error = %v", err)
	}
	if len(list) != 2 || list[0].Name() != DropEmptyName || list[1].Name() != StripCommentsName {
		t.Errorf("unexpected plugin order: %v", list)
	}

	_, err = ByName("cssnano")
	if err == nil || !strings.Contains(err.Error(), "strip-comments") {
		t.Errorf("expected unknown plugin error listing supported names, got %v", err)
	}
}
