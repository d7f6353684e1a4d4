package css_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"cssthis/css"
)

func newParser(t *testing.T) *css.Parser {
	t.Helper()
	return css.NewParser(zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))))
}

func mustParse(t *testing.T, src string) *css.Stylesheet {
	t.Helper()
	sheet, err := newParser(t).Parse([]byte(src), t.Name())
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	return sheet
}

func TestParser_SimpleRule(t *testing.T) {
	sheet := mustParse(t, `p { text-indent: 1em; }`)

	rules := sheet.Rules()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if rules[0].Selector != "p" {
		t.Errorf("expected selector 'p', got %q", rules[0].Selector)
	}
	if len(rules[0].Nodes) != 1 || rules[0].Nodes[0].Declaration == nil {
		t.Fatalf("expected single declaration, got:\n%s", css.Dump(sheet))
	}
	decl := rules[0].Nodes[0].Declaration
	if decl.Property != "text-indent" || decl.Value != "1em" {
		t.Errorf("expected text-indent: 1em, got %s: %s", decl.Property, decl.Value)
	}
}

func TestParser_ScopingSelectorKeptVerbatim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		selector string
	}{
		{"bare this", `:this{color:black}`, ":this"},
		{"this with tag arguments", `:this(h1,h2,h3){color:black}`, ":this(h1,h2,h3)"},
		{"this with suffix", `:this(#id-1):not(h1){color:black}`, ":this(#id-1):not(h1)"},
		{"global descendant", `:global h1{color:black}`, ":global h1"},
		{"descendant", `p code { font-family: monospace; }`, "p code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := mustParse(t, tt.input)
			rules := sheet.Rules()
			if len(rules) != 1 {
				t.Fatalf("expected 1 rule, got %d", len(rules))
			}
			if rules[0].Selector != tt.selector {
				t.Errorf("selector = %q, want %q", rules[0].Selector, tt.selector)
			}
		})
	}
}

// declarations collects declarations of a property found at any depth.
func declarations(sheet *css.Stylesheet, property string) []*css.Declaration {
	var found []*css.Declaration
	css.Inspect(sheet.Nodes, func(n css.Node) bool {
		if n.Kind() == css.KindDeclaration && n.Declaration.Property == property {
			found = append(found, n.Declaration)
		}
		return true
	})
	return found
}

func TestParser_DeclarationValues(t *testing.T) {
	sheet := mustParse(t, `:this{ color: this(primary) this(contrast); animation : move 1s ease all; }`)

	decls := declarations(sheet, "color")
	if len(decls) != 1 {
		t.Fatalf("expected 1 color declaration, got %d", len(decls))
	}
	if decls[0].Value != "this(primary) this(contrast)" {
		t.Errorf("color value = %q", decls[0].Value)
	}

	decls = declarations(sheet, "animation")
	if len(decls) != 1 {
		t.Fatalf("expected 1 animation declaration, got %d", len(decls))
	}
	if decls[0].Value != "move 1s ease all" {
		t.Errorf("animation value = %q", decls[0].Value)
	}
}

func TestParser_MediaBlock(t *testing.T) {
	sheet := mustParse(t, `
		p { margin: 0; }
		@media print {
			p { margin: 1em; }
		}
		.test { color: red; }
	`)

	if len(sheet.Nodes) != 3 {
		t.Fatalf("expected 3 top-level nodes, got %d:\n%s", len(sheet.Nodes), css.Dump(sheet))
	}
	media := sheet.Nodes[1].AtRule
	if media == nil {
		t.Fatalf("expected second node to be an at-rule, got %s", sheet.Nodes[1].Kind())
	}
	if media.Name != "media" || media.Params != "print" || !media.Block {
		t.Errorf("unexpected at-rule: %+v", *media)
	}
	if len(media.Nodes) != 1 || media.Nodes[0].Rule == nil {
		t.Fatalf("expected one nested rule in @media, got:\n%s", css.Dump(sheet))
	}
	if media.Nodes[0].Rule.Selector != "p" {
		t.Errorf("nested selector = %q, want 'p'", media.Nodes[0].Rule.Selector)
	}
}

func TestParser_Keyframes(t *testing.T) {
	sheet := mustParse(t, `@keyframes move { 0%{color:black} 100%{color:orange} }`)

	kf := sheet.AtRules("keyframes")
	if len(kf) != 1 {
		t.Fatalf("expected 1 keyframes at-rule, got %d", len(kf))
	}
	if kf[0].Params != "move" {
		t.Errorf("keyframes params = %q, want 'move'", kf[0].Params)
	}
	if len(kf[0].Nodes) != 2 {
		t.Fatalf("expected 2 keyframe blocks, got %d:\n%s", len(kf[0].Nodes), css.Dump(sheet))
	}
}

func TestParser_Import(t *testing.T) {
	sheet := mustParse(t, `@import "other.css"; p { margin: 0; }`)

	if len(sheet.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d:\n%s", len(sheet.Nodes), css.Dump(sheet))
	}
	imp := sheet.Nodes[0].AtRule
	if imp == nil || imp.Name != "import" || imp.Block {
		t.Fatalf("expected @import statement, got:\n%s", css.Dump(sheet))
	}
	if imp.Params != `"other.css"` {
		t.Errorf("import params = %q", imp.Params)
	}
}

func TestParser_InterpolationsSurvive(t *testing.T) {
	input := "h1${props.id}{animation-name:${props.id}-move;color:${props.primary}}" +
		"@keyframes ${props.id}-move{0%{color:black}}"
	sheet := mustParse(t, input)

	want := &css.Stylesheet{Nodes: []css.Node{
		css.RuleNode("h1${props.id}",
			css.DeclNode("animation-name", "${props.id}-move"),
			css.DeclNode("color", "${props.primary}"),
		),
		css.AtRuleNode("keyframes", "${props.id}-move",
			css.RuleNode("0%", css.DeclNode("color", "black")),
		),
	}}
	if diff := cmp.Diff(want, sheet); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
	if got := sheet.String(); got != input {
		t.Errorf("round trip = %q, want %q", got, input)
	}
}

func TestParser_UnclosedBlock(t *testing.T) {
	_, err := newParser(t).Parse([]byte(`p { color: red; `))
	if err == nil {
		t.Skip("tokenizer closed the block on its own")
	}
	var pe *css.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *css.ParseError, got %T: %v", err, err)
	}
	if !strings.Contains(pe.Error(), "css parse error") {
		t.Errorf("unexpected message %q", pe.Error())
	}
}

func TestParser_NilLogger(t *testing.T) {
	sheet, err := css.NewParser(nil).Parse([]byte(`a{b:c}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := sheet.String(); got != "a{b:c}" {
		t.Errorf("String() = %q", got)
	}
}
