package scope

import (
	"strings"
	"testing"
)

const m = Marker

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "h1", []string{"h1"}},
		{"list", "h1,h2 ,  h3", []string{"h1", "h2", "h3"}},
		{"arguments", ":this(a,b,c), p", []string{":this(a,b,c)", "p"}},
		{"nested arguments", ":not(:is(a,b)),c", []string{":not(:is(a,b))", "c"}},
		{"attribute value", `[data-x="a,b"],i`, []string{`[data-x="a,b"]`, "i"}},
		{"escaped quote", `[title='x\',y'],i`, []string{`[title='x\',y']`, "i"}},
		{"unbalanced closer", "a),b", []string{"a)", "b"}},
		{"empty", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.input)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Split(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitMap(t *testing.T) {
	var indexes []int
	got := SplitMap("a,b(c,d),  e", func(item string, i int) string {
		indexes = append(indexes, i)
		return "[" + item + "]"
	})
	if got != "[a], [b(c,d)], [e]" {
		t.Errorf("SplitMap() = %q", got)
	}
	if len(indexes) != 3 || indexes[0] != 0 || indexes[2] != 2 {
		t.Errorf("unexpected indexes %v", indexes)
	}
}

func TestRewriteSelector(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare this", ":this", m},
		{"this with tag arguments", ":this(h1,h2,h3)", "h1" + m + ", h2" + m + ", h3" + m},
		{"this with attribute arguments", ":this([title],[data-type=title])", m + "[title], " + m + "[data-type=title]"},
		{"this with id and suffix", ":this(#id-1):not(h1)", m + "#id-1:not(h1)"},
		{"this with class argument", ":this(.active)", m + ".active"},
		{"this with pseudo-class suffix", ":this:hover", m + ":hover"},
		{"this with descendant", ":this h1", m + " h1"},
		{"arguments and descendant", ":this(a,b) span", "a" + m + " span, b" + m + " span"},
		{"host is this", ":host(h1)", "h1" + m},
		{"global arguments", ":global(h1,h2,h3)", "h1, h2, h3"},
		{"global attributes", ":global([title],[data-type=title])", "[title], [data-type=title]"},
		{"global with suffix", ":global(#id-1):not(h1)", "#id-1:not(h1)"},
		{"global descendant", ":global h1", "h1"},
		{"two tokens", ":this h1 :global h2", m + " h1 h2"},
		{"three tokens", ":this > a :this(b) :global c", m + " > a b" + m + " c"},
		{"compound global", "a:global b", "a b"},
		{"prefix kept", "div :this", "div " + m},
		{"suffix with spaces in parens", ":this:not(.a, .b) i", m + ":not(.a, .b) i"},
		{"nested argument parens", ":this(:not(a,b))", m + ":not(a,b)"},
		{"empty arguments", ":this()", m + "()"},
		{"unterminated arguments", ":this(h1", m + "(h1"},
		{"no scoping", "h1 > p", "h1 > p"},
		{"longer ident", ":thisx", ":thisx"},
		{"host-context untouched", ":host-context(.dark)", ":host-context(.dark)"},
		{"quoted token in attribute", `a[title=":this"]`, `a[title=":this"]`},
		{"quoted token in argument", `:this([title=":global"])`, m + `[title=":global"]`},
		{"quoted paren in argument", `:this([title=")"],p)`, m + `[title=")"], p` + m},
		{"quoted space in suffix", `:this[title="a b"] i`, m + `[title="a b"] i`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RewriteSelector(tt.input); got != tt.want {
				t.Errorf("RewriteSelector(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestScopeSelector(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"this", ":this", m},
		{"implicit this", "h1", m + " h1"},
		{"implicit this list", "h1, .a > b", m + " h1, " + m + " .a > b"},
		{"global stripped", ":global h1", "h1"},
		{"global everywhere", ":global .a :global .b", ".a .b"},
		{"global arguments", ":global(h1,h2)", "h1, h2"},
		{"host kept", ":host", m},
		{"mixed list", ":this(h1,h2), :global p, em", "h1" + m + ", h2" + m + ", p, " + m + " em"},
		{"already scoped", "h1" + m + ", " + m + " em", "h1" + m + ", " + m + " em"},
		{"quoted token in attribute", `a[title=":this"]`, m + ` a[title=":this"]`},
		{"quoted global", `a[data-x=':global b']`, m + ` a[data-x=':global b']`},
		{"bare global kept", ":global", ":global"},
		{"bare global in list", ":global, h1", ":global, " + m + " h1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScopeSelector(tt.input); got != tt.want {
				t.Errorf("ScopeSelector(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestScopeSelector_Idempotent(t *testing.T) {
	inputs := []string{":this", "h1", ":this(h1,h2,h3)", ":this([title],[data-type=title])", ":this(#id-1):not(h1)", ":this h1 :global h2"}
	for _, in := range inputs {
		once := ScopeSelector(in)
		if twice := ScopeSelector(once); twice != once {
			t.Errorf("ScopeSelector not idempotent for %q: %q then %q", in, once, twice)
		}
		if strings.Count(once, ":this") != 0 {
			t.Errorf("raw :this left in %q", once)
		}
	}
}

func TestHasScoping(t *testing.T) {
	for in, want := range map[string]bool{
		":this":           true,
		"a :global b":     true,
		":host(.x)":       true,
		"a:hover":         false,
		":host-context":   false,
		`[title=":this"]`: false,
		`[a='\':this']`:   false,
		"":                false,
	} {
		if got := HasScoping(in); got != want {
			t.Errorf("HasScoping(%q) = %v, want %v", in, got, want)
		}
	}
}
