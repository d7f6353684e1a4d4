package scope

import "strings"

// scopingTokens lists recognized pseudo-selectors and what replaces them.
// :host is a synonym of :this.
var scopingTokens = []struct {
	name   string
	marker string
}{
	{"this", Marker},
	{"host", Marker},
	{"global", ""},
}

// scoping is a single parsed occurrence of a scoping pseudo-selector:
//
//	prefix ":" token [ "(" args ")" ] suffix space rest
type scoping struct {
	prefix  string // text before the pseudo-selector, kept verbatim
	marker  string
	args    string
	hasArgs bool
	suffix  string // compound selector glued to the token, e.g. ":not(h1)"
	space   string
	rest    string // combinator chain following the compound
}

// RewriteSelector replaces the first scoping pseudo-selector of a single
// selector (no top-level commas) and, recursively, every scoping
// pseudo-selector in the rest of the combinator chain. Fragments without
// scoping pseudo-selectors are returned unchanged.
func RewriteSelector(fragment string) string {
	sc, ok := parseScoping(fragment)
	if !ok {
		return fragment
	}

	rest := sc.rest
	if HasScoping(rest) {
		rest = RewriteSelector(rest)
	}

	space := sc.space
	if sc.marker == "" && !sc.hasArgs && sc.suffix == "" &&
		(sc.prefix == "" || isSpace(sc.prefix[len(sc.prefix)-1])) {
		// ":global h1" leaves nothing behind, do not double the combinator
		space = ""
	}
	tail := sc.suffix + space + rest

	if !sc.hasArgs {
		return sc.prefix + sc.marker + tail
	}
	return sc.prefix + SplitMap(sc.args, func(arg string, _ int) string {
		return compound(arg, sc.marker) + tail
	})
}

// HasScoping reports whether s contains a scoping pseudo-selector.
func HasScoping(s string) bool {
	_, _, ok := findScoping(s)
	return ok
}

// compound attaches marker to a single argument. Type selectors must come
// first in a compound selector, so marker follows them and precedes
// anything else (attribute, id, class, pseudo-class).
func compound(arg, marker string) string {
	if len(arg) > 0 && isLetter(arg[0]) {
		return arg + marker
	}
	return marker + arg
}

// parseScoping is a small recursive-descent scanner over the grammar above.
func parseScoping(s string) (scoping, bool) {
	start, end, ok := findScoping(s)
	if !ok {
		return scoping{}, false
	}
	sc := scoping{prefix: s[:start]}
	for _, tok := range scopingTokens {
		if s[start+1:end] == tok.name {
			sc.marker = tok.marker
			break
		}
	}

	pos := end
	if pos < len(s) && s[pos] == '(' {
		if closing := matchParen(s, pos); closing > pos+1 {
			sc.args, sc.hasArgs = s[pos+1:closing], true
			pos = closing + 1
		}
	}

	suffixEnd := scanCompound(s, pos)
	sc.suffix = s[pos:suffixEnd]
	pos = suffixEnd

	spaceEnd := pos
	for spaceEnd < len(s) && isSpace(s[spaceEnd]) {
		spaceEnd++
	}
	sc.space, sc.rest = s[pos:spaceEnd], s[spaceEnd:]
	return sc, true
}

// findScoping locates the first scoping pseudo-selector and returns offsets of
// its colon and of the first byte past the token name.
func findScoping(s string) (int, int, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\'' {
			i = skipQuoted(s, i)
			continue
		}
		if s[i] != ':' {
			continue
		}
		for _, tok := range scopingTokens {
			end := i + 1 + len(tok.name)
			if strings.HasPrefix(s[i+1:], tok.name) && (end == len(s) || !isIdentChar(s[end])) {
				return i, end, true
			}
		}
	}
	return 0, 0, false
}

// startsWithScoping reports whether s begins with one of the given tokens.
func startsWithScoping(s string, names ...string) bool {
	start, end, ok := findScoping(s)
	if !ok || start != 0 {
		return false
	}
	for _, name := range names {
		if s[1:end] == name {
			return true
		}
	}
	return false
}

// matchParen returns index of the parenthesis closing the one at open, or -1.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '"', '\'':
			i = skipQuoted(s, i)
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// scanCompound returns end of the run of non-whitespace characters starting
// at pos. Whitespace inside (...) and [...] belongs to the run.
func scanCompound(s string, pos int) int {
	depth := 0
	for ; pos < len(s); pos++ {
		switch c := s[pos]; {
		case c == '"' || c == '\'':
			pos = skipQuoted(s, pos)
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
		case isSpace(c) && depth == 0:
			return pos
		}
	}
	return pos
}

// skipQuoted returns index of the quote closing the string which starts at
// open, or last index of s when the string is not terminated.
func skipQuoted(s string, open int) int {
	for i := open + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case s[open]:
			return i
		}
	}
	return len(s) - 1
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || '0' <= c && c <= '9' || c == '-' || c == '_' || c >= 0x80
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
