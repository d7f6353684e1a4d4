package scope

import (
	"strings"
)

const thisCall = "this("

// RewriteDeclaration returns value of a declaration with this(name) calls
// turned into interpolation placeholders and, for animation properties, the
// keyframes name bound to the component.
func RewriteDeclaration(property, value string) string {
	value = RewriteValue(value)

	switch unprefixed(strings.ToLower(property)) {
	case "animation":
		value = scopeFirstToken(value)
	case "animation-name":
		if value != "" && !IsScopedName(value) {
			value = ScopedName(value)
		}
	}
	return value
}

// RewriteValue replaces every this(name) call with ${props.name}. Name is
// reduced to letters, digits and underscores, calls with nothing left after
// that are kept as is.
func RewriteValue(value string) string {
	if !strings.Contains(value, thisCall) {
		return value
	}

	var sb strings.Builder
	sb.Grow(len(value))
	for {
		idx := indexCall(value)
		if idx < 0 {
			sb.WriteString(value)
			return sb.String()
		}
		argStart := idx + len(thisCall)
		closing := strings.IndexByte(value[argStart:], ')')
		if closing < 0 {
			sb.WriteString(value)
			return sb.String()
		}
		closing += argStart

		name := sanitize(value[argStart:closing])
		sb.WriteString(value[:idx])
		if name == "" {
			sb.WriteString(value[idx : closing+1])
		} else {
			sb.WriteString(Interpolation(name))
		}
		value = value[closing+1:]
	}
}

// indexCall finds "this(" which is not a tail of a longer identifier.
func indexCall(s string) int {
	offset := 0
	for {
		idx := strings.Index(s[offset:], thisCall)
		if idx < 0 {
			return -1
		}
		idx += offset
		if idx == 0 || !isIdentChar(s[idx-1]) {
			return idx
		}
		offset = idx + len(thisCall)
	}
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x80 && (isLetter(byte(r)) || '0' <= r && r <= '9' || r == '_') {
			return r
		}
		return -1
	}, name)
}

// scopeFirstToken prefixes the first whitespace delimited token of an
// animation shorthand, conventionally the keyframes name.
func scopeFirstToken(value string) string {
	start := 0
	for start < len(value) && isSpace(value[start]) {
		start++
	}
	if start == len(value) || IsScopedName(value[start:]) {
		return value
	}
	return value[:start] + ScopedName(value[start:])
}

// unprefixed strips vendor prefix: "-webkit-animation" becomes "animation".
func unprefixed(property string) string {
	if len(property) < 2 || property[0] != '-' || property[1] == '-' {
		return property
	}
	if idx := strings.IndexByte(property[1:], '-'); idx >= 0 {
		return property[idx+2:]
	}
	return property
}
