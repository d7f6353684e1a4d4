package scope

import "strings"

// Split breaks a selector list on top-level commas. Commas inside (...),
// [...] or quoted strings do not split. Items are trimmed.
func Split(list string) []string {
	var (
		items []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(list); i++ {
		c := list[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(', '[':
			depth++
		case ')', ']':
			// unbalanced closers never drive depth negative
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				items = append(items, strings.TrimSpace(list[start:i]))
				start = i + 1
			}
		}
	}
	return append(items, strings.TrimSpace(list[start:]))
}

// SplitMap applies fn to every item of a selector list together with its
// zero-based index and joins the results with ", ".
func SplitMap(list string, fn func(item string, i int) string) string {
	items := Split(list)
	for i, item := range items {
		items[i] = fn(item, i)
	}
	return strings.Join(items, ", ")
}
