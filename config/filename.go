package config

import "strings"

// CleanFileName turns base name of a stylesheet into a name usable for its
// output. Characters the file system rejects are dropped together with
// leading dots, so results never become hidden files. Names reserved by the
// platform get an underscore prepended.
func CleanFileName(in string) string {
	out := strings.TrimLeft(strings.Map(func(r rune) rune {
		if r < ' ' || strings.ContainsRune(forbiddenNameChars, r) {
			return -1
		}
		return r
	}, in), ".")
	switch {
	case len(out) == 0:
		return "_stylesheet_"
	case isReservedName(out):
		return "_" + out
	}
	return out
}
