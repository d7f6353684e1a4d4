package scope

import "strings"

const (
	// PropsPrefix opens an interpolation placeholder resolved by the
	// styling runtime at render time.
	PropsPrefix = "${props."
	// PropsSuffix closes an interpolation placeholder.
	PropsSuffix = "}"

	// Marker stands for the component instance identifier. It is used both
	// for selectors and as keyframes name prefix.
	Marker = PropsPrefix + "id" + PropsSuffix
	// Separator joins Marker and a keyframes name.
	Separator = "-"
)

// Interpolation returns placeholder referencing property name.
func Interpolation(name string) string {
	return PropsPrefix + name + PropsSuffix
}

// ScopedName returns keyframes name bound to the component instance.
func ScopedName(name string) string {
	return Marker + Separator + name
}

// IsScopedName reports whether name has already been passed through ScopedName.
func IsScopedName(name string) bool {
	return strings.HasPrefix(name, Marker+Separator)
}
