// The only reason this package exists is because both the pipeline and the
// configuration need the same enums and I do not want the library packages to
// depend on configuration.
package common

// Specification of how transform completes.
// ENUM(immediate, deferred)
type Mode int

// Specification of output layout.
// ENUM(compact, pretty)
type Layout int

func (l Layout) IsPretty() bool {
	return l == LayoutPretty
}

// Specification of requested output type.
// ENUM(css, js)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtCss:
		return ".this.css"
	case OutputFmtJs:
		return ".js"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
