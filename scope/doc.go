// Package scope rewrites component-scoped CSS into template-literal CSS.
//
// Authors write stylesheets for a single component using three non-standard
// pseudo-selectors and one value function:
//
//   - :this   - the component root; replaced by Marker
//   - :host   - synonym of :this
//   - :global - escape hatch; removed, nothing is substituted
//   - this(x) - component property; replaced by ${props.x}
//
// Every top-level selector that does not start with :this, :host or :global
// is treated as if it was written ":this <selector>", so plain selectors are
// scoped to the component by default.
//
// # Selectors
//
// A scoping pseudo-selector may take a comma separated argument list. Type
// selectors get the marker appended, everything else gets it prepended:
//
//	:this(h1,h2)           → h1${props.id}, h2${props.id}
//	:this([title],.a)      → ${props.id}[title], ${props.id}.a
//	:this(#id-1):not(h1)   → ${props.id}#id-1:not(h1)
//	:this h1 :global h2    → ${props.id} h1 h2
//	:global(h1,h2)         → h1, h2
//
// # Declarations and keyframes
//
// @keyframes names are prefixed with Marker and Separator, and so are the
// matching references in animation and animation-name declarations, so
// animations of different component instances never collide.
//
// # Usage
//
//	w := scope.NewWalker(logger)
//	sheet.Nodes = w.Walk(sheet.Nodes, false)
//
// The walker mutates the tree it is given. Text that does not match the
// expected grammar is left as is, rewriting never fails.
package scope
