package css

import (
	"fmt"
	"strings"
)

// NodeKind identifies which variant a Node carries.
type NodeKind int

const (
	KindNone NodeKind = iota
	KindRule
	KindAtRule
	KindDeclaration
	KindComment
)

// String returns a short human readable name of the kind.
func (k NodeKind) String() string {
	switch k {
	case KindRule:
		return "rule"
	case KindAtRule:
		return "atrule"
	case KindDeclaration:
		return "decl"
	case KindComment:
		return "comment"
	default:
		return "none"
	}
}

// Node is a single item of a stylesheet tree.
// Exactly one of Rule, AtRule, Declaration or Comment is non-nil.
type Node struct {
	Rule        *Rule
	AtRule      *AtRule
	Declaration *Declaration
	Comment     *Comment
}

// Kind reports which variant the node holds.
func (n Node) Kind() NodeKind {
	switch {
	case n.Rule != nil:
		return KindRule
	case n.AtRule != nil:
		return KindAtRule
	case n.Declaration != nil:
		return KindDeclaration
	case n.Comment != nil:
		return KindComment
	default:
		return KindNone
	}
}

// Children returns child nodes for rules and at-rules, nil otherwise.
func (n Node) Children() []Node {
	switch {
	case n.Rule != nil:
		return n.Rule.Nodes
	case n.AtRule != nil:
		return n.AtRule.Nodes
	default:
		return nil
	}
}

// Rule is a qualified rule: selector list plus a block.
type Rule struct {
	Selector string // Selector list as written (whitespace collapsed)
	Nodes    []Node // Declarations and nested rules in source order
}

// AtRule represents a rule starting with an "@" symbol.
type AtRule struct {
	Name   string // Name without "@" (e.g. "media", "keyframes")
	Params string // Prelude (e.g. media query or animation name)
	Block  bool   // false for statements like @import terminated by ";"
	Nodes  []Node // Block content, empty for statements
}

// Declaration is a property/value pair.
type Declaration struct {
	Property string
	Value    string
}

// Comment keeps a comment including its delimiters.
type Comment struct {
	Text string
}

// Stylesheet is the root of a parsed tree.
type Stylesheet struct {
	Nodes []Node
}

// RuleNode wraps a rule into a Node.
func RuleNode(selector string, nodes ...Node) Node {
	return Node{Rule: &Rule{Selector: selector, Nodes: nodes}}
}

// AtRuleNode wraps a block at-rule into a Node.
func AtRuleNode(name, params string, nodes ...Node) Node {
	return Node{AtRule: &AtRule{Name: name, Params: params, Block: true, Nodes: nodes}}
}

// StatementNode wraps a block-less at-rule (e.g. @import) into a Node.
func StatementNode(name, params string) Node {
	return Node{AtRule: &AtRule{Name: name, Params: params}}
}

// DeclNode wraps a declaration into a Node.
func DeclNode(property, value string) Node {
	return Node{Declaration: &Declaration{Property: property, Value: value}}
}

// CommentNode wraps a comment into a Node.
func CommentNode(text string) Node {
	return Node{Comment: &Comment{Text: text}}
}

// Rules returns all top-level rules in source order.
func (s *Stylesheet) Rules() []*Rule {
	var rules []*Rule
	for _, n := range s.Nodes {
		if n.Rule != nil {
			rules = append(rules, n.Rule)
		}
	}
	return rules
}

// AtRules returns all at-rules with given name found at any depth.
func (s *Stylesheet) AtRules(name string) []*AtRule {
	var found []*AtRule
	Inspect(s.Nodes, func(n Node) bool {
		if n.AtRule != nil && strings.EqualFold(n.AtRule.Name, name) {
			found = append(found, n.AtRule)
		}
		return true
	})
	return found
}

// Inspect traverses nodes depth-first calling fn for every node. If fn
// returns false children of that node are skipped.
func Inspect(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		Inspect(n.Children(), fn)
	}
}

// Filter removes nodes for which keep returns false at every depth. Slices
// are filtered in place.
func Filter(nodes []Node, keep func(Node) bool) []Node {
	out := nodes[:0]
	for _, n := range nodes {
		if !keep(n) {
			continue
		}
		switch {
		case n.Rule != nil:
			n.Rule.Nodes = Filter(n.Rule.Nodes, keep)
		case n.AtRule != nil:
			n.AtRule.Nodes = Filter(n.AtRule.Nodes, keep)
		}
		out = append(out, n)
	}
	return out
}

// String returns compact CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	return (&Printer{}).Print(s)
}

// ParseError is returned when source text could not be turned into a tree.
type ParseError struct {
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("css parse error at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return "css parse error: " + e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
