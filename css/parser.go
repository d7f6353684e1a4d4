package css

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into a node tree.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// interpolationPattern matches template interpolations like ${props.id}.
var interpolationPattern = regexp.MustCompile(`\$\{[^{}]*\}`)

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) (*Stylesheet, error) {
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	shielded, restore := shieldInterpolations(data)

	b := &builder{sheet: &Stylesheet{Nodes: make([]Node, 0)}, restore: restore}
	parser := css.NewParser(parse.NewInputBytes(shielded), false)

	var pending []string // selector pieces of a comma grouped ruleset
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			err := parser.Err()
			if err == nil || errors.Is(err, io.EOF) {
				if len(b.open) > 0 {
					return nil, &ParseError{Message: fmt.Sprintf("unclosed block (%d level(s) still open)", len(b.open))}
				}
				return b.sheet, nil
			}
			p.log.Debug("CSS parse error", zap.Error(err))
			return nil, newParseError(err)

		case css.CommentGrammar:
			b.add(CommentNode(string(data)))

		case css.AtRuleGrammar:
			// Statement @-rule without block (e.g., @import)
			b.add(StatementNode(atRuleName(data), b.text(nil, parser.Values())))

		case css.BeginAtRuleGrammar:
			at := AtRuleNode(atRuleName(data), b.text(nil, parser.Values()))
			b.add(at)
			b.push(at)

		case css.QualifiedRuleGrammar:
			pending = append(pending, b.text(data, parser.Values()))

		case css.BeginRulesetGrammar:
			pending = append(pending, b.text(data, parser.Values()))
			rule := RuleNode(strings.Join(pending, ","))
			pending = nil
			b.add(rule)
			b.push(rule)

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			if !b.pop() {
				return nil, &ParseError{Message: "unexpected closing brace"}
			}

		case css.DeclarationGrammar:
			b.add(DeclNode(b.restore(string(data)), b.text(nil, parser.Values())))

		case css.CustomPropertyGrammar:
			b.add(DeclNode(b.restore(string(data)), strings.TrimSpace(b.text(nil, parser.Values()))))
		}
	}
}

// builder assembles the tree while grammar units are read.
type builder struct {
	sheet   *Stylesheet
	open    []Node
	restore func(string) string
}

func (b *builder) add(n Node) {
	if len(b.open) == 0 {
		b.sheet.Nodes = append(b.sheet.Nodes, n)
		return
	}
	switch top := b.open[len(b.open)-1]; {
	case top.Rule != nil:
		top.Rule.Nodes = append(top.Rule.Nodes, n)
	case top.AtRule != nil:
		top.AtRule.Nodes = append(top.AtRule.Nodes, n)
	}
}

func (b *builder) push(n Node) {
	b.open = append(b.open, n)
}

func (b *builder) pop() bool {
	if len(b.open) == 0 {
		return false
	}
	b.open = b.open[:len(b.open)-1]
	return true
}

// text joins grammar data and value tokens back into text. Whitespace runs
// collapse to a single space, leading and trailing whitespace is dropped.
func (b *builder) text(data []byte, tokens []css.Token) string {
	var sb strings.Builder
	sb.Write(data)
	space := false
	for _, t := range tokens {
		switch t.TokenType {
		case css.WhitespaceToken:
			space = sb.Len() > 0
			continue
		case css.CommentToken:
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.Write(t.Data)
	}
	return b.restore(strings.TrimSpace(sb.String()))
}

func atRuleName(data []byte) string {
	return strings.TrimPrefix(string(data), "@")
}

// shieldInterpolations replaces ${...} interpolations with identifiers the
// tokenizer keeps intact and returns a function putting originals back.
func shieldInterpolations(data []byte) ([]byte, func(string) string) {
	found := interpolationPattern.FindAll(data, -1)
	if len(found) == 0 {
		return data, func(s string) string { return s }
	}

	// lower case only: tokenizer may fold case of some names
	nonce := "cssthis" + strings.ReplaceAll(uuid.NewString(), "-", "")
	pairs := make([]string, 0, 2*len(found))
	seen := make(map[string]string, len(found))

	shielded := interpolationPattern.ReplaceAllFunc(data, func(m []byte) []byte {
		orig := string(m)
		if ph, ok := seen[orig]; ok {
			return []byte(ph)
		}
		ph := nonce + "_" + strconv.Itoa(len(seen)) + "_"
		seen[orig] = ph
		pairs = append(pairs, ph, orig)
		return []byte(ph)
	})
	return shielded, strings.NewReplacer(pairs...).Replace
}

func newParseError(err error) *ParseError {
	pe := &ParseError{Message: err.Error(), Err: err}
	var perr *parse.Error
	if errors.As(err, &perr) {
		pe.Line, pe.Column, pe.Message = perr.Line, perr.Column, perr.Message
	}
	return pe
}
