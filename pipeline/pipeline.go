// Package pipeline wires parser, plugin chain, scope rewriting and printer
// into a single text-in/text-out transform.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"cssthis/common"
	"cssthis/css"
	"cssthis/scope"
)

// Plugin transforms a parsed stylesheet before scope rewriting. A plugin may
// modify the tree in place and return it or return a different tree.
type Plugin interface {
	Name() string
	Apply(ctx context.Context, sheet *css.Stylesheet) (*css.Stylesheet, error)
}

// Parser turns source text into a stylesheet tree.
type Parser interface {
	Parse(data []byte, source ...string) (*css.Stylesheet, error)
}

// PluginError reports failure of a plugin in the chain.
type PluginError struct {
	Plugin string
	Err    error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %q failed: %v", e.Plugin, e.Err)
}

func (e *PluginError) Unwrap() error {
	return e.Err
}

var errNoStylesheet = errors.New("no stylesheet returned")

// Processor runs the transform. It holds read-only configuration only and is
// safe for concurrent use.
type Processor struct {
	log     *zap.Logger
	parser  Parser
	plugins []Plugin
	walker  *scope.Walker
	printer *css.Printer
	mode    common.Mode
}

// Option configures a Processor.
type Option func(*Processor)

// WithPlugins appends plugins to the chain, they run in the given order.
func WithPlugins(plugins ...Plugin) Option {
	return func(p *Processor) {
		p.plugins = append(p.plugins, plugins...)
	}
}

// WithParser replaces the default tdewolff based parser.
func WithParser(parser Parser) Option {
	return func(p *Processor) {
		p.parser = parser
	}
}

// WithPrinter sets how the resulting tree is serialized.
func WithPrinter(printer *css.Printer) Option {
	return func(p *Processor) {
		p.printer = printer
	}
}

// WithMode selects whether TransformFunc completes immediately or returns a
// pending result.
func WithMode(mode common.Mode) Option {
	return func(p *Processor) {
		p.mode = mode
	}
}

// New creates a new Processor.
func New(log *zap.Logger, opts ...Option) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Processor{
		log:     log.Named("pipeline"),
		printer: &css.Printer{},
		mode:    common.ModeImmediate,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.parser == nil {
		p.parser = css.NewParser(log)
	}
	p.walker = scope.NewWalker(log)
	return p
}

// Mode returns completion mode of the processor.
func (p *Processor) Mode() common.Mode {
	return p.mode
}

// Process parses src, runs plugins and rewrites the tree. The returned tree is
// owned by the caller.
func (p *Processor) Process(ctx context.Context, src []byte, source ...string) (*css.Stylesheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sheet, err := p.parser.Parse(src, source...)
	if err != nil {
		return nil, err
	}

	for _, plugin := range p.plugins {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.log.Debug("Running plugin", zap.String("plugin", plugin.Name()))
		out, err := plugin.Apply(ctx, sheet)
		if err != nil {
			return nil, &PluginError{Plugin: plugin.Name(), Err: err}
		}
		if out == nil {
			return nil, &PluginError{Plugin: plugin.Name(), Err: errNoStylesheet}
		}
		sheet = out
		p.log.Debug("Plugin finished", zap.String("plugin", plugin.Name()))
	}

	sheet.Nodes = p.walker.Walk(sheet.Nodes, false)
	return sheet, nil
}

// Transform compiles src and returns resulting CSS text. It always completes
// before returning regardless of mode.
func (p *Processor) Transform(ctx context.Context, src []byte, source ...string) (string, error) {
	sheet, err := p.Process(ctx, src, source...)
	if err != nil {
		return "", err
	}
	return p.printer.Print(sheet), nil
}

// Start compiles src on a separate goroutine and returns pending result.
func (p *Processor) Start(ctx context.Context, src []byte, source ...string) *Result {
	r := newResult()
	go func() {
		r.resolve(p.Transform(ctx, src, source...))
	}()
	return r
}

// TransformFunc compiles stylesheet text. Depending on mode the returned
// result is either already resolved or pending.
type TransformFunc func(ctx context.Context, src []byte) *Result

// Func returns transform function honoring processor mode.
func (p *Processor) Func() TransformFunc {
	if p.mode == common.ModeDeferred {
		return func(ctx context.Context, src []byte) *Result {
			return p.Start(ctx, src)
		}
	}
	return func(ctx context.Context, src []byte) *Result {
		r := newResult()
		r.resolve(p.Transform(ctx, src))
		return r
	}
}
