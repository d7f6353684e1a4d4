package compile

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/transform"

	"cssthis/common"
	"cssthis/config"
	"cssthis/css"
	"cssthis/pipeline"
	"cssthis/plugins"
	"cssthis/state"
)

const sourceExt = ".css"

// compiler keeps everything needed to process a batch of stylesheets.
type compiler struct {
	env    *state.LocalEnv
	log    *zap.Logger
	proc   *pipeline.Processor
	parser *css.Parser
	tmpl   *template.Template
	stdout io.Writer
}

// job is a single stylesheet being compiled, src is relative to the source
// root and always includes file name.
type job struct {
	path   string
	src    string
	input  []byte
	result *pipeline.Result
}

func newCompiler(env *state.LocalEnv, log *zap.Logger, stdout io.Writer) (*compiler, error) {
	cfg := &env.Cfg.Compile

	chain, err := plugins.ByName(cfg.Plugins...)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare plugins: %w", err)
	}

	c := &compiler{
		env:    env,
		log:    log,
		parser: css.NewParser(log),
		stdout: stdoutOr(stdout),
		proc: pipeline.New(log,
			pipeline.WithPlugins(chain...),
			pipeline.WithMode(cfg.Mode),
			pipeline.WithPrinter(&css.Printer{Pretty: cfg.Layout.IsPretty(), Indent: cfg.Indent}),
		),
	}
	if cfg.Output == common.OutputFmtJs {
		if c.tmpl, err = parseTemplate(config.JSTemplateFieldName, cfg.JSTemplate); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// process compiles a single file or every stylesheet under a directory.
func (c *compiler) process(ctx context.Context, src, dst string) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	var (
		root  string
		files []string
	)
	switch {
	case fi.Mode().IsDir():
		root = src
		if files, err = c.collect(ctx, src); err != nil {
			return fmt.Errorf("unable to process directory: %w", err)
		}
	case fi.Mode().IsRegular():
		root = filepath.Dir(src)
		files = []string{src}
	default:
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}

	if dst, err = resolveDestination(src, fi.Mode().IsDir(), dst, c.env.Cfg.Compile.Output); err != nil {
		return err
	}

	if len(files) == 0 {
		c.log.Debug("Nothing to process", zap.String("source", src))
		return nil
	}

	// In deferred mode every stylesheet starts compiling before the first
	// result is awaited, results are still written in source order.
	compileFn := c.proc.Func()

	var errs error
	jobs := make([]*job, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		j := &job{path: path, src: strings.TrimPrefix(strings.TrimPrefix(path, root), string(filepath.Separator))}
		if j.input, err = c.read(path); err != nil {
			c.log.Error("Unable to read stylesheet", zap.String("file", path), zap.Error(err))
			c.env.Rpt.SheetDone(j.src, "", 0, err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", j.src, err))
			continue
		}
		c.env.Rpt.SheetSource(j.src, j.input)
		j.result = compileFn(ctx, j.input)
		jobs = append(jobs, j)
	}

	for _, j := range jobs {
		if err := c.finish(ctx, j, dst); err != nil {
			c.log.Error("Unable to compile stylesheet", zap.String("file", j.path), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", j.src, err))
			continue
		}
		c.env.Summary.Compiled++
	}
	if n := len(multierr.Errors(errs)); n > 0 {
		c.env.Summary.Failed += n
		return fmt.Errorf("%d of %d stylesheet(s) failed: %w", n, len(files), errs)
	}
	return nil
}

// collect walks directory tree and returns stylesheets in natural order.
// Results of previous runs are skipped.
func (c *compiler) collect(ctx context.Context, dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			c.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		name := strings.ToLower(d.Name())
		if filepath.Ext(name) != sourceExt || strings.HasSuffix(name, common.OutputFmtCss.Ext()) {
			c.log.Debug("Skipping file", zap.String("file", path))
			return nil
		}
		files = append(files, path)
		return nil
	})
	slices.SortFunc(files, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return files, err
}

// read loads stylesheet converting it to UTF-8.
func (c *compiler) read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out, _, err := transform.Bytes(c.env.SourceDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("unable to decode source: %w", err)
	}
	return out, nil
}

// finish waits for the job result and writes it out.
func (c *compiler) finish(ctx context.Context, j *job, dst string) (rerr error) {
	var outputName string

	c.log.Info("Compilation starting", zap.String("from", j.src))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			c.log.Error("Compilation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("compilation panic: %v", r)
		} else if rerr == nil {
			c.log.Info("Compilation completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
		c.env.Rpt.SheetDone(j.src, outputName, time.Since(start), rerr)
	}(time.Now())

	select {
	case <-j.result.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	out, err := j.result.Wait()
	if err != nil {
		return err
	}

	if c.env.Rpt != nil {
		if sheet, err := c.parser.Parse([]byte(out), j.src); err == nil {
			c.env.Rpt.SheetTree(j.src, css.Dump(sheet), len(sheet.Rules()), len(sheet.AtRules("keyframes")))
		} else {
			c.log.Debug("Unable to dump result tree", zap.Error(err))
		}
	}

	format := c.env.Cfg.Compile.Output
	if format == common.OutputFmtJs {
		if out, err = expandTemplate(c.tmpl, Values{
			CSS:    EscapeTemplateLiteral(out),
			Name:   strings.TrimSuffix(filepath.Base(j.src), filepath.Ext(j.src)),
			Source: filepath.ToSlash(j.src),
			Format: format.String(),
		}); err != nil {
			return err
		}
	}

	c.env.Rpt.SheetResult(j.src, format.Ext(), []byte(out))

	if len(dst) == 0 {
		outputName = "STDOUT"
		_, err := io.WriteString(c.stdout, out)
		return err
	}

	outputName = buildOutputPath(j.src, dst, c.env)

	if _, err := os.Stat(outputName); err == nil {
		if !c.env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		c.log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := os.WriteFile(outputName, []byte(out), 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}
