// Package compile implements the compile subcommand: it turns *.css files
// into scoped stylesheets or js modules exporting them.
package compile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	
	"cssthis/common"
	"cssthis/state"
)

// Flags returns flags of the compile subcommand.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "to",
			Usage: "compilation output `TYPE` (supported types: " + strings.Join(common.OutputFmtNames(), ", ") + ")"},
		&cli.BoolFlag{Name: "pretty", Aliases: []string{"p"}, Usage: "produce indented human readable output"},
		&cli.BoolFlag{Name: "nodirs", Aliases: []string{"nd"}, Usage: "when producing output do not keep input directory structure"},
		&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite files"},
		&cli.StringFlag{Name: "encoding",
			Usage: "Force `ENCODING` for source stylesheets (see IANA.org for character set names)"},
	}
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if cmd.IsSet("to") {
		format, err := common.ParseOutputFmt(cmd.String("to"))
		if err != nil {
			log.Warn("Unknown output format requested, keeping configured one", zap.Error(err), zap.Stringer("format", env.Cfg.Compile.Output))
		} else {
			env.Cfg.Compile.Output = format
		}
	}
	if cmd.Bool("pretty") {
		env.Cfg.Compile.Layout = common.LayoutPretty
	}
	if cmd.IsSet("encoding") {
		env.Cfg.Compile.Encoding = cmd.String("encoding")
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	// Stylesheets are expected to be UTF-8, old ones may need a code page
	if err := env.SetCodePage(env.Cfg.Compile.Encoding); err != nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.Error(err))
	} else {
		log.Debug("Decoding all sources", zap.String("charset", env.CodePageName()))
	}

	c, err := newCompiler(env, log, cmd.Root().Writer)
	if err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", env.Cfg.Compile.Output))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return c.process(ctx, src, dst)
}

// resolveDestination returns absolute destination directory, empty string
// means standard output.
func resolveDestination(src string, srcIsDir bool, dst string, format common.OutputFmt) (string, error) {
	switch {
	case dst == "-":
		return "", nil
	case len(dst) > 0:
		return filepath.Abs(dst)
	case format == common.OutputFmtCss:
		// scoped stylesheets land next to their sources
		if srcIsDir {
			return src, nil
		}
		return filepath.Dir(src), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("unable to get working directory: %w", err)
	}
	return wd, nil
}

func stdoutOr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
