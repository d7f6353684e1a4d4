package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssthis/compile"
	"cssthis/config"
	"cssthis/misc"
	"cssthis/plugins"
	"cssthis/state"
)

// errLogged is set when error returned by command has been written to the
// log already and main only needs to set exit code.
var errLogged bool

// before loads configuration, opens debug report and logs. Nothing is
// prepared when there is no command to run.
func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)
	configFile := cmd.String("config")

	var err error
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData("config/"+filepath.Base(configFile), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started",
		zap.Strings("args", os.Args),
		zap.String("ver", misc.GetVersion()),
		zap.String("runtime", runtime.Version()),
		zap.String("hash", misc.GetGitHash()))
	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 {
		env.Log.Info("Using defaults (no configuration file)")
	}

	c := &env.Cfg.Compile
	env.Log.Debug("Compile settings",
		zap.Stringer("mode", c.Mode),
		zap.Stringer("layout", c.Layout),
		zap.Stringer("output", c.Output),
		zap.Strings("plugins", c.Plugins),
		zap.String("encoding", c.Encoding))
	return ctx, nil
}

// after reports what compile command did and releases logs and report.
// Errors are written to stderr directly from here on.
func after(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		sum := env.Summary
		if total := sum.Compiled + sum.Failed; total > 0 {
			env.Log.Info("Stylesheets processed",
				zap.Int("total", total), zap.Int("compiled", sum.Compiled), zap.Int("failed", sum.Failed))
		}
		env.Log.Debug("Program ended",
			zap.Duration("elapsed", env.Uptime()),
			zap.Strings("parsed args", cmd.Args().Slice()),
			zap.String("charset", env.CodePageName()),
			zap.Bool("nodirs", env.NoDirs),
			zap.Bool("overwrite", env.Overwrite))
	}
	env.RestoreStdLog()

	if er := env.Rpt.Close(); er != nil {
		err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
	}

	if env.Cfg == nil || len(env.Cfg.Logging.FileLogger.Destination) == 0 {
		return err
	}
	debug.SetCrashOutput(nil, debug.CrashOptions{})
	if er := config.RemoveEmptyPanicLog(env.Cfg.Logging.FileLogger.Destination); er != nil {
		err = multierr.Append(err, er)
	}
	return err
}

// logError runs before after, so log is still available.
func logError(ctx context.Context, _ *cli.Command, err error) {
	if env := state.EnvFromContext(ctx); env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errLogged = true
	}
}

func passUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func unknownCommand(ctx context.Context, _ *cli.Command, name string) {
	if env := state.EnvFromContext(ctx); env.Log != nil {
		env.Log.Warn("Unknown command, nothing to do", zap.String("command", name))
		return
	}
	fmt.Fprintf(os.Stderr, "Unknown command %q, nothing to do\n", name)
}

const compileHelp = `%s
SOURCE:
    stylesheet or directory with stylesheets, directories are walked
    recursively looking for *.css files (symbolic links are not followed).
    Results of previous runs (*.this.css) are never compiled again.

DESTINATION:
    directory for results, names of output files come from sources
    "-" - write results to STDOUT
    if absent - directory of the source for css output, current working directory otherwise

PLUGINS:
    tree transforms which may be requested in configuration: %s
`

const dumpconfigHelp = `%s
DESTINATION:
    file to write configuration to, STDOUT if absent

Active configuration is embedded defaults merged with configuration file
given by --config. Use --default to see defaults alone.
`

func newApp() *cli.Command {
	return &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "scoping compiler for component stylesheets",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          before,
		After:           after,
		OnUsageError:    passUsageError,
		ExitErrHandler:  logError,
		CommandNotFound: unknownCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log everything and produce report archive for troubleshooting"},
		},
		Commands: []*cli.Command{
			{
				Name:               "compile",
				Usage:              "Compiles stylesheet(s) into scoped CSS or JS modules",
				ArgsUsage:          "SOURCE [DESTINATION]",
				OnUsageError:       passUsageError,
				Flags:              compile.Flags(),
				Action:             compile.Run,
				CustomHelpTemplate: fmt.Sprintf(compileHelp, cli.CommandHelpTemplate, strings.Join(plugins.Names(), ", ")),
			},
			{
				Name:      "dumpconfig",
				Usage:     "Dumps either default or active configuration (YAML)",
				ArgsUsage: "[DESTINATION]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output embedded defaults"},
				},
				OnUsageError:       passUsageError,
				Action:             dumpConfig,
				CustomHelpTemplate: fmt.Sprintf(dumpconfigHelp, cli.CommandHelpTemplate),
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	err := newApp().Run(ctx, os.Args)
	stop()
	if err == nil {
		return
	}
	if !errLogged {
		fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
	}
	os.Exit(1)
}

func dumpConfig(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		data []byte
		err  error
		kind = "active"
	)
	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().Get(0)
	if len(fname) == 0 {
		env.Log.Info("Writing configuration", zap.String("kind", kind), zap.String("file", "STDOUT"))
		_, err = stdout(cmd).Write(data)
	} else {
		env.Log.Info("Writing configuration", zap.String("kind", kind), zap.String("file", fname))
		err = os.WriteFile(fname, data, 0644)
	}
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
