package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func resetCrashOutput(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { debug.SetCrashOutput(nil, debug.CrashOptions{}) })
}

func TestLoggingConfig_PrepareFile(t *testing.T) {
	resetCrashOutput(t)
	dir := t.TempDir()
	conf := &LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger: LoggerConfig{
			Level:       "normal",
			Destination: filepath.Join(dir, "cssthis.log"),
			Mode:        "overwrite",
		},
	}

	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("hidden at normal level")
	log.Info("Scoped selector", zap.String("to", "${props.id}"))
	_ = log.Sync()

	data, err := os.ReadFile(conf.FileLogger.Destination)
	if err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	if !strings.Contains(string(data), "Scoped selector") {
		t.Errorf("info entry missing from log:\n%s", data)
	}
	if strings.Contains(string(data), "hidden at normal level") {
		t.Errorf("debug entry must not be logged at normal level:\n%s", data)
	}
}

func TestLoggingConfig_PrepareNone(t *testing.T) {
	conf := &LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none"},
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if log.Core().Enabled(zap.ErrorLevel) {
		t.Error("no output was requested, logger must be disabled")
	}
}

func TestLoggingConfig_PrepareWithReport(t *testing.T) {
	resetCrashOutput(t)
	dir := t.TempDir()

	rpt, err := (&ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	conf := &LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none", Destination: filepath.Join(dir, "cssthis.log"), Mode: "append"},
	}

	log, err := conf.Prepare(rpt)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	// report forces debug file log even when file log is off
	log.Debug("Scoped keyframes", zap.String("to", "${props.id}-move"))
	_ = log.Sync()

	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	files := readArchive(t, rpt.Name())
	if !strings.Contains(files["final.log"], "Scoped keyframes") {
		t.Errorf("final.log misses debug entry:\n%s", files["final.log"])
	}
	if !strings.Contains(files["MANIFEST"], "panic.log") {
		t.Errorf("MANIFEST misses panic.log:\n%s", files["MANIFEST"])
	}
	if err := RemoveEmptyPanicLog(conf.FileLogger.Destination); err != nil {
		t.Fatalf("RemoveEmptyPanicLog() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cssthis-panic.log")); !os.IsNotExist(err) {
		t.Errorf("empty panic log was not removed: %v", err)
	}
}

func TestRemoveEmptyPanicLog_KeepsContent(t *testing.T) {
	dir := t.TempDir()
	panicLog := filepath.Join(dir, "cssthis-panic.log")
	if err := os.WriteFile(panicLog, []byte("panic: boom"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := RemoveEmptyPanicLog(filepath.Join(dir, "cssthis.log")); err != nil {
		t.Fatalf("RemoveEmptyPanicLog() error = %v", err)
	}
	if _, err := os.Stat(panicLog); err != nil {
		t.Errorf("panic log with content removed: %v", err)
	}
	// nothing to remove
	if err := RemoveEmptyPanicLog(filepath.Join(t.TempDir(), "cssthis.log")); err != nil {
		t.Errorf("RemoveEmptyPanicLog() on absent file error = %v", err)
	}
}

func TestMinLevel(t *testing.T) {
	for name, want := range map[string]zapcore.Level{"debug": zapcore.DebugLevel, "normal": zapcore.InfoLevel} {
		if got, ok := minLevel(name); !ok || got != want {
			t.Errorf("minLevel(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := minLevel("none"); ok {
		t.Error("minLevel(none) must disable output")
	}
}

func TestShortErrors(t *testing.T) {
	enc := shortErrors{zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "msg"})}

	batch := multierr.Combine(errors.New("a.css: bad"), fmt.Errorf("b.css: %w", errors.New("worse")))
	buf, err := enc.Clone().EncodeEntry(zapcore.Entry{Message: "Program ended with error"}, []zapcore.Field{zap.Error(batch)})
	if err != nil {
		t.Fatalf("EncodeEntry() error = %v", err)
	}
	defer buf.Free()

	out := buf.String()
	if !strings.Contains(out, "a.css: bad; b.css: worse") {
		t.Errorf("error message missing:\n%s", out)
	}
	if strings.Contains(out, "errorVerbose") || strings.Contains(out, "errorCauses") {
		t.Errorf("verbose error form leaked to console:\n%s", out)
	}
}
