package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"cssthis/misc"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// minLevel maps configured level name to zap level, ok is false for "none".
func minLevel(name string) (zapcore.Level, bool) {
	switch name {
	case "debug":
		return zapcore.DebugLevel, true
	case "normal":
		return zapcore.InfoLevel, true
	}
	return zapcore.InvalidLevel, false
}

// Prepare builds program logger: console output split between stdout and
// stderr plus optional file. When debug report is requested file log is
// always written at debug level and goes into the report together with
// panic log.
func (conf *LoggingConfig) Prepare(rpt *Report) (*zap.Logger, error) {
	file := conf.FileLogger
	if rpt != nil {
		file.Level, file.Mode = "debug", "overwrite"
	}

	fc, redirected, err := file.fileCore(rpt)
	if err != nil {
		return nil, err
	}
	cores := append(conf.ConsoleLogger.consoleCores(), fc)

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	if len(redirected) > 0 {
		log.Warn("Log file was redirected to new location", zap.String("location", redirected))
	}
	return log.Named(misc.GetAppName()), nil
}

// consoleCores sends errors to stderr and everything else allowed by level
// to stdout.
func (lc LoggerConfig) consoleCores() []zapcore.Core {
	level, ok := minLevel(lc.Level)
	if !ok {
		return nil
	}
	stdout := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig(os.Stdout)),
		zapcore.Lock(os.Stdout),
		zap.LevelEnablerFunc(func(l zapcore.Level) bool { return level <= l && l < zapcore.ErrorLevel }))
	stderr := zapcore.NewCore(
		shortErrors{zapcore.NewConsoleEncoder(consoleEncoderConfig(os.Stderr))},
		zapcore.Lock(os.Stderr),
		zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= zapcore.ErrorLevel }))
	return []zapcore.Core{stdout, stderr}
}

// fileCore opens log file, falling back to temporary file, and returns name
// of the fallback when it was used.
func (lc LoggerConfig) fileCore(rpt *Report) (zapcore.Core, string, error) {
	level, ok := minLevel(lc.Level)
	if !ok {
		return zapcore.NewNopCore(), "", nil
	}

	if ef := lc.capturePanics(); ef != "" {
		rpt.Store("panic.log", ef)
	}

	var redirected string
	f, err := openLog(lc.Destination, lc.Mode)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+".*.log"); err != nil {
			return nil, "", fmt.Errorf("unable to access file log destination (%s): %w", lc.Destination, err)
		}
		redirected = f.Name()
	}
	rpt.Store("final.log", f.Name())

	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zapcore.NewCore(enc, zapcore.Lock(f), zap.NewAtomicLevelAt(level)), redirected, nil
}

// capturePanics makes runtime write fatal errors next to the log file and
// returns name of that file, empty when it could not be created.
func (lc LoggerConfig) capturePanics() string {
	f, err := openLog(panicLogName(lc.Destination), lc.Mode)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-panic.*.log"); err != nil {
			return ""
		}
	}
	defer f.Close()
	if err := debug.SetCrashOutput(f, debug.CrashOptions{}); err != nil {
		return ""
	}
	return f.Name()
}

func openLog(name, mode string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if mode == "append" {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	return os.OpenFile(name, flags, 0644)
}

func panicLogName(logName string) string {
	return filepath.Join(filepath.Dir(logName), misc.GetAppName()+"-panic.log")
}

// RemoveEmptyPanicLog deletes panic log kept next to log file logName when
// nothing was written there.
func RemoveEmptyPanicLog(logName string) error {
	name := panicLogName(logName)
	if fi, err := os.Stat(name); err != nil || fi.Size() > 0 {
		return nil
	}
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("unable to remove empty panic log file '%s': %w", name, err)
	}
	return nil
}

func consoleEncoderConfig(stream *os.File) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	}
	return ec
}

// shortErrors prints only the message of error fields, so batch errors do
// not drag their verbose form with every stylesheet onto console.
type shortErrors struct {
	zapcore.Encoder
}

func (s shortErrors) Clone() zapcore.Encoder {
	return shortErrors{s.Encoder.Clone()}
}

func (s shortErrors) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	short := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		if e, ok := f.Interface.(error); ok && f.Type == zapcore.ErrorType {
			f.Interface = errors.New(e.Error())
		}
		short[i] = f
	}
	return s.Encoder.EncodeEntry(ent, short)
}
