// Package state defines shared program state.
package state

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"cssthis/config"
)

type envKey struct{}

// Summary counts stylesheets handled during the run.
type Summary struct {
	Compiled int
	Failed   int
}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// compile command settings which have no place in configuration
	NoDirs    bool
	Overwrite bool
	CodePage  encoding.Encoding

	Summary Summary

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	panic("no environment in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &LocalEnv{start: time.Now()})
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// SetCodePage selects code page of sources by its IANA name, empty name
// means UTF-8. On error previous selection is kept.
func (e *LocalEnv) SetCodePage(name string) error {
	if len(name) == 0 {
		e.CodePage = nil
		return nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return fmt.Errorf("unknown character set %q: %w", name, err)
	}
	if enc == nil {
		return fmt.Errorf("character set %q is not supported", name)
	}
	e.CodePage = enc
	return nil
}

// CodePageName returns IANA name of selected code page.
func (e *LocalEnv) CodePageName() string {
	if e.CodePage == nil {
		return "UTF-8"
	}
	if n, err := ianaindex.IANA.Name(e.CodePage); err == nil {
		return n
	}
	return fmt.Sprint(e.CodePage)
}

// SourceDecoder returns transformer converting stylesheet bytes to UTF-8.
// Byte order mark wins over selected code page.
func (e *LocalEnv) SourceDecoder() transform.Transformer {
	var fallback encoding.Encoding = unicode.UTF8
	if e.CodePage != nil {
		fallback = e.CodePage
	}
	return unicode.BOMOverride(fallback.NewDecoder())
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
