package compile

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"cssthis/config"
	"cssthis/state"
)

// buildOutputPath returns output file path for a stylesheet. "src" is the
// source path relative to the source root (always including file name), it
// decides the subdirectory under "dst" unless directory structure is not
// to be preserved.
func buildOutputPath(src, dst string, env *state.LocalEnv) string {
	return filepath.Join(determineOutputDir(src, dst, env), buildDefaultFileName(src, env))
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

func buildDefaultFileName(src string, env *state.LocalEnv) string {
	baseName := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if env.Cfg.Compile.FileNameTransliterate {
		baseName = slug.Make(baseName)
	}
	return config.CleanFileName(baseName) + env.Cfg.Compile.Output.Ext()
}
