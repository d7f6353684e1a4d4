package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"

	"cssthis/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	CompileConfig struct {
		Mode                  common.Mode      `yaml:"mode"`
		Layout                common.Layout    `yaml:"layout"`
		Indent                string           `yaml:"indent,omitempty"`
		Output                common.OutputFmt `yaml:"output"`
		Plugins               []string         `yaml:"plugins" validate:"dive,required"`
		JSTemplate            string           `yaml:"js_template" validate:"required"`
		Encoding              string           `yaml:"encoding"`
		FileNameTransliterate bool             `yaml:"file_name_transliterate"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Compile   CompileConfig  `yaml:"compile"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// JSTemplateFieldName is yaml name of the js template field, template
// processing of configuration must leave its value alone.
const JSTemplateFieldName TemplateFieldName = "js_template"

var requiredOptions = []func(*gencfg.ProcessingOptions){
	gencfg.WithDoNotExpandField(string(JSTemplateFieldName)),
}

// check verifies what struct tags cannot express.
func (c *CompileConfig) check() error {
	var errs []error
	if strings.TrimSpace(c.Indent) != "" {
		errs = append(errs, fmt.Errorf("indent %q must be whitespace", c.Indent))
	}
	seen := make(map[string]bool, len(c.Plugins))
	for _, p := range c.Plugins {
		name := strings.ToLower(strings.TrimSpace(p))
		if seen[name] {
			errs = append(errs, fmt.Errorf("plugin %q requested more than once", p))
		}
		seen[name] = true
	}
	if !strings.Contains(c.JSTemplate, ".CSS") {
		errs = append(errs, errors.New("js_template never uses .CSS"))
	}
	return errors.Join(errs...)
}

// decode overlays yaml data on cfg. Unknown fields are errors. When final is
// set the result is sanitized and validated.
func decode(data []byte, cfg *Config, final bool) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if !final {
		return cfg, nil
	}
	if err := gencfg.Sanitize(cfg); err != nil {
		return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
	}
	if err := gencfg.Validate(cfg); err != nil {
		return nil, fmt.Errorf("failed to validate configuration: %w", err)
	}
	if err := cfg.Compile.check(); err != nil {
		return nil, fmt.Errorf("failed to validate compile configuration: %w", err)
	}
	return cfg, nil
}

// LoadConfiguration expands embedded defaults and overlays file at path on
// them, empty path means defaults alone.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	defaults, err := gencfg.Process(ConfigTmpl, slices.Concat(requiredOptions, options)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := decode(defaults, &Config{}, len(path) == 0)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if len(path) == 0 {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if cfg, err = decode(data, cfg, true); err != nil {
		return nil, fmt.Errorf("failed to process configuration file %s: %w", path, err)
	}
	return cfg, nil
}

// Prepare returns expanded embedded configuration.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

// Dump renders cfg as yaml.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
