package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/ciboard/pkg/render"
)

// Constants for default values.
const (
	DefaultFormat = "auto"
	DefaultTheme  = "default"
	FileName      = ".ciboard.yaml"
)

// Formats lists the accepted output formats.
var Formats = []string{"auto", "markdown", "terminal", "llm", "json", "tui"}

// Config represents ciboard's configuration from .ciboard.yaml.
type Config struct {
	Format      string         `yaml:"format"`
	Theme       string         `yaml:"theme"`
	ExitZero    bool           `yaml:"exit_zero"`
	Debug       bool           `yaml:"debug"`
	MetricsFile string         `yaml:"metrics_file"`
	Footnote    *string        `yaml:"footnote"` // nil means the default legend
	HeaderCase  string         `yaml:"header_case"`
	Columns     render.Columns `yaml:"columns"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Format: DefaultFormat,
		Theme:  DefaultTheme,
	}
}

// Load reads the YAML file at path on top of the defaults.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	// #nosec G304 -- path comes from the --config flag, CIBOARD_CONFIG, or FindPath
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	cfg.Source = path
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if !slices.Contains(Formats, c.Format) {
		result = multierror.Append(result,
			fmt.Errorf("unknown format %q (expected %s)", c.Format, strings.Join(Formats, ", ")))
	}
	if !slices.Contains(render.ThemeNames, c.Theme) {
		result = multierror.Append(result,
			fmt.Errorf("unknown theme %q (expected %s)", c.Theme, strings.Join(render.ThemeNames, ", ")))
	}
	if !slices.Contains(render.HeaderCases, strings.ToLower(c.HeaderCase)) {
		result = multierror.Append(result,
			fmt.Errorf("unknown header_case %q (expected upper, lower, or title)", c.HeaderCase))
	}
	return result.ErrorOrNil()
}

// FootnoteText returns the legend printed under the markdown table.
func (c *Config) FootnoteText() string {
	if c.Footnote == nil {
		return render.DefaultFootnote
	}
	return *c.Footnote
}

// HeaderColumns returns the table headers with defaults filled in and the
// configured case applied.
func (c *Config) HeaderColumns() render.Columns {
	return c.Columns.Merge(render.DefaultColumns()).Cased(c.HeaderCase)
}
