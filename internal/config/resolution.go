package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Environment variables recognized by ApplyEnv and FindPath.
const (
	EnvConfig      = "CIBOARD_CONFIG"
	EnvFormat      = "CIBOARD_FORMAT"
	EnvTheme       = "CIBOARD_THEME"
	EnvDebug       = "CIBOARD_DEBUG"
	EnvExitZero    = "CIBOARD_EXIT_ZERO"
	EnvMetricsFile = "CIBOARD_METRICS_FILE"
	EnvNoColor     = "NO_COLOR"
)

// FindPath locates the config file. An explicit path wins, then
// CIBOARD_CONFIG, then .ciboard.yaml in the working directory, then
// ciboard/.ciboard.yaml under the user config dir. Returns "" when none exists.
func FindPath(explicit string, getenv func(string) string) string {
	if explicit != "" {
		return explicit
	}
	if p := getenv(EnvConfig); p != "" {
		return p
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "ciboard", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}

// ApplyEnv overrides file and default values with environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvFormat); v != "" {
		c.Format = v
	}
	if v := getenv(EnvTheme); v != "" {
		c.Theme = v
	}
	if v := getenv(EnvMetricsFile); v != "" {
		c.MetricsFile = v
	}
	if b, ok := envBool(getenv, EnvDebug); ok {
		c.Debug = b
	}
	if b, ok := envBool(getenv, EnvExitZero); ok {
		c.ExitZero = b
	}
}

// NoColor reports whether NO_COLOR is set. Per https://no-color.org any
// non-empty value counts, and it beats every theme setting including flags.
func NoColor(getenv func(string) string) bool {
	return getenv(EnvNoColor) != ""
}

func envBool(getenv func(string) string, key string) (value, ok bool) {
	s := getenv(key)
	if s == "" {
		return false, false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return b, true
}
