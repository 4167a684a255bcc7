// Package config handles configuration loading and merging for ciboard.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--format, --theme, --exit-zero, --metrics-file, --debug, ...)
//  2. Environment variables (CIBOARD_FORMAT, CIBOARD_THEME, CIBOARD_DEBUG, NO_COLOR, ...)
//  3. YAML config file (.ciboard.yaml, see FindPath)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
// Flags are applied by the caller after Load and ApplyEnv.
//
// # Example
//
//	format: markdown
//	theme: orca
//	exit_zero: true
//	header_case: title
//	columns:
//	  release: release
//	  stacked_borrows: miri (SB)
//	  tree_borrows: miri (TB)
//	footnote: ""            # drop the legend under the markdown table
//	metrics_file: ci.prom
//
// # Environment Variables
//
//   - CIBOARD_CONFIG: path to the config file
//   - CIBOARD_FORMAT, CIBOARD_THEME, CIBOARD_METRICS_FILE: as the YAML keys
//   - CIBOARD_DEBUG, CIBOARD_EXIT_ZERO: "true"/"1" to enable
//   - NO_COLOR: any non-empty value selects the mono theme
package config
