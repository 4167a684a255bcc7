// ciboard turns CI test-run events into a per-project status table.
//
// Usage:
//
//	ciboard --exit-zero < events.json >> "$GITHUB_STEP_SUMMARY"
//	ciboard --format terminal < events.ndjson
//	ciboard --metrics-file ciboard.prom < events.yaml
//
// Each event names a directory, a project, a test category and an outcome.
// Accepts a JSON array, newline-delimited JSON objects, or a YAML sequence.
//
// ciboard exits 1 when any project is failing. Pass --exit-zero (or set
// exit_zero in .ciboard.yaml) when the table is only a report, as in a job
// summary step that must not fail the workflow.
//
// Output modes (auto-detected):
//
//	markdown  job-summary table (default when piped)
//	terminal  styled Unicode table (default when TTY)
//	llm       terse plain text for AI consumption
//	json      structured JSON for automation
//	tui       interactive browser
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dkoosis/ciboard/internal/browse"
	"github.com/dkoosis/ciboard/internal/config"
	"github.com/dkoosis/ciboard/internal/detect"
	"github.com/dkoosis/ciboard/internal/logging"
	"github.com/dkoosis/ciboard/internal/metrics"
	"github.com/dkoosis/ciboard/internal/version"
	"github.com/dkoosis/ciboard/pkg/event"
	"github.com/dkoosis/ciboard/pkg/render"
	"github.com/dkoosis/ciboard/pkg/summary"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options are the command-line flags. Empty strings and unset bools leave
// the configured value alone.
type options struct {
	format      string
	theme       string
	configPath  string
	metricsFile string
	exitZero    bool
	noFootnote  bool
	debug       bool
	version     bool
	set         map[string]bool
}

// errUsage reports a usage error already printed to stderr.
var errUsage = errors.New("usage error")

// parseFlags parses args. The flag package reports its own errors on stderr.
func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{set: map[string]bool{}}
	fs := flag.NewFlagSet("ciboard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.format, "format", "", "Output format: auto, markdown, terminal, llm, json, tui")
	fs.StringVar(&opts.theme, "theme", "", "Theme: default, orca, mono")
	fs.StringVar(&opts.configPath, "config", "", "Path to .ciboard.yaml")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "Also write a Prometheus textfile to this path")
	fs.BoolVar(&opts.exitZero, "exit-zero", false, "Exit 0 even when a project is failing")
	fs.BoolVar(&opts.noFootnote, "no-footnote", false, "Omit the column legend under the markdown table")
	fs.BoolVar(&opts.debug, "debug", false, "Log diagnostics to stderr")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "ciboard: unexpected argument %q (events are read from stdin)\n", fs.Arg(0))
		return nil, errUsage
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// apply layers the flags over cfg.
func (o *options) apply(cfg *config.Config) {
	if o.format != "" {
		cfg.Format = o.format
	}
	if o.theme != "" {
		cfg.Theme = o.theme
	}
	if o.metricsFile != "" {
		cfg.MetricsFile = o.metricsFile
	}
	if o.set["exit-zero"] {
		cfg.ExitZero = o.exitZero
	}
	if o.set["debug"] {
		cfg.Debug = o.debug
	}
	if o.noFootnote {
		empty := ""
		cfg.Footnote = &empty
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if opts.version {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	cfg, cfgErr := config.Load(config.FindPath(opts.configPath, os.Getenv))
	cfg.ApplyEnv(os.Getenv)
	opts.apply(cfg)
	if config.NoColor(os.Getenv) {
		cfg.Theme = "mono"
	}

	logger := logging.New(stderr, cfg.Debug)
	defer func() { _ = logger.Sync() }()
	if cfgErr != nil {
		logger.Warn("ignoring config file, using defaults", zap.Error(cfgErr))
	} else if cfg.Source != "" {
		logger.Debug("loaded config", zap.String("path", cfg.Source))
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "ciboard: invalid configuration: %v\n", err)
		return 2
	}

	s, code := readSummary(stdin, stderr, logger)
	if s == nil {
		return code
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile, s); err != nil {
			fmt.Fprintf(stderr, "ciboard: %v\n", err)
			return 2
		}
		logger.Info("wrote metrics", zap.String("path", cfg.MetricsFile))
	}

	mode := resolveFormat(cfg.Format, stdout)
	logger.Debug("rendering", zap.String("format", mode), zap.String("theme", cfg.Theme))
	if mode == "tui" {
		if err := runBrowser(s, cfg, stdout); err != nil {
			fmt.Fprintf(stderr, "ciboard: %v\n", err)
			return 2
		}
	} else {
		fmt.Fprint(stdout, selectRenderer(mode, cfg, stdout).Render(s))
	}
	return exitCode(s, cfg.ExitZero)
}

// readSummary reads, detects, decodes, and aggregates stdin.
// Returns (summary, 0) on success; (nil, exitCode) on error.
func readSummary(stdin io.Reader, stderr io.Writer, logger *zap.Logger) (*summary.Summary, int) {
	input, err := io.ReadAll(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "ciboard: reading stdin: %v\n", err)
		return nil, 2
	}
	if len(input) == 0 {
		fmt.Fprintf(stderr, "ciboard: no input on stdin\n")
		return nil, 2
	}

	format := detect.Sniff(input)
	logger.Debug("detected input", zap.Stringer("format", format), zap.Int("bytes", len(input)))
	if format == event.FormatUnknown {
		fmt.Fprintf(stderr, "ciboard: unrecognized input format (expected JSON array, NDJSON, or YAML sequence)\n")
		return nil, 2
	}

	events, err := event.Decode(format, input)
	if err != nil {
		fmt.Fprintf(stderr, "ciboard: decoding %s: %v\n", format, err)
		return nil, 2
	}
	s, err := summary.Aggregate(events)
	if err != nil {
		fmt.Fprintf(stderr, "ciboard: %v\n", err)
		return nil, 2
	}
	logger.Debug("aggregated events",
		zap.Int("events", len(events)),
		zap.Int("directories", len(s.Directories())),
		zap.Int("projects", len(s.Projects())))
	return s, 0
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width for w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}

func resolveFormat(format string, w io.Writer) string {
	if format != config.DefaultFormat {
		return format
	}
	// Auto-detect: TTY = terminal, piped = markdown
	if isTTYWriter(w) {
		return "terminal"
	}
	return "markdown"
}

func selectRenderer(mode string, cfg *config.Config, w io.Writer) render.Renderer {
	switch mode {
	case "json":
		return render.NewJSON(version.Version)
	case "llm":
		return render.NewLLM()
	case "terminal":
		return render.NewTerminal(render.ThemeByName(cfg.Theme), termWidth(w), cfg.HeaderColumns())
	default:
		return render.NewMarkdown(cfg.HeaderColumns(), cfg.FootnoteText())
	}
}

func runBrowser(s *summary.Summary, cfg *config.Config, stdout io.Writer) error {
	if !isTTYWriter(stdout) {
		return errors.New("tui output requires a terminal")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return browse.Run(ctx, s, render.ThemeByName(cfg.Theme), cfg.HeaderColumns(), stdout)
}

// exitCode returns 1 when any project is failing, 0 otherwise.
func exitCode(s *summary.Summary, exitZero bool) int {
	if exitZero {
		return 0
	}
	if summary.ComputeStats(s).Failing() {
		return 1
	}
	return 0
}
