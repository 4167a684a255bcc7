package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate keeps the host's config files and NO_COLOR out of the run.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	for _, k := range []string{"CIBOARD_CONFIG", "CIBOARD_FORMAT", "CIBOARD_THEME", "CIBOARD_DEBUG", "CIBOARD_EXIT_ZERO", "CIBOARD_METRICS_FILE", "NO_COLOR"} {
		t.Setenv(k, "")
	}
}

func runCLI(t *testing.T, input string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(input), &out, &errOut)
	return out.String(), errOut.String(), code
}

// --- JTBD E2E Tests ---
// These exercise the full pipeline: stdin → detect → decode → aggregate → render → stdout

func TestJTBD_JobSummaryForPassingProject(t *testing.T) {
	isolate(t)
	input := `[{"dir":"a","crate":"x","type":"release","event":"ok"}]`

	out, errOut, code := runCLI(t, input, "--format", "markdown", "--no-footnote")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d; stderr:\n%s", code, errOut)
	}
	want := "| name | lib | doc | lib (S) | lib (T) | status |\n" +
		"| :-- | :-: | :-: | :-: | :-: | :-: |\n" +
		`| **a**/x | **<span style="color: #1a7f37">1</span>** / <span style="color: #6e7781">1</span> | ` +
		`**<span style="color: #d1242f">0</span>** / <span style="color: #6e7781">0</span> | - | - | :white_check_mark: |` + "\n"
	if out != want {
		t.Errorf("unexpected markdown:\n got: %q\nwant: %q", out, want)
	}
}

func TestJTBD_PipedOutputDefaultsToMarkdownWithLegend(t *testing.T) {
	isolate(t)
	input := `[{"dir":"a","crate":"x","type":"release","event":"ok"}]`

	out, _, code := runCLI(t, input)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(out, "| name | lib |") {
		t.Errorf("expected markdown table, got:\n%s", out)
	}
	if !strings.Contains(out, "|\n\n\n\\* lib (S)") {
		t.Errorf("expected legend after table, got:\n%s", out)
	}
}

func TestJTBD_FailingProjectExitsOne(t *testing.T) {
	isolate(t)
	input := strings.Join([]string{
		`{"dir":"a","crate":"x","type":"release","event":"ok"}`,
		`{"dir":"a","crate":"x","type":"release","event":"failed"}`,
		`{"dir":"b","crate":"y","type":"release","event":"ok"}`,
	}, "\n") + "\n"

	out, _, code := runCLI(t, input, "--format", "llm")
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(out, "SCOPE: FAIL 1 of 2 projects failing") {
		t.Errorf("expected failing scope, got:\n%s", out)
	}
	if strings.Contains(out, "\033[") {
		t.Error("LLM output contains ANSI escape codes")
	}

	_, _, code = runCLI(t, input, "--format", "llm", "--exit-zero")
	if code != 0 {
		t.Errorf("expected exit 0 with --exit-zero, got %d", code)
	}
}

func TestJTBD_JobSummaryWithExitZeroReportsFailures(t *testing.T) {
	isolate(t)
	input := `[{"dir":"a","crate":"x","type":"release","event":""}]`

	out, errOut, code := runCLI(t, input, "--exit-zero")
	if code != 0 {
		t.Fatalf("expected exit 0 with --exit-zero, got %d; stderr:\n%s", code, errOut)
	}
	if !strings.Contains(out, "| :x: |") {
		t.Errorf("expected failing row in job summary, got:\n%s", out)
	}

	_, _, code = runCLI(t, input)
	if code != 1 {
		t.Errorf("expected exit 1 without --exit-zero, got %d", code)
	}
}

func TestJTBD_YAMLInputWithDocTests(t *testing.T) {
	isolate(t)
	input := `# nightly run
- dir: a
  crate: x
  type: release
  event: ok
- dir: a
  crate: x
  type: doc
  event: 3/3
`
	out, errOut, code := runCLI(t, input, "--format", "markdown")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d; stderr:\n%s", code, errOut)
	}
	if !strings.Contains(out, ":sparkles:") {
		t.Errorf("expected pass-with-docs emoji, got:\n%s", out)
	}
}

func TestJTBD_JSONOutput(t *testing.T) {
	isolate(t)
	input := `[{"dir":"a","crate":"x","type":"doc","event":"2/2"}]`

	out, _, code := runCLI(t, input, "--format", "json")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var doc struct {
		Directories []struct {
			Name     string `json:"name"`
			Projects []struct {
				Name   string `json:"name"`
				Status string `json:"status"`
			} `json:"projects"`
		} `json:"directories"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(doc.Directories) != 1 || doc.Directories[0].Projects[0].Status != "incomplete" {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestJTBD_TerminalOutputHonorsNoColor(t *testing.T) {
	isolate(t)
	t.Setenv("NO_COLOR", "1")
	input := `[{"dir":"a","crate":"x","type":"release","event":"ok"}]`

	out, _, code := runCLI(t, input, "--format", "terminal", "--theme", "default")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "a/x") {
		t.Errorf("expected project label, got:\n%s", out)
	}
	if strings.Contains(out, "\033[") {
		t.Error("NO_COLOR output contains ANSI escape codes")
	}
}

func TestJTBD_MetricsFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "ciboard.prom")
	input := `[{"dir":"a","crate":"x","type":"release","event":"ok"}]`

	_, errOut, code := runCLI(t, input, "--format", "markdown", "--metrics-file", path)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d; stderr:\n%s", code, errOut)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(data), `ciboard_tests_passed{category="release",directory="a",project="x"} 1`) {
		t.Errorf("unexpected metrics:\n%s", data)
	}
	if !strings.Contains(errOut, "wrote metrics") {
		t.Errorf("expected metrics log line, got:\n%s", errOut)
	}
}

func TestJTBD_ConfigFileSetsHeadersAndFormat(t *testing.T) {
	isolate(t)
	cfg := "format: markdown\nfootnote: \"\"\nheader_case: upper\ncolumns:\n  release: release\n"
	if err := os.WriteFile(".ciboard.yaml", []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	input := `[{"dir":"a","crate":"x","type":"release","event":"ok"}]`

	out, _, code := runCLI(t, input)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(out, "| NAME | RELEASE | DOC | LIB (S) | LIB (T) | STATUS |\n") {
		t.Errorf("expected configured headers, got:\n%s", out)
	}
	if strings.Contains(out, "miri") {
		t.Errorf("expected no legend, got:\n%s", out)
	}
}

func TestJTBD_FlagsBeatEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("CIBOARD_FORMAT", "json")
	input := `[{"dir":"a","crate":"x","type":"release","event":"ok"}]`

	out, _, _ := runCLI(t, input)
	if !strings.HasPrefix(out, "{") {
		t.Errorf("expected JSON from CIBOARD_FORMAT, got:\n%s", out)
	}
	out, _, _ = runCLI(t, input, "--format", "llm")
	if !strings.HasPrefix(out, "SCOPE:") {
		t.Errorf("expected llm output from flag, got:\n%s", out)
	}
}

func TestJTBD_SampleFiles(t *testing.T) {
	tests := []struct {
		file     string
		args     []string
		wantCode int
		want     []string
	}{
		{"passing.json", []string{"--format", "markdown"}, 0,
			[]string{"| **crates**/arena |", ":sparkles:", "| **tools**/fmt-check |", ":white_check_mark:"}},
		{"failing.ndjson", []string{"--format", "llm"}, 1,
			[]string{"SCOPE: FAIL 2 of 3 projects", "crates/arena", "stacked-borrows 0/1", "doc 3/4", "tools/fmt-check"}},
		{"nightly.yaml", []string{"--format", "terminal", "--theme", "mono"}, 0,
			[]string{"crates/arena", "5 / 5"}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join("testdata", tt.file))
			if err != nil {
				t.Fatal(err)
			}
			isolate(t)
			out, errOut, code := runCLI(t, string(data), tt.args...)
			if code != tt.wantCode {
				t.Errorf("expected exit %d, got %d; stderr:\n%s", tt.wantCode, code, errOut)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

// --- Error paths ---

func TestRun_ErrorPaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		args    []string
		wantErr string
	}{
		{"empty stdin", "", nil, "no input on stdin"},
		{"unrecognized input", "hello world\n", nil, "unrecognized input format"},
		{"missing field", `[{"dir":"a","crate":"x","type":"release"}]`, nil, "malformed event"},
		{"unknown category", `[{"dir":"a","crate":"x","type":"bench","event":"ok"}]`, nil, "malformed event"},
		{"malformed doc outcome", `[{"dir":"a","crate":"x","type":"doc","event":"three"}]`, nil, "malformed outcome"},
		{"bad ndjson line", "{\"dir\":\"a\",\"crate\":\"x\",\"type\":\"release\",\"event\":\"ok\"}\n{oops\n", nil, "line 2"},
		{"unknown format flag", `[]`, []string{"--format", "html"}, `unknown format "html"`},
		{"unknown theme", `[]`, []string{"--theme", "neon"}, `unknown theme "neon"`},
		{"positional argument", `[]`, []string{"events.json"}, "unexpected argument"},
		{"tui without terminal", `[]`, []string{"--format", "tui"}, "requires a terminal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			out, errOut, code := runCLI(t, tt.input, tt.args...)
			if code != 2 {
				t.Errorf("expected exit 2, got %d", code)
			}
			if !strings.Contains(errOut, tt.wantErr) {
				t.Errorf("expected stderr to contain %q, got:\n%s", tt.wantErr, errOut)
			}
			if out != "" {
				t.Errorf("expected no stdout, got:\n%s", out)
			}
		})
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	isolate(t)
	_, _, code := runCLI(t, "[]", "--bogus")
	if code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
}

func TestRun_EmptyBatchRendersHeaderOnly(t *testing.T) {
	isolate(t)
	out, _, code := runCLI(t, "[]", "--format", "markdown", "--no-footnote")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected header and alignment rows only, got:\n%s", out)
	}
}

func TestRun_Version(t *testing.T) {
	isolate(t)
	out, _, code := runCLI(t, "", "--version")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(out, "ciboard dev") {
		t.Errorf("unexpected version line: %q", out)
	}
}

func TestRun_InvalidConfigFileWarnsAndUsesDefaults(t *testing.T) {
	isolate(t)
	if err := os.WriteFile(".ciboard.yaml", []byte("theme: [oops\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, errOut, code := runCLI(t, `[]`, "--format", "markdown")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d; stderr:\n%s", code, errOut)
	}
	if !strings.Contains(errOut, "WARN") || !strings.Contains(errOut, "parsing config") {
		t.Errorf("expected config warning, got:\n%s", errOut)
	}
	if !strings.HasPrefix(out, "| name |") {
		t.Errorf("expected default table, got:\n%s", out)
	}
}
