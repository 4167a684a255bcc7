package magetasks

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// SmokeCase is one sample input and the exit code ciboard must return for it.
type SmokeCase struct {
	File     string
	Args     []string
	ExitCode int
}

// SmokeCases are run against the built binary by Smoke.
var SmokeCases = []SmokeCase{
	{File: "passing.json", Args: []string{"--format", "markdown"}, ExitCode: 0},
	{File: "failing.ndjson", Args: []string{"--format", "llm"}, ExitCode: 1},
	{File: "failing.ndjson", Args: []string{"--format", "json", "--exit-zero"}, ExitCode: 0},
	{File: "nightly.yaml", Args: []string{"--format", "terminal", "--theme", "mono"}, ExitCode: 0},
}

// Smoke pipes every sample file through the built binary and checks exit codes.
func Smoke() error {
	PrintH2Header("Smoke")

	var errs []error
	for _, c := range SmokeCases {
		if err := runSmokeCase(BinPath, c); err != nil {
			PrintError(err.Error())
			errs = append(errs, err)
			continue
		}
		PrintSuccess(fmt.Sprintf("%s %v", c.File, c.Args))
	}
	return errors.Join(errs...)
}

func runSmokeCase(bin string, c SmokeCase) error {
	in, err := os.Open(filepath.Join(SampleDir, c.File))
	if err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}
	defer in.Close()

	var stderr bytes.Buffer
	cmd := exec.Command(bin, c.Args...) // #nosec G204 -- fixed binary path and sample arguments
	cmd.Stdin = in
	cmd.Stderr = &stderr
	err = cmd.Run()

	code := 0
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		code = exitErr.ExitCode()
	case err != nil:
		return fmt.Errorf("%s: %w", c.File, err)
	}
	if code != c.ExitCode {
		return fmt.Errorf("%s %v: exit %d, want %d: %s", c.File, c.Args, code, c.ExitCode, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}
