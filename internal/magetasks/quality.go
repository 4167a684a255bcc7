package magetasks

import (
	"fmt"
)

// QualityCheck lints, tests, builds, and smoke-tests the binary.
// Lint findings are reported but do not stop the run.
func QualityCheck() error {
	PrintH1Header("ciboard Quality Assurance")

	if err := LintAll(); err != nil {
		PrintWarning(fmt.Sprintf("Linting issues found: %v", err))
	}
	if err := TestAll(); err != nil {
		return fmt.Errorf("tests failed: %w", err)
	}
	if err := BuildAll(); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	if err := Smoke(); err != nil {
		return fmt.Errorf("smoke test failed: %w", err)
	}

	PrintSuccess("QA complete!")
	return nil
}
