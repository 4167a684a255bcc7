package magetasks

import (
	"os"
	"path/filepath"
)

var (
	// ModulePath is the Go module path.
	ModulePath = "github.com/dkoosis/ciboard"

	// MainPackage is the package built into the ciboard binary.
	MainPackage = "./cmd/ciboard"

	// BinPath is the output path for the built binary.
	BinPath = "./bin/ciboard"

	// SampleDir holds the event files exercised by Smoke.
	SampleDir = "./cmd/ciboard/testdata"

	// ProjectRoot is the root directory of the project.
	ProjectRoot string
)

// Initialize records the project root and creates the bin directory.
// Call this from the Magefile init() function.
func Initialize() error {
	var err error
	ProjectRoot, err = os.Getwd()
	if err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(ProjectRoot, "bin"), 0o750)
}
