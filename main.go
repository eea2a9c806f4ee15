// =============================================================================
// EM63 CSV to INI Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the EM63 CSV to INI Converter. It runs the
// Cobra CLI and turns the returned error into the process exit code.
//
// USAGE:
//   converter convert [file|-]  - Convert one inventory to output.ini
//   converter validate [file..] - Check inventories without converting
//   converter process           - Convert every inventory in the input directory
//   converter version           - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Conversion pipeline, configuration, logging, exit codes
//   - pkg/       : File management shared by the commands
//
// =============================================================================

package main

import (
	"os"

	"github.com/ginjaninja78/EM63-INI-converter/cmd"
	"github.com/ginjaninja78/EM63-INI-converter/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
