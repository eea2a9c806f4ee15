// =============================================================================
// EM63 CSV to INI Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, which converts one inventory.
//
// COMMAND USAGE:
//   converter convert [file|-] [flags]
//
// FLAGS:
//   --max-sessions : MAXSESSIONS value (overrides config)
//   --default-path : Session base path (overrides config)
//   --delimiter    : Field separator (overrides config)
//   --sheet        : Worksheet for .xlsx inputs (overrides config)
//   -o, --output   : Output file (default output.ini)
//   --stdout       : Print the INI instead of writing a file
//
// FAILURE BEHAVIOUR:
//   Nothing is written when any check fails. An existing output file is
//   left exactly as it was.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/EM63-INI-converter/internal/config"
	"github.com/ginjaninja78/EM63-INI-converter/internal/converter"
	"github.com/ginjaninja78/EM63-INI-converter/internal/iniwriter"
	"github.com/ginjaninja78/EM63-INI-converter/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	convertFlags conversionFlags

	// outputPath is where the INI is written.
	outputPath string

	// toStdout prints the INI instead of writing outputPath.
	toStdout bool
)

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

var convertCmd = &cobra.Command{
	Use:   "convert [file|-]",
	Short: "Convert one machine inventory to an EM63 session INI",
	Long: `Convert reads a machine inventory, checks it, and writes the session INI.

The input may be a CSV file, an Excel workbook (.xlsx, .xlsm), or standard
input ("-", or piped with no argument). The inventory needs the columns
"Machine ID", "IP address" and "Mng."; rows marked "Out of Mng." are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := resolveSources(cmd, args)
		if err != nil {
			return err
		}

		cfg, err := convertFlags.apply(cmd, mainConfig)
		if err != nil {
			return err
		}

		dest := outputPath
		if toStdout {
			dest = ""
		}
		return runConvert(cmd.InOrStdin(), cmd.OutOrStdout(), cfg, sources[0], dest)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(convertCmd)

	convertFlags.register(convertCmd)
	convertCmd.Flags().StringVarP(&outputPath, "output", "o", iniwriter.DefaultFileName, "Output INI file")
	convertCmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the INI to standard output instead of writing a file")
	convertCmd.MarkFlagsMutuallyExclusive("output", "stdout")
}

// =============================================================================
// CONVERSION
// =============================================================================

// runConvert converts source and writes the result to dest, or to stdout
// when dest is empty.
func runConvert(stdin io.Reader, stdout io.Writer, cfg *config.MainConfig, source, dest string) error {
	delimiter := cfg.DelimiterRune()

	text, err := loadInput(source, stdin, delimiter, cfg.Sheet)
	if err != nil {
		return err
	}

	result := converter.New(delimiter, cfg.Settings()).Run(source, text)
	if !result.Success {
		return fmt.Errorf("%s: %w", displayName(source), result.Error)
	}

	for _, name := range result.Stats.Duplicates {
		logWarning("%s is listed more than once, the last row wins", name)
	}

	if dest == "" {
		_, err := io.WriteString(stdout, result.Output)
		return err
	}

	if err := utils.WriteFileAtomic(dest, []byte(result.Output)); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	logSuccess("%s -> %s (%d machine(s), %d out of management)",
		displayName(source), dest, result.Stats.Machines, result.Stats.Excluded)
	return nil
}

// displayName is how a source is named in messages.
func displayName(source string) string {
	if source == stdinSource {
		return "stdin"
	}
	return source
}
