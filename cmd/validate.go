// =============================================================================
// EM63 CSV to INI Converter - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks that every row of
// an inventory has the same number of fields as its header. Nothing is
// converted or written.
//
// COMMAND USAGE:
//   converter validate [file...] [flags]
//
// EXIT STATUS:
//   0 when every input is valid, 3 when any is not.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/EM63-INI-converter/internal/config"
	"github.com/ginjaninja78/EM63-INI-converter/internal/errors"
	"github.com/ginjaninja78/EM63-INI-converter/internal/validation"
)

var validateFlags conversionFlags

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check that inventories are well-formed CSV",
	Long: `Validate reports, for each input, whether every non-blank row has as many
fields as the header. Excel workbooks are checked after rendering the chosen
sheet with the configured delimiter.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := resolveSources(cmd, args)
		if err != nil {
			return err
		}

		cfg, err := validateFlags.apply(cmd, mainConfig)
		if err != nil {
			return err
		}

		return runValidate(cmd.InOrStdin(), cfg, sources)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateFlags.register(validateCmd)
}

// runValidate checks every source and reports a verdict for each.
func runValidate(stdin io.Reader, cfg *config.MainConfig, sources []string) error {
	delimiter := cfg.DelimiterRune()
	invalid := 0

	for _, source := range sources {
		text, err := loadInput(source, stdin, delimiter, cfg.Sheet)
		if err != nil {
			logError("%s: %v", displayName(source), err)
			invalid++
			continue
		}

		if err := validation.CheckShape(text, delimiter); err != nil {
			logError("%s: %v", displayName(source), err)
			invalid++
			continue
		}

		logSuccess("%s: valid", displayName(source))
	}

	if invalid > 0 {
		return errors.New(errors.ExitShape, fmt.Sprintf("%d of %d input(s) invalid", invalid, len(sources)))
	}

	if err := validation.CheckMaxSessions(cfg.Settings().MaxSessions); err != nil {
		logWarning("inputs are valid, but conversion would fail: %v", err)
	}

	return nil
}
