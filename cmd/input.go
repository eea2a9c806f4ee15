package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/EM63-INI-converter/internal/config"
	"github.com/ginjaninja78/EM63-INI-converter/internal/csvparser"
	"github.com/ginjaninja78/EM63-INI-converter/internal/errors"
	"github.com/ginjaninja78/EM63-INI-converter/internal/logging"
	"github.com/ginjaninja78/EM63-INI-converter/internal/xlsxparser"
)

// stdinSource is the argument that selects standard input.
const stdinSource = "-"

// byteOrderMark is written at the start of "CSV UTF-8" exports.
const byteOrderMark = "\uFEFF"

// loadInput returns the inventory text of source. Workbooks are rendered with
// delimiter so the result parses like any CSV. stdin is read when source is
// stdinSource. One leading byte order mark is dropped from text input.
func loadInput(source string, stdin io.Reader, delimiter rune, sheet string) (string, error) {
	if source == stdinSource {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.InputError("standard input", err)
		}
		return strings.TrimPrefix(string(data), byteOrderMark), nil
	}

	if xlsxparser.IsWorkbook(source) {
		text, err := xlsxparser.ReadSheet(source, sheet, delimiter)
		if err != nil {
			return "", errors.InputError(source, err)
		}
		return text, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return "", errors.InputError(source, err)
	}
	return strings.TrimPrefix(string(data), byteOrderMark), nil
}

// stdinPiped reports whether in is something other than an interactive
// terminal, so reading it will not block on a user.
func stdinPiped(in io.Reader) bool {
	return !logging.IsTerminal(in)
}

// resolveSources maps positional arguments to input sources. With no
// arguments, piped stdin is used.
func resolveSources(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if stdinPiped(cmd.InOrStdin()) {
		return []string{stdinSource}, nil
	}
	return nil, fmt.Errorf("no input: pass a file, or %q to read standard input", stdinSource)
}

// conversionFlags holds per-invocation overrides of the configuration.
type conversionFlags struct {
	maxSessions string
	defaultPath string
	delimiter   string
	sheet       string
}

// register adds the override flags to cmd.
func (f *conversionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.maxSessions, "max-sessions", "", "MAXSESSIONS value written for every machine (overrides config)")
	cmd.Flags().StringVar(&f.defaultPath, "default-path", "", "Session base path, machine name is appended (overrides config)")
	cmd.Flags().StringVarP(&f.delimiter, "delimiter", "d", "", `Field separator: one character or comma, semicolon, pipe, tab (overrides config)`)
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Worksheet to read from .xlsx inputs (overrides config)")
}

// apply returns a copy of cfg with every flag the user set applied.
func (f *conversionFlags) apply(cmd *cobra.Command, cfg *config.MainConfig) (*config.MainConfig, error) {
	out := *cfg

	if cmd.Flags().Changed("max-sessions") {
		out.MaxSessions = config.ScalarString(f.maxSessions)
	}
	if cmd.Flags().Changed("default-path") {
		out.DefaultPath = f.defaultPath
	}
	if cmd.Flags().Changed("sheet") {
		out.Sheet = f.sheet
	}
	if cmd.Flags().Changed("delimiter") {
		if _, err := csvparser.ParseDelimiter(f.delimiter); err != nil {
			return nil, errors.ConfigError("invalid --delimiter", err)
		}
		out.Delimiter = f.delimiter
	}

	return &out, nil
}
