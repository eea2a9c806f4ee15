// =============================================================================
// EM63 CSV to INI Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It turns one inventory
// text into one EUROMAP 63 session INI.
//
// CONVERSION PIPELINE (Run):
//   1. Check the max-sessions setting is an integer   -> SettingsError
//   2. Check every row has the header's width          -> ShapeError
//   3. Parse the text and resolve the required columns -> SchemaError
//   4. Drop "Out of Mng." rows and build machine records
//   5. Serialize the registry to INI text
//
// Convert runs steps 3-5 only and trusts the caller to have done 1 and 2.
//
// CONCURRENCY:
//   A conversion holds no shared state. Converters may be used from many
//   goroutines at once; the batch command does exactly that.
//
// =============================================================================

package converter

import (
	"fmt"
	"strings"
	"time"

	"github.com/ginjaninja78/EM63-INI-converter/internal/csvparser"
	"github.com/ginjaninja78/EM63-INI-converter/internal/iniwriter"
	"github.com/ginjaninja78/EM63-INI-converter/internal/logging"
	"github.com/ginjaninja78/EM63-INI-converter/internal/types"
	"github.com/ginjaninja78/EM63-INI-converter/internal/validation"
)

// =============================================================================
// ERRORS
// =============================================================================

// SchemaError reports required header columns that are absent.
type SchemaError struct {
	// Missing lists the absent column names in their canonical order.
	Missing []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Missing, ", "))
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single input.
type Result struct {
	// Source names the input (file path or "-" for stdin).
	Source string

	// Output is the generated INI text. Empty if conversion failed.
	Output string

	// Success indicates whether the conversion was successful.
	Success bool

	// Error contains the error if conversion failed.
	Error error

	// Stats contains conversion statistics.
	Stats Stats
}

// Stats contains statistics about one conversion.
type Stats struct {
	// Rows is the number of non-blank data rows read.
	Rows int

	// Machines is the number of entries in the [MACHINES] index.
	Machines int

	// Excluded is the number of rows dropped as "Out of Mng.".
	Excluded int

	// Duplicates lists machine names that appear more than once.
	Duplicates []string

	// ProcessingTime is the time taken by Run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter holds the delimiter and settings for a series of conversions.
type Converter struct {
	delimiter rune
	settings  types.ConversionSettings
}

// New creates a new Converter.
//
// PARAMETERS:
//   - delimiter: The CSV field separator.
//   - settings: The max-sessions and default-path values.
func New(delimiter rune, settings types.ConversionSettings) *Converter {
	return &Converter{
		delimiter: delimiter,
		settings:  settings,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run validates and converts one input.
//
// The setting check comes first so that a bad setting is reported even when
// the input is also malformed. No output is produced on any failure.
func (c *Converter) Run(source, input string) (result Result) {
	startTime := time.Now()
	result = Result{Source: source}
	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	logging.Debug("converting", "source", source, "bytes", len(input))

	// =========================================================================
	// STEP 1: CHECK SETTINGS
	// =========================================================================

	if err := validation.CheckMaxSessions(c.settings.MaxSessions); err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 2: CHECK CSV SHAPE
	// =========================================================================

	if err := validation.CheckShape(input, c.delimiter); err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 3: CONVERT
	// =========================================================================

	table, err := csvparser.Parse(input, c.delimiter)
	if err != nil {
		result.Error = fmt.Errorf("failed to parse CSV: %w", err)
		return result
	}

	registry, excluded, err := BuildRegistry(table, c.settings)
	if err != nil {
		result.Error = err
		return result
	}

	result.Stats.Rows = len(table.Records)
	result.Stats.Machines = registry.Len()
	result.Stats.Excluded = excluded
	result.Stats.Duplicates = registry.Duplicates()

	for _, name := range result.Stats.Duplicates {
		logging.Warn("machine listed more than once, last row wins", "source", source, "name", name)
	}

	result.Output = iniwriter.Write(registry)
	result.Success = true

	logging.Debug("converted",
		"source", source,
		"rows", result.Stats.Rows,
		"machines", result.Stats.Machines,
		"excluded", excluded,
	)

	return result
}

// Convert transforms validated CSV text into INI text.
//
// PRECONDITIONS:
//   The caller has already checked the text with validation.ValidateCSV and
//   settings.MaxSessions with validation.IsInteger. Neither is re-checked.
//
// ERRORS:
//   - *SchemaError when "Machine ID", "IP address" or "Mng." is missing
//   - *validation.ShapeError when a row is too short to hold a required column
//   - csvparser.ErrEmptyInput (wrapped) when there is no header
func Convert(csvText string, delimiter rune, settings types.ConversionSettings) (string, error) {
	table, err := csvparser.Parse(csvText, delimiter)
	if err != nil {
		return "", fmt.Errorf("failed to parse CSV: %w", err)
	}

	registry, _, err := BuildRegistry(table, settings)
	if err != nil {
		return "", err
	}

	return iniwriter.Write(registry), nil
}

// BuildRegistry derives machine records from a parsed table.
//
// RETURNS:
//   - The registry in row order.
//   - The number of rows excluded as "Out of Mng.".
//   - An error if a required column is missing or a row is too short.
func BuildRegistry(table *csvparser.RawTable, settings types.ConversionSettings) (*types.MachineRegistry, int, error) {
	index, missing := table.ColumnIndex(types.RequiredColumns...)
	if len(missing) > 0 {
		return nil, 0, &SchemaError{Missing: missing}
	}

	registry := types.NewMachineRegistry()
	excluded := 0

	for _, rec := range table.Records {
		mng, okMng := rec.Field(index[types.ColumnMng])
		rawID, okID := rec.Field(index[types.ColumnMachineID])
		ip, okIP := rec.Field(index[types.ColumnIPAddress])
		if !okMng || !okID || !okIP {
			return nil, 0, &validation.ShapeError{
				Line:     rec.Line,
				Fields:   len(rec.Fields),
				Expected: len(table.Header),
			}
		}

		if mng == types.OutOfManagement {
			excluded++
			continue
		}

		name := MachineName(rawID)
		registry.Add(types.MachineRecord{
			ID:          name,
			IPAddress:   ip,
			MaxSessions: settings.MaxSessions,
			SessionPath: settings.DefaultPath + name,
		})
	}

	return registry, excluded, nil
}
