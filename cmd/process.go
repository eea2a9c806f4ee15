// =============================================================================
// EM63 CSV to INI Converter - Process Command
// =============================================================================
//
// This file defines the 'process' command, which converts every inventory
// found in the input directory.
//
// COMMAND USAGE:
//   converter process [flags]
//
// FLAGS:
//   --dry-run : Convert and report without writing, archiving or logging
//
// PROCESSING PIPELINE:
//   1. Discover .csv, .xlsx and .xlsm files in input_dir
//   2. For each file (concurrently, at most max_concurrency at once):
//      a. Read the file (rendering workbooks with the configured delimiter)
//      b. Check settings and shape, convert
//      c. Write the INI under output_dir, named by output_file_format
//      d. Archive the input
//   3. Write the error log and the processing summary
//
// With continue_on_error disabled, files not yet started when the first
// failure arrives are skipped and left in place. Files are started in name
// order.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/EM63-INI-converter/internal/config"
	"github.com/ginjaninja78/EM63-INI-converter/internal/converter"
	"github.com/ginjaninja78/EM63-INI-converter/internal/errors"
	"github.com/ginjaninja78/EM63-INI-converter/internal/logging"
	"github.com/ginjaninja78/EM63-INI-converter/internal/xlsxparser"
	"github.com/ginjaninja78/EM63-INI-converter/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	processFlags conversionFlags

	// dryRun simulates processing without writing output files.
	dryRun bool
)

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert every inventory in the input directory",
	Long: `The process command scans the input directory for inventories and converts
each one to a session INI.

Files are converted concurrently. Each file is handled independently, and a
failure in one file does not affect the others unless continue_on_error is
false.

On success:
  - The INI is placed in the output directory
  - The input is moved to the input archive (archive_on_success)

On error:
  - The failure is recorded in an error log in the output directory
  - The input remains in the input directory

A processing summary is written to the output directory after every run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := processFlags.apply(cmd, mainConfig)
		if err != nil {
			return err
		}

		_, err = runProcess(cmd.Context(), cfg, dryRun)
		return err
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(processCmd)

	processFlags.register(processCmd)
	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Convert and report without writing outputs, archiving or writing logs",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// fileOutcome is what one worker reports for one input file.
type fileOutcome struct {
	InputFile  string
	OutputFile string
	Result     converter.Result
	Err        error
	Skipped    bool
}

// runProcess converts every input file and returns the run summary.
func runProcess(ctx context.Context, cfg *config.MainConfig, dryRun bool) (*utils.ProcessingSummary, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	summary := &utils.ProcessingSummary{
		RunID:     utils.NewRunID(),
		StartTime: time.Now(),
	}

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
	fm.ArchiveOnSuccess = cfg.ShouldArchive() && !dryRun
	fm.UseTimestampSubdirs = cfg.ArchiveByDate

	// =========================================================================
	// STEP 1: DISCOVER INPUT FILES
	// =========================================================================

	if !dryRun {
		if err := fm.EnsureDirectories(); err != nil {
			return nil, err
		}
	}

	extensions := append([]string{".csv"}, xlsxparser.Extensions...)
	inputFiles, err := fm.DiscoverInputFiles(extensions...)
	if err != nil {
		return nil, fmt.Errorf("failed to discover input files: %w", err)
	}

	if len(inputFiles) == 0 {
		logInfo("No inventories found in %s", cfg.InputDir)
		return summary, nil
	}

	logging.Info("starting batch",
		"run_id", summary.RunID,
		"files", len(inputFiles),
		"concurrency", cfg.MaxConcurrency,
		"dry_run", dryRun,
	)
	logInfo("Found %d file(s) to process", len(inputFiles))

	// =========================================================================
	// STEP 2: PROCESS FILES CONCURRENTLY
	// =========================================================================

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conv := converter.New(cfg.DelimiterRune(), cfg.Settings())
	sem := make(chan struct{}, cfg.MaxConcurrency)
	results := make(chan fileOutcome, len(inputFiles))
	var wg sync.WaitGroup

	// Slots are taken in file order. Once a failure cancels ctx, every file
	// still waiting for a slot is skipped.
	for _, file := range inputFiles {
		sem <- struct{}{}

		if ctx.Err() != nil {
			<-sem
			results <- fileOutcome{InputFile: file, Skipped: true}
			continue
		}

		wg.Add(1)
		go func(inputFile string) {
			defer wg.Done()
			defer func() { <-sem }()

			outcome := processFile(conv, fm, cfg, inputFile, dryRun)
			if outcome.Err != nil && !cfg.ShouldContinueOnError() {
				cancel()
			}
			results <- outcome
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// =========================================================================
	// STEP 3: COLLECT RESULTS
	// =========================================================================

	var errorEntries []utils.ErrorLogEntry

	for outcome := range results {
		summary.TotalFiles++
		name := filepath.Base(outcome.InputFile)

		switch {
		case outcome.Skipped:
			summary.SkippedFiles++
			logWarning("%s: skipped after an earlier failure", name)

		case outcome.Err != nil:
			summary.FailedFiles++
			kind := errors.Kind(outcome.Err)
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    outcome.InputFile,
				ErrorMessage: outcome.Err.Error(),
				ErrorType:    kind,
			})
			errorEntries = append(errorEntries, utils.ErrorLogEntry{
				Timestamp:    time.Now(),
				FileName:     outcome.InputFile,
				ErrorType:    kind,
				ErrorMessage: outcome.Err.Error(),
			})
			logging.Error("conversion failed", "file", outcome.InputFile, "kind", kind, "error", outcome.Err)
			logError("%s: %v", name, outcome.Err)

		default:
			stats := outcome.Result.Stats
			summary.SuccessfulFiles++
			summary.TotalMachines += stats.Machines
			summary.ExcludedMachines += stats.Excluded
			summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
				InputFile:   outcome.InputFile,
				OutputFile:  outcome.OutputFile,
				Machines:    stats.Machines,
				Excluded:    stats.Excluded,
				ProcessTime: stats.ProcessingTime,
			})
			for _, dup := range stats.Duplicates {
				logWarning("%s: %s is listed more than once, the last row wins", name, dup)
			}
			if dryRun {
				logSuccess("%s: %d machine(s) (dry run)", name, stats.Machines)
			} else {
				logSuccess("%s -> %s", name, filepath.Base(outcome.OutputFile))
			}
		}
	}

	summary.EndTime = time.Now()

	// =========================================================================
	// STEP 4: WRITE LOGS AND PRINT SUMMARY
	// =========================================================================

	if !dryRun {
		if logPath, err := fm.WriteErrorLog(errorEntries, summary.RunID); err != nil {
			logWarning("failed to write error log: %v", err)
		} else if logPath != "" {
			logInfo("Errors have been logged to %s", logPath)
		}

		if summaryPath, err := fm.WriteSummaryLog(*summary); err != nil {
			logWarning("failed to write summary: %v", err)
		} else {
			logging.Debug("summary written", "path", summaryPath)
		}
	}

	logging.UserHeading("Processing Complete")
	fmt.Printf("Total files:     %d\n", summary.TotalFiles)
	fmt.Printf("Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Printf("Errors:          %d\n", summary.FailedFiles)
	if summary.SkippedFiles > 0 {
		fmt.Printf("Skipped:         %d\n", summary.SkippedFiles)
	}
	fmt.Printf("Machines:        %d\n", summary.TotalMachines)
	fmt.Printf("Time elapsed:    %s\n", summary.EndTime.Sub(summary.StartTime))

	if summary.FailedFiles > 0 {
		return summary, errors.New(errors.ExitGeneralError,
			fmt.Sprintf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles))
	}

	return summary, nil
}

// processFile converts one input file and, unless dryRun, writes and
// archives it.
func processFile(conv *converter.Converter, fm *utils.FileManager, cfg *config.MainConfig, inputFile string, dryRun bool) fileOutcome {
	outcome := fileOutcome{InputFile: inputFile}

	text, err := loadInput(inputFile, nil, cfg.DelimiterRune(), cfg.Sheet)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.Result = conv.Run(inputFile, text)
	if !outcome.Result.Success {
		outcome.Err = outcome.Result.Error
		return outcome
	}

	if dryRun {
		return outcome
	}

	name := utils.GenerateOutputFileName(cfg.OutputFileFormat, inputFile)
	outcome.OutputFile, err = fm.WriteOutput(name, outcome.Result.Output)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	if _, err := fm.ArchiveInputFile(inputFile); err != nil {
		// The INI is already written; report the archive failure only.
		logWarning("%s: converted but not archived: %v", filepath.Base(inputFile), err)
	}

	return outcome
}
