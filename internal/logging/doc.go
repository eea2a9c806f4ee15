// Package logging provides logging utilities for the converter.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted status messages for the person running the CLI
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("parsed inventory", "rows", n, "delimiter", ",")
//	logging.Warn("duplicate machine name", "name", "M05")
//
// # User Output
//
// User-facing messages are prefixed with a status glyph, colored when the
// stream is a terminal:
//
//	logging.UserInfo("Reading %s...", path)
//	logging.UserSuccess("Wrote %s", outputPath)
//	logging.UserWarning("%d machine name(s) listed more than once", n)
//	logging.UserError("Invalid CSV structure")
//
// Output destinations:
//   - UserInfo, UserSuccess, UserHeading: stdout
//   - UserWarning, UserError: stderr
package logging
