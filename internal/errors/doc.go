// Package errors maps conversion failures to process exit codes.
//
// # Exit Codes
//
//	ExitSuccess      = 0  // Success
//	ExitGeneralError = 1  // General/unknown errors, I/O failures
//	ExitSettings     = 2  // A conversion setting is unusable
//	ExitShape        = 3  // Rows disagree with the header's width
//	ExitSchema       = 4  // Required columns are missing
//	ExitConfigError  = 5  // The configuration file is unreadable or invalid
//
// # Extracting Exit Codes
//
// GetExitCode walks the error chain. A ConverterError carries its own code;
// the domain errors of the validation and converter packages are recognised
// directly, so they need no wrapping:
//
//	if err := cmd.Execute(); err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
