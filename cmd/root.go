// =============================================================================
// EM63 CSV to INI Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (converter)
//   ├── convertCmd  (converter convert)
//   ├── validateCmd (converter validate)
//   ├── processCmd  (converter process)
//   └── versionCmd  (converter version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose, --json)
//   2. Setting up logging
//   3. Loading the configuration file
//
// The configuration file is optional unless --config is given explicitly.
//
// =============================================================================

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/EM63-INI-converter/internal/config"
	"github.com/ginjaninja78/EM63-INI-converter/internal/errors"
	"github.com/ginjaninja78/EM63-INI-converter/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

var (
	// cfgFile holds the path to the main configuration file.
	cfgFile string

	// verbose enables debug logging.
	verbose bool

	// jsonOutput switches structured logs to JSON.
	jsonOutput bool

	// mainConfig is loaded once per invocation by PersistentPreRunE.
	mainConfig *config.MainConfig
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "converter",
	Short: "EM63 CSV to INI Converter - Build EUROMAP 63 session files from machine inventories",
	Long: `The EM63 converter turns a machine inventory (CSV or Excel) into the
session INI consumed by EUROMAP 63 data-collection software.

Every row whose "Mng." column is not "Out of Mng." becomes one machine:
  [MACHINES]
  1=M03

  [M03]
  IPADDRESS=10.0.0.3
  MAXSESSIONS=15
  SESSIONPATH=C:\FANUC\EM63\SESSION\M03

Example Usage:
  converter convert machines.csv            # Write output.ini
  converter convert - < machines.csv        # Read stdin
  converter validate machines.csv           # Check the CSV shape only
  converter process                         # Convert every file in input_dir`,

	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose, jsonOutput, os.Stderr)

		// Only an explicitly named config file must exist.
		required := cmd.Flags().Changed("config")

		cfg, err := config.LoadMainConfig(cfgFile, required)
		if err != nil {
			return errors.ConfigError("failed to load configuration", err)
		}
		mainConfig = cfg

		if !verbose {
			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return errors.ConfigError("invalid configuration", err)
			}
			logging.SetupLevel(level, jsonOutput, os.Stderr)
		}

		return nil
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. main maps the returned error to an exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logging.UserError("%v", err)
	}
	return err
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file (.yaml, .yml or .toml)",
	)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
