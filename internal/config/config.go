// =============================================================================
// EM63 CSV to INI Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration.
//
// CONFIGURATION FILE:
//   config.yaml (or config.yml / config.toml) holding the conversion settings
//   and the directories used by the batch command. Every field is optional.
//
// FORMAT SELECTION:
//   - .toml files are decoded with BurntSushi/toml
//   - anything else is decoded as YAML
//
// The max-sessions value is deliberately NOT checked here. It is a plain
// string until the conversion pipeline runs its integer check, so a bad value
// is reported as a settings error at conversion time.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/EM63-INI-converter/internal/csvparser"
	"github.com/ginjaninja78/EM63-INI-converter/internal/logging"
	"github.com/ginjaninja78/EM63-INI-converter/internal/types"
)

// DefaultConfigFile is used when --config is not given.
const DefaultConfigFile = "config.yaml"

// ScalarString is a string setting that also accepts a bare TOML number, so
// max_sessions = 15 and max_sessions = "15" load the same way, as YAML does.
type ScalarString string

// UnmarshalTOML implements toml.Unmarshaler.
func (s *ScalarString) UnmarshalTOML(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = ScalarString(v)
	case int64:
		*s = ScalarString(strconv.FormatInt(v, 10))
	case float64:
		*s = ScalarString(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return fmt.Errorf("expected a string or number, got %T", value)
	}
	return nil
}

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// CONVERSION SETTINGS
	// =========================================================================

	// MaxSessions is written to every MAXSESSIONS key.
	// Default: "15"
	MaxSessions ScalarString `yaml:"max_sessions" toml:"max_sessions"`

	// DefaultPath is the base session directory; the machine name is
	// appended to form SESSIONPATH.
	// Default: "C:\FANUC\EM63\SESSION\"
	DefaultPath string `yaml:"default_path" toml:"default_path"`

	// Delimiter is the CSV field separator.
	// Accepts one character or "comma", "semicolon", "pipe", "tab".
	// Default: ","
	Delimiter string `yaml:"delimiter" toml:"delimiter"`

	// Sheet is the worksheet read from .xlsx inputs. Empty means the first.
	Sheet string `yaml:"sheet" toml:"sheet"`

	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned by the process command.
	// Default: "./input"
	InputDir string `yaml:"input_dir" toml:"input_dir"`

	// OutputDir receives generated INI files, error logs and summaries.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" toml:"output_dir"`

	// InputArchiveDir receives inputs after successful conversion.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir" toml:"input_archive_dir"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputFileFormat names batch output files.
	// Placeholders:
	//   {original}  - Input file name without extension
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	// Default: "{original}.ini"
	OutputFileFormat string `yaml:"output_file_format" toml:"output_file_format"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files converted at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency" toml:"max_concurrency"`

	// ContinueOnError keeps the batch going after a failed file.
	// Default: true
	ContinueOnError *bool `yaml:"continue_on_error" toml:"continue_on_error"`

	// ArchiveOnSuccess moves converted inputs to InputArchiveDir.
	// Default: true
	ArchiveOnSuccess *bool `yaml:"archive_on_success" toml:"archive_on_success"`

	// ArchiveByDate files archived inputs under YYYY/MM/DD subdirectories.
	// Default: false
	ArchiveByDate bool `yaml:"archive_by_date" toml:"archive_by_date"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads the main configuration from a YAML or TOML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//   - required: When false, a missing file yields the defaults.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string, required bool) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			logging.Debug("config file not found, using defaults", "path", configPath)
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := decode(configPath, data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logging.Debug("loaded config", "path", configPath)
	return &config, nil
}

// decode picks the decoder from the file extension.
func decode(configPath string, data []byte, config *MainConfig) error {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".toml":
		_, err := toml.Decode(string(data), config)
		return err
	default:
		return yaml.Unmarshal(data, config)
	}
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.MaxSessions == "" {
		config.MaxSessions = types.DefaultMaxSessions
	}
	if config.DefaultPath == "" {
		config.DefaultPath = types.DefaultSessionPath
	}
	if config.Delimiter == "" {
		config.Delimiter = ","
	}
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputFileFormat == "" {
		config.OutputFileFormat = "{original}.ini"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
	if config.ContinueOnError == nil {
		config.ContinueOnError = boolPtr(true)
	}
	if config.ArchiveOnSuccess == nil {
		config.ArchiveOnSuccess = boolPtr(true)
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}

// Validate checks the fields that must be usable before any file is touched.
func (c *MainConfig) Validate() error {
	if _, err := csvparser.ParseDelimiter(c.Delimiter); err != nil {
		return err
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", c.MaxConcurrency)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Settings returns the conversion settings.
func (c *MainConfig) Settings() types.ConversionSettings {
	return types.ConversionSettings{
		MaxSessions: string(c.MaxSessions),
		DefaultPath: c.DefaultPath,
	}
}

// DelimiterRune returns the parsed delimiter. Validate has already checked it.
func (c *MainConfig) DelimiterRune() rune {
	r, err := csvparser.ParseDelimiter(c.Delimiter)
	if err != nil {
		return ','
	}
	return r
}

// ShouldContinueOnError reports the continue_on_error setting.
func (c *MainConfig) ShouldContinueOnError() bool {
	return c.ContinueOnError == nil || *c.ContinueOnError
}

// ShouldArchive reports the archive_on_success setting.
func (c *MainConfig) ShouldArchive() bool {
	return c.ArchiveOnSuccess == nil || *c.ArchiveOnSuccess
}

func boolPtr(b bool) *bool {
	return &b
}
