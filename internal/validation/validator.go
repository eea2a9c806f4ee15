// =============================================================================
// EM63 CSV to INI Converter - Validation Engine
// =============================================================================
//
// This module holds the two checks that gate a conversion:
//   - Shape check: every non-blank row has as many fields as the header
//   - Settings check: the max-sessions value parses as an integer
//
// ERROR HANDLING:
//   - The boolean forms (ValidateCSV, IsInteger) never panic and never error
//   - The Check* forms return typed errors with enough context to show the
//     user what to fix
//   - All errors are recoverable: the caller reports them and lets the user
//     retry with corrected input
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"
	"unicode"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// SettingsError reports a setting that cannot be used for conversion.
type SettingsError struct {
	// Setting is the name of the offending setting, e.g. "max_sessions".
	Setting string

	// Value is the rejected value.
	Value string
}

// Error implements the error interface.
func (e *SettingsError) Error() string {
	return fmt.Sprintf("setting %s is not a number: %q", e.Setting, e.Value)
}

// ShapeError reports a row whose field count differs from the header's.
type ShapeError struct {
	// Line is the 1-based line number of the offending row.
	// Zero means the header itself is missing.
	Line int

	// Fields is the number of fields found on the row.
	Fields int

	// Expected is the header's field count.
	Expected int
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Line == 0 {
		return "invalid CSV structure: missing header row"
	}
	return fmt.Sprintf("invalid CSV structure: line %d has %d field(s), header has %d",
		e.Line, e.Fields, e.Expected)
}

// =============================================================================
// CSV SHAPE VALIDATION
// =============================================================================

// ValidateCSV reports whether every non-blank row of text has the same number
// of delimiter-separated fields as the header row.
func ValidateCSV(text string, delimiter rune) bool {
	return CheckShape(text, delimiter) == nil
}

// CheckShape is ValidateCSV returning the first mismatch as a *ShapeError.
//
// RULES:
//   - Lines are split on '\n' and trimmed of surrounding whitespace
//   - The first line is the header; a header that trims to empty is invalid
//   - Lines that trim to empty are skipped
//   - Quotes are not interpreted, so a quoted delimiter still splits
func CheckShape(text string, delimiter rune) error {
	sep := string(delimiter)
	lines := strings.Split(text, "\n")

	header := strings.TrimSpace(lines[0])
	if header == "" {
		return &ShapeError{}
	}
	expected := strings.Count(header, sep) + 1

	for i := 1; i < len(lines); i++ {
		row := strings.TrimSpace(lines[i])
		if row == "" {
			continue
		}

		if fields := strings.Count(row, sep) + 1; fields != expected {
			return &ShapeError{
				Line:     i + 1,
				Fields:   fields,
				Expected: expected,
			}
		}
	}

	return nil
}

// =============================================================================
// SETTINGS VALIDATION
// =============================================================================

// IsInteger reports whether value starts with a base-10 integer.
//
// Parsing is prefix based: leading whitespace and one sign are allowed, at
// least one digit must follow, and anything after the digits is ignored. So
// "15", " 7", "-3" and "15abc" are accepted while "", "abc" and "-" are not.
func IsInteger(value string) bool {
	s := strings.TrimLeftFunc(value, unicode.IsSpace)
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// CheckMaxSessions returns a *SettingsError when value fails IsInteger.
func CheckMaxSessions(value string) error {
	if !IsInteger(value) {
		return &SettingsError{Setting: "max_sessions", Value: value}
	}
	return nil
}
