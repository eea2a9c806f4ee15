// =============================================================================
// EM63 CSV to INI Converter - CSV Parser Module
// =============================================================================
//
// This module turns raw inventory text into a RawTable. The inventory format
// is deliberately simple:
//   - One single-character delimiter (comma by default)
//   - One mandatory header row
//   - Quote characters are stripped everywhere, never interpreted
//
// PARSING RULES:
//   1. Remove every ' and " from the whole text
//   2. Trim the text and split it into lines on '\n'
//   3. Drop a trailing '\r' from each line (CRLF exports)
//   4. Skip blank lines
//   5. Split each remaining line on the delimiter; fields stay verbatim
//
// The parser does not check that rows have the header's width. That is the
// validation package's job and callers run it first.
//
// =============================================================================

package csvparser

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrEmptyInput is returned when the text holds no header line.
var ErrEmptyInput = errors.New("input is empty")

// =============================================================================
// RAW TABLE STRUCTURE
// =============================================================================

// RawTable is the parsed inventory: a header plus its records.
type RawTable struct {
	// Header contains the column names from the first line.
	Header []string

	// Records contains the data lines in source order.
	Records []Record
}

// Record is one data line.
type Record struct {
	// Line is the 1-based line number in the quote-stripped, trimmed text.
	// Useful for error reporting.
	Line int

	// Fields contains the values split on the delimiter.
	Fields []string
}

// ColumnIndex maps a header name to its zero-based position, or -1.
type ColumnIndex map[string]int

// NotFound is the ColumnIndex value for a header that is absent.
const NotFound = -1

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// StripQuotes removes every single and double quote from text.
func StripQuotes(text string) string {
	return strings.NewReplacer(`"`, "", `'`, "").Replace(text)
}

// Parse splits inventory text into a RawTable.
//
// PARAMETERS:
//   - text: The raw CSV text.
//   - delimiter: The field separator.
//
// RETURNS:
//   - A pointer to the RawTable.
//   - ErrEmptyInput if the text is blank once quotes are removed.
func Parse(text string, delimiter rune) (*RawTable, error) {
	text = strings.TrimSpace(StripQuotes(text))
	if text == "" {
		return nil, ErrEmptyInput
	}

	sep := string(delimiter)
	lines := SplitLines(text)

	table := &RawTable{
		Header:  strings.Split(lines[0], sep),
		Records: make([]Record, 0, len(lines)-1),
	}

	for i := 1; i < len(lines); i++ {
		line := lines[i]

		// Skip blank lines. Validation skips them too, so both passes agree
		// on which lines are records.
		if strings.TrimSpace(line) == "" {
			continue
		}

		table.Records = append(table.Records, Record{
			Line:   i + 1,
			Fields: strings.Split(line, sep),
		})
	}

	return table, nil
}

// SplitLines splits text on '\n' and removes one trailing '\r' per line.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// ColumnIndex resolves names against the header by exact match.
//
// RETURNS:
//   - The index for every requested name (NotFound when absent).
//   - The names that were not found, in request order.
func (t *RawTable) ColumnIndex(names ...string) (ColumnIndex, []string) {
	index := make(ColumnIndex, len(names))
	var missing []string

	for _, name := range names {
		index[name] = NotFound
		for i, header := range t.Header {
			if header == name {
				index[name] = i
				break
			}
		}
		if index[name] == NotFound {
			missing = append(missing, name)
		}
	}

	return index, missing
}

// Field returns the value at column idx, or false when the record is too
// short or idx is NotFound.
func (r Record) Field(idx int) (string, bool) {
	if idx < 0 || idx >= len(r.Fields) {
		return "", false
	}
	return r.Fields[idx], true
}

// =============================================================================
// DELIMITER HANDLING
// =============================================================================

// ParseDelimiter converts a configured delimiter to a rune.
//
// ACCEPTED VALUES:
//   - Any single character, e.g. ",", ";", "|"
//   - The aliases "comma", "semicolon", "pipe", "tab" and the escape "\t"
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return ',', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	case "tab", `\t`:
		return '\t', nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}

	r, _ := utf8.DecodeRuneInString(s)
	if r == '\n' || r == '\r' || r == '"' || r == '\'' {
		return 0, fmt.Errorf("delimiter %q is not allowed", s)
	}

	return r, nil
}
