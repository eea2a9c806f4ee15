// =============================================================================
// EM63 CSV to INI Converter - INI Writer Module
// =============================================================================
//
// This module generates the EUROMAP 63 session INI from a machine registry.
//
// OUTPUT STRUCTURE:
//   [MACHINES]
//   1=M03
//   2=M12
//
//   [M03]
//   IPADDRESS=10.0.0.3
//   MAXSESSIONS=15
//   SESSIONPATH=C:\FANUC\EM63\SESSION\M03
//
//   [M12]
//   ...
//
// Every section is followed by exactly one blank line, including the last.
// Values are written as-is: no escaping, no quoting, no line-ending changes.
//
// =============================================================================

package iniwriter

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/EM63-INI-converter/internal/types"
)

// Export conventions for the generated file.
const (
	DefaultFileName = "output.ini"
	MIMEType        = "text/plain"
)

// Section and key names.
const (
	MachinesSection = "MACHINES"
	KeyIPAddress    = "IPADDRESS"
	KeyMaxSessions  = "MAXSESSIONS"
	KeySessionPath  = "SESSIONPATH"
)

// =============================================================================
// DOCUMENT MODEL
// =============================================================================

// Document is an ordered list of INI sections.
type Document struct {
	Sections []Section
}

// Section is a named block of keys, rendered in order.
type Section struct {
	Name string
	Keys []Key
}

// Key is one key=value line.
type Key struct {
	Name  string
	Value string
}

// AddSection appends a section and returns it for filling.
func (d *Document) AddSection(name string) *Section {
	d.Sections = append(d.Sections, Section{Name: name})
	return &d.Sections[len(d.Sections)-1]
}

// Set appends a key to the section. Existing keys are not replaced.
func (s *Section) Set(name, value string) {
	s.Keys = append(s.Keys, Key{Name: name, Value: value})
}

// String renders the document.
func (d *Document) String() string {
	var builder strings.Builder

	for _, section := range d.Sections {
		builder.WriteString("[")
		builder.WriteString(section.Name)
		builder.WriteString("]\n")

		for _, key := range section.Keys {
			builder.WriteString(key.Name)
			builder.WriteString("=")
			builder.WriteString(key.Value)
			builder.WriteString("\n")
		}

		builder.WriteString("\n")
	}

	return builder.String()
}

// =============================================================================
// MAIN GENERATION FUNCTION
// =============================================================================

// Build converts a registry into a Document.
//
// The MACHINES index numbers names from 1 in registry order. Each listed name
// then gets its own section, so a duplicated name produces two identical
// sections carrying the last record stored for it.
func Build(registry *types.MachineRegistry) *Document {
	doc := &Document{}

	index := doc.AddSection(MachinesSection)
	for i, name := range registry.Names() {
		index.Set(strconv.Itoa(i+1), name)
	}

	for _, name := range registry.Names() {
		rec, _ := registry.Lookup(name)

		section := doc.AddSection(name)
		section.Set(KeyIPAddress, rec.IPAddress)
		section.Set(KeyMaxSessions, rec.MaxSessions)
		section.Set(KeySessionPath, rec.SessionPath)
	}

	return doc
}

// Write renders the registry as INI text.
func Write(registry *types.MachineRegistry) string {
	return Build(registry).String()
}
