// =============================================================================
// EM63 CSV to INI Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - converter
//   - iniwriter
//   - config
//
// =============================================================================

package types

// =============================================================================
// INPUT SCHEMA
// =============================================================================

// Required column headers. Matching is exact and case-sensitive.
const (
	ColumnMachineID = "Machine ID"
	ColumnIPAddress = "IP address"
	ColumnMng       = "Mng."
)

// RequiredColumns lists the headers every inventory must carry, in the order
// they are reported when missing.
var RequiredColumns = []string{ColumnMachineID, ColumnIPAddress, ColumnMng}

// OutOfManagement is the Mng. value that excludes a machine from the output.
const OutOfManagement = "Out of Mng."

// =============================================================================
// CONVERSION SETTINGS
// =============================================================================

// Default values for ConversionSettings.
const (
	DefaultMaxSessions = "15"
	DefaultSessionPath = `C:\FANUC\EM63\SESSION\`
)

// ConversionSettings holds the two caller-supplied values applied to every
// machine record.
type ConversionSettings struct {
	// MaxSessions is copied verbatim into every MAXSESSIONS key.
	// It must pass validation.IsInteger before conversion runs.
	MaxSessions string

	// DefaultPath is the base session directory. It is not checked for path
	// legality; the machine name is appended to it as-is.
	DefaultPath string
}

// DefaultConversionSettings returns the settings used when nothing is configured.
func DefaultConversionSettings() ConversionSettings {
	return ConversionSettings{
		MaxSessions: DefaultMaxSessions,
		DefaultPath: DefaultSessionPath,
	}
}

// =============================================================================
// MACHINE RECORDS
// =============================================================================

// MachineRecord is the configuration derived from one included inventory row.
type MachineRecord struct {
	// ID is the normalized machine name, e.g. "M03".
	ID string

	// IPAddress is copied verbatim from the "IP address" column.
	IPAddress string

	// MaxSessions is copied from ConversionSettings.MaxSessions.
	MaxSessions string

	// SessionPath is ConversionSettings.DefaultPath followed by ID.
	SessionPath string
}

// MachineRegistry keeps machine records in first-appearance order.
//
// Names may repeat: a repeated name is listed again in Order while the lookup
// keeps only the most recent record for it.
type MachineRegistry struct {
	Order   []string
	Records map[string]MachineRecord
}

// NewMachineRegistry returns an empty registry.
func NewMachineRegistry() *MachineRegistry {
	return &MachineRegistry{
		Records: make(map[string]MachineRecord),
	}
}

// Add appends the record's name to the ordered list and stores the record,
// replacing any earlier record with the same name.
func (r *MachineRegistry) Add(rec MachineRecord) {
	r.Order = append(r.Order, rec.ID)
	r.Records[rec.ID] = rec
}

// Names returns the ordered machine names, duplicates included.
func (r *MachineRegistry) Names() []string {
	return r.Order
}

// Lookup returns the current record for name.
func (r *MachineRegistry) Lookup(name string) (MachineRecord, bool) {
	rec, ok := r.Records[name]
	return rec, ok
}

// Len returns the number of listed names, duplicates included.
func (r *MachineRegistry) Len() int {
	return len(r.Order)
}

// Duplicates returns every name listed more than once, in first-seen order.
func (r *MachineRegistry) Duplicates() []string {
	counts := make(map[string]int, len(r.Order))
	var dups []string
	for _, name := range r.Order {
		counts[name]++
		if counts[name] == 2 {
			dups = append(dups, name)
		}
	}
	return dups
}
