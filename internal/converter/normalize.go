package converter

import (
	"strings"
	"unicode/utf8"
)

// MachinePrefix is prepended to every padded machine ID.
const MachinePrefix = "M"

// machineIDWidth is the minimum width of the numeric part of a machine name.
const machineIDWidth = 2

// MachineName normalizes a raw Machine ID: "3" -> "M03", "12" -> "M12",
// "123" -> "M123". IDs already at least two characters long are kept as they
// are, numeric or not.
func MachineName(rawID string) string {
	return MachinePrefix + PadLeft(rawID, machineIDWidth, '0')
}

// PadLeft pads s on the left with padChar until it is length characters long.
// Length is counted in runes. Longer strings are never truncated.
func PadLeft(s string, length int, padChar rune) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return strings.Repeat(string(padChar), length-n) + s
}
