package layout

import (
	"strconv"
	"strings"
)

const (
	slotTag       = "slot"
	slotDelimiter = "-"
)

// Slot addresses one key position of a layout table.
type Slot struct {
	Row int
	Col int
}

// ID returns the drop target identifier of the slot, e.g. "slot-1-4".
func (s Slot) ID() string {
	return slotTag + slotDelimiter + strconv.Itoa(s.Row) + slotDelimiter + strconv.Itoa(s.Col)
}

// ParseSlotID parses a drop target identifier. Anything other than
// "slot-<row>-<col>" with non-negative integers is rejected.
func ParseSlotID(id string) (Slot, bool) {
	parts := strings.Split(id, slotDelimiter)
	if len(parts) != 3 || parts[0] != slotTag {
		return Slot{}, false
	}
	row, err := strconv.Atoi(parts[1])
	if err != nil || row < 0 {
		return Slot{}, false
	}
	col, err := strconv.Atoi(parts[2])
	if err != nil || col < 0 {
		return Slot{}, false
	}
	return Slot{Row: row, Col: col}, true
}
