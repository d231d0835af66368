package layout

import "strings"

// Class groups modifier keys that may stand in for each other.
type Class int

const (
	Plain Class = iota
	ShiftClass
	CtrlClass
)

func (c Class) String() string {
	switch c {
	case ShiftClass:
		return "shift"
	case CtrlClass:
		return "ctrl"
	default:
		return "plain"
	}
}

var modifierClasses = map[string]Class{
	"Shift":      ShiftClass,
	"LeftShift":  ShiftClass,
	"RightShift": ShiftClass,
	"Ctrl":       CtrlClass,
	"LeftCtrl":   CtrlClass,
	"RightCtrl":  CtrlClass,
}

func classify(label string) Class {
	if c, ok := modifierClasses[label]; ok {
		return c
	}
	return Plain
}

// Display returns the text shown on a key cap. Side prefixes of modifier keys
// are dropped so LeftShift and RightShift both read "Shift".
func Display(label string) string {
	if classify(label) == Plain {
		return label
	}
	label = strings.TrimPrefix(label, "Left")
	return strings.TrimPrefix(label, "Right")
}

// CapWidth returns the inner width, in cells, of the key cap for label.
func CapWidth(label string) int {
	switch label {
	case "Space":
		return 24
	case "Backspace":
		return 9
	case "Tab":
		return 5
	case "CapsLock", "Enter":
		return 7
	case "Alt":
		return 4
	case "AltGr":
		return 5
	}
	switch classify(label) {
	case ShiftClass:
		return 8
	case CtrlClass:
		return 5
	}
	return 3
}
