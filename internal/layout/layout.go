// Package layout defines keyboard layout tables and slot addressing.
package layout

import (
	"fmt"
	"strings"
)

// DefaultName is the name of the built-in Turkish Q layout.
const DefaultName = "trq"

// Layout is an ordered table of key label rows. Every label in the table is
// both a drop target and a draggable key.
type Layout struct {
	Name string
	Rows [][]string

	labels  []string
	classes map[string]Class
}

// New builds a layout and validates its table.
func New(name string, rows [][]string) (*Layout, error) {
	l := &Layout{Name: name, Rows: copyRows(rows)}
	if err := l.validate(); err != nil {
		return nil, err
	}
	l.labels = make([]string, 0, 64)
	l.classes = map[string]Class{}
	for _, row := range l.Rows {
		for _, label := range row {
			l.labels = append(l.labels, label)
			l.classes[label] = classify(label)
		}
	}
	return l, nil
}

// TurkishQ returns the built-in 56-key Turkish Q layout.
func TurkishQ() *Layout {
	l, err := New(DefaultName, [][]string{
		{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "*", "-", "Backspace"},
		{"Tab", "Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P", "Ğ", "Ü"},
		{"CapsLock", "A", "S", "D", "F", "G", "H", "J", "K", "L", "Ş", "İ", "Enter"},
		{"LeftShift", "Z", "X", "C", "V", "B", "N", "M", "Ö", "Ç", ".", "RightShift"},
		{"LeftCtrl", "Alt", "Space", "AltGr", "RightCtrl"},
	})
	if err != nil {
		panic(err)
	}
	return l
}

// Builtin returns the built-in layout with the given name.
func Builtin(name string) (*Layout, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DefaultName:
		return TurkishQ(), true
	default:
		return nil, false
	}
}

// BuiltinNames lists the names accepted by Builtin.
func BuiltinNames() []string {
	return []string{DefaultName}
}

// Labels returns all key labels in table order.
func (l *Layout) Labels() []string {
	out := make([]string, len(l.labels))
	copy(out, l.labels)
	return out
}

// Size returns the number of keys in the layout.
func (l *Layout) Size() int {
	return len(l.labels)
}

// Contains reports whether label belongs to the layout.
func (l *Layout) Contains(label string) bool {
	_, ok := l.classes[label]
	return ok
}

// Expected returns the label expected at slot.
func (l *Layout) Expected(s Slot) (string, bool) {
	if !l.InRange(s) {
		return "", false
	}
	return l.Rows[s.Row][s.Col], true
}

// InRange reports whether the slot addresses a key of the table.
func (l *Layout) InRange(s Slot) bool {
	if s.Row < 0 || s.Row >= len(l.Rows) {
		return false
	}
	return s.Col >= 0 && s.Col < len(l.Rows[s.Row])
}

// ClassOf returns the modifier class of a label.
func (l *Layout) ClassOf(label string) Class {
	if c, ok := l.classes[label]; ok {
		return c
	}
	return classify(label)
}

// Matches reports whether dragged is accepted on a slot expecting expected.
// Side-specific Shift and Ctrl keys are interchangeable within their family.
func (l *Layout) Matches(dragged, expected string) bool {
	if dragged == expected {
		return true
	}
	dc := l.ClassOf(dragged)
	if dc == Plain {
		return false
	}
	return dc == l.ClassOf(expected)
}

// Slots returns every slot of the layout in table order.
func (l *Layout) Slots() []Slot {
	out := make([]Slot, 0, len(l.labels))
	for r, row := range l.Rows {
		for c := range row {
			out = append(out, Slot{Row: r, Col: c})
		}
	}
	return out
}

func (l *Layout) validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("layout name is empty")
	}
	if len(l.Rows) == 0 {
		return fmt.Errorf("layout %q has no rows", l.Name)
	}
	seen := map[string]struct{}{}
	for r, row := range l.Rows {
		if len(row) == 0 {
			return fmt.Errorf("layout %q row %d is empty", l.Name, r)
		}
		for c, label := range row {
			if strings.TrimSpace(label) == "" {
				return fmt.Errorf("layout %q has an empty label at row %d col %d", l.Name, r, c)
			}
			if _, ok := seen[label]; ok {
				return fmt.Errorf("layout %q has duplicate label %q", l.Name, label)
			}
			seen[label] = struct{}{}
		}
	}
	return nil
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
