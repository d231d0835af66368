package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurkishQHas56DistinctLabels(t *testing.T) {
	l := TurkishQ()
	labels := l.Labels()
	require.Len(t, labels, 56)
	assert.Equal(t, 56, l.Size())

	seen := map[string]struct{}{}
	for _, label := range labels {
		_, dup := seen[label]
		require.False(t, dup, "duplicate label %q", label)
		seen[label] = struct{}{}
	}
	assert.Equal(t, "Backspace", labels[12])
	assert.Equal(t, "RightCtrl", labels[55])
}

func TestExpectedAndRange(t *testing.T) {
	l := TurkishQ()

	got, ok := l.Expected(Slot{Row: 1, Col: 1})
	require.True(t, ok)
	assert.Equal(t, "Q", got)

	got, ok = l.Expected(Slot{Row: 3, Col: 11})
	require.True(t, ok)
	assert.Equal(t, "RightShift", got)

	_, ok = l.Expected(Slot{Row: 4, Col: 5})
	assert.False(t, ok)
	_, ok = l.Expected(Slot{Row: 5, Col: 0})
	assert.False(t, ok)
	_, ok = l.Expected(Slot{Row: -1, Col: 0})
	assert.False(t, ok)
}

func TestSlotIDRoundTrip(t *testing.T) {
	for _, s := range TurkishQ().Slots() {
		parsed, ok := ParseSlotID(s.ID())
		require.True(t, ok, s.ID())
		assert.Equal(t, s, parsed)
	}
	assert.Equal(t, "slot-3-0", Slot{Row: 3, Col: 0}.ID())
}

func TestParseSlotIDRejectsMalformed(t *testing.T) {
	for _, id := range []string{
		"",
		"slot",
		"slot-1",
		"slot-1-2-3",
		"key-1-2",
		"slot-a-2",
		"slot-1-b",
		"slot--1-2",
		"Q",
	} {
		_, ok := ParseSlotID(id)
		assert.False(t, ok, "expected %q to be rejected", id)
	}
}

func TestClassification(t *testing.T) {
	l := TurkishQ()
	assert.Equal(t, ShiftClass, l.ClassOf("LeftShift"))
	assert.Equal(t, ShiftClass, l.ClassOf("RightShift"))
	assert.Equal(t, CtrlClass, l.ClassOf("LeftCtrl"))
	assert.Equal(t, CtrlClass, l.ClassOf("RightCtrl"))
	assert.Equal(t, Plain, l.ClassOf("Alt"))
	assert.Equal(t, Plain, l.ClassOf("AltGr"))
	assert.Equal(t, Plain, l.ClassOf("ShiftLock"))
}

func TestMatches(t *testing.T) {
	l := TurkishQ()
	assert.True(t, l.Matches("Q", "Q"))
	assert.False(t, l.Matches("Q", "W"))
	assert.True(t, l.Matches("LeftShift", "RightShift"))
	assert.True(t, l.Matches("RightShift", "LeftShift"))
	assert.True(t, l.Matches("LeftCtrl", "RightCtrl"))
	assert.False(t, l.Matches("LeftShift", "LeftCtrl"))
	assert.False(t, l.Matches("Alt", "AltGr"))
	assert.False(t, l.Matches("LeftShift", "Z"))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "Shift", Display("LeftShift"))
	assert.Equal(t, "Shift", Display("RightShift"))
	assert.Equal(t, "Ctrl", Display("RightCtrl"))
	assert.Equal(t, "Ş", Display("Ş"))
	assert.Equal(t, "Space", Display("Space"))
}

func TestNewRejectsInvalidTables(t *testing.T) {
	_, err := New("dup", [][]string{{"A", "B"}, {"A"}})
	assert.Error(t, err)

	_, err = New("empty-row", [][]string{{"A"}, {}})
	assert.Error(t, err)

	_, err = New("", [][]string{{"A"}})
	assert.Error(t, err)

	_, err = New("no-rows", nil)
	assert.Error(t, err)
}

func TestResolveLoadsCustomLayout(t *testing.T) {
	dir := t.TempDir()
	content := "name = \"mini\"\nrows = [[\"1\", \"2\"], [\"LeftShift\", \"A\", \"RightShift\"]]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mini.toml"), []byte(content), 0o644))

	l, err := Resolve("mini", dir)
	require.NoError(t, err)
	assert.Equal(t, "mini", l.Name)
	assert.Equal(t, 5, l.Size())
	assert.Equal(t, ShiftClass, l.ClassOf("RightShift"))

	names, err := ListCustom(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"mini"}, names)

	_, err = Resolve("missing", dir)
	assert.Error(t, err)

	builtin, err := Resolve("", dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultName, builtin.Name)
}
