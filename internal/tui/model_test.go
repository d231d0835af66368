package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tusavi/internal/game"
	"github.com/verte-zerg/tusavi/internal/generator"
	"github.com/verte-zerg/tusavi/internal/layout"
	"github.com/verte-zerg/tusavi/internal/model"
	"github.com/verte-zerg/tusavi/internal/store"
)

func testConfig() model.Config {
	return model.Config{
		Layout:          layout.DefaultName,
		Reward:          10,
		MismatchPenalty: 5,
		TimePenalty:     10,
		PenaltyInterval: 10,
		History:         true,
		WeakTop:         8,
		WeakWindow:      20,
	}
}

func newTestModel(t *testing.T, st *store.Store) *Model {
	t.Helper()
	m := NewModel(Options{
		Config:    testConfig(),
		Layout:    layout.TurkishQ(),
		Store:     st,
		Generator: generator.NewSeeded(7),
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func startedModel(t *testing.T, st *store.Store) *Model {
	t.Helper()
	m := newTestModel(t, st)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen() != screenGame {
		t.Fatalf("expected game screen after start, got %v", m.screen())
	}
	return m
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func chipFor(t *testing.T, m *Model, label string) chipBox {
	t.Helper()
	for _, chip := range m.geometry().chips {
		if chip.label == label {
			return chip
		}
	}
	t.Fatalf("chip %q not in pool", label)
	return chipBox{}
}

func slotFor(t *testing.T, m *Model, s layout.Slot) slotBox {
	t.Helper()
	g := m.geometry()
	idx := g.slotIndex(s)
	if idx < 0 {
		t.Fatalf("slot %+v not on board", s)
	}
	return g.slots[idx]
}

func mouseDrag(m *Model, from rect, to rect) {
	m.Update(tea.MouseMsg{X: from.x, Y: from.y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: to.x, Y: to.y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: to.x, Y: to.y, Action: tea.MouseActionRelease})
}

func TestStartScreenFlow(t *testing.T) {
	m := newTestModel(t, nil)
	if m.screen() != screenStart {
		t.Fatalf("expected start screen")
	}
	m.Update(runeKey("h"))
	if m.screen() != screenInstructions {
		t.Fatalf("expected instructions overlay")
	}
	if !strings.Contains(m.View(), "every 10 seconds") {
		t.Fatalf("instructions should list the time penalty: %s", m.View())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen() != screenStart {
		t.Fatalf("expected start screen after closing instructions")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen() != screenGame {
		t.Fatalf("expected game screen")
	}
	if cmd == nil || !m.round.Clock().Running() {
		t.Fatalf("expected the clock to start with the round")
	}
}

func TestMouseDragPlacesKey(t *testing.T) {
	m := startedModel(t, nil)
	chip := chipFor(t, m, "Q")
	slot := slotFor(t, m, layout.Slot{Row: 1, Col: 1})

	m.Update(tea.MouseMsg{X: chip.x, Y: chip.y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if label, ok := m.round.Dragging(); !ok || label != "Q" {
		t.Fatalf("expected Q to be dragged, got %q", label)
	}
	m.Update(tea.MouseMsg{X: slot.x + 1, Y: slot.y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if !m.hovering || m.hover != slot.slot {
		t.Fatalf("expected hover on Q slot, got %+v %v", m.hover, m.hovering)
	}
	m.Update(tea.MouseMsg{X: slot.x + 1, Y: slot.y, Action: tea.MouseActionRelease})

	if label, ok := m.round.PlacedAt(slot.slot); !ok || label != "Q" {
		t.Fatalf("expected Q placed, got %q", label)
	}
	if m.round.Score() != 10 {
		t.Fatalf("expected score 10, got %d", m.round.Score())
	}
	if _, ok := m.round.Dragging(); ok {
		t.Fatalf("drag should end on release")
	}
}

func TestMouseDropOnWrongSlotPenalizes(t *testing.T) {
	m := startedModel(t, nil)
	before := len(m.round.Pool())
	mouseDrag(m, chipFor(t, m, "Q").rect, slotFor(t, m, layout.Slot{Row: 2, Col: 1}).rect)

	if m.round.Score() != -5 || m.round.WrongAttempts() != 1 {
		t.Fatalf("expected -5 and one wrong attempt, got %d/%d", m.round.Score(), m.round.WrongAttempts())
	}
	if len(m.round.Pool()) != before {
		t.Fatalf("pool should keep the key after a miss")
	}
	if !strings.Contains(m.renderHeader(), "-5") {
		t.Fatalf("header should show negative score: %s", m.renderHeader())
	}
}

func TestMouseDropOutsideBoardIsNoop(t *testing.T) {
	m := startedModel(t, nil)
	chip := chipFor(t, m, "Ş")
	mouseDrag(m, chip.rect, rect{x: 0, y: 0, w: 1})

	if m.round.Score() != 0 || m.round.WrongAttempts() != 0 {
		t.Fatalf("drop outside the board should not score, got %d/%d", m.round.Score(), m.round.WrongAttempts())
	}
	if _, ok := m.round.Dragging(); ok {
		t.Fatalf("drag should be cleared")
	}
}

func TestKeyboardPickAndDrop(t *testing.T) {
	m := startedModel(t, nil)
	pool := m.round.Pool()
	for i, label := range pool {
		if label == "RightShift" {
			m.poolCursor = i
		}
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.focus != focusBoard {
		t.Fatalf("expected board focus after pick up")
	}
	m.slotCursor = layout.Slot{Row: 3, Col: 0}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if label, ok := m.round.PlacedAt(layout.Slot{Row: 3, Col: 0}); !ok || label != "RightShift" {
		t.Fatalf("expected RightShift in the left shift slot, got %q", label)
	}
	if m.focus != focusPool {
		t.Fatalf("expected pool focus after drop")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := m.round.Dragging(); ok {
		t.Fatalf("esc should cancel the drag")
	}
}

func TestMenuPausesClock(t *testing.T) {
	m := startedModel(t, nil)
	gen := m.round.Clock().Generation()
	m.Update(tickMsg{gen: gen})
	if m.round.Elapsed() != 1 {
		t.Fatalf("expected one tick, got %d", m.round.Elapsed())
	}

	m.Update(runeKey("m"))
	if m.screen() != screenMenu || m.round.Clock().Running() {
		t.Fatalf("menu should pause the clock")
	}
	m.Update(tickMsg{gen: gen})
	if m.round.Elapsed() != 1 {
		t.Fatalf("stale tick should be ignored, got %d", m.round.Elapsed())
	}
	chip := chipFor(t, m, "A")
	m.Update(tea.MouseMsg{X: chip.x, Y: chip.y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if _, ok := m.round.Dragging(); ok {
		t.Fatalf("drags should be ignored behind the menu")
	}

	_, cmd := m.Update(runeKey("c"))
	if m.screen() != screenGame || cmd == nil || !m.round.Clock().Running() {
		t.Fatalf("continue should resume the clock")
	}
	if m.round.Clock().Generation() == gen {
		t.Fatalf("resume should start a new clock generation")
	}
}

func TestMenuNewGameAndBackToStart(t *testing.T) {
	m := startedModel(t, nil)
	mouseDrag(m, chipFor(t, m, "Q").rect, slotFor(t, m, layout.Slot{Row: 1, Col: 1}).rect)
	m.Update(runeKey("m"))
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen() != screenGame || m.round.PlacedCount() != 0 || m.round.Score() != 0 {
		t.Fatalf("new game should reset the round")
	}

	m.Update(runeKey("m"))
	m.Update(runeKey("b"))
	if m.screen() != screenStart {
		t.Fatalf("expected start screen")
	}
}

func TestCompletingRoundSavesHistory(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "tusavi.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	m := startedModel(t, st)

	m.drop("Q", layout.Slot{Row: 2, Col: 1}.ID())
	l := m.round.Layout()
	for _, s := range l.Slots() {
		expected, _ := l.Expected(s)
		m.drop(expected, s.ID())
	}
	if m.screen() != screenComplete {
		t.Fatalf("expected completion screen")
	}
	if m.round.Clock().Running() {
		t.Fatalf("clock should stop on completion")
	}
	if !strings.Contains(m.View(), "Keyboard complete!") {
		t.Fatalf("expected completion overlay")
	}

	rounds, err := st.ListRounds(context.Background(), model.StatsConfig{Layout: layout.DefaultName})
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("expected 1 saved round, got %d", len(rounds))
	}
	if rounds[0].Score != 555 || rounds[0].WrongAttempts != 1 || rounds[0].Placed != l.Size() {
		t.Fatalf("unexpected saved round: %+v", rounds[0])
	}
	if m.renderFooter() == "" {
		t.Fatalf("expected last/best footer after a round")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen() != screenGame || m.round.PlacedCount() != 0 {
		t.Fatalf("play again should start a fresh round")
	}
}

func TestFocusWeakPutsMissedKeysFirst(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "tusavi.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	round := model.RoundStats{Layout: layout.DefaultName, Placed: 56}
	keys := []model.KeyStats{{Key: "Ğ", Correct: 1, Wrong: 5}}
	if _, err := st.InsertRound(context.Background(), round, keys); err != nil {
		t.Fatalf("insert round: %v", err)
	}

	cfg := testConfig()
	cfg.FocusWeak = true
	m := NewModel(Options{Config: cfg, Layout: layout.TurkishQ(), Store: st, Generator: generator.NewSeeded(1)})
	if pool := m.round.Pool(); pool[0] != "Ğ" {
		t.Fatalf("expected weak key first, got %v", pool[:3])
	}
}

func TestRenderHeaderFormats(t *testing.T) {
	m := startedModel(t, nil)
	for i := 0; i < 65; i++ {
		m.round.Tick()
	}
	out := m.renderHeader()
	for _, want := range []string{"Placed 0/56", "Score -60", "Time 1:05", "Wrong 0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("header missing %q: %s", want, out)
		}
	}
}

func TestDropOutcomeStatus(t *testing.T) {
	m := startedModel(t, nil)
	m.drop("Q", layout.Slot{Row: 1, Col: 1}.ID())
	if !strings.Contains(m.status, "Q placed") {
		t.Fatalf("unexpected status %q", m.status)
	}
	m.drop("W", layout.Slot{Row: 1, Col: 1}.ID())
	if !strings.Contains(m.status, "taken") {
		t.Fatalf("unexpected status %q", m.status)
	}
	if m.round.Score() != 5 {
		t.Fatalf("expected 10 - 5 = 5, got %d", m.round.Score())
	}
	if res := m.round.DragEnd("W", "nonsense"); res.Outcome != game.OutcomeNone {
		t.Fatalf("malformed target should be ignored")
	}
}
