// Package tui provides the Bubble Tea drag-and-drop game interface.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tusavi/internal/game"
	"github.com/verte-zerg/tusavi/internal/generator"
	"github.com/verte-zerg/tusavi/internal/layout"
	"github.com/verte-zerg/tusavi/internal/model"
	"github.com/verte-zerg/tusavi/internal/sound"
	statsPkg "github.com/verte-zerg/tusavi/internal/stats"
	"github.com/verte-zerg/tusavi/internal/store"
	"github.com/verte-zerg/tusavi/internal/telemetry"
)

type screen int

const (
	screenStart screen = iota
	screenInstructions
	screenGame
	screenMenu
	screenComplete
)

type focus int

const (
	focusPool focus = iota
	focusBoard
)

var menuItems = []string{"Continue", "New game", "Back to start"}

type tickMsg struct {
	gen uint64
}

func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Options wires the game model to its collaborators. Store may be nil, which
// disables history and weak-key focus. Sound and Logger default to silent
// implementations.
type Options struct {
	Config    model.Config
	Layout    *layout.Layout
	Store     *store.Store
	Generator *generator.Generator
	Sound     sound.Player
	Logger    *telemetry.Logger
}

// Model implements the Bubble Tea game UI.
type Model struct {
	config   model.Config
	round    *game.Round
	store    *store.Store
	shuffler *generator.WeakFirst
	player   sound.Player
	logger   *telemetry.Logger
	keys     keyMap
	help     help.Model

	width  int
	height int

	focus      focus
	poolCursor int
	slotCursor layout.Slot
	menuCursor int

	mouseDrag bool
	hover     layout.Slot
	hovering  bool
	status    string

	lastScore        int
	bestScore        int
	hasLast          bool
	weakNoticeLogged bool
}

// NewModel constructs the game model. The round starts on the start screen.
func NewModel(opts Options) *Model {
	gen := opts.Generator
	if gen == nil {
		gen = generator.New()
	}
	player := opts.Sound
	if player == nil || !opts.Config.Sound {
		player = sound.Nop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = telemetry.Discard()
	}
	m := &Model{
		config:   opts.Config,
		store:    opts.Store,
		shuffler: &generator.WeakFirst{Gen: gen},
		player:   player,
		logger:   logger,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	if m.config.FocusWeak {
		m.refreshWeakSet(opts.Layout.Name)
	}
	scoring := game.Scoring{
		Reward:          m.config.Reward,
		MismatchPenalty: m.config.MismatchPenalty,
		TimePenalty:     m.config.TimePenalty,
		PenaltyInterval: m.config.PenaltyInterval,
	}
	m.round = game.NewRound(opts.Layout, scoring, m.shuffler)
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. After every message the ticker is brought in
// line with the round: it starts when play becomes active and stale ticks
// stop rescheduling themselves.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.handle(msg)
	return m, tea.Batch(cmd, m.syncClock())
}

func (m *Model) handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return nil
	case tickMsg:
		if m.round.TickFor(msg.gen) {
			return tickCmd(msg.gen)
		}
		return nil
	case soundErrMsg:
		m.logger.Warn("sound failed", "cue", msg.cue, "err", msg.err)
		return nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return tea.Quit
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	default:
		return nil
	}
}

func (m *Model) syncClock() tea.Cmd {
	gen, start := m.round.SyncClock()
	if !start {
		return nil
	}
	m.logger.Debug("clock started", "gen", gen)
	return tickCmd(gen)
}

func (m *Model) screen() screen {
	switch {
	case !m.round.Started() && m.round.InstructionsOpen():
		return screenInstructions
	case !m.round.Started():
		return screenStart
	case m.round.MenuOpen():
		return screenMenu
	case m.round.Completed():
		return screenComplete
	default:
		return screenGame
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.screen() {
	case screenStart:
		switch {
		case key.Matches(msg, m.keys.Start):
			m.startRound()
		case key.Matches(msg, m.keys.HowTo):
			m.round.OpenInstructions()
		}
	case screenInstructions:
		switch {
		case key.Matches(msg, m.keys.Start):
			m.startRound()
		case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.HowTo):
			m.round.CloseInstructions()
		}
	case screenMenu:
		return m.handleMenuKey(msg)
	case screenComplete:
		switch {
		case key.Matches(msg, m.keys.PlayAgain):
			m.newGame()
		case key.Matches(msg, m.keys.BackToStart):
			m.backToStart()
		}
	case screenGame:
		return m.handleGameKey(msg)
	}
	return nil
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.menuCursor = (m.menuCursor + len(menuItems) - 1) % len(menuItems)
	case key.Matches(msg, m.keys.Down):
		m.menuCursor = (m.menuCursor + 1) % len(menuItems)
	case key.Matches(msg, m.keys.Pick):
		m.selectMenuItem(m.menuCursor)
	case key.Matches(msg, m.keys.Continue):
		m.selectMenuItem(0)
	case key.Matches(msg, m.keys.NewGame):
		m.selectMenuItem(1)
	case key.Matches(msg, m.keys.BackToStart):
		m.selectMenuItem(2)
	}
	return nil
}

func (m *Model) selectMenuItem(item int) {
	switch item {
	case 0:
		m.round.CloseMenu()
		m.logger.Debug("menu closed")
	case 1:
		m.newGame()
	case 2:
		m.backToStart()
	}
}

func (m *Model) handleGameKey(msg tea.KeyMsg) tea.Cmd {
	g := m.geometry()
	switch {
	case key.Matches(msg, m.keys.Menu):
		m.openMenu()
	case key.Matches(msg, m.keys.Cancel):
		m.round.DragCancel()
		m.mouseDrag = false
		m.focus = focusPool
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(g, -1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(g, 1, 0)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(g, 0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(g, 0, 1)
	case key.Matches(msg, m.keys.Pick):
		if m.focus == focusBoard {
			if label, ok := m.round.Dragging(); ok {
				return m.drop(label, m.slotCursor.ID())
			}
			m.focus = focusPool
			return nil
		}
		pool := m.round.Pool()
		if m.poolCursor < len(pool) && m.round.DragStart(pool[m.poolCursor]) {
			m.focus = focusBoard
		}
	}
	return nil
}

func (m *Model) moveCursor(g geometry, dx, dy int) {
	if m.focus == focusBoard {
		m.slotCursor = g.moveSlot(m.slotCursor, dx, dy)
		return
	}
	m.poolCursor = g.moveChip(m.poolCursor, dx, dy)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.screen() != screenGame {
		return nil
	}
	g := m.geometry()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		chip, ok := g.chipAt(msg.X, msg.Y)
		if !ok || !m.round.DragStart(chip.label) {
			return nil
		}
		m.mouseDrag = true
		m.focus = focusPool
		m.poolCursor = chip.index
		m.trackHover(g, msg.X, msg.Y)
	case tea.MouseActionMotion:
		if m.mouseDrag {
			m.trackHover(g, msg.X, msg.Y)
		}
	case tea.MouseActionRelease:
		if !m.mouseDrag {
			return nil
		}
		m.mouseDrag = false
		m.hovering = false
		label, ok := m.round.Dragging()
		if !ok {
			return nil
		}
		target := ""
		if box, ok := g.slotAt(msg.X, msg.Y); ok {
			target = box.slot.ID()
		}
		return m.drop(label, target)
	}
	return nil
}

func (m *Model) trackHover(g geometry, x, y int) {
	box, ok := g.slotAt(x, y)
	m.hovering = ok
	m.hover = box.slot
}

func (m *Model) drop(label, target string) tea.Cmd {
	res := m.round.DragEnd(label, target)
	m.focus = focusPool
	m.poolCursor = max(0, min(m.poolCursor, len(m.round.Pool())-1))
	m.logger.Debug("drop", "key", label, "target", target, "outcome", res.Outcome)

	switch {
	case res.Outcome == game.OutcomeMatch:
		m.status = fmt.Sprintf("%s placed", layout.Display(label))
		cmd := playCmd(m.player, sound.CueSuccess)
		if m.round.Completed() {
			m.finishRound()
		}
		return cmd
	case res.Outcome == game.OutcomeOccupied:
		m.status = fmt.Sprintf("That slot is taken (-%d)", m.round.Scoring().MismatchPenalty)
		return playCmd(m.player, sound.CueFailure)
	case res.Outcome.Missed():
		m.status = fmt.Sprintf("%s does not go there (-%d)", layout.Display(label), m.round.Scoring().MismatchPenalty)
		return playCmd(m.player, sound.CueFailure)
	default:
		return nil
	}
}

func (m *Model) startRound() {
	m.round.Start()
	m.resetCursors()
	m.logger.Info("round started", "layout", m.round.Layout().Name)
}

func (m *Model) newGame() {
	m.round.Reset()
	m.round.CloseMenu()
	m.resetCursors()
	m.logger.Info("round reset", "layout", m.round.Layout().Name)
}

func (m *Model) backToStart() {
	m.round.ReturnToStart()
	m.resetCursors()
	m.loadFooterStats()
}

func (m *Model) openMenu() {
	m.round.OpenMenu()
	m.mouseDrag = false
	m.hovering = false
	m.focus = focusPool
	m.menuCursor = 0
}

func (m *Model) resetCursors() {
	m.focus = focusPool
	m.poolCursor = 0
	m.slotCursor = layout.Slot{}
	m.menuCursor = 0
	m.mouseDrag = false
	m.hovering = false
	m.status = ""
}

func (m *Model) geometry() geometry {
	return buildGeometry(m.round.Layout(), m.round.Pool(), m.width)
}

func (m *Model) finishRound() {
	stats, keys := m.round.Summary()
	m.logger.Info("round completed",
		"layout", stats.Layout,
		"score", stats.Score,
		"elapsed", stats.ElapsedSec,
		"wrong", stats.WrongAttempts,
	)
	if !m.hasLast || stats.Score > m.bestScore {
		m.bestScore = stats.Score
	}
	m.lastScore = stats.Score
	m.hasLast = true

	if m.store == nil || !m.config.History {
		return
	}
	ctx := context.Background()
	if _, err := m.store.InsertRound(ctx, stats, keys); err != nil {
		m.logger.Error("failed to save round", "err", err)
		return
	}
	if m.config.FocusWeak {
		m.refreshWeakSet(stats.Layout)
	}
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	ctx := context.Background()
	rounds, err := m.store.ListRounds(ctx, model.StatsConfig{Layout: m.round.Layout().Name})
	if err != nil {
		m.logger.Error("failed to load round stats", "err", err)
		return
	}
	if len(rounds) == 0 {
		return
	}
	summary := statsPkg.Summarize(rounds)
	m.lastScore = rounds[len(rounds)-1].Score
	m.bestScore = summary.BestScore
	m.hasLast = true
}

func (m *Model) refreshWeakSet(layoutName string) {
	if m.store == nil {
		return
	}
	ctx := context.Background()
	aggs, err := m.store.GetWeakKeys(ctx, m.config.WeakWindow, layoutName)
	if err != nil {
		m.logger.Error("failed to load weak keys", "err", err)
		return
	}
	weak := statsPkg.SelectWeakKeys(aggs, m.config.WeakTop)
	if len(weak) == 0 && !m.weakNoticeLogged {
		m.logger.Info("no history for weak-key focus yet; using a plain shuffle")
		m.weakNoticeLogged = true
	}
	m.shuffler.Weak = weak
}
