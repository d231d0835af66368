package game

import (
	"sort"
	"time"

	"github.com/verte-zerg/tusavi/internal/layout"
	"github.com/verte-zerg/tusavi/internal/model"
)

// Shuffler orders the key pool of a fresh round.
type Shuffler interface {
	Shuffle(labels []string) []string
}

// DropResult describes what a DragEnd did.
type DropResult struct {
	Outcome  Outcome
	Label    string
	Slot     layout.Slot
	Expected string
}

type keyStat struct {
	correct int
	wrong   int
}

// Round is the state of one play-through. All mutations go through its
// transition methods; it is not safe for concurrent use and is meant to be
// owned by a single event loop.
type Round struct {
	layout   *layout.Layout
	scoring  Scoring
	shuffler Shuffler
	now      func() time.Time

	placed        map[layout.Slot]string
	pool          []string
	score         int
	wrong         int
	elapsed       int
	penaltyMarker int
	timePenalties int
	keyStats      map[string]*keyStat

	started          bool
	menuOpen         bool
	instructionsOpen bool
	dragging         string
	startedAt        time.Time

	clock Clock
}

// NewRound creates a round that has not been started yet. Its pool is
// already shuffled.
func NewRound(l *layout.Layout, scoring Scoring, shuffler Shuffler) *Round {
	r := &Round{
		layout:   l,
		scoring:  scoring,
		shuffler: shuffler,
		now:      time.Now,
	}
	r.resetState()
	return r
}

// SetNow overrides the wall clock used for history timestamps.
func (r *Round) SetNow(now func() time.Time) {
	r.now = now
}

// Layout returns the layout the round is played on.
func (r *Round) Layout() *layout.Layout {
	return r.layout
}

// Scoring returns the scoring rules of the round.
func (r *Round) Scoring() Scoring {
	return r.scoring
}

// Start moves the round from the start screen into play.
func (r *Round) Start() {
	if r.started {
		return
	}
	r.started = true
	r.instructionsOpen = false
	r.startedAt = r.now()
}

// Reset begins a new round: empty placements, a freshly shuffled pool and
// zeroed counters. The started flag is kept.
func (r *Round) Reset() {
	r.resetState()
	r.clock.release()
	if r.started {
		r.startedAt = r.now()
	}
}

// ReturnToStart resets the round and goes back to the start screen.
func (r *Round) ReturnToStart() {
	r.started = false
	r.menuOpen = false
	r.Reset()
}

// OpenMenu pauses the round behind the menu overlay. Any drag in progress is
// cancelled.
func (r *Round) OpenMenu() {
	if !r.started {
		return
	}
	r.menuOpen = true
	r.dragging = ""
}

// CloseMenu resumes the round.
func (r *Round) CloseMenu() {
	r.menuOpen = false
}

// OpenInstructions shows the how-to-play overlay.
func (r *Round) OpenInstructions() {
	r.instructionsOpen = true
}

// CloseInstructions hides the how-to-play overlay.
func (r *Round) CloseInstructions() {
	r.instructionsOpen = false
}

func (r *Round) resetState() {
	r.placed = map[layout.Slot]string{}
	r.pool = r.shuffler.Shuffle(r.layout.Labels())
	r.score = 0
	r.wrong = 0
	r.elapsed = 0
	r.penaltyMarker = 0
	r.timePenalties = 0
	r.keyStats = map[string]*keyStat{}
	r.dragging = ""
}

// Started reports whether the player left the start screen.
func (r *Round) Started() bool { return r.started }

// MenuOpen reports whether the menu overlay is shown.
func (r *Round) MenuOpen() bool { return r.menuOpen }

// InstructionsOpen reports whether the instructions overlay is shown.
func (r *Round) InstructionsOpen() bool { return r.instructionsOpen }

// Completed reports whether every slot has been filled.
func (r *Round) Completed() bool {
	return len(r.placed) == r.layout.Size()
}

// Active reports whether the round accepts drops and advances its timer.
func (r *Round) Active() bool {
	return r.started && !r.menuOpen && !r.Completed()
}

// Score returns the current score.
func (r *Round) Score() int { return r.score }

// WrongAttempts returns the number of rejected drops.
func (r *Round) WrongAttempts() int { return r.wrong }

// Elapsed returns the active play time in whole seconds.
func (r *Round) Elapsed() int { return r.elapsed }

// PlacedCount returns the number of filled slots.
func (r *Round) PlacedCount() int { return len(r.placed) }

// Dragging returns the label being dragged, if any.
func (r *Round) Dragging() (string, bool) {
	return r.dragging, r.dragging != ""
}

// Pool returns the labels still waiting to be placed, in pool order.
func (r *Round) Pool() []string {
	out := make([]string, len(r.pool))
	copy(out, r.pool)
	return out
}

// PlacedAt returns the label placed on slot.
func (r *Round) PlacedAt(s layout.Slot) (string, bool) {
	label, ok := r.placed[s]
	return label, ok
}

// Placements returns a copy of the placement map keyed by slot identifier.
func (r *Round) Placements() map[string]string {
	out := make(map[string]string, len(r.placed))
	for s, label := range r.placed {
		out[s.ID()] = label
	}
	return out
}

// DragStart records label as the item being dragged. Only labels still in
// the pool can be picked up, and only while the round is active.
func (r *Round) DragStart(label string) bool {
	if !r.Active() || r.poolIndex(label) < 0 {
		return false
	}
	r.dragging = label
	return true
}

// DragCancel drops the pending drag without touching the round.
func (r *Round) DragCancel() {
	r.dragging = ""
}

// DragEnd resolves a drop of label onto the target slot identifier. An empty
// or malformed target is a no-op.
func (r *Round) DragEnd(label, target string) DropResult {
	r.dragging = ""
	res := DropResult{Outcome: OutcomeNone, Label: label}
	if target == "" || !r.Active() {
		return res
	}
	slot, ok := layout.ParseSlotID(target)
	if !ok {
		return res
	}
	expected, ok := r.layout.Expected(slot)
	if !ok {
		return res
	}
	idx := r.poolIndex(label)
	if idx < 0 {
		return res
	}
	res.Slot = slot
	res.Expected = expected

	if _, filled := r.placed[slot]; filled {
		r.miss(label)
		res.Outcome = OutcomeOccupied
		return res
	}
	if !r.layout.Matches(label, expected) {
		r.miss(label)
		res.Outcome = OutcomeMismatch
		return res
	}

	r.placed[slot] = label
	r.pool = append(r.pool[:idx], r.pool[idx+1:]...)
	r.score += r.scoring.Reward
	r.stat(label).correct++
	res.Outcome = OutcomeMatch
	if r.Completed() {
		r.clock.release()
	}
	return res
}

func (r *Round) miss(label string) {
	r.wrong++
	r.score -= r.scoring.MismatchPenalty
	r.stat(label).wrong++
}

func (r *Round) stat(label string) *keyStat {
	entry, ok := r.keyStats[label]
	if !ok {
		entry = &keyStat{}
		r.keyStats[label] = entry
	}
	return entry
}

func (r *Round) poolIndex(label string) int {
	for i, l := range r.pool {
		if l == label {
			return i
		}
	}
	return -1
}

// Tick advances the active play time by one second and applies the time
// penalty once for every interval boundary crossed. It does nothing while the
// round is inactive.
func (r *Round) Tick() {
	if !r.Active() {
		return
	}
	r.elapsed++
	for boundary := r.elapsed / r.scoring.PenaltyInterval; boundary > r.penaltyMarker; {
		r.penaltyMarker++
		r.score -= r.scoring.TimePenalty
		r.timePenalties++
	}
}

// SyncClock keeps the ticker handle in lockstep with round activity. When the
// round has just become active it acquires the clock and returns the new
// generation with start set; the caller must then schedule ticks for that
// generation. When the round is inactive the clock is released.
func (r *Round) SyncClock() (gen uint64, start bool) {
	if !r.Active() {
		r.clock.release()
		return 0, false
	}
	if r.clock.Running() {
		return r.clock.Generation(), false
	}
	return r.clock.acquire(), true
}

// TickFor applies a tick scheduled under gen. It returns false for stale
// ticks, in which case the caller must stop rescheduling.
func (r *Round) TickFor(gen uint64) bool {
	if !r.clock.Owns(gen) || !r.Active() {
		return false
	}
	r.Tick()
	return true
}

// Clock exposes the ticker handle for inspection.
func (r *Round) Clock() *Clock {
	return &r.clock
}

// Summary builds the history record of the round.
func (r *Round) Summary() (model.RoundStats, []model.KeyStats) {
	stats := model.RoundStats{
		Layout:        r.layout.Name,
		StartedAt:     r.startedAt,
		EndedAt:       r.now(),
		ElapsedSec:    r.elapsed,
		Score:         r.score,
		WrongAttempts: r.wrong,
		Placed:        len(r.placed),
		TimePenalties: r.timePenalties,
	}
	keys := make([]model.KeyStats, 0, len(r.keyStats))
	for key, entry := range r.keyStats {
		keys = append(keys, model.KeyStats{Key: key, Correct: entry.correct, Wrong: entry.wrong})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Key < keys[j].Key })
	return stats, keys
}
