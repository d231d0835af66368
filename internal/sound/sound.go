// Package sound plays the success and failure cues of a drop.
package sound

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Cue identifies a sound effect.
type Cue int

const (
	CueSuccess Cue = iota
	CueFailure
)

func (c Cue) String() string {
	if c == CueSuccess {
		return "success"
	}
	return "failure"
}

// Player plays cues. Implementations must not block for long; callers run
// them fire-and-forget and only log errors.
type Player interface {
	Play(Cue) error
}

// Nop is a Player that stays silent.
type Nop struct{}

// Play implements Player.
func (Nop) Play(Cue) error { return nil }

// Bell rings the terminal bell: once on success, twice on failure.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell returns a Bell writing to w, usually the controlling terminal.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Play implements Player.
func (b *Bell) Play(c Cue) error {
	if b == nil || b.w == nil {
		return fmt.Errorf("bell has no output")
	}
	rings := 1
	if c == CueFailure {
		rings = 2
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.w, strings.Repeat("\a", rings)); err != nil {
		return fmt.Errorf("failed to ring bell: %w", err)
	}
	return nil
}
