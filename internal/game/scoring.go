// Package game holds the round state and the drag, scoring and timer rules.
package game

import "fmt"

// Scoring configures rewards and penalties of a round.
type Scoring struct {
	Reward          int
	MismatchPenalty int
	TimePenalty     int
	// PenaltyInterval is the number of active seconds between time penalties.
	PenaltyInterval int
}

// DefaultScoring returns +10 per match, -5 per miss and -10 every ten seconds.
func DefaultScoring() Scoring {
	return Scoring{
		Reward:          10,
		MismatchPenalty: 5,
		TimePenalty:     10,
		PenaltyInterval: 10,
	}
}

// Validate checks the scoring values.
func (s Scoring) Validate() error {
	if s.Reward <= 0 {
		return fmt.Errorf("reward must be > 0")
	}
	if s.MismatchPenalty < 0 {
		return fmt.Errorf("mismatch penalty must be >= 0")
	}
	if s.TimePenalty < 0 {
		return fmt.Errorf("time penalty must be >= 0")
	}
	if s.PenaltyInterval <= 0 {
		return fmt.Errorf("penalty interval must be > 0")
	}
	return nil
}

// Outcome is the result of a drop.
type Outcome int

const (
	// OutcomeNone means the drop had no effect.
	OutcomeNone Outcome = iota
	OutcomeMatch
	OutcomeMismatch
	// OutcomeOccupied is a mismatch caused by dropping on a filled slot.
	OutcomeOccupied
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatch:
		return "match"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeOccupied:
		return "occupied"
	default:
		return "none"
	}
}

// Missed reports whether the outcome counts as a wrong attempt.
func (o Outcome) Missed() bool {
	return o == OutcomeMismatch || o == OutcomeOccupied
}
