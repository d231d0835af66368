// Package model defines shared data structures.
package model

import "time"

// Config defines play settings.
type Config struct {
	Layout          string
	Reward          int
	MismatchPenalty int
	TimePenalty     int
	PenaltyInterval int
	Sound           bool
	History         bool
	FocusWeak       bool
	WeakTop         int
	WeakWindow      int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Layout      string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// RoundStats captures a completed round.
type RoundStats struct {
	Layout        string
	StartedAt     time.Time
	EndedAt       time.Time
	ElapsedSec    int
	Score         int
	WrongAttempts int
	Placed        int
	TimePenalties int
}

// KeyStats stores per-key drop outcomes for a round. Wrong drops are
// attributed to the key that was dragged.
type KeyStats struct {
	Key     string
	Correct int
	Wrong   int
}

// KeyAggregate aggregates key stats across rounds.
type KeyAggregate struct {
	Key     string
	Correct int
	Wrong   int
}

// RoundAggregate summarizes a round for reporting.
type RoundAggregate struct {
	RoundID       int64
	Layout        string
	EndedAt       time.Time
	ElapsedSec    int
	Score         int
	WrongAttempts int
	Placed        int
}
