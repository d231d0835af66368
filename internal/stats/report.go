package stats

import (
	"context"

	"github.com/verte-zerg/tusavi/internal/model"
	"github.com/verte-zerg/tusavi/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Rounds         []model.RoundAggregate
	WindowRoundIDs []int64
	KeyAggsAll     []model.KeyAggregate
	KeyAggsWindow  []model.KeyAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	rounds, err := st.ListRounds(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(rounds) > cfg.Last {
		rounds = rounds[len(rounds)-cfg.Last:]
	}

	windowIDs := lastRoundIDs(rounds, cfg.CurveWindow)
	keyAggsAll, err := st.ListKeyAggregatesForRounds(ctx, roundIDs(rounds))
	if err != nil {
		return Report{}, err
	}
	keyAggsWindow, err := st.ListKeyAggregatesForRounds(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Rounds:         rounds,
		WindowRoundIDs: windowIDs,
		KeyAggsAll:     keyAggsAll,
		KeyAggsWindow:  keyAggsWindow,
	}, nil
}

func roundIDs(rounds []model.RoundAggregate) []int64 {
	ids := make([]int64, len(rounds))
	for i, r := range rounds {
		ids[i] = r.RoundID
	}
	return ids
}

func lastRoundIDs(rounds []model.RoundAggregate, window int) []int64 {
	if window <= 0 || len(rounds) <= window {
		return roundIDs(rounds)
	}
	return roundIDs(rounds[len(rounds)-window:])
}
