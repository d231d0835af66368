package stats

import (
	"sort"

	"github.com/verte-zerg/tusavi/internal/model"
)

// SelectWeakKeys selects the lowest-accuracy keys that were misplaced at
// least once. A non-positive top keeps every such key.
func SelectWeakKeys(aggs []model.KeyAggregate, top int) map[string]struct{} {
	weakSet := map[string]struct{}{}
	candidates := make([]model.KeyAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Wrong > 0 {
			candidates = append(candidates, agg)
		}
	}
	if len(candidates) == 0 {
		return weakSet
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai := KeyAccuracy(candidates[i])
		aj := KeyAccuracy(candidates[j])
		if ai == aj {
			return candidates[i].Key < candidates[j].Key
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for _, agg := range candidates[:top] {
		weakSet[agg.Key] = struct{}{}
	}
	return weakSet
}
