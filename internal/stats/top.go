package stats

import (
	"sort"

	"github.com/verte-zerg/tusavi/internal/model"
)

// TopKeysByMisses returns up to n keys with the most wrong drops. Keys that
// were never misplaced are left out.
func TopKeysByMisses(aggs []model.KeyAggregate, n int) []model.KeyAggregate {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := make([]model.KeyAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Wrong > 0 {
			items = append(items, agg)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Wrong == items[j].Wrong {
			return items[i].Key < items[j].Key
		}
		return items[i].Wrong > items[j].Wrong
	})
	if n < len(items) {
		items = items[:n]
	}
	return items
}
