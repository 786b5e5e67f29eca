package service

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/xolan/worktimer/internal/stats"
	"github.com/xolan/worktimer/internal/timeutil"
)

// memoKey identifies one aggregation: a month and the versions of the three
// inputs it was computed from. Any change to an input produces a new key,
// so entries never need explicit invalidation.
type memoKey struct {
	month    string
	versions Versions
}

// aggregateMemo caches AggregateMonth results. Stale keys are unreachable
// and age out through the size bound.
type aggregateMemo struct {
	cache  *otter.Cache[memoKey, stats.DashboardStats]
	logger *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

func newAggregateMemo(logger *slog.Logger) *aggregateMemo {
	return &aggregateMemo{
		cache: otter.Must(&otter.Options[memoKey, stats.DashboardStats]{
			MaximumSize:     256,
			InitialCapacity: 16,
		}),
		logger: logger,
	}
}

// get returns the cached result for (month, v) or computes and stores it.
// Callers receive their own copy; the cached value is never handed out.
func (m *aggregateMemo) get(month time.Time, v Versions, compute func() stats.DashboardStats) stats.DashboardStats {
	key := memoKey{month: timeutil.MonthKey(month), versions: v}

	if cached, ok := m.cache.GetIfPresent(key); ok {
		m.hits.Add(1)
		m.logger.Debug("aggregation cache hit", "month", key.month)
		return cached.Clone()
	}

	m.misses.Add(1)
	result := compute()
	m.cache.Set(key, result)
	m.logger.Debug("aggregation cache miss", "month", key.month,
		"entries_version", v.Entries,
		"overrides_version", v.Overrides,
		"settings_version", v.Settings)
	return result.Clone()
}
