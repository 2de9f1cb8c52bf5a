// Package history maintains the console's view of past scans: one page of
// type-filterable history plus the aggregate statistics snapshot. Every
// fetch replaces its slice of state wholesale; there is no merge or patch,
// so the last response to arrive wins.
package history

import (
	"context"
	"fmt"
	"sync"

	"github.com/finshield/console/internal/gateway"
	"github.com/finshield/console/internal/logging"
	"github.com/finshield/console/internal/model"
)

// PerPage is the fixed history page size.
const PerPage = 15

// FilterAll selects every scan type.
const FilterAll = "all"

// Store holds the history page and statistics snapshot. Safe for
// concurrent use; overlapping fetches each fully replace their own slice
// of state on resolution.
type Store struct {
	mu     sync.RWMutex
	gw     *gateway.Gateway
	logger logging.Logger

	scans  []model.ScanRecord
	meta   model.HistoryPage
	page   int
	filter string

	stats         *model.StatsSnapshot
	statsResolved bool
}

// NewStore creates a Store with the "all" filter on page 1 and no data
// loaded.
func NewStore(gw *gateway.Gateway, logger logging.Logger) *Store {
	return &Store{
		gw:     gw,
		logger: logger.With(logging.Field{Key: "component", Value: "history"}),
		page:   1,
		filter: FilterAll,
	}
}

// successProbe mirrors the service's optional "success" flag: absent means
// success, explicit false means failure even on a 2xx response.
type successProbe struct {
	Success *bool `json:"success"`
}

func (p successProbe) failed() bool { return p.Success != nil && !*p.Success }

// FetchStats requests the aggregate snapshot and replaces the held one.
// On any failure the canonical all-zero snapshot is substituted; the
// presentation layer never observes absent statistics once this returns.
func (s *Store) FetchStats(ctx context.Context) {
	env := s.gw.Get(ctx, "/history/stats")

	snapshot := model.DefaultStats()
	if env.Success {
		var probe successProbe
		var decoded model.StatsSnapshot
		if err := env.Decode(&probe); err == nil && !probe.failed() {
			if err := env.Decode(&decoded); err == nil {
				if decoded.ScansByType == nil {
					decoded.ScansByType = map[string]int{}
				}
				if decoded.RecentTrend == nil {
					decoded.RecentTrend = []model.TrendPoint{}
				}
				snapshot = &decoded
			}
		}
	} else {
		s.logger.Warn("stats fetch failed", logging.Field{Key: "message", Value: env.Message})
	}

	s.mu.Lock()
	s.stats = snapshot
	s.statsResolved = true
	s.mu.Unlock()
}

// FetchHistory requests one page of scans, optionally constrained to one
// scan type, and replaces the held page. On failure the list becomes
// empty rather than stale.
func (s *Store) FetchHistory(ctx context.Context, page int, filterType string) {
	if page < 1 {
		page = 1
	}
	if filterType == "" {
		filterType = FilterAll
	}

	path := fmt.Sprintf("/history/?page=%d&per_page=%d", page, PerPage)
	if filterType != FilterAll {
		path += "&scan_type=" + filterType
	}

	env := s.gw.Get(ctx, path)

	var scans []model.ScanRecord
	var meta model.HistoryPage
	if env.Success {
		var probe successProbe
		if err := env.Decode(&probe); err == nil && !probe.failed() {
			if err := env.Decode(&meta); err == nil {
				scans = meta.Scans
			}
		}
	} else {
		s.logger.Warn("history fetch failed", logging.Field{Key: "message", Value: env.Message})
	}
	if scans == nil {
		scans = []model.ScanRecord{}
	}
	// The server clamps out-of-range pages; trust its reported page.
	if meta.Page > 0 {
		page = meta.Page
	}

	s.mu.Lock()
	s.scans = scans
	s.meta = meta
	s.page = page
	s.filter = filterType
	s.mu.Unlock()
}

// SetFilter changes the active type filter and re-fetches page 1;
// pagination state never persists across filter changes.
func (s *Store) SetFilter(ctx context.Context, filterType string) {
	s.FetchHistory(ctx, 1, filterType)
}

// Refresh re-fetches the snapshot and page 1 of the current filter; the
// manual refresh action.
func (s *Store) Refresh(ctx context.Context) {
	s.FetchStats(ctx)
	s.FetchHistory(ctx, 1, s.Filter())
}

// RefreshAfterScan is the downstream refresh a completed scan triggers:
// the filter resets to "all" and both the snapshot and the first history
// page are re-fetched, so the overview reflects the new scan immediately.
func (s *Store) RefreshAfterScan(ctx context.Context) {
	s.FetchStats(ctx)
	s.FetchHistory(ctx, 1, FilterAll)
}

// Reset drops everything the store holds and returns it to the initial
// "all" filter on page 1. Runs as part of the logout full reset so no
// scan data from the previous session survives into the next one.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans = nil
	s.meta = model.HistoryPage{}
	s.page = 1
	s.filter = FilterAll
	s.stats = nil
	s.statsResolved = false
}

// Scans returns the current page's records.
func (s *Store) Scans() []model.ScanRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scans
}

// Meta returns the pagination metadata from the last successful fetch.
func (s *Store) Meta() model.HistoryPage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta
}

// Stats returns the current snapshot, or nil before the first resolution
// (the initial unresolved state renders as a skeleton).
func (s *Store) Stats() *model.StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Page returns the current page number.
func (s *Store) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// Filter returns the active scan-type filter.
func (s *Store) Filter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}
