// Package dashboard assembles the admin dashboard from its two stats
// endpoints. The two fetches run concurrently and are joined conjunctively:
// if either fails, both are treated as failed and the view falls back to a
// fixed demo dataset so the dashboard is never empty. The fallback is a
// documented contract, not a cache.
package dashboard

import (
	"context"
	"sync"

	"github.com/searchcasa/scadmin/pkg/api"
)

// Stats is the slice of the admin API the dashboard needs.
type Stats interface {
	DashboardStats(ctx context.Context) (*api.DashboardStats, error)
	GrowthStats(ctx context.Context) (*api.GrowthStats, error)
}

// Growth is one category's derived growth figures. All fields default to 0
// when the server omits them.
type Growth struct {
	Current    float64
	Previous   float64
	Percentage float64
}

// GrowthSummary is the per-category growth breakdown.
type GrowthSummary struct {
	Users      Growth
	Properties Growth
	Matches    Growth
	Revenue    Growth
}

// PlatformShare is one payment platform's revenue contribution, including
// its percentage of the total computed client-side.
type PlatformShare struct {
	Platform     string
	Revenue      float64
	Transactions int
	Percentage   float64
}

// Data is the fully derived dashboard view state.
type Data struct {
	TotalUsers      int
	ActiveUsers     int
	TotalProperties int
	TotalMatches    int
	Growth          GrowthSummary
	RecentActivity  []api.Activity
	RevenueTotal    float64
	Platforms       []PlatformShare
}

// FallbackData is the demo dataset shown when the stats fetches fail. Each
// call returns a fresh copy so callers can never corrupt the contract. The
// headline values (132 users, zero current revenue, -100% revenue growth)
// are pinned by tests.
func FallbackData() Data {
	return Data{
		TotalUsers:      132,
		ActiveUsers:     87,
		TotalProperties: 245,
		TotalMatches:    58,
		Growth: GrowthSummary{
			Users:      Growth{Current: 132, Previous: 118, Percentage: 11.86},
			Properties: Growth{Current: 245, Previous: 231, Percentage: 6.06},
			Matches:    Growth{Current: 58, Previous: 64, Percentage: -9.38},
			Revenue:    Growth{Current: 0, Previous: 1240, Percentage: -100},
		},
		RecentActivity: []api.Activity{
			{ID: "demo-1", Type: "match", Message: "New match: 2-room apartment, Milan"},
			{ID: "demo-2", Type: "signup", Message: "New user registration"},
			{ID: "demo-3", Type: "listing", Message: "Property listed: Villa, Lake Como"},
		},
		RevenueTotal: 0,
		Platforms: []PlatformShare{
			{Platform: "stripe", Revenue: 0, Transactions: 0, Percentage: 0},
			{Platform: "paypal", Revenue: 0, Transactions: 0, Percentage: 0},
		},
	}
}

// growthPercentage derives the delta percentage, guarded for a zero
// previous period: no movement is 0, movement from nothing is 100.
func growthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}

func deriveGrowth(m api.GrowthMetric) Growth {
	return Growth{
		Current:    m.Current,
		Previous:   m.Previous,
		Percentage: growthPercentage(m.Current, m.Previous),
	}
}

// Derive builds the display state from the two raw responses. Platform
// percentages are guarded against a zero revenue total: every share is 0,
// never NaN.
func Derive(stats *api.DashboardStats, growth *api.GrowthStats) Data {
	platforms := make([]PlatformShare, len(stats.Revenue.Platforms))
	for i, p := range stats.Revenue.Platforms {
		share := PlatformShare{
			Platform:     p.Platform,
			Revenue:      p.Revenue,
			Transactions: p.Transactions,
		}
		if stats.Revenue.Total != 0 {
			share.Percentage = p.Revenue / stats.Revenue.Total * 100
		}
		platforms[i] = share
	}

	activity := stats.RecentActivity
	if activity == nil {
		activity = []api.Activity{}
	}

	return Data{
		TotalUsers:      stats.TotalUsers,
		ActiveUsers:     stats.ActiveUsers,
		TotalProperties: stats.TotalProperties,
		TotalMatches:    stats.TotalMatches,
		Growth: GrowthSummary{
			Users:      deriveGrowth(growth.Users),
			Properties: deriveGrowth(growth.Properties),
			Matches:    deriveGrowth(growth.Matches),
			Revenue:    deriveGrowth(growth.Revenue),
		},
		RecentActivity: activity,
		RevenueTotal:   stats.Revenue.Total,
		Platforms:      platforms,
	}
}

// Loader owns the dashboard view state. Load may be called again to
// refresh; a closed loader discards the result of any load still in flight.
type Loader struct {
	svc Stats

	mu     sync.Mutex
	alive  bool
	loaded bool
	data   Data
	errMsg string
}

// NewLoader creates a loader around the stats service.
func NewLoader(svc Stats) *Loader {
	return &Loader{svc: svc, alive: true}
}

// Load issues both stats fetches concurrently and joins them. There is no
// ordering guarantee between the two completions, only that both finish
// before the derived state is computed. Either failing fails the join.
func (l *Loader) Load(ctx context.Context) {
	var (
		wg        sync.WaitGroup
		stats     *api.DashboardStats
		growth    *api.GrowthStats
		statsErr  error
		growthErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		stats, statsErr = l.svc.DashboardStats(ctx)
	}()
	go func() {
		defer wg.Done()
		growth, growthErr = l.svc.GrowthStats(ctx)
	}()
	wg.Wait()

	var (
		data   Data
		errMsg string
	)
	if statsErr != nil || growthErr != nil {
		data = FallbackData()
		if statsErr != nil {
			errMsg = statsErr.Error()
		} else {
			errMsg = growthErr.Error()
		}
	} else {
		data = Derive(stats, growth)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.alive {
		return
	}
	l.data = data
	l.errMsg = errMsg
	l.loaded = true
}

// State returns the current view state, the surfaced error message if the
// last load fell back, and whether any load has completed.
func (l *Loader) State() (Data, string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data, l.errMsg, l.loaded
}

// Close tears the loader down; results of in-flight loads are discarded.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.alive = false
}
