// Package store holds the canonical, observable dashboard state: the active
// filter, per-category loading flags and the derived view-models. The store
// is a dumb container; every setter is a pure assignment and all derivation
// happens in the service layer.
package store

import (
	"sync"
	"time"

	"github.com/hashimpk07/FMPortal-sub002/internal/domain"
)

// LoadingFlags carries the per-category loading state.
type LoadingFlags struct {
	Charts             bool
	PriorityWorkOrders bool
	StatusWorkOrders   bool
	WorkOrderLists     bool
	Centres            bool
}

// RefreshResult is one logical batch of derived view-models written back by
// a successful aggregation pass.
type RefreshResult struct {
	CasesCreated                   domain.MetricSeries
	CasesClosed                    domain.MetricSeries
	WorkOrdersCreated              domain.MetricSeries
	WorkOrdersClosed               domain.MetricSeries
	AverageCaseCompletionTime      domain.DurationSeries
	AverageWorkOrderCompletionTime domain.DurationSeries
	StatusBreakdown                []domain.BreakdownSlice
	PriorityBreakdown              []domain.BreakdownSlice
	DueToday                       domain.WorkOrderList
	CompletedYesterday             domain.WorkOrderList
}

// Snapshot is a point-in-time copy of the full store state.
type Snapshot struct {
	Centre             domain.CentreSelection
	StartDate          *time.Time
	EndDate            *time.Time
	Loading            LoadingFlags
	IsError            bool
	Result             RefreshResult
	Centres            []domain.Centre
}

// Store is the session-lifetime dashboard state container. It is created per
// session (and per test) rather than living as a package-level singleton.
// Handlers and the refresh job touch it concurrently, so reads and writes go
// through an internal RWMutex; each setter still replaces exactly one field.
type Store struct {
	mu sync.RWMutex

	centre    domain.CentreSelection
	startDate *time.Time
	endDate   *time.Time

	generation uint64

	loading LoadingFlags
	isError bool

	result  RefreshResult
	centres []domain.Centre
}

// New creates an empty store with well-formed derived state: work-order
// lists start as empty named lists so consumers never see nil.
func New() *Store {
	s := &Store{}
	s.resetDerivedLocked()
	return s
}

// SetCentreSelection records the centre filter.
func (s *Store) SetCentreSelection(c domain.CentreSelection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.centre = c
}

// SetDateRange records both date boundaries.
func (s *Store) SetDateRange(start, end *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startDate = copyTime(start)
	s.endDate = copyTime(end)
}

// FilterState returns the aggregate filter the next fetch must use.
func (s *Store) FilterState() domain.DashboardFilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.DashboardFilterState{
		Centre: s.centre,
		Range: domain.DateRange{
			Start: copyTime(s.startDate),
			End:   copyTime(s.endDate),
		},
	}
}

// SetChartsLoading flags the KPI chart category as loading.
func (s *Store) SetChartsLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading.Charts = v
}

// SetPriorityWorkOrdersLoading flags the priority breakdown as loading.
func (s *Store) SetPriorityWorkOrdersLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading.PriorityWorkOrders = v
}

// SetStatusWorkOrdersLoading flags the status breakdown as loading.
func (s *Store) SetStatusWorkOrdersLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading.StatusWorkOrders = v
}

// SetWorkOrderListsLoading flags the due/completed lists as loading.
func (s *Store) SetWorkOrderListsLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading.WorkOrderLists = v
}

// SetCentresLoading flags the centre list as loading.
func (s *Store) SetCentresLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading.Centres = v
}

// SetError records whether the last refresh failed.
func (s *Store) SetError(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isError = v
}

// SetCentres records the fetched centre list.
func (s *Store) SetCentres(centres []domain.Centre) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.centres = centres
}

// Centres returns the cached centre list.
func (s *Store) Centres() []domain.Centre {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Centre, len(s.centres))
	copy(out, s.centres)
	return out
}

// BeginRefresh advances and returns the refresh generation. A later
// CommitRefresh carrying an older generation is discarded, so overlapping
// refreshes cannot overwrite newer state with stale results.
func (s *Store) BeginRefresh() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// CommitRefresh writes one batch of derived view-models, provided gen is
// still the current generation. Returns false when the result was stale and
// dropped.
func (s *Store) CommitRefresh(gen uint64, result RefreshResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.result = result
	s.isError = false
	return true
}

// FailRefresh flags the error state for a failed refresh, provided gen is
// still current. Derived state is left untouched either way, so a failed
// refresh keeps showing the previous (stale but consistent) data.
func (s *Store) FailRefresh(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.isError = true
	return true
}

// Reset restores derived and loading state to initial values. The active
// filter (centre selection and date range) is deliberately preserved so a
// reset does not change what the user was filtering on.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetDerivedLocked()
}

func (s *Store) resetDerivedLocked() {
	s.loading = LoadingFlags{}
	s.isError = false
	s.centres = nil
	s.result = RefreshResult{
		StatusBreakdown:    []domain.BreakdownSlice{},
		PriorityBreakdown:  []domain.BreakdownSlice{},
		DueToday:           emptyList("workOrdersDueToday"),
		CompletedYesterday: emptyList("workOrdersCompletedYesterday"),
	}
}

// Snapshot returns a consistent copy of the full store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Centre:    s.centre,
		StartDate: copyTime(s.startDate),
		EndDate:   copyTime(s.endDate),
		Loading:   s.loading,
		IsError:   s.isError,
		Result:    s.result,
	}
	snap.Centres = make([]domain.Centre, len(s.centres))
	copy(snap.Centres, s.centres)
	return snap
}

func emptyList(name string) domain.WorkOrderList {
	return domain.WorkOrderList{Name: name, Entries: []domain.WorkOrderListEntry{}}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
