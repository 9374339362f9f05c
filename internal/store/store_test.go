package store_test

import (
	"testing"
	"time"

	"github.com/hashimpk07/FMPortal-sub002/internal/domain"
	"github.com/hashimpk07/FMPortal-sub002/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreHasWellFormedDerivedState(t *testing.T) {
	s := store.New()
	snap := s.Snapshot()

	assert.False(t, snap.Centre.IsSet())
	assert.Nil(t, snap.StartDate)
	assert.Nil(t, snap.EndDate)
	assert.False(t, snap.IsError)

	require.NotNil(t, snap.Result.DueToday.Entries)
	assert.Equal(t, "workOrdersDueToday", snap.Result.DueToday.Name)
	assert.Empty(t, snap.Result.DueToday.Entries)
	assert.Equal(t, "workOrdersCompletedYesterday", snap.Result.CompletedYesterday.Name)
	assert.NotNil(t, snap.Result.StatusBreakdown)
	assert.NotNil(t, snap.Result.PriorityBreakdown)
}

func TestFilterStateReflectsSetters(t *testing.T) {
	s := store.New()
	start := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC)

	s.SetCentreSelection(domain.SpecificCentre(42))
	s.SetDateRange(&start, &end)

	filter := s.FilterState()
	id, ok := filter.Centre.CentreID()
	assert.True(t, ok)
	assert.Equal(t, 42, id)
	require.NotNil(t, filter.Range.Start)
	assert.True(t, filter.Range.Start.Equal(start))
	assert.True(t, filter.Range.End.Equal(end))
}

func TestCommitRefreshWritesBatch(t *testing.T) {
	s := store.New()
	s.SetError(true)

	gen := s.BeginRefresh()
	ok := s.CommitRefresh(gen, store.RefreshResult{
		CasesCreated: domain.MetricSeries{Total: 12, PercentageChange: "+50%"},
	})

	assert.True(t, ok)
	snap := s.Snapshot()
	assert.Equal(t, 12.0, snap.Result.CasesCreated.Total)
	// A successful commit clears the error flag
	assert.False(t, snap.IsError)
}

func TestStaleCommitIsDiscarded(t *testing.T) {
	s := store.New()

	older := s.BeginRefresh()
	newer := s.BeginRefresh()

	ok := s.CommitRefresh(newer, store.RefreshResult{
		CasesCreated: domain.MetricSeries{Total: 7},
	})
	assert.True(t, ok)

	// The older pass finishes late; its result must not overwrite
	ok = s.CommitRefresh(older, store.RefreshResult{
		CasesCreated: domain.MetricSeries{Total: 99},
	})
	assert.False(t, ok)
	assert.Equal(t, 7.0, s.Snapshot().Result.CasesCreated.Total)
}

func TestFailRefreshKeepsPriorData(t *testing.T) {
	s := store.New()

	gen := s.BeginRefresh()
	s.CommitRefresh(gen, store.RefreshResult{
		CasesCreated: domain.MetricSeries{Total: 5},
	})

	gen = s.BeginRefresh()
	ok := s.FailRefresh(gen)

	assert.True(t, ok)
	snap := s.Snapshot()
	assert.True(t, snap.IsError)
	assert.Equal(t, 5.0, snap.Result.CasesCreated.Total)
}

func TestStaleFailIsDiscarded(t *testing.T) {
	s := store.New()

	older := s.BeginRefresh()
	newer := s.BeginRefresh()
	s.CommitRefresh(newer, store.RefreshResult{})

	assert.False(t, s.FailRefresh(older))
	assert.False(t, s.Snapshot().IsError)
}

func TestResetPreservesFilters(t *testing.T) {
	s := store.New()
	start := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	s.SetCentreSelection(domain.SpecificCentre(7))
	s.SetDateRange(&start, nil)
	s.SetError(true)
	s.SetCentres([]domain.Centre{{ID: 1, Name: "Northgate"}})

	gen := s.BeginRefresh()
	s.CommitRefresh(gen, store.RefreshResult{
		CasesCreated: domain.MetricSeries{Total: 3},
	})

	s.Reset()

	snap := s.Snapshot()
	id, ok := snap.Centre.CentreID()
	assert.True(t, ok)
	assert.Equal(t, 7, id)
	require.NotNil(t, snap.StartDate)

	assert.False(t, snap.IsError)
	assert.Empty(t, snap.Centres)
	assert.Equal(t, 0.0, snap.Result.CasesCreated.Total)
	assert.Equal(t, "workOrdersDueToday", snap.Result.DueToday.Name)
}

func TestCentreIDZeroMeansAllCentres(t *testing.T) {
	selection := domain.SpecificCentre(0)
	assert.Equal(t, domain.CentreAll, selection.Kind())
	assert.True(t, selection.IsSet())
	_, ok := selection.CentreID()
	assert.False(t, ok)
}

func TestSnapshotCopiesAreIndependent(t *testing.T) {
	s := store.New()
	s.SetCentres([]domain.Centre{{ID: 1, Name: "Northgate"}})

	snap := s.Snapshot()
	snap.Centres[0].Name = "mutated"

	assert.Equal(t, "Northgate", s.Centres()[0].Name)
}
