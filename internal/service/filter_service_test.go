package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/hashimpk07/FMPortal-sub002/internal/config"
	"github.com/hashimpk07/FMPortal-sub002/internal/domain"
	"github.com/hashimpk07/FMPortal-sub002/internal/service"
	"github.com/hashimpk07/FMPortal-sub002/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

// isoDaysAgo renders a date n days back, inside the selectable window.
func isoDaysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format("2006-01-02")
}

func newFilterFixture(t *testing.T) (*service.FilterService, *store.Store, *fakeFetcher) {
	t.Helper()
	st := store.New()
	fetcher := &fakeFetcher{payload: samplePayload()}
	dashboard := service.NewDashboardService(fetcher, st, zap.NewNop())
	filters := service.NewFilterService(&config.DashboardConfig{
		MaxPastMonths:               6,
		ResetToLastSevenDaysOnClear: true,
	}, st, dashboard, zap.NewNop())
	return filters, st, fetcher
}

func TestFilterServiceInitializesDateRange(t *testing.T) {
	_, st, fetcher := newFilterFixture(t)

	// Selector auto-init lands the last-7-days range in the store
	filter := st.FilterState()
	require.NotNil(t, filter.Range.Start)
	require.NotNil(t, filter.Range.End)
	assert.True(t, filter.Range.Start.Before(*filter.Range.End))

	// No centre yet, so nothing is fetched
	assert.Equal(t, 0, fetcher.calls)
}

func TestUpdateCentreTriggersRefresh(t *testing.T) {
	filters, st, fetcher := newFilterFixture(t)

	err := filters.Update(context.Background(), &domain.UpdateFiltersRequest{
		CentreID: intPtr(5),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
	id, ok := st.FilterState().Centre.CentreID()
	assert.True(t, ok)
	assert.Equal(t, 5, id)
}

func TestUpdateSameCentreDoesNotRefresh(t *testing.T) {
	filters, _, fetcher := newFilterFixture(t)

	require.NoError(t, filters.Update(context.Background(), &domain.UpdateFiltersRequest{CentreID: intPtr(5)}))
	require.NoError(t, filters.Update(context.Background(), &domain.UpdateFiltersRequest{CentreID: intPtr(5)}))

	assert.Equal(t, 1, fetcher.calls)
}

func TestUpdateCentreZeroSelectsAllCentres(t *testing.T) {
	filters, st, fetcher := newFilterFixture(t)

	require.NoError(t, filters.Update(context.Background(), &domain.UpdateFiltersRequest{CentreID: intPtr(0)}))

	filter := st.FilterState()
	assert.Equal(t, domain.CentreAll, filter.Centre.Kind())
	assert.Equal(t, 1, fetcher.calls)
	_, hasID := fetcher.lastState.Centre.CentreID()
	assert.False(t, hasID)
}

func TestUpdateFullRangeTriggersRefresh(t *testing.T) {
	filters, st, fetcher := newFilterFixture(t)
	require.NoError(t, filters.Update(context.Background(), &domain.UpdateFiltersRequest{CentreID: intPtr(1)}))
	fetcher.calls = 0

	err := filters.Update(context.Background(), &domain.UpdateFiltersRequest{
		StartDate: strPtr(isoDaysAgo(10)),
		EndDate:   strPtr(isoDaysAgo(2)),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)

	filter := st.FilterState()
	require.NotNil(t, filter.Range.Start)
	assert.Equal(t, 0, filter.Range.Start.Hour())
	assert.Equal(t, 23, filter.Range.End.Hour())
	assert.Equal(t, 59, filter.Range.End.Minute())
	assert.True(t, filter.Range.Start.Before(*filter.Range.End))
}

func TestUpdateFutureEndDateLeavesRangeIntact(t *testing.T) {
	filters, st, fetcher := newFilterFixture(t)
	require.NoError(t, filters.Update(context.Background(), &domain.UpdateFiltersRequest{CentreID: intPtr(1)}))
	fetcher.calls = 0
	before := st.FilterState()

	// Valid start paired with an end beyond the selectable window: the
	// pair is rejected whole, nothing leaks into the pending range
	err := filters.Update(context.Background(), &domain.UpdateFiltersRequest{
		StartDate: strPtr(isoDaysAgo(3)),
		EndDate:   strPtr(time.Now().AddDate(1, 0, 0).Format("2006-01-02")),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, fetcher.calls)

	after := st.FilterState()
	assert.True(t, after.Range.Equal(before.Range))
	require.NotNil(t, after.Range.Start)
	assert.False(t, after.Range.Start.After(*after.Range.End))
}

func TestUpdateShortcutTriggersRefresh(t *testing.T) {
	filters, st, fetcher := newFilterFixture(t)
	require.NoError(t, filters.Update(context.Background(), &domain.UpdateFiltersRequest{CentreID: intPtr(1)}))
	fetcher.calls = 0

	err := filters.Update(context.Background(), &domain.UpdateFiltersRequest{
		Shortcut: strPtr("yesterday"),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)

	filter := st.FilterState()
	require.NotNil(t, filter.Range.Start)
	assert.Equal(t, filter.Range.Start.Day(), filter.Range.End.Day())
}

func TestUpdateUnknownShortcutFails(t *testing.T) {
	filters, _, _ := newFilterFixture(t)

	err := filters.Update(context.Background(), &domain.UpdateFiltersRequest{
		Shortcut: strPtr("fortnight"),
	})

	assert.ErrorIs(t, err, service.ErrInvalidShortcut)
}

func TestUpdateMalformedDateFails(t *testing.T) {
	filters, _, _ := newFilterFixture(t)

	err := filters.Update(context.Background(), &domain.UpdateFiltersRequest{
		StartDate: strPtr("29-08-2026"),
		EndDate:   strPtr(isoDaysAgo(1)),
	})

	assert.ErrorIs(t, err, service.ErrInvalidDate)
}

func TestUpdateClearResetsRange(t *testing.T) {
	filters, st, fetcher := newFilterFixture(t)
	require.NoError(t, filters.Update(context.Background(), &domain.UpdateFiltersRequest{CentreID: intPtr(1)}))
	fetcher.calls = 0

	err := filters.Update(context.Background(), &domain.UpdateFiltersRequest{Clear: true})

	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
	// Clear policy restores the last-7-days range rather than emptying it
	filter := st.FilterState()
	require.NotNil(t, filter.Range.Start)
	require.NotNil(t, filter.Range.End)
}

func TestUpdateStartOnlyRefreshes(t *testing.T) {
	filters, _, fetcher := newFilterFixture(t)
	require.NoError(t, filters.Update(context.Background(), &domain.UpdateFiltersRequest{CentreID: intPtr(1)}))
	fetcher.calls = 0

	err := filters.Update(context.Background(), &domain.UpdateFiltersRequest{
		StartDate: strPtr(isoDaysAgo(3)),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
}

func TestBoundsReportsWindowAndShortcuts(t *testing.T) {
	filters, _, _ := newFilterFixture(t)

	bounds := filters.Bounds()

	require.NotNil(t, bounds.MinDate)
	assert.NotEmpty(t, bounds.MaxDate)
	assert.Contains(t, bounds.Shortcuts, "last7days")
	assert.Contains(t, bounds.Shortcuts, "last6Months")
	assert.Len(t, bounds.Shortcuts, 8)
}
