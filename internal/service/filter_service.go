package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashimpk07/FMPortal-sub002/internal/config"
	"github.com/hashimpk07/FMPortal-sub002/internal/daterange"
	"github.com/hashimpk07/FMPortal-sub002/internal/domain"
	"github.com/hashimpk07/FMPortal-sub002/internal/store"
	"go.uber.org/zap"
)

// dateLayouts accepted for filter updates, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// FilterService binds the date-range selector to the store and drives the
// aggregation: selector callbacks record the normalized range, and every
// accepted filter change triggers a dashboard refresh. One update runs at a
// time so the selector's callback accounting stays consistent.
type FilterService struct {
	mu        sync.Mutex
	selector  *daterange.Selector
	store     *store.Store
	dashboard *DashboardService
	logger    *zap.Logger
	accepted  bool
}

// NewFilterService wires a selector per the dashboard configuration. The
// selector auto-initializes to the last seven days, which lands in the
// store immediately; the first refresh still waits for a centre selection.
func NewFilterService(cfg *config.DashboardConfig, st *store.Store, dashboard *DashboardService, logger *zap.Logger) *FilterService {
	f := &FilterService{
		store:     st,
		dashboard: dashboard,
		logger:    logger,
	}
	f.selector = daterange.New(daterange.Config{
		MaxPastMonths:             cfg.MaxPastMonths,
		DisableMinDateRestriction: cfg.DisableMinDateRestriction,
		DisableResetOnClear:       !cfg.ResetToLastSevenDaysOnClear,
	}, f.onDateRangeChange, f.onAccept)
	return f
}

func (f *FilterService) onDateRangeChange(start, end *time.Time) {
	f.store.SetDateRange(start, end)
}

func (f *FilterService) onAccept() {
	f.accepted = true
}

// Update applies a filter change. Centre changes and accepted date-range
// changes trigger a refresh; a request that changes nothing refreshes
// nothing.
func (f *FilterService) Update(ctx context.Context, req *domain.UpdateFiltersRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	refresh := false
	if req.CentreID != nil {
		selection := domain.SpecificCentre(*req.CentreID)
		if !selection.Equal(f.store.FilterState().Centre) {
			refresh = true
		}
		f.store.SetCentreSelection(selection)
	}

	f.accepted = false
	switch {
	case req.Clear:
		f.selector.Clear()

	case req.Shortcut != nil:
		shortcut, ok := daterange.ParseShortcut(*req.Shortcut)
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidShortcut, *req.Shortcut)
		}
		f.selector.ApplyShortcut(shortcut)

	case req.StartDate != nil && req.EndDate != nil:
		start, err := parseDate(*req.StartDate)
		if err != nil {
			return err
		}
		end, err := parseDate(*req.EndDate)
		if err != nil {
			return err
		}
		f.selector.SetRange(&start, &end)

	case req.StartDate != nil:
		start, err := parseDate(*req.StartDate)
		if err != nil {
			return err
		}
		f.selector.SetStart(&start)
		f.selector.Accept()

	case req.EndDate != nil:
		end, err := parseDate(*req.EndDate)
		if err != nil {
			return err
		}
		f.selector.SetEnd(&end)
		f.selector.Accept()
	}
	if f.accepted {
		refresh = true
	}

	if refresh {
		f.dashboard.Refresh(ctx)
	}
	return nil
}

// Bounds reports the selectable window and the available shortcuts.
func (f *FilterService) Bounds() domain.FilterBoundsDTO {
	f.mu.Lock()
	defer f.mu.Unlock()

	bounds := domain.FilterBoundsDTO{
		MaxDate: f.selector.MaxDate().Format(time.RFC3339),
		Shortcuts: []string{
			string(daterange.ShortcutToday),
			string(daterange.ShortcutYesterday),
			string(daterange.ShortcutLast7Days),
			string(daterange.ShortcutLast30Days),
			string(daterange.ShortcutThisMonth),
			string(daterange.ShortcutLastMonth),
			string(daterange.ShortcutLast3Months),
			string(daterange.ShortcutLast6Months),
		},
	}
	if min := f.selector.MinDate(); min != nil {
		v := min.Format(time.RFC3339)
		bounds.MinDate = &v
	}
	return bounds
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}
