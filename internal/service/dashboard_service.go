package service

import (
	"context"
	"time"

	"github.com/hashimpk07/FMPortal-sub002/internal/domain"
	"github.com/hashimpk07/FMPortal-sub002/internal/gateway"
	"github.com/hashimpk07/FMPortal-sub002/internal/mapper"
	"github.com/hashimpk07/FMPortal-sub002/internal/store"
	"go.uber.org/zap"
)

// DashboardFetcher is the gateway surface the aggregation needs.
type DashboardFetcher interface {
	FetchDashboard(ctx context.Context, filter domain.DashboardFilterState) (*gateway.DashboardPayload, error)
}

// DashboardService orchestrates one aggregation pass: read the filter,
// fetch the consolidated payload in a single round trip, derive every
// view-model and write them back into the store as one batch. The service
// itself is stateless.
type DashboardService struct {
	fetcher DashboardFetcher
	store   *store.Store
	logger  *zap.Logger
	now     func() time.Time
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(fetcher DashboardFetcher, st *store.Store, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		fetcher: fetcher,
		store:   st,
		logger:  logger,
		now:     time.Now,
	}
}

// Refresh runs one aggregation pass. When no centre has been selected yet
// it is a no-op: no loading flags are touched and no fetch occurs. Fetch
// and transform failures are logged and swallowed here; loading flags are
// always cleared and prior derived state is left untouched, so a failed
// refresh keeps showing stale data instead of clearing the dashboard.
func (s *DashboardService) Refresh(ctx context.Context) {
	filter := s.store.FilterState()
	if !filter.Centre.IsSet() {
		s.logger.Debug("dashboard refresh skipped, no centre selected")
		return
	}

	gen := s.store.BeginRefresh()
	s.setLoading(true)
	defer s.setLoading(false)

	payload, err := s.fetcher.FetchDashboard(ctx, filter)
	if err != nil {
		s.logger.Error("failed to refresh dashboard",
			zap.Error(err),
			zap.Uint64("generation", gen),
		)
		s.store.FailRefresh(gen)
		return
	}

	result := s.buildResult(payload)
	if !s.store.CommitRefresh(gen, result) {
		s.logger.Debug("discarded stale dashboard refresh",
			zap.Uint64("generation", gen),
		)
	}
}

// buildResult derives every view-model from the raw payload.
func (s *DashboardService) buildResult(payload *gateway.DashboardPayload) store.RefreshResult {
	today := s.now()
	yesterday := today.AddDate(0, 0, -1)

	return store.RefreshResult{
		CasesCreated:                   mapper.ToMetricSeries(payload.Metrics.CasesCreated),
		CasesClosed:                    mapper.ToMetricSeries(payload.Metrics.CasesClosed),
		WorkOrdersCreated:              mapper.ToMetricSeries(payload.Metrics.WorkOrdersCreated),
		WorkOrdersClosed:               mapper.ToMetricSeries(payload.Metrics.WorkOrdersClosed),
		AverageCaseCompletionTime:      mapper.ToDurationSeries(payload.Metrics.AverageCaseCompletionTime),
		AverageWorkOrderCompletionTime: mapper.ToDurationSeries(payload.Metrics.AverageWorkOrderCompletionTime),
		StatusBreakdown:                mapper.ToStatusBreakdown(payload.Charts.OpenWorkOrdersByStatus),
		PriorityBreakdown:              mapper.ToPriorityBreakdown(payload.Charts.OpenWorkOrdersByPriority),
		DueToday:                       mapper.ToWorkOrderList("workOrdersDueToday", today, payload.Lists.WorkOrdersDueToday),
		CompletedYesterday:             mapper.ToWorkOrderList("workOrdersCompletedYesterday", yesterday, payload.Lists.WorkOrdersCompletedYesterday),
	}
}

func (s *DashboardService) setLoading(v bool) {
	s.store.SetChartsLoading(v)
	s.store.SetPriorityWorkOrdersLoading(v)
	s.store.SetStatusWorkOrdersLoading(v)
	s.store.SetWorkOrderListsLoading(v)
}
