package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hashimpk07/FMPortal-sub002/internal/domain"
	"github.com/hashimpk07/FMPortal-sub002/internal/service"
	"github.com/hashimpk07/FMPortal-sub002/internal/store"
	"go.uber.org/zap"
)

// DashboardHandler serves the aggregated dashboard state and accepts
// filter changes.
type DashboardHandler struct {
	store            *store.Store
	dashboardService *service.DashboardService
	filterService    *service.FilterService
	logger           *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler instance
func NewDashboardHandler(st *store.Store, dashboard *service.DashboardService, filters *service.FilterService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		store:            st,
		dashboardService: dashboard,
		filterService:    filters,
		logger:           logger,
	}
}

// GetDashboard returns the current dashboard snapshot
// @Summary Get dashboard snapshot
// @Description Returns the active filter, loading flags and every derived dashboard view-model
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.DashboardSnapshotDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	respondJSON(w, http.StatusOK, toSnapshotDTO(snap))
}

// UpdateFilters applies a centre or date-range change
// @Summary Update dashboard filters
// @Description Changes the centre selection and/or the date range; an accepted change triggers a refresh
// @Tags dashboard
// @Accept json
// @Produce json
// @Param request body domain.UpdateFiltersRequest true "Filter update"
// @Success 200 {object} domain.DashboardSnapshotDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /dashboard/filters [put]
func (h *DashboardHandler) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateFiltersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := h.filterService.Update(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidShortcut), errors.Is(err, service.ErrInvalidDate):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to update dashboard filters", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to update filters")
		}
		return
	}

	respondJSON(w, http.StatusOK, toSnapshotDTO(h.store.Snapshot()))
}

// RefreshDashboard forces an aggregation pass with the current filter
// @Summary Refresh dashboard
// @Description Re-fetches and re-derives the dashboard with the active filter
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.DashboardSnapshotDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /dashboard/refresh [post]
func (h *DashboardHandler) RefreshDashboard(w http.ResponseWriter, r *http.Request) {
	h.dashboardService.Refresh(r.Context())
	respondJSON(w, http.StatusOK, toSnapshotDTO(h.store.Snapshot()))
}

// GetFilterBounds reports the selectable date window and shortcut presets
// @Summary Get filter bounds
// @Description Returns the minimum and maximum selectable dates and the available shortcuts
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.FilterBoundsDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /dashboard/filters/bounds [get]
func (h *DashboardHandler) GetFilterBounds(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.filterService.Bounds())
}

func toSnapshotDTO(snap store.Snapshot) domain.DashboardSnapshotDTO {
	dto := domain.DashboardSnapshotDTO{
		Loading: domain.LoadingFlagsDTO{
			Charts:             snap.Loading.Charts,
			PriorityWorkOrders: snap.Loading.PriorityWorkOrders,
			StatusWorkOrders:   snap.Loading.StatusWorkOrders,
			WorkOrderLists:     snap.Loading.WorkOrderLists,
			Centres:            snap.Loading.Centres,
		},
		IsError: snap.IsError,
		Metrics: domain.DashboardMetricsDTO{
			CasesCreated:                   snap.Result.CasesCreated,
			CasesClosed:                    snap.Result.CasesClosed,
			WorkOrdersCreated:              snap.Result.WorkOrdersCreated,
			WorkOrdersClosed:               snap.Result.WorkOrdersClosed,
			AverageCaseCompletionTime:      snap.Result.AverageCaseCompletionTime,
			AverageWorkOrderCompletionTime: snap.Result.AverageWorkOrderCompletionTime,
		},
		StatusBreakdown:   snap.Result.StatusBreakdown,
		PriorityBreakdown: snap.Result.PriorityBreakdown,
		DueToday:          snap.Result.DueToday,
		CompletedYest:     snap.Result.CompletedYesterday,
	}
	dto.CentreSelected = snap.Centre.IsSet()
	if id, ok := snap.Centre.CentreID(); ok {
		dto.SelectedCentreID = id
	}
	dto.StartDate = formatBoundary(snap.StartDate)
	dto.EndDate = formatBoundary(snap.EndDate)
	return dto
}

func formatBoundary(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}
