package handler

import (
	"errors"
	"net/http"

	"github.com/hashimpk07/FMPortal-sub002/internal/domain"
	"github.com/hashimpk07/FMPortal-sub002/internal/service"
	"go.uber.org/zap"
)

// CentreHandler serves the list of centres the dashboard can filter by.
type CentreHandler struct {
	centreService *service.CentreService
	logger        *zap.Logger
}

// NewCentreHandler creates a new CentreHandler instance
func NewCentreHandler(centres *service.CentreService, logger *zap.Logger) *CentreHandler {
	return &CentreHandler{
		centreService: centres,
		logger:        logger,
	}
}

// ListCentres returns all selectable centres
// @Summary List centres
// @Description Returns every centre available as a dashboard filter
// @Tags centres
// @Produce json
// @Success 200 {object} domain.CentreListResponse
// @Failure 401 {object} domain.APIError
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Router /centres [get]
func (h *CentreHandler) ListCentres(w http.ResponseWriter, r *http.Request) {
	centres, err := h.centreService.Centres(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrCentresUnavailable) {
			respondWithError(w, http.StatusServiceUnavailable, "Centre list is temporarily unavailable")
			return
		}
		h.logger.Error("failed to list centres", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list centres")
		return
	}

	respondJSON(w, http.StatusOK, domain.CentreListResponse{
		Centres: centres,
		Total:   len(centres),
	})
}
