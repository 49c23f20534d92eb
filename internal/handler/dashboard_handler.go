package handler

import (
	"errors"
	"net/http"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/service"
	"github.com/baufin/baufin-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard and summary snapshot HTTP requests
type DashboardHandler struct {
	aggregationService *service.AggregationService
	summaryService     *service.SummaryService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(aggregationService *service.AggregationService, summaryService *service.SummaryService) *DashboardHandler {
	return &DashboardHandler{
		aggregationService: aggregationService,
		summaryService:     summaryService,
	}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	dashboard, err := h.aggregationService.Dashboard(util.Today())
	if err != nil {
		log.Error().Err(err).Msg("Failed to build dashboard")
		return NewInternalError(c, "Failed to build dashboard")
	}
	return c.JSON(http.StatusOK, dashboard)
}

// GetCategorySummaries handles GET /api/v1/dashboard/categories
func (h *DashboardHandler) GetCategorySummaries(c echo.Context) error {
	summaries, err := h.aggregationService.CategorySummaries()
	if err != nil {
		log.Error().Err(err).Msg("Failed to build category summaries")
		return NewInternalError(c, "Failed to build category summaries")
	}
	return c.JSON(http.StatusOK, summaries)
}

// GetRoomSummaries handles GET /api/v1/dashboard/rooms
func (h *DashboardHandler) GetRoomSummaries(c echo.Context) error {
	summaries, err := h.aggregationService.RoomSummaries()
	if err != nil {
		log.Error().Err(err).Msg("Failed to build room summaries")
		return NewInternalError(c, "Failed to build room summaries")
	}
	return c.JSON(http.StatusOK, summaries)
}

// GetSummary handles GET /api/v1/summary
//
// Returns the persisted snapshot. A missing snapshot means no write has
// happened yet; the client can trigger a rebuild.
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	snapshot, err := h.summaryService.Get()
	if err != nil {
		if errors.Is(err, domain.ErrSummaryNotFound) {
			return NewNotFoundError(c, "No summary snapshot yet")
		}
		log.Error().Err(err).Msg("Failed to get summary snapshot")
		return NewInternalError(c, "Failed to get summary snapshot")
	}
	return c.JSON(http.StatusOK, snapshot)
}

// RebuildSummary handles POST /api/v1/summary/rebuild
func (h *DashboardHandler) RebuildSummary(c echo.Context) error {
	snapshot, err := h.summaryService.Rebuild(util.Today())
	if err != nil {
		log.Error().Err(err).Msg("Failed to rebuild summary snapshot")
		return NewInternalError(c, "Failed to rebuild summary snapshot")
	}

	log.Info().Int64("total_spent", snapshot.Totals.Spent).Msg("Summary snapshot rebuilt")

	return c.JSON(http.StatusOK, snapshot)
}
