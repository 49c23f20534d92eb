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

// ReportHandler handles status report HTTP requests
type ReportHandler struct {
	reportService   *service.ReportService
	analysisService *service.AnalysisService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService, analysisService *service.AnalysisService) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		analysisService: analysisService,
	}
}

// GetReport handles GET /api/v1/report
func (h *ReportHandler) GetReport(c echo.Context) error {
	data, err := h.reportService.BuildReportData(util.Today())
	if err != nil {
		log.Error().Err(err).Msg("Failed to build report")
		return NewInternalError(c, "Failed to build report")
	}
	return c.JSON(http.StatusOK, data)
}

// GetReportText handles GET /api/v1/report/text
//
// Returns the plain text rendering used for exports and as the analysis
// prompt input.
func (h *ReportHandler) GetReportText(c echo.Context) error {
	_, text, err := h.reportService.BuildReport(util.Today())
	if err != nil {
		log.Error().Err(err).Msg("Failed to render report")
		return NewInternalError(c, "Failed to render report")
	}
	return c.String(http.StatusOK, text)
}

// AnalyzeReport handles POST /api/v1/report/analyze
//
// Builds the current report, sends its text rendering to the AI
// collaborator and returns the report with the analysis attached.
func (h *ReportHandler) AnalyzeReport(c echo.Context) error {
	if h.analysisService == nil || !h.analysisService.Available() {
		return NewServiceUnavailableError(c, "Analysis is disabled (no API key configured)")
	}

	data, text, err := h.reportService.BuildReport(util.Today())
	if err != nil {
		log.Error().Err(err).Msg("Failed to build report for analysis")
		return NewInternalError(c, "Failed to build report")
	}

	analysis, err := h.analysisService.Analyze(c.Request().Context(), text)
	if err != nil {
		if errors.Is(err, domain.ErrAnalysisUnavailable) {
			return NewServiceUnavailableError(c, "Analysis is disabled (no API key configured)")
		}
		if errors.Is(err, domain.ErrAnalysisEmpty) {
			return NewInternalError(c, "Analysis returned no content")
		}
		log.Error().Err(err).Msg("Failed to analyze report")
		return NewInternalError(c, "Failed to analyze report")
	}

	data.Analysis = analysis

	log.Info().Msg("Report analyzed")

	return c.JSON(http.StatusOK, data)
}
