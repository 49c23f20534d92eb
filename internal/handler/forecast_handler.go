package handler

import (
	"net/http"

	"github.com/baufin/baufin-backend/internal/service"
	"github.com/baufin/baufin-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ForecastHandler handles cash flow forecast HTTP requests
type ForecastHandler struct {
	forecastService *service.ForecastService
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(forecastService *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{forecastService: forecastService}
}

// GetForecast handles GET /api/v1/forecast
func (h *ForecastHandler) GetForecast(c echo.Context) error {
	forecast, err := h.forecastService.BuildForecast(util.Today())
	if err != nil {
		log.Error().Err(err).Msg("Failed to build forecast")
		return NewInternalError(c, "Failed to build forecast")
	}
	return c.JSON(http.StatusOK, forecast)
}

// GetCommittedFunds handles GET /api/v1/committed
func (h *ForecastHandler) GetCommittedFunds(c echo.Context) error {
	committed, err := h.forecastService.CommittedFunds(util.Today())
	if err != nil {
		log.Error().Err(err).Msg("Failed to calculate committed funds")
		return NewInternalError(c, "Failed to calculate committed funds")
	}
	return c.JSON(http.StatusOK, committed)
}
