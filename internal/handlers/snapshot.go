package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	apperrors "therm_hub/internal/errors"
	"therm_hub/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errRefresh = "refresh cycle obtained no data"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// statusFor maps service and provider failures to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrMissingTimeRange),
		errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrEmptyPinCode):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoData):
		return http.StatusServiceUnavailable
	}

	switch apperrors.KindOf(err) {
	case apperrors.KindCredential, apperrors.KindTransport, apperrors.KindDecode:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Server time
// @Description  Unix seconds, for devices without a real-time clock
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string  "1583020800"
// @Router       /time [get]
func (h *Handler) serverTime(c *gin.Context) {
	c.String(http.StatusOK, strconv.FormatInt(time.Now().Unix(), 10))
}

// @Summary      Current conditions
// @Description  Latest forecasts and thermostat readings, as last published by the worker
// @Tags         snapshot
// @Produce      json
// @Success      200  {object}  models.Snapshot
// @Failure      401  {object}  map[string]string
// @Router       /now [get]
// @Security     BearerAuth
func (h *Handler) now(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", h.services.Serialized())
}

// @Summary      Refresh now
// @Description  Runs one pipeline cycle synchronously and returns its report
// @Tags         snapshot
// @Produce      json
// @Success      200  {object}  service.CycleReport
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /refresh [post]
// @Security     BearerAuth
func (h *Handler) refresh(c *gin.Context) {
	report, err := h.services.RunOnce(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, statusFor(err), errRefresh, "refresh_failed", err, "cycle_id", report.CycleID)
		return
	}
	c.JSON(http.StatusOK, report)
}
