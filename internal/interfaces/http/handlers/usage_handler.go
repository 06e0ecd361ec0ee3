package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"forgebase.backend/internal/domain/entities"
	"forgebase.backend/internal/interfaces/http/response"
	"forgebase.backend/internal/usecases"
)

// UsageHandler handles usage analytics endpoints
type UsageHandler struct {
	usageUsecase *usecases.UsageStatsUsecase
}

// NewUsageHandler creates a new usage handler
func NewUsageHandler(usageUsecase *usecases.UsageStatsUsecase) *UsageHandler {
	return &UsageHandler{usageUsecase: usageUsecase}
}

// ProjectStats returns the summary stats for a project
// GET /api/v1/usage/stats/:projectId?period=30d&limit=10
func (h *UsageHandler) ProjectStats(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}

	period := entities.ParsePeriod(c.Query("period"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	stats, err := h.usageUsecase.GetProjectStats(c.Request.Context(), projectID, userID, period, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// KeyStats returns the summary stats for a single key
// GET /api/v1/usage/keys/:keyId?period=30d
func (h *UsageHandler) KeyStats(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	keyID, ok := parseIDParam(c, "keyId")
	if !ok {
		return
	}

	period := entities.ParsePeriod(c.Query("period"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	stats, err := h.usageUsecase.GetKeyStats(c.Request.Context(), keyID, userID, period, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// ProjectAnalytics returns the charting series for a project
// GET /api/v1/usage/analytics/:projectId?days=30
func (h *UsageHandler) ProjectAnalytics(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}

	days, _ := strconv.Atoi(c.Query("days"))
	analytics, err := h.usageUsecase.GetProjectAnalytics(c.Request.Context(), projectID, userID, days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, analytics)
}
