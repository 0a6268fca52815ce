package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/pressuremap-backend-go/internal/models"
	"github.com/jengzang/pressuremap-backend-go/internal/service"
	"github.com/jengzang/pressuremap-backend-go/pkg/response"
)

// HistoryHandler handles HTTP requests for the pressure history log
type HistoryHandler struct {
	service *service.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(service *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// GetHistory handles GET /api/v1/history
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	var filter models.HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	entries, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, "Failed to get history", err)
		return
	}

	response.Success(c, gin.H{
		"data":  entries,
		"count": len(entries),
	})
}

// GetStatistics handles GET /api/v1/history/stats
func (h *HistoryHandler) GetStatistics(c *gin.Context) {
	var filter models.HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	st, err := h.service.Statistics(c.Request.Context(), filter)
	if err != nil {
		fail(c, "Failed to get history statistics", err)
		return
	}

	response.Success(c, st)
}
