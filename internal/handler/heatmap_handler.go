package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/pressuremap-backend-go/internal/models"
	"github.com/jengzang/pressuremap-backend-go/internal/service"
	"github.com/jengzang/pressuremap-backend-go/pkg/response"
)

// HeatmapHandler handles HTTP requests for heatmap rendering
type HeatmapHandler struct {
	service *service.HeatmapService
}

// NewHeatmapHandler creates a new heatmap handler
func NewHeatmapHandler(service *service.HeatmapService) *HeatmapHandler {
	return &HeatmapHandler{service: service}
}

// GetHeatmap handles GET /api/v1/heatmap
func (h *HeatmapHandler) GetHeatmap(c *gin.Context) {
	var filter models.HeatmapFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	resp, err := h.service.Render(filter)
	if err != nil {
		fail(c, "Failed to render heatmap", err)
		return
	}

	response.Success(c, resp)
}

// GetHeatmapImage handles GET /api/v1/heatmap.png
func (h *HeatmapHandler) GetHeatmapImage(c *gin.Context) {
	var filter models.HeatmapFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	var buf bytes.Buffer
	if err := h.service.RenderPNG(&buf, filter.Width, filter.Height); err != nil {
		fail(c, "Failed to render heatmap image", err)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// PostIntensity handles POST /api/v1/heatmap/intensity
func (h *HeatmapHandler) PostIntensity(c *gin.Context) {
	var req models.IntensityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	resp, err := h.service.Estimate(req)
	if err != nil {
		fail(c, "Failed to estimate intensity", err)
		return
	}

	response.Success(c, resp)
}

// GetPalette handles GET /api/v1/heatmap/palette
func (h *HeatmapHandler) GetPalette(c *gin.Context) {
	response.Success(c, service.Palette())
}
