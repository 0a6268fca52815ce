package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/pressuremap-backend-go/internal/service"
	"github.com/jengzang/pressuremap-backend-go/pkg/response"
)

// PressureHandler handles HTTP requests for live pressure and predictions
type PressureHandler struct {
	service *service.PressureService
}

// NewPressureHandler creates a new pressure handler
func NewPressureHandler(service *service.PressureService) *PressureHandler {
	return &PressureHandler{service: service}
}

// GetPressure handles GET /api/v1/pressure
func (h *PressureHandler) GetPressure(c *gin.Context) {
	response.Success(c, h.service.Current())
}

// GetPredictions handles GET /api/v1/predictions
func (h *PressureHandler) GetPredictions(c *gin.Context) {
	preds := h.service.Predictions()
	response.Success(c, gin.H{
		"data":  preds,
		"count": len(preds),
	})
}
