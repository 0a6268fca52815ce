package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/pressuremap-backend-go/internal/models"
	"github.com/jengzang/pressuremap-backend-go/internal/service"
	"github.com/jengzang/pressuremap-backend-go/pkg/response"
	log "github.com/sirupsen/logrus"
)

// DeviceHandler handles mattress cover pairing
type DeviceHandler struct {
	service *service.DeviceService
}

// NewDeviceHandler creates a new device handler
func NewDeviceHandler(service *service.DeviceService) *DeviceHandler {
	return &DeviceHandler{service: service}
}

// PostPair handles POST /api/v1/devices/pair
func (h *DeviceHandler) PostPair(c *gin.Context) {
	var req models.PairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	session, err := h.service.Pair(req.SerialNumber)
	if err != nil {
		fail(c, "Failed to pair device", err)
		return
	}

	log.WithFields(log.Fields{
		"serial":  session.SerialNumber,
		"session": session.SessionID,
	}).Info("[DeviceHandler] Device paired")

	response.Success(c, session)
}
