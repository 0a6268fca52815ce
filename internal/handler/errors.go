package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/pressuremap-backend-go/internal/service"
	"github.com/jengzang/pressuremap-backend-go/pkg/response"
)

// fail maps service errors onto status codes
func fail(c *gin.Context, message string, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		response.BadRequest(c, message, err)
		return
	}
	response.InternalError(c, message, err)
}
