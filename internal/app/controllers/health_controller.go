package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// HealthController reports service health
type HealthController struct {
	db HealthChecker
}

// NewHealthController creates a new HealthController
func NewHealthController(db HealthChecker) *HealthController {
	return &HealthController{db: db}
}

// Health pings the database
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse "Service is healthy"
// @Failure 503 {object} dto.ErrorResponse "Database unreachable"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.db.Ping(pingCtx); err != nil {
		logger.Ctx(ctx.Request.Context()).Error().Err(err).Msg("Health check failed")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database unreachable")
		ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}, "Service is healthy"))
}
