package controllers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Startup/health"
)

// HealthController reports process and database health
type HealthController struct {
	db *sql.DB
}

// NewHealthController creates a new health controller
func NewHealthController(db *sql.DB) *HealthController {
	return &HealthController{db: db}
}

// RegisterRoutes registers the health routes with Gin
func (c *HealthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", c.Healthz)
}

func (c *HealthController) Healthz(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	if err := health.PingPostgres(pingCtx, c.db); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"time":   time.Now().UTC(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}
