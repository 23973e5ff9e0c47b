package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	claims "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.ApiService/implementation/claims"
	"gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.ApiService/middleware"
	logger "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Logger"
)

// ReadingController serves telemetry scoped to the caller's claimed devices
type ReadingController struct {
	claimService   *claims.Service
	logger         *logger.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewReadingController creates a new reading controller
func NewReadingController(claimService *claims.Service, logger *logger.Logger, authMiddleware *middleware.AuthMiddleware) *ReadingController {
	return &ReadingController{
		claimService:   claimService,
		logger:         logger,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the reading routes with Gin
func (c *ReadingController) RegisterRoutes(router *gin.Engine) {
	router.GET("/sensor_data", c.authMiddleware.Authenticate(), c.ListReadings)
}

// ListReadings returns the caller's readings newest-first by ingestion time.
// The route takes no device id: visibility comes from the ownership join only.
func (c *ReadingController) ListReadings(ctx *gin.Context) {
	userID, err := middleware.GetUserFromGinContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	readings, err := c.claimService.ListReadings(ctx, userID, claims.DefaultReadingLimit)
	if err != nil {
		c.logger.ErrorWithError(err, "failed to list readings")
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, readings)
}
