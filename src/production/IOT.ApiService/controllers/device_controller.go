package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	claims "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.ApiService/implementation/claims"
	"gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.ApiService/middleware"
	logger "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Logger"
	api_models "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models/api"
)

// DeviceController handles device listing, claims and unclaims
type DeviceController struct {
	claimService   *claims.Service
	logger         *logger.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewDeviceController creates a new device controller
func NewDeviceController(claimService *claims.Service, logger *logger.Logger, authMiddleware *middleware.AuthMiddleware) *DeviceController {
	return &DeviceController{
		claimService:   claimService,
		logger:         logger,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the device routes with Gin
func (c *DeviceController) RegisterRoutes(router *gin.Engine) {
	router.GET("/devices", c.authMiddleware.Authenticate(), c.ListDevices)
	router.POST("/claim", c.authMiddleware.Authenticate(), c.Claim)
	router.DELETE("/unclaim/:device_id", c.authMiddleware.Authenticate(), c.Unclaim)
}

func (c *DeviceController) ListDevices(ctx *gin.Context) {
	userID, err := middleware.GetUserFromGinContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	deviceIDs, err := c.claimService.ListDevices(ctx, userID)
	if err != nil {
		c.logger.ErrorWithError(err, "failed to list devices")
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, deviceIDs)
}

func (c *DeviceController) Claim(ctx *gin.Context) {
	userID, err := middleware.GetUserFromGinContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req api_models.ClaimRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.claimService.Claim(ctx, userID, req.DeviceID, req.DeviceKey); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, api_models.MessageResponse{Message: "Device claimed successfully"})
}

func (c *DeviceController) Unclaim(ctx *gin.Context) {
	userID, err := middleware.GetUserFromGinContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	deviceID := ctx.Param("device_id")

	if err := c.claimService.Unclaim(ctx, userID, deviceID); err != nil {
		c.logger.ErrorWithError(err, "failed to unclaim device")
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, api_models.MessageResponse{Message: "Device unclaimed successfully"})
}
