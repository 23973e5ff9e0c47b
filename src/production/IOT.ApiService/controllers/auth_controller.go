package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	auth "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.ApiService/implementation/auth"
	logger "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Logger"
	api_models "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models/api"
)

// AuthController handles registration and token issuance
type AuthController struct {
	authService *auth.AuthService
	logger      *logger.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *auth.AuthService, logger *logger.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// RegisterRoutes registers the auth routes with Gin
func (c *AuthController) RegisterRoutes(router *gin.Engine) {
	router.POST("/register", c.Register)
	router.POST("/token", c.Token)
}

func (c *AuthController) Register(ctx *gin.Context) {
	var req api_models.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := c.authService.Register(ctx, req.Email, req.Password); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, api_models.MessageResponse{Message: "User registered successfully"})
}

// Token is the OAuth2 password flow: form-encoded username/password, where
// username carries the email.
func (c *AuthController) Token(ctx *gin.Context) {
	var req api_models.TokenRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := c.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
