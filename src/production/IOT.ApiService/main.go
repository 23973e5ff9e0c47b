package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.ApiService/controllers"
	container "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Container"
	implementation "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Repository/Implementation"

	authService "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.ApiService/implementation/auth"
	claimService "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.ApiService/implementation/claims"
	jwt "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.ApiService/implementation/jwt"
	authMiddleware "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.ApiService/middleware"
	api_models "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models/api"
)

func main() {
	ctr, err := container.NewApiContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize container: %v", err))
	}
	defer ctr.Shutdown(context.Background())

	logger := ctr.GetLogger()
	logger.Info("Starting API Service")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ctr.InitializeDatabase(ctx); err != nil {
		logger.FatalWithError(err, "Failed to initialize database")
	}

	db, err := ctr.GetDatabase()
	if err != nil {
		logger.FatalWithError(err, "Failed to get database connection")
	}

	// Create repositories
	userRepo := implementation.NewPostgresUserRepository(db)
	deviceRepo := implementation.NewPostgresDeviceRepository(db)
	ownershipRepo := implementation.NewPostgresOwnershipRepository(db)
	readingRepo := implementation.NewPostgresReadingRepository(db)

	config := ctr.GetConfig()

	// Session token service
	jwtService := jwt.NewService(api_models.Config{
		SecretKey:     config.Auth.JWTSecretKey,
		TokenDuration: config.Auth.TokenDuration,
		Issuer:        config.Auth.JWTIssuer,
	})

	authMiddlewareInstance := authMiddleware.NewAuthMiddleware(jwtService, authMiddleware.DefaultConfig())

	authServiceInstance := authService.NewAuthService(userRepo, jwtService)
	claimServiceInstance := claimService.NewService(deviceRepo, ownershipRepo, readingRepo)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     config.CORS.AllowedOrigins,
		AllowMethods:     config.CORS.AllowedMethods,
		AllowHeaders:     config.CORS.AllowedHeaders,
		ExposeHeaders:    config.CORS.ExposedHeaders,
		AllowCredentials: config.CORS.AllowCredentials,
		MaxAge:           time.Duration(config.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	// Create controllers and register routes
	authController := controllers.NewAuthController(authServiceInstance, logger)
	deviceController := controllers.NewDeviceController(claimServiceInstance, logger, authMiddlewareInstance)
	readingController := controllers.NewReadingController(claimServiceInstance, logger, authMiddlewareInstance)
	healthController := controllers.NewHealthController(db)

	authController.RegisterRoutes(router)
	deviceController.RegisterRoutes(router)
	readingController.RegisterRoutes(router)
	healthController.RegisterRoutes(router)

	port := config.Server.Port

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
		IdleTimeout:  config.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server starting on port " + port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalWithError(err, "Failed to start HTTP server")
		}
	}()

	logger.Info("API service running... press Ctrl+C to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithError(err, "Server forced to shutdown")
	}
}
