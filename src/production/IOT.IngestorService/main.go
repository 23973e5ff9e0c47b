package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	container "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Container"
	"gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.IngestorService/listener"
	implementation "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Repository/Implementation"
)

func main() {
	ctr, err := container.NewListenerContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize container: %v", err))
	}
	defer ctr.Shutdown(context.Background())

	logger := ctr.GetLogger()
	logger.Info("Starting Telemetry Listener Service")

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ctr.InitializeDatabase(initCtx); err != nil {
		logger.FatalWithError(err, "Failed to initialize database")
	}

	db, err := ctr.GetDatabase()
	if err != nil {
		logger.FatalWithError(err, "Failed to get database connection")
	}

	readingRepo := implementation.NewPostgresReadingRepository(db)

	config := ctr.GetConfig()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	lst := listener.New(config.MQTT, readingRepo, logger)
	if err := lst.Start(ctx); err != nil {
		logger.FatalWithError(err, "Failed to start telemetry listener")
	}
	defer lst.Stop()

	logger.Info("Telemetry listener running... press Ctrl+C to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")
	stop()
}
