package container

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	config "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Config"
	logger "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Logger"
	"gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Startup/health"
)

// Container manages dependencies and their lifecycle. Both services build on
// it; the database handle is opened lazily and owned here, not by callers.
type Container struct {
	database config.DatabaseConfig
	logger   *logger.Logger
	db       *sql.DB

	mu           sync.Mutex
	cleanupFuncs []func() error
}

// ApiContainer manages dependencies for the API service
type ApiContainer struct {
	*Container
	config *config.Config
}

// ListenerContainer manages dependencies for the MQTT listener service
type ListenerContainer struct {
	*Container
	config *config.ListenerConfig
}

// NewApiContainer creates a new container for the API service
func NewApiContainer() (*ApiContainer, error) {
	cfg, err := config.LoadApiConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load API configuration: %w", err)
	}

	log := logger.NewLogger(&cfg.Logging)

	return &ApiContainer{
		Container: &Container{database: cfg.Database, logger: log},
		config:    cfg,
	}, nil
}

// NewListenerContainer creates a new container for the MQTT listener service
func NewListenerContainer() (*ListenerContainer, error) {
	cfg, err := config.LoadListenerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load listener configuration: %w", err)
	}

	log := logger.NewLogger(&cfg.Logging)

	return &ListenerContainer{
		Container: &Container{database: cfg.Database, logger: log},
		config:    cfg,
	}, nil
}

// GetConfig returns the API configuration
func (c *ApiContainer) GetConfig() *config.Config {
	return c.config
}

// GetConfig returns the listener configuration
func (c *ListenerContainer) GetConfig() *config.ListenerConfig {
	return c.config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.logger
}

// GetDatabase returns the shared database connection, opening it on first use
func (c *Container) GetDatabase() (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		db, err := health.ConnectPostgresWithTimeout(c.database, 20*time.Second)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.db = db
	}

	return c.db, nil
}

// InitializeDatabase initializes the database and creates tables
func (c *Container) InitializeDatabase(ctx context.Context) error {
	db, err := c.GetDatabase()
	if err != nil {
		return err
	}

	if err := health.CreateTables(ctx, db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	c.logger.Info("Database initialized successfully")
	return nil
}

// AddCleanupFunc adds a cleanup function
func (c *Container) AddCleanupFunc(fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupFuncs = append(c.cleanupFuncs, fn)
}

// Shutdown gracefully shuts down the container and all its dependencies
func (c *Container) Shutdown(ctx context.Context) error {
	c.logger.Info("Shutting down container...")

	c.mu.Lock()
	defer c.mu.Unlock()

	// Execute cleanup functions in reverse order
	for i := len(c.cleanupFuncs) - 1; i >= 0; i-- {
		if err := c.cleanupFuncs[i](); err != nil {
			c.logger.ErrorWithError(err, "Error during cleanup")
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			c.logger.ErrorWithError(err, "Error closing database connection")
		}
		c.db = nil
	}

	c.logger.Info("Container shutdown complete")
	return nil
}
