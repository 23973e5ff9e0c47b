package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	config "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Config"
)

// ConnectPostgresWithTimeout opens one pooled connection for the whole
// process. Repositories share it; nothing opens a connection per request.
func ConnectPostgresWithTimeout(cfg config.DatabaseConfig, timeout time.Duration) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := sql.Open("postgres", cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("unable to open PostgreSQL connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MinConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// CreateTables creates the required tables if they don't exist
func CreateTables(ctx context.Context, db *sql.DB) error {
	createUsersTable := `
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	// Devices are provisioned out-of-band; the table only has to exist.
	createDevicesTable := `
		CREATE TABLE IF NOT EXISTS devices (
			device_id  TEXT PRIMARY KEY,
			device_key TEXT NOT NULL
		);
	`

	// The pair is the primary key: one edge per user per device, but no
	// uniqueness on device_id alone, so a device may have several owners.
	createUserDevicesTable := `
		CREATE TABLE IF NOT EXISTS user_devices (
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			device_id  TEXT NOT NULL,
			claimed_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (user_id, device_id)
		);
	`

	// device_timestamp stays TEXT: it is device-supplied and untrusted, never
	// parsed or ordered on. db_timestamp is the ordering key.
	createSensorDataTable := `
		CREATE TABLE IF NOT EXISTS sensor_data (
			id               BIGSERIAL PRIMARY KEY,
			device_id        TEXT NOT NULL,
			device_timestamp TEXT NOT NULL,
			temperature      DOUBLE PRECISION NOT NULL,
			voltage          DOUBLE PRECISION NOT NULL,
			current          DOUBLE PRECISION NOT NULL,
			watts            DOUBLE PRECISION NOT NULL,
			db_timestamp     TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	createIndexes := `
		CREATE INDEX IF NOT EXISTS idx_sensor_data_db_ts_desc ON sensor_data (db_timestamp DESC);
		CREATE INDEX IF NOT EXISTS idx_sensor_data_device ON sensor_data (device_id);
		CREATE INDEX IF NOT EXISTS idx_user_devices_device ON user_devices (device_id);
	`

	queries := []string{
		createUsersTable,
		createDevicesTable,
		createUserDevicesTable,
		createSensorDataTable,
		createIndexes,
	}

	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// PingPostgres checks if the PostgreSQL connection is healthy
func PingPostgres(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	return db.PingContext(ctx)
}
