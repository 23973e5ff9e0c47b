package implementation

import (
	"context"
	"database/sql"
	"time"

	apperrors "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Errors"
)

type PostgresOwnershipRepository struct {
	db *sql.DB
}

func NewPostgresOwnershipRepository(db *sql.DB) *PostgresOwnershipRepository {
	return &PostgresOwnershipRepository{db: db}
}

// Claim inserts the ownership edge. The primary key on (user_id, device_id)
// makes a repeat claim by the same user fail; that surfaces as AlreadyClaimed
// rather than a silent success. There is no uniqueness on device_id alone, so
// a second user may claim the same device.
func (r *PostgresOwnershipRepository) Claim(ctx context.Context, userID, deviceID string) error {
	query := `INSERT INTO user_devices (user_id, device_id, claimed_at) VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, query, userID, deviceID, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrAlreadyClaimed
		}
		return err
	}

	return nil
}

// Unclaim is "ensure absent": the user_id predicate in the delete is the
// authorization, and a missing edge is not an error.
func (r *PostgresOwnershipRepository) Unclaim(ctx context.Context, userID, deviceID string) error {
	query := `DELETE FROM user_devices WHERE user_id = $1 AND device_id = $2`

	_, err := r.db.ExecContext(ctx, query, userID, deviceID)
	return err
}

func (r *PostgresOwnershipRepository) ListDeviceIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT device_id FROM user_devices WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deviceIDs := make([]string, 0)
	for rows.Next() {
		var deviceID string
		if err := rows.Scan(&deviceID); err != nil {
			return nil, err
		}
		deviceIDs = append(deviceIDs, deviceID)
	}

	return deviceIDs, rows.Err()
}
