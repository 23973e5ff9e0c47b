package implementation

import (
	"context"
	"database/sql"

	iotmodels "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models"
)

type PostgresDeviceRepository struct {
	db *sql.DB
}

func NewPostgresDeviceRepository(db *sql.DB) *PostgresDeviceRepository {
	return &PostgresDeviceRepository{db: db}
}

// GetByIDAndKey matches on both columns in one predicate so the caller cannot
// distinguish a wrong id from a wrong key.
func (r *PostgresDeviceRepository) GetByIDAndKey(ctx context.Context, deviceID, deviceKey string) (*iotmodels.Device, error) {
	query := `SELECT device_id, device_key FROM devices WHERE device_id = $1 AND device_key = $2`

	var device iotmodels.Device

	err := r.db.QueryRowContext(ctx, query, deviceID, deviceKey).Scan(&device.DeviceID, &device.DeviceKey)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &device, nil
}
