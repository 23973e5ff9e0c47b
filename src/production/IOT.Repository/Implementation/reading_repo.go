package implementation

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	iotmodels "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models"
)

type PostgresReadingRepository struct {
	db *sql.DB
}

func NewPostgresReadingRepository(db *sql.DB) *PostgresReadingRepository {
	return &PostgresReadingRepository{db: db}
}

// InsertBatch commits all rows of one accepted message in a single
// transaction via COPY. db_timestamp is omitted from the column list so the
// store assigns it.
func (r *PostgresReadingRepository) InsertBatch(ctx context.Context, readings []iotmodels.SensorReading) error {
	if len(readings) == 0 {
		return nil
	}

	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	stmt, err := txn.Prepare(pq.CopyIn("sensor_data",
		"device_id", "device_timestamp", "temperature", "voltage", "current", "watts"))
	if err != nil {
		return err
	}

	for _, reading := range readings {
		_, err = stmt.Exec(reading.DeviceID, reading.DeviceTimestamp,
			reading.Temperature, reading.Voltage, reading.Current, reading.Watts)
		if err != nil {
			return err
		}
	}

	if _, err = stmt.Exec(); err != nil {
		return err
	}

	if err = stmt.Close(); err != nil {
		return err
	}

	return txn.Commit()
}

// ListForUser joins readings through the caller's ownership edges. Ownership
// is evaluated live at query time; the id tiebreak keeps rows from one batch
// in insert order.
func (r *PostgresReadingRepository) ListForUser(ctx context.Context, userID string, limit int) ([]iotmodels.SensorReading, error) {
	query := `
		SELECT s.device_id, s.device_timestamp, s.temperature, s.voltage, s.current, s.watts, s.db_timestamp
		FROM sensor_data s
		JOIN user_devices u ON s.device_id = u.device_id
		WHERE u.user_id = $1
		ORDER BY s.db_timestamp DESC, s.id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := make([]iotmodels.SensorReading, 0)
	for rows.Next() {
		var reading iotmodels.SensorReading
		if err := rows.Scan(&reading.DeviceID, &reading.DeviceTimestamp,
			&reading.Temperature, &reading.Voltage, &reading.Current,
			&reading.Watts, &reading.DBTimestamp); err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}

	return readings, rows.Err()
}
