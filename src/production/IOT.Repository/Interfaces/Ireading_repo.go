package interfaces

import (
	"context"

	iotmodels "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models"
)

type ReadingRepository interface {
	// InsertBatch commits the readings of one accepted message in a single
	// transaction, in index order. db_timestamp is assigned by the store.
	InsertBatch(ctx context.Context, readings []iotmodels.SensorReading) error

	// ListForUser returns readings for every device the user owns, newest
	// first by db_timestamp, capped at limit. The ownership join inside this
	// query is the access-control enforcement point; there is no variant that
	// takes a raw device id.
	ListForUser(ctx context.Context, userID string, limit int) ([]iotmodels.SensorReading, error)
}
