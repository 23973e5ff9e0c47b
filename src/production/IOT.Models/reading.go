package iotmodels

import "time"

// SensorReading is one committed telemetry sample. DeviceTimestamp is the
// device-reported clock, stored and returned verbatim as text; it is untrusted
// and never used for ordering. DBTimestamp is assigned by the store at insert
// time and is the sole ordering key for recent-readings queries.
type SensorReading struct {
	DeviceID        string    `json:"device_id" db:"device_id"`
	DeviceTimestamp string    `json:"timestamp" db:"device_timestamp"`
	Temperature     float64   `json:"temperature" db:"temperature"`
	Voltage         float64   `json:"voltage" db:"voltage"`
	Current         float64   `json:"current" db:"current"`
	Watts           float64   `json:"watts" db:"watts"`
	DBTimestamp     time.Time `json:"-" db:"db_timestamp"`
}
