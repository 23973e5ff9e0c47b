package iotmodels

import "time"

// OwnershipEdge records that a user may view a device's telemetry. The pair is
// unique; a device may carry edges to more than one user.
type OwnershipEdge struct {
	UserID    string    `json:"user_id" db:"user_id"`
	DeviceID  string    `json:"device_id" db:"device_id"`
	ClaimedAt time.Time `json:"claimed_at" db:"claimed_at"`
}
