package iotmodels

// Device is a provisioned device. Rows are created out-of-band, not by this
// system; DeviceKey is the secret a user must present to claim the device.
type Device struct {
	DeviceID  string `json:"device_id" db:"device_id"`
	DeviceKey string `json:"-" db:"device_key"`
}
