package interfaces

import (
	"context"

	iotmodels "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models"
)

// DeviceRepository reads the provisioned-device registry. Devices are created
// out-of-band; this system never writes the table.
type DeviceRepository interface {
	// GetByIDAndKey returns the device matching both id and key, or (nil, nil).
	// Callers must not be able to tell a wrong id from a wrong key.
	GetByIDAndKey(ctx context.Context, deviceID, deviceKey string) (*iotmodels.Device, error)
}
