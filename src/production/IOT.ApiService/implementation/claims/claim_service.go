package claims

import (
	"context"

	apperrors "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Errors"
	iotmodels "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models"
	interfaces "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Repository/Interfaces"
)

// DefaultReadingLimit caps /sensor_data responses.
const DefaultReadingLimit = 200

// Service is the claim authorizer plus the scoped-read surface. Every query
// it issues is keyed by the authenticated user's id; there is no code path
// that reads telemetry by raw device id.
type Service struct {
	deviceRepo    interfaces.DeviceRepository
	ownershipRepo interfaces.OwnershipRepository
	readingRepo   interfaces.ReadingRepository
}

// NewService creates a new claim service
func NewService(
	deviceRepo interfaces.DeviceRepository,
	ownershipRepo interfaces.OwnershipRepository,
	readingRepo interfaces.ReadingRepository,
) *Service {
	return &Service{
		deviceRepo:    deviceRepo,
		ownershipRepo: ownershipRepo,
		readingRepo:   readingRepo,
	}
}

// Claim establishes ownership of a device for a user who proves knowledge of
// its key. A repeat claim by the same user returns ErrAlreadyClaimed; the
// edge count stays at one.
func (s *Service) Claim(ctx context.Context, userID, deviceID, deviceKey string) error {
	device, err := s.deviceRepo.GetByIDAndKey(ctx, deviceID, deviceKey)
	if err != nil {
		return err
	}
	if device == nil {
		return apperrors.ErrInvalidDeviceCredentials
	}

	return s.ownershipRepo.Claim(ctx, userID, deviceID)
}

// Unclaim removes the user's own edge. Idempotent: a never-claimed device is
// a no-op success.
func (s *Service) Unclaim(ctx context.Context, userID, deviceID string) error {
	return s.ownershipRepo.Unclaim(ctx, userID, deviceID)
}

// ListDevices returns the device ids the user has claimed.
func (s *Service) ListDevices(ctx context.Context, userID string) ([]string, error) {
	return s.ownershipRepo.ListDeviceIDs(ctx, userID)
}

// ListReadings returns the user's visible readings, newest first by ingestion
// time. A non-positive or oversized limit falls back to DefaultReadingLimit.
func (s *Service) ListReadings(ctx context.Context, userID string, limit int) ([]iotmodels.SensorReading, error) {
	if limit <= 0 || limit > DefaultReadingLimit {
		limit = DefaultReadingLimit
	}
	return s.readingRepo.ListForUser(ctx, userID, limit)
}
