package interfaces

import (
	"context"

	iotmodels "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models"
)

type UserRepository interface {
	// Create user. Returns apperrors.ErrEmailExists when the email is taken.
	Create(ctx context.Context, user *iotmodels.User) (*iotmodels.User, error)

	// Read users. A miss is (nil, nil), not an error.
	GetByID(ctx context.Context, userID string) (*iotmodels.User, error)
	GetByEmail(ctx context.Context, email string) (*iotmodels.User, error)
}
