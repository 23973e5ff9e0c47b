package interfaces

import "context"

// OwnershipRepository is the durable user->devices mapping. Every read and
// unclaim is scoped by user_id inside the statement itself.
type OwnershipRepository interface {
	// Claim inserts the (user_id, device_id) edge. A duplicate pair returns
	// apperrors.ErrAlreadyClaimed.
	Claim(ctx context.Context, userID, deviceID string) error

	// Unclaim deletes the edge scoped to userID. Deleting a missing edge is a
	// silent no-op.
	Unclaim(ctx context.Context, userID, deviceID string) error

	// ListDeviceIDs returns the device ids the user has claimed.
	ListDeviceIDs(ctx context.Context, userID string) ([]string, error)
}
