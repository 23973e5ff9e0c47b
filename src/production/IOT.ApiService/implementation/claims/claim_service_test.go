package claims

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Errors"
	iotmodels "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models"
)

// In-memory stand-ins for the Postgres repositories, faithful to their
// contracts: pair-unique claims, user-scoped deletes, ownership-joined reads.

type fakeDeviceRepo struct {
	keys map[string]string // device_id -> device_key
}

func (r *fakeDeviceRepo) GetByIDAndKey(_ context.Context, deviceID, deviceKey string) (*iotmodels.Device, error) {
	if key, ok := r.keys[deviceID]; ok && key == deviceKey {
		return &iotmodels.Device{DeviceID: deviceID, DeviceKey: deviceKey}, nil
	}
	return nil, nil
}

type edge struct{ userID, deviceID string }

type fakeOwnershipRepo struct {
	edges map[edge]bool
}

func newFakeOwnershipRepo() *fakeOwnershipRepo {
	return &fakeOwnershipRepo{edges: make(map[edge]bool)}
}

func (r *fakeOwnershipRepo) Claim(_ context.Context, userID, deviceID string) error {
	e := edge{userID, deviceID}
	if r.edges[e] {
		return apperrors.ErrAlreadyClaimed
	}
	r.edges[e] = true
	return nil
}

func (r *fakeOwnershipRepo) Unclaim(_ context.Context, userID, deviceID string) error {
	delete(r.edges, edge{userID, deviceID})
	return nil
}

func (r *fakeOwnershipRepo) ListDeviceIDs(_ context.Context, userID string) ([]string, error) {
	ids := make([]string, 0)
	for e := range r.edges {
		if e.userID == userID {
			ids = append(ids, e.deviceID)
		}
	}
	return ids, nil
}

func (r *fakeOwnershipRepo) countFor(userID string) int {
	n := 0
	for e := range r.edges {
		if e.userID == userID {
			n++
		}
	}
	return n
}

type fakeReadingRepo struct {
	ownership *fakeOwnershipRepo
	rows      []iotmodels.SensorReading // newest first
	lastLimit int
}

func (r *fakeReadingRepo) InsertBatch(_ context.Context, readings []iotmodels.SensorReading) error {
	// keep rows newest-first like the db_timestamp DESC, id DESC query: the
	// last index of a batch is the newest row
	reversed := make([]iotmodels.SensorReading, 0, len(readings))
	for i := len(readings) - 1; i >= 0; i-- {
		reversed = append(reversed, readings[i])
	}
	r.rows = append(reversed, r.rows...)
	return nil
}

func (r *fakeReadingRepo) ListForUser(_ context.Context, userID string, limit int) ([]iotmodels.SensorReading, error) {
	r.lastLimit = limit
	out := make([]iotmodels.SensorReading, 0)
	for _, row := range r.rows {
		if r.ownership.edges[edge{userID, row.DeviceID}] {
			out = append(out, row)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func newTestService() (*Service, *fakeOwnershipRepo, *fakeReadingRepo) {
	devices := &fakeDeviceRepo{keys: map[string]string{"dev-1": "k1", "dev-2": "k2"}}
	ownership := newFakeOwnershipRepo()
	readings := &fakeReadingRepo{ownership: ownership}
	return NewService(devices, ownership, readings), ownership, readings
}

func TestClaim_SuccessThenAlreadyClaimed(t *testing.T) {
	svc, ownership, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Claim(ctx, "alice", "dev-1", "k1"))
	assert.Equal(t, 1, ownership.countFor("alice"))

	err := svc.Claim(ctx, "alice", "dev-1", "k1")
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyClaimed))
	// edge count unchanged by the repeat claim
	assert.Equal(t, 1, ownership.countFor("alice"))
}

func TestClaim_WrongKeyOrUnknownDevice(t *testing.T) {
	svc, ownership, _ := newTestService()
	ctx := context.Background()

	err := svc.Claim(ctx, "alice", "dev-1", "k2")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidDeviceCredentials))

	err = svc.Claim(ctx, "alice", "no-such-device", "k1")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidDeviceCredentials))

	assert.Equal(t, 0, ownership.countFor("alice"))
}

func TestClaim_SecondUserMayClaimSameDevice(t *testing.T) {
	svc, ownership, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Claim(ctx, "alice", "dev-1", "k1"))
	require.NoError(t, svc.Claim(ctx, "bob", "dev-1", "k1"))

	assert.Equal(t, 1, ownership.countFor("alice"))
	assert.Equal(t, 1, ownership.countFor("bob"))
}

func TestUnclaim_IsIdempotent(t *testing.T) {
	svc, ownership, _ := newTestService()
	ctx := context.Background()

	// never-claimed device: silent no-op
	require.NoError(t, svc.Unclaim(ctx, "alice", "dev-1"))
	assert.Equal(t, 0, ownership.countFor("alice"))

	require.NoError(t, svc.Claim(ctx, "alice", "dev-1", "k1"))
	require.NoError(t, svc.Unclaim(ctx, "alice", "dev-1"))
	require.NoError(t, svc.Unclaim(ctx, "alice", "dev-1"))
	assert.Equal(t, 0, ownership.countFor("alice"))
}

func TestUnclaim_CannotRemoveAnotherUsersEdge(t *testing.T) {
	svc, ownership, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Claim(ctx, "alice", "dev-1", "k1"))
	require.NoError(t, svc.Unclaim(ctx, "bob", "dev-1"))

	assert.Equal(t, 1, ownership.countFor("alice"))
}

func TestListReadings_ScopedToOwnership(t *testing.T) {
	svc, _, readings := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Claim(ctx, "alice", "dev-1", "k1"))
	require.NoError(t, readings.InsertBatch(ctx, []iotmodels.SensorReading{
		{DeviceID: "dev-1", DeviceTimestamp: "t0", Watts: 1},
		{DeviceID: "dev-1", DeviceTimestamp: "t1", Watts: 2},
	}))

	got, err := svc.ListReadings(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// bob never claimed dev-1: its readings must be invisible to him even
	// though they exist in the store
	got, err = svc.ListReadings(ctx, "bob", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListReadings_LimitClamped(t *testing.T) {
	svc, _, readings := newTestService()
	ctx := context.Background()

	_, err := svc.ListReadings(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultReadingLimit, readings.lastLimit)

	_, err = svc.ListReadings(ctx, "alice", 10_000)
	require.NoError(t, err)
	assert.Equal(t, DefaultReadingLimit, readings.lastLimit)

	_, err = svc.ListReadings(ctx, "alice", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, readings.lastLimit)
}
