package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	jwtsvc "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.ApiService/implementation/jwt"
	apperrors "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Errors"
	iotmodels "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models"
	api_models "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models/api"
)

type fakeUserRepo struct {
	byEmail map[string]*iotmodels.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*iotmodels.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *iotmodels.User) (*iotmodels.User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, apperrors.ErrEmailExists
	}
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	r.byEmail[user.Email] = user
	return user, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID string) (*iotmodels.User, error) {
	for _, u := range r.byEmail {
		if u.UserID == userID {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*iotmodels.User, error) {
	return r.byEmail[email], nil
}

func newTestAuthService() (*AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	jwtService := jwtsvc.NewService(api_models.Config{
		SecretKey:     "test-secret",
		TokenDuration: 12 * time.Hour,
		Issuer:        "test",
	})
	return NewAuthService(repo, jwtService), repo
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	// digest, not the password itself
	assert.NotEqual(t, "pw123", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)

	resp, err := svc.Login(ctx, "alice@example.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "pw123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice@example.com", "other")
	assert.True(t, errors.Is(err, apperrors.ErrEmailExists))
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "pw123")
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "wrong")
		assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "pw123")
		// same error as a wrong password: no account enumeration
		assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
	})
}
