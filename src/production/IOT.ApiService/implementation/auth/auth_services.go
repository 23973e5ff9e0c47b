package auth

import (
	"context"

	apperrors "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Errors"
	iotmodels "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models"
	api_models "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models/api"
	jwt "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.ApiService/implementation/jwt"
	interfaces "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Repository/Interfaces"

	"golang.org/x/crypto/bcrypt"
)

// AuthService aggregates registration and login
type AuthService struct {
	userRepo   interfaces.UserRepository
	jwtService *jwt.Service
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo interfaces.UserRepository, jwtService *jwt.Service) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register registers a new user
func (s *AuthService) Register(ctx context.Context, email, password string) (*iotmodels.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &iotmodels.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	// The unique constraint on email is the authority; the repository maps a
	// duplicate insert to ErrEmailExists.
	return s.userRepo.Create(ctx, user)
}

// Login authenticates a user and mints a bearer token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*api_models.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.Mint(user.UserID)
	if err != nil {
		return nil, err
	}

	return &api_models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	}, nil
}
