package jwt

import (
	"testing"
	"time"

	api_models "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models/api"
)

func newTestService(duration time.Duration) *Service {
	return NewService(api_models.Config{
		SecretKey:     "test-secret",
		TokenDuration: duration,
		Issuer:        "test",
	})
}

func TestMintAndValidate_Success(t *testing.T) {
	t.Parallel()

	svc := newTestService(time.Hour)

	tok, expiresAt, err := svc.Mint("user-123")
	if err != nil {
		t.Fatalf("Mint error: %v", err)
	}
	if expiresAt <= time.Now().Unix() {
		t.Fatalf("expiresAt %d is not in the future", expiresAt)
	}

	userID, err := svc.Validate(tok)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("userID mismatch: got %q want %q", userID, "user-123")
	}
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	svc := newTestService(-1 * time.Second)

	tok, _, err := svc.Mint("u1")
	if err != nil {
		t.Fatalf("Mint error: %v", err)
	}

	_, err = svc.Validate(tok)
	if err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := newTestService(time.Hour).Mint("u2")
	if err != nil {
		t.Fatalf("Mint error: %v", err)
	}

	other := NewService(api_models.Config{SecretKey: "other-secret", TokenDuration: time.Hour, Issuer: "test"})
	_, err = other.Validate(tok)
	if err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidate_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := newTestService(time.Hour).Validate("not.a.jwt")
	if err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
