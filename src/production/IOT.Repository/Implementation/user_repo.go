package implementation

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	apperrors "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Errors"
	iotmodels "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create user
func (r *PostgresUserRepository) Create(ctx context.Context, user *iotmodels.User) (*iotmodels.User, error) {
	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}
	user.CreatedAt = time.Now()

	query := `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, user.UserID, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, err
	}

	return user, nil
}

// Read users
func (r *PostgresUserRepository) GetByID(ctx context.Context, userID string) (*iotmodels.User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`

	var user iotmodels.User

	err := r.db.QueryRowContext(ctx, query, userID).Scan(&user.UserID, &user.Email,
		&user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*iotmodels.User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`

	var user iotmodels.User

	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.UserID, &user.Email,
		&user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}
