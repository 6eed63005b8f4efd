package repository

import (
	"context"
	"errors"

	"github.com/Stewz00/doc-analysis-api/internal/database"
	"github.com/Stewz00/doc-analysis-api/internal/interfaces"
	"github.com/Stewz00/doc-analysis-api/internal/model"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// Common errors that can be returned by the repository
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	db *database.DB
}

// Verify that UserRepositoryImpl implements UserRepository interface
var _ interfaces.UserRepository = (*UserRepositoryImpl)(nil)

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *database.DB) interfaces.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// CreateUser creates a new user in the database. Concurrent inserts of the
// same email are serialized by the unique index; the loser gets
// ErrDuplicateEmail.
func (r *UserRepositoryImpl) CreateUser(ctx context.Context, user *model.User) error {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash, full_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		user.ID, user.Email, user.PasswordHash, user.FullName).Scan(&user.Created)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

// GetUserByEmail retrieves a user by their email address
func (r *UserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, email, password_hash, full_name, created_at
		 FROM users
		 WHERE email = $1`,
		email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.Created)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
