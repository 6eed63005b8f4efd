// Package credentials owns user identity records: it hashes passwords on
// creation and verifies them on login. Nothing else writes user records.
package credentials

import (
	"context"
	"fmt"
	"strings"

	"github.com/Stewz00/doc-analysis-api/internal/interfaces"
	"github.com/Stewz00/doc-analysis-api/internal/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Store is the PostgreSQL-agnostic credential store. Persistence is
// delegated to the injected UserRepository.
type Store struct {
	users     interfaces.UserRepository
	cost      int
	dummyHash string
}

var _ interfaces.CredentialStore = (*Store)(nil)

// NewStore creates a credential store hashing with the given bcrypt cost.
// Costs outside bcrypt's range fall back to DefaultCost.
func NewStore(users interfaces.UserRepository, cost int) (*Store, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	// Compared against when the email is unknown, so a missing user costs
	// as much as a wrong password.
	dummy, err := HashPassword(uuid.NewString(), cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &Store{users: users, cost: cost, dummyHash: dummy}, nil
}

// NormalizeEmail trims and lower-cases an email address. Uniqueness is
// enforced on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create hashes rawPassword and persists a new user record. It returns
// repository.ErrDuplicateEmail if the email is already registered.
func (s *Store) Create(ctx context.Context, email, rawPassword string, fullName *string) (uuid.UUID, error) {
	hash, err := HashPassword(rawPassword, s.cost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
		FullName:     fullName,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return uuid.Nil, err
	}

	return user.ID, nil
}

// FindByEmail returns the user registered under email, or
// repository.ErrUserNotFound.
func (s *Store) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.users.GetUserByEmail(ctx, NormalizeEmail(email))
}

// VerifyPassword reports whether rawPassword matches the user's stored hash.
// A nil user never matches.
func (s *Store) VerifyPassword(user *model.User, rawPassword string) bool {
	if user == nil {
		VerifyPassword(s.dummyHash, rawPassword)
		return false
	}
	return VerifyPassword(user.PasswordHash, rawPassword)
}
