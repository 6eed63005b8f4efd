package test

import (
	"context"
	"sync"
	"time"

	"github.com/Stewz00/doc-analysis-api/internal/interfaces"
	"github.com/Stewz00/doc-analysis-api/internal/model"
	"github.com/Stewz00/doc-analysis-api/internal/repository"
)

// MockUserRepository is an in-memory UserRepository. The mutex gives it the
// same unique-email guarantee the database index provides.
type MockUserRepository struct {
	mu    sync.Mutex
	users map[string]*model.User

	// Err, when set, is returned by every call.
	Err error
}

// Verify that MockUserRepository implements UserRepository interface
var _ interfaces.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*model.User),
	}
}

// CreateUser mocks creating a new user
func (r *MockUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	if _, exists := r.users[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}

	user.Created = time.Now()
	stored := *user
	r.users[user.Email] = &stored
	return nil
}

// GetUserByEmail mocks retrieving a user by email
func (r *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	user, exists := r.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	found := *user
	return &found, nil
}

// Len returns the number of stored users
func (r *MockUserRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}
