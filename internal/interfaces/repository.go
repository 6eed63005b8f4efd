package interfaces

import (
	"context"

	"github.com/Stewz00/doc-analysis-api/internal/model"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	// CreateUser inserts the user and fills in its creation time.
	// It returns repository.ErrDuplicateEmail when the email is taken.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// CredentialStore owns user identity records and verifies passwords
type CredentialStore interface {
	Create(ctx context.Context, email, rawPassword string, fullName *string) (uuid.UUID, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	VerifyPassword(user *model.User, rawPassword string) bool
}

// DocumentStore keeps uploaded order documents. Upload returns the object's
// URL; deleting a missing key succeeds.
type DocumentStore interface {
	Upload(ctx context.Context, data []byte, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
