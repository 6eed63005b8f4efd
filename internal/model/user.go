package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string  // bcrypt
	FullName     *string // optional display name
	Created      time.Time
}
