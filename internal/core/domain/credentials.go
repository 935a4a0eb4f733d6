package domain

import (
	"time"

	"github.com/google/uuid"
)

// Credentials is the durable identity record owned by the auth service.
// It is created on registration and never mutated afterwards.
type Credentials struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
