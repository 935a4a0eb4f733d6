package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the derived user record provisioned from a UserRegisteredEvent.
// Its id is the user id from the auth service; only the provisioner creates
// profiles, only the update path mutates them.
type Profile struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"display_name"`
	Subscriptions []string  `json:"subscriptions"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
