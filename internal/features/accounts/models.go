// Package accounts handles registration, login and token refresh.
package accounts

import (
	"time"

	"github.com/google/uuid"
)

// Account is the credential side of a profile row.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TokenPair is returned by every successful auth operation.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
