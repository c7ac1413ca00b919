// Package profile serves the user's own profile and the public view of
// other users.
package profile

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Profile is the full owner-facing view of a profiles row.
type Profile struct {
	ID          uuid.UUID       `json:"id"`
	Email       string          `json:"email"`
	FullName    string          `json:"full_name"`
	AvatarURL   *string         `json:"avatar_url"`
	XP          int64           `json:"xp"`
	LifetimeXP  int64           `json:"lifetime_xp"`
	Level       int             `json:"level"`
	Streak      int             `json:"streak"`
	Inventory   []string        `json:"inventory"`
	Pro         bool            `json:"pro"`
	Preferences json.RawMessage `json:"preferences"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PublicProfile is what other users may see. No email, no quota state,
// no preferences.
type PublicProfile struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	AvatarURL  *string   `json:"avatar_url"`
	LifetimeXP int64     `json:"lifetime_xp"`
	Level      int       `json:"level"`
	Streak     int       `json:"streak"`
	CreatedAt  time.Time `json:"created_at"`
}
