// Package leaderboard ranks users by lifetime XP.
package leaderboard

import "github.com/google/uuid"

// Entry is one leaderboard row, hydrated with display fields.
type Entry struct {
	Rank       int       `json:"rank"`
	UserID     uuid.UUID `json:"user_id"`
	FullName   string    `json:"full_name"`
	AvatarURL  *string   `json:"avatar_url"`
	LifetimeXP int64     `json:"lifetime_xp"`
	Level      int       `json:"level"`
	Streak     int       `json:"streak"`
}

// Board is the response for the leaderboard endpoint. Me is the caller's
// own entry even when they are outside the visible window; nil when they
// have no XP yet.
type Board struct {
	Entries []Entry `json:"entries"`
	Me      *Entry  `json:"me,omitempty"`
}
