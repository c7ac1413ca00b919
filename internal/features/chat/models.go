// Package chat — models.go describes stored chat turns.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message is one persisted chat turn, user- or model-authored.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"` // "user" or "model"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
