// Package ai is the narrow boundary to the generative backend that powers
// the chat tutor. The engine only needs "turns in, reply out"; everything
// about generation stays behind the Generator interface so the rest of the
// service can be tested without network access.
package ai

import "context"

// Role of one chat turn.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one message of the conversation sent as generation context.
type Turn struct {
	Role string
	Text string
}

// Generator produces a tutor reply for a conversation.
type Generator interface {
	Generate(ctx context.Context, turns []Turn) (string, error)
}
