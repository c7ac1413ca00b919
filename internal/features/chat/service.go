// Package chat — service.go runs the tutor conversation flow: gate check,
// persist the user turn, count it, generate and persist the reply.
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"studyflow.app/server/internal/ai"
	"studyflow.app/server/internal/common"
)

// How much conversation history is sent as generation context.
const historyContextTurns = 20

// Service owns the chat feature.
type Service struct {
	repo      *Repository
	generator ai.Generator
	quota     int
}

// NewService creates the chat service. quota is the daily message limit for
// non-pro accounts.
func NewService(repo *Repository, generator ai.Generator, quota int) *Service {
	return &Service{repo: repo, generator: generator, quota: quota}
}

// SendResult is the outcome of one tutor exchange.
type SendResult struct {
	UserMessage  Message  `json:"user_message"`
	ModelMessage *Message `json:"model_message,omitempty"`
	Remaining    int      `json:"remaining_today"`
}

// Send runs one exchange with the tutor.
//
// The gate is checked, the user turn is persisted and counted, then the
// reply is generated. Only user-authored turns consume quota; a failed
// generation does not refund the turn (the user message is already stored).
func (s *Service) Send(ctx context.Context, userID uuid.UUID, text string) (*SendResult, error) {
	if text == "" {
		return nil, fmt.Errorf("empty message")
	}

	now := time.Now()
	usage, err := s.repo.GetUsage(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Gate check. The rollover may have mutated the state even when the
	// send is denied; persist it either way so stale counters get cleared.
	rolled, allowed := usage.CanSend(now, s.quota)
	if rolled != usage {
		if err := s.repo.SaveUsage(ctx, userID, rolled); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to persist quota rollover")
		}
	}
	if !allowed {
		return nil, common.ErrDailyLimitReached
	}

	history, err := s.repo.ListMessages(ctx, userID)
	if err != nil {
		return nil, err
	}

	userMsg := Message{
		ID:        uuid.New(),
		Role:      ai.RoleUser,
		Content:   text,
		CreatedAt: now,
	}
	if err := s.repo.InsertMessage(ctx, userID, userMsg); err != nil {
		return nil, err
	}

	// Re-verify immediately before counting: two rapid sends may both have
	// passed the earlier check. Best-effort — the quota is a soft limit,
	// not a security boundary.
	recheck, stillAllowed := rolled.CanSend(time.Now(), s.quota)
	if !stillAllowed {
		return nil, common.ErrDailyLimitReached
	}
	counted := recheck.RecordSent(time.Now())
	if counted != recheck { // pro accounts never mutate, nothing to save
		if err := s.repo.SaveUsage(ctx, userID, counted); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to persist quota count")
		}
	}

	result := &SendResult{
		UserMessage: userMsg,
		Remaining:   counted.Remaining(time.Now(), s.quota),
	}

	// Build generation context: trailing history plus the new turn.
	turns := make([]ai.Turn, 0, historyContextTurns+1)
	start := 0
	if len(history) > historyContextTurns {
		start = len(history) - historyContextTurns
	}
	for _, m := range history[start:] {
		turns = append(turns, ai.Turn{Role: m.Role, Text: m.Content})
	}
	turns = append(turns, ai.Turn{Role: ai.RoleUser, Text: text})

	reply, err := s.generator.Generate(ctx, turns)
	if err != nil {
		// The user turn is stored and counted; the reply just failed.
		log.WithError(err).WithField("user_id", userID).Error("Tutor reply generation failed")
		return result, fmt.Errorf("tutor is unavailable: %w", err)
	}

	modelMsg := Message{
		ID:        uuid.New(),
		Role:      ai.RoleModel,
		Content:   reply,
		CreatedAt: time.Now(),
	}
	if err := s.repo.InsertMessage(ctx, userID, modelMsg); err != nil {
		// Reply shown but not stored; acceptable, history heals next turn.
		log.WithError(err).WithField("user_id", userID).Warn("Failed to persist model reply")
	}
	result.ModelMessage = &modelMsg

	return result, nil
}

// History returns the stored conversation.
func (s *Service) History(ctx context.Context, userID uuid.UUID) ([]Message, error) {
	return s.repo.ListMessages(ctx, userID)
}

// Clear wipes the stored conversation.
func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.repo.DeleteMessages(ctx, userID)
}

// QuotaStatus reports the gate state for the client's counter badge.
// The lazy rollover applies here too: asking on a new day clears stale state.
func (s *Service) QuotaStatus(ctx context.Context, userID uuid.UUID) (Usage, int, error) {
	usage, err := s.repo.GetUsage(ctx, userID)
	if err != nil {
		return Usage{}, 0, err
	}

	now := time.Now()
	rolled, _ := usage.CanSend(now, s.quota)
	if rolled != usage {
		if err := s.repo.SaveUsage(ctx, userID, rolled); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to persist quota rollover")
		}
	}
	return rolled, rolled.Remaining(now, s.quota), nil
}
