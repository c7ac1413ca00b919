package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"studyflow.app/server/internal/auth"
	"studyflow.app/server/internal/common"
)

// Service implements the auth flows.
type Service struct {
	repo   *Repository
	tokens *auth.TokenManager
}

// NewService creates the accounts service.
func NewService(repo *Repository, tokens *auth.TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates an account and signs the first token pair.
func (s *Service) Register(ctx context.Context, email, fullName, password string) (*Account, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	acc, err := s.repo.Create(ctx, email, fullName, hash)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(acc)
	if err != nil {
		return nil, nil, err
	}

	log.WithFields(log.Fields{
		"user_id": acc.ID,
		"email":   acc.Email,
	}).Info("Account registered")

	return acc, pair, nil
}

// Login verifies credentials and signs a token pair.
func (s *Service) Login(ctx context.Context, email, password string) (*Account, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	acc, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and wrong password.
		return nil, nil, common.ErrInvalidCredentials
	}
	if !auth.CheckPassword(acc.PasswordHash, password) {
		return nil, nil, common.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(acc)
	if err != nil {
		return nil, nil, err
	}
	return acc, pair, nil
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, common.ErrNotAuthenticated
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, common.ErrNotAuthenticated
	}

	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, common.ErrNotAuthenticated
	}

	return s.issueTokens(acc)
}

func (s *Service) issueTokens(acc *Account) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(acc.ID.String(), acc.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(acc.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
