package auth

import (
	"testing"
	"time"
)

func TestAccessTokenRoundtrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "a@b.c")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@b.c" {
		t.Errorf("claims = %q/%q, want user-1/a@b.c", claims.UserID, claims.Email)
	}
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "a@b.c")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	signer := NewTokenManager("secret-a", time.Hour, 24*time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour, 24*time.Hour)

	token, err := signer.GenerateAccessToken("user-1", "a@b.c")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := verifier.ValidateAccessToken(token); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, 24*time.Hour)

	refresh, err := m.GenerateRefreshToken("user-1")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	userID, err := m.ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("subject = %q, want user-1", userID)
	}
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "correct horse battery staple") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("wrong password accepted")
	}
}
