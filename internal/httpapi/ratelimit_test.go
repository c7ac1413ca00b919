package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"studyflow.app/server/internal/auth"
)

func limitedHandler(rl *RateLimiter) http.Handler {
	return rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func authedRequest(userID uuid.UUID, remoteAddr string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/progress", nil)
	r.RemoteAddr = remoteAddr
	claims := &auth.Claims{UserID: userID.String()}
	return r.WithContext(context.WithValue(r.Context(), userContextKey, claims))
}

func TestLimiterKeysAuthenticatedRequestsByUser(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Close()
	h := limitedHandler(rl)
	userID := uuid.New()

	// Same user from two different addresses shares one quota.
	for i, addr := range []string{"10.0.0.1:1111", "10.0.0.2:2222"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, authedRequest(userID, addr))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(userID, "10.0.0.3:3333"))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("third request for same user: status = %d, want 429", rec.Code)
	}

	// Another user is not affected by the first user's exhausted quota.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(uuid.New(), "10.0.0.1:1111"))
	if rec.Code != http.StatusOK {
		t.Errorf("other user: status = %d, want 200", rec.Code)
	}
}

func TestLimiterKeysAnonymousRequestsByIP(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Close()
	h := limitedHandler(rl)

	first := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	first.RemoteAddr = "203.0.113.7:4000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: status = %d, want 200", rec.Code)
	}

	// Same address again, different port: still one client.
	second := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	second.RemoteAddr = "203.0.113.7:4001"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, second)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("same ip: status = %d, want 429", rec.Code)
	}

	// A different address has its own quota.
	third := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	third.RemoteAddr = "203.0.113.8:4000"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, third)
	if rec.Code != http.StatusOK {
		t.Errorf("other ip: status = %d, want 200", rec.Code)
	}
}

func TestClientKeyPrefersUserOverIP(t *testing.T) {
	userID := uuid.New()
	if got := clientKey(authedRequest(userID, "10.0.0.1:1111")); got != "u:"+userID.String() {
		t.Errorf("authenticated key = %q, want user-keyed", got)
	}

	anon := httptest.NewRequest(http.MethodGet, "/health", nil)
	anon.RemoteAddr = "10.0.0.1:1111"
	if got := clientKey(anon); got != "ip:10.0.0.1" {
		t.Errorf("anonymous key = %q, want ip:10.0.0.1", got)
	}
}
