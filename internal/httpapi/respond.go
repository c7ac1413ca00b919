// Package httpapi carries the HTTP plumbing shared by every feature handler:
// JSON responses, domain-error mapping, auth/identity context, request
// logging, panic recovery and per-user rate limiting.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"studyflow.app/server/internal/common"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// Error writes a JSON error body.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorResponse{Error: msg})
}

// DomainError maps the shared sentinel errors onto HTTP status codes.
// Unknown errors become an opaque 500; the cause is logged, not leaked.
func DomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrItemAlreadyOwned),
		errors.Is(err, common.ErrEmailTaken):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrInsufficientXP),
		errors.Is(err, common.ErrInvalidDuration):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrDailyLimitReached):
		Error(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, common.ErrNotAuthenticated),
		errors.Is(err, common.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	default:
		log.WithError(err).Error("Unhandled error in request")
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}

// Decode parses a JSON request body into dst.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
