package profile

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studyflow.app/server/internal/httpapi"
)

// Handler serves the profile endpoints.
type Handler struct {
	service  *Service
	maxBytes int64
}

// NewHandler creates the profile handler. maxBytes caps avatar uploads.
func NewHandler(service *Service, maxBytes int64) *Handler {
	return &Handler{service: service, maxBytes: maxBytes}
}

// RegisterRoutes mounts the profile endpoints on an authenticated router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/me", h.me)
	r.Patch("/me", h.update)
	r.Post("/me/avatar", h.uploadAvatar)
	r.Get("/profiles/{id}", h.publicProfile)
}

// me returns the caller's own profile.
// GET /api/me
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	p, err := h.service.Get(r.Context(), userID)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	httpapi.JSON(w, http.StatusOK, p)
}

// update applies a partial edit to the caller's profile.
// PATCH /api/me {"full_name": "...", "preferences": {...}}
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	var in UpdateInput
	if err := httpapi.Decode(r, &in); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.FullName != nil && strings.TrimSpace(*in.FullName) == "" {
		httpapi.Error(w, http.StatusBadRequest, "full_name must not be empty")
		return
	}
	if len(in.Preferences) > 0 && !json.Valid(in.Preferences) {
		httpapi.Error(w, http.StatusBadRequest, "preferences must be valid JSON")
		return
	}

	p, err := h.service.Update(r.Context(), userID, in)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	httpapi.JSON(w, http.StatusOK, p)
}

// uploadAvatar replaces the caller's avatar image. The body is the raw
// image; Content-Type selects the format.
// POST /api/me/avatar
func (h *Handler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBytes))
	if err != nil {
		httpapi.Error(w, http.StatusRequestEntityTooLarge, "avatar too large")
		return
	}
	if len(data) == 0 {
		httpapi.Error(w, http.StatusBadRequest, "empty body")
		return
	}
	contentType := r.Header.Get("Content-Type")
	if !SupportedImage(contentType) {
		httpapi.Error(w, http.StatusUnsupportedMediaType, "avatar must be jpeg, png or webp")
		return
	}

	p, err := h.service.SetAvatar(r.Context(), userID, data, contentType)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	httpapi.JSON(w, http.StatusOK, p)
}

// publicProfile returns the reduced view of any user.
// GET /api/profiles/{id}
func (h *Handler) publicProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	p, err := h.service.GetPublic(r.Context(), id)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	httpapi.JSON(w, http.StatusOK, p)
}
