// Package progression — handlers.go exposes the ledger over HTTP.
package progression

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"studyflow.app/server/internal/httpapi"
)

// Handler serves the session and progress endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the progression handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the progression endpoints on an authenticated router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.recordSession)
	r.Get("/sessions", h.listSessions)
	r.Get("/sessions/summary", h.weeklySummary)
	r.Get("/progress", h.getProgress)
	r.Post("/me/reset", h.reset)
}

// recordSession credits a completed focus session.
// POST /api/sessions {"duration_minutes": 25, "started_at": "...", "subject_id": "..."}
func (h *Handler) recordSession(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	var in SessionInput
	if err := httpapi.Decode(r, &in); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.RecordSession(r.Context(), userID, in)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	// A failed persist still returns the award; the client shows a transient
	// warning off the persisted flag.
	httpapi.JSON(w, http.StatusCreated, result)
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	sessions, err := h.service.History(r.Context(), userID, limit)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	if sessions == nil {
		sessions = []Session{}
	}
	httpapi.JSON(w, http.StatusOK, sessions)
}

// weeklySummary returns the current week's activity aggregates.
// GET /api/sessions/summary
func (h *Handler) weeklySummary(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	summary, err := h.service.WeeklySummary(r.Context(), userID)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	httpapi.JSON(w, http.StatusOK, summary)
}

func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	overview, err := h.service.GetOverview(r.Context(), userID)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	httpapi.JSON(w, http.StatusOK, overview)
}

// reset is the explicit full data wipe.
func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	if err := h.service.Reset(r.Context(), userID); err != nil {
		httpapi.DomainError(w, err)
		return
	}
	httpapi.JSON(w, http.StatusOK, map[string]bool{"reset": true})
}
