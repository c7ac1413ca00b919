package leaderboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"studyflow.app/server/internal/httpapi"
)

// Handler serves the leaderboard endpoint.
type Handler struct {
	service *Service
}

// NewHandler creates the leaderboard handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the leaderboard endpoint on an authenticated
// router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/leaderboard", h.top)
}

// top returns the visible window plus the caller's own rank.
// GET /api/leaderboard
func (h *Handler) top(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	board, err := h.service.Top(r.Context(), userID)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	httpapi.JSON(w, http.StatusOK, board)
}
