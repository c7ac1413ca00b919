// Package chat — handlers.go exposes the tutor chat endpoints.
package chat

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"studyflow.app/server/internal/httpapi"
)

// Handler serves the chat endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the chat handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the chat endpoints on an authenticated router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.send)
	r.Get("/chat", h.history)
	r.Delete("/chat", h.clear)
	r.Get("/chat/usage", h.usage)
}

type sendRequest struct {
	Message string `json:"message"`
}

// send runs one exchange with the tutor.
// POST /api/chat {"message": "..."}
func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	var req sendRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		httpapi.Error(w, http.StatusBadRequest, "message must not be empty")
		return
	}

	result, err := h.service.Send(r.Context(), userID, req.Message)
	if err != nil {
		// The user turn may have been stored and counted before the reply
		// failed; surface the partial result with 502 so the client can
		// keep the message in the transcript.
		if result != nil {
			httpapi.JSON(w, http.StatusBadGateway, result)
			return
		}
		httpapi.DomainError(w, err)
		return
	}

	httpapi.JSON(w, http.StatusOK, result)
}

// history returns the stored conversation in chronological order.
// GET /api/chat
func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	messages, err := h.service.History(r.Context(), userID)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	if messages == nil {
		messages = []Message{}
	}
	httpapi.JSON(w, http.StatusOK, messages)
}

// clear wipes the stored conversation.
// DELETE /api/chat
func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	if err := h.service.Clear(r.Context(), userID); err != nil {
		httpapi.DomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type usageResponse struct {
	MessagesToday  int  `json:"messages_today"`
	RemainingToday int  `json:"remaining_today"`
	Pro            bool `json:"pro"`
}

// usage reports the daily gate state for the client's counter badge.
// GET /api/chat/usage
func (h *Handler) usage(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	u, remaining, err := h.service.QuotaStatus(r.Context(), userID)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	httpapi.JSON(w, http.StatusOK, usageResponse{
		MessagesToday:  u.MessageCount,
		RemainingToday: remaining,
		Pro:            u.Pro,
	})
}
