package accounts

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"studyflow.app/server/internal/httpapi"
)

const minPasswordLength = 8

// Handler serves the public auth endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the accounts handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the auth endpoints. These live outside the
// authenticated group.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
	r.Post("/auth/refresh", h.refresh)
}

type registerRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type authResponse struct {
	User   *Account   `json:"user,omitempty"`
	Tokens *TokenPair `json:"tokens"`
}

// register creates an account.
// POST /auth/register {"email": "...", "full_name": "...", "password": "..."}
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	switch {
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		httpapi.Error(w, http.StatusBadRequest, "a valid email is required")
		return
	case req.FullName == "":
		httpapi.Error(w, http.StatusBadRequest, "full_name is required")
		return
	case len(req.Password) < minPasswordLength:
		httpapi.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	acc, tokens, err := h.service.Register(r.Context(), req.Email, req.FullName, req.Password)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	httpapi.JSON(w, http.StatusCreated, authResponse{User: acc, Tokens: tokens})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login verifies credentials.
// POST /auth/login {"email": "...", "password": "..."}
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acc, tokens, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	httpapi.JSON(w, http.StatusOK, authResponse{User: acc, Tokens: tokens})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// refresh exchanges a refresh token for a new pair.
// POST /auth/refresh {"refresh_token": "..."}
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := httpapi.Decode(r, &req); err != nil || req.RefreshToken == "" {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	httpapi.JSON(w, http.StatusOK, authResponse{Tokens: tokens})
}
