// Package store — handlers.go exposes the catalog and purchase endpoints.
package store

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studyflow.app/server/internal/httpapi"
)

// Handler serves the store endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the store handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the store endpoints on an authenticated router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/store", h.listItems)
	r.Post("/store/purchase", h.purchase)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Catalog(r.Context())
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	if items == nil {
		items = []Item{}
	}
	httpapi.JSON(w, http.StatusOK, items)
}

type purchaseRequest struct {
	ItemID uuid.UUID `json:"item_id"`
}

type purchaseResponse struct {
	Item      Item     `json:"item"`
	XP        int64    `json:"xp"`
	Inventory []string `json:"inventory"`
}

// purchase buys one catalog item.
// POST /api/store/purchase {"item_id": "..."}
func (h *Handler) purchase(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	var req purchaseRequest
	if err := httpapi.Decode(r, &req); err != nil || req.ItemID == uuid.Nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, item, err := h.service.Purchase(r.Context(), userID, req.ItemID)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	httpapi.JSON(w, http.StatusOK, purchaseResponse{
		Item:      *item,
		XP:        state.SpendableXP,
		Inventory: state.Inventory,
	})
}
