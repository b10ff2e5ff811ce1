// Package handlers implements the HTTP endpoints of the API server.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ygglist/ygglist/internal/api/middleware"
	"github.com/ygglist/ygglist/internal/domain"
	"github.com/ygglist/ygglist/internal/list"
	"github.com/ygglist/ygglist/internal/storage"
)

// ListsHandler handles the bucket and list/cart endpoints.
type ListsHandler struct {
	store   *storage.Store
	manager *list.Manager
	log     zerolog.Logger
}

// NewListsHandler creates a new lists handler.
func NewListsHandler(store *storage.Store, manager *list.Manager, log zerolog.Logger) *ListsHandler {
	return &ListsHandler{store: store, manager: manager, log: log}
}

// Index handles GET /api/lists
func (h *ListsHandler) Index(w http.ResponseWriter, r *http.Request) {
	keys := h.store.BucketKeys()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"buckets": keys,
		"count":   len(keys),
	})
}

// View handles GET /api/lists/{location}/{date}
func (h *ListsHandler) View(w http.ResponseWriter, r *http.Request) {
	location, dateISO := chi.URLParam(r, "location"), chi.URLParam(r, "date")
	middleware.WriteJSON(w, http.StatusOK, h.manager.View(location, dateISO))
}

// AddItem handles POST /api/lists/{location}/{date}/items
// With ?cart=1 the item goes straight into the cart.
func (h *ListsHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	location, dateISO := chi.URLParam(r, "location"), chi.URLParam(r, "date")

	var in list.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	toCart := r.URL.Query().Get("cart") == "1"
	item, err := h.manager.Add(location, dateISO, in, toCart)
	if err != nil {
		if errors.Is(err, list.ErrEmptyName) {
			middleware.WriteError(w, http.StatusBadRequest, "Informe o nome do item")
			return
		}
		h.log.Error().Err(err).Msg("Failed to add item")
		middleware.WriteError(w, http.StatusInternalServerError, "Não foi possível adicionar o item")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PATCH /api/lists/{location}/{date}/items/{id}
func (h *ListsHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	location, dateISO := chi.URLParam(r, "location"), chi.URLParam(r, "date")

	var patch domain.ItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	item, err := h.manager.Update(location, dateISO, chi.URLParam(r, "id"), patch)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Item não encontrado")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, item)
}

// RemoveItem handles DELETE /api/lists/{location}/{date}/items/{id}
func (h *ListsHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	location, dateISO := chi.URLParam(r, "location"), chi.URLParam(r, "date")

	if err := h.manager.Remove(location, dateISO, chi.URLParam(r, "id")); err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Item não encontrado")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// Cart handles POST /api/lists/{location}/{date}/cart
// Either {"all": "toCart"|"toList"} or {"id": "...", "inCart": true|false}.
func (h *ListsHandler) Cart(w http.ResponseWriter, r *http.Request) {
	location, dateISO := chi.URLParam(r, "location"), chi.URLParam(r, "date")

	var req struct {
		All    string `json:"all,omitempty"`
		ID     string `json:"id,omitempty"`
		InCart *bool  `json:"inCart,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	switch {
	case req.All == "toCart" || req.All == "toList":
		moved := h.manager.MoveAll(location, dateISO, req.All == "toCart")
		middleware.WriteJSON(w, http.StatusOK, map[string]int{"moved": moved})
	case req.ID != "" && req.InCart != nil:
		item, err := h.manager.ToggleCart(location, dateISO, req.ID, *req.InCart)
		if err != nil {
			middleware.WriteError(w, http.StatusNotFound, "Item não encontrado")
			return
		}
		middleware.WriteJSON(w, http.StatusOK, item)
	default:
		middleware.WriteError(w, http.StatusBadRequest, "Informe all=toCart|toList ou id e inCart")
	}
}

// Finalize handles POST /api/lists/{location}/{date}/finalize
// An empty cart is a no-op and answers 200 with purchase=null.
func (h *ListsHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	location, dateISO := chi.URLParam(r, "location"), chi.URLParam(r, "date")

	p := h.manager.Finalize(location, dateISO)
	if p == nil {
		middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"purchase": nil})
		return
	}

	h.log.Info().Str("store", p.Store).Str("date", p.DateISO).
		Int("items", len(p.Items)).Msg("Purchase finalized")
	middleware.WriteJSON(w, http.StatusCreated, map[string]interface{}{"purchase": p})
}
