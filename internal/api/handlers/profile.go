package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ygglist/ygglist/internal/api/middleware"
	"github.com/ygglist/ygglist/internal/domain"
	"github.com/ygglist/ygglist/internal/storage"
)

// ProfileHandler handles the session stub, favorites and preferences. The
// "login" is just a locally stored display name; there is no auth.
type ProfileHandler struct {
	store *storage.Store
	log   zerolog.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(store *storage.Store, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{store: store, log: log}
}

// GetSession handles GET /api/session
func (h *ProfileHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"session": h.store.Session(),
	})
}

// Login handles POST /api/session
func (h *ProfileHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Informe o nome")
		return
	}

	session := &domain.Session{Name: name}
	h.store.SetSession(session)
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"session": session})
}

// Logout handles DELETE /api/session
func (h *ProfileHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.SetSession(nil)
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"session": nil})
}

// GetFavorites handles GET /api/favorites
func (h *ProfileHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	favorites := h.store.Favorites()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// PutFavorites handles PUT /api/favorites
func (h *ProfileHandler) PutFavorites(w http.ResponseWriter, r *http.Request) {
	var favorites []domain.Favorite
	if err := json.NewDecoder(r.Body).Decode(&favorites); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	h.store.SetFavorites(favorites)
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// GetPreferences handles GET /api/preferences
func (h *ProfileHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.store.Preferences())
}

// PutPreferences handles PUT /api/preferences
func (h *ProfileHandler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs domain.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	h.store.SetPreferences(prefs)
	middleware.WriteJSON(w, http.StatusOK, prefs)
}
