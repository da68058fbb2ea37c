package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/consultavoz/backend/internal/model/profile"
	"github.com/consultavoz/backend/internal/store"
	"github.com/consultavoz/backend/pkg/utils"
)

// ProfileFinder abstracts the usuarios lookup for testing.
type ProfileFinder interface {
	FindByIDGeneral(ctx context.Context, idGeneral string) ([]profile.Profile, error)
}

// CredentialMinter abstracts the provider credential request.
type CredentialMinter interface {
	Mint(ctx context.Context) (json.RawMessage, error)
}

// Handler serves the two gateway endpoints the client depends on.
type Handler struct {
	profiles ProfileFinder
	tokens   CredentialMinter
}

// New creates the gateway handler.
func New(profiles ProfileFinder, tokens CredentialMinter) *Handler {
	return &Handler{profiles: profiles, tokens: tokens}
}

// RegisterRoutes wires the gateway endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/token", h.handleToken)
	r.Get("/usuarios", h.handleUsuarios)
}

// handleToken proxies the provider's session-credential endpoint and relays
// its JSON verbatim.
func (h *Handler) handleToken(w http.ResponseWriter, r *http.Request) {
	raw, err := h.tokens.Mint(r.Context())
	if err != nil {
		log.Printf("[gateway] token request failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Error interno del servidor.")
		return
	}
	utils.RespondRaw(w, http.StatusOK, raw)
}

// handleUsuarios returns the matching profile rows as a JSON array.
func (h *Handler) handleUsuarios(w http.ResponseWriter, r *http.Request) {
	idGeneral := r.URL.Query().Get("idGeneral")
	if idGeneral == "" {
		utils.RespondError(w, http.StatusBadRequest, "Faltante 'idGeneral' en la consulta.")
		return
	}

	log.Printf("[gateway] consultando usuarios idGeneral=%s", idGeneral)

	rows, err := h.profiles.FindByIDGeneral(r.Context(), idGeneral)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "No se encontraron registros.")
			return
		}
		log.Printf("[gateway] usuarios query failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Error interno del servidor.")
		return
	}

	utils.RespondJSON(w, http.StatusOK, rows)
}
