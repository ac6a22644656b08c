package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/middleware"
	"botpanel-backend/internal/models"

	"github.com/gorilla/mux"
)

type ChatUserStore interface {
	List(ctx context.Context, scope models.Scope, estado string) ([]*models.ChatUser, error)
	UpdateEstado(ctx context.Context, scope models.Scope, id int, estado string) (*models.ChatUser, error)
	Delete(ctx context.Context, scope models.Scope, id int) error
}

// ChatUserHandler manages approval of the chatbot's end users.
type ChatUserHandler struct {
	Repo ChatUserStore
}

func NewChatUserHandler(repo ChatUserStore) *ChatUserHandler {
	return &ChatUserHandler{Repo: repo}
}

// ListChatUsers returns visible end users, optionally filtered with
// ?estado=pendiente|aprobado|rechazado.
func (h *ChatUserHandler) ListChatUsers(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	estado := r.URL.Query().Get("estado")

	if estado != "" && estado != models.UsuarioPendiente && estado != models.UsuarioAprobado && estado != models.UsuarioRechazado {
		respondError(w, apierror.Validation("Estado invalido"))
		return
	}

	users, err := h.Repo.List(r.Context(), scope, estado)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// UpdateEstado approves or rejects an end user.
func (h *ChatUserHandler) UpdateEstado(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req struct {
		Estado string `json:"estado"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apierror.Validation("Cuerpo de la solicitud invalido"))
		return
	}
	if req.Estado != models.UsuarioAprobado && req.Estado != models.UsuarioRechazado && req.Estado != models.UsuarioPendiente {
		respondError(w, apierror.Validation("Estado invalido"))
		return
	}

	user, err := h.Repo.UpdateEstado(r.Context(), scope, id, req.Estado)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *ChatUserHandler) DeleteChatUser(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Repo.Delete(r.Context(), scope, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
