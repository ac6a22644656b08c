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

type ClubStore interface {
	List(ctx context.Context, scope models.Scope) ([]*models.Club, error)
	Create(ctx context.Context, c *models.Club) error
	Update(ctx context.Context, scope models.Scope, c *models.Club) error
	Delete(ctx context.Context, scope models.Scope, id int) error
}

type ClubHandler struct {
	Repo ClubStore
}

func NewClubHandler(repo ClubStore) *ClubHandler {
	return &ClubHandler{Repo: repo}
}

func (h *ClubHandler) ListClubs(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())

	clubs, err := h.Repo.List(r.Context(), scope)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, clubs)
}

func (h *ClubHandler) CreateClub(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())

	var c models.Club
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondError(w, apierror.Validation("Cuerpo de la solicitud invalido"))
		return
	}
	if c.Nombre == "" {
		respondError(w, apierror.Validation("El nombre es requerido"))
		return
	}
	c.TelefonoCaso = scope.Tenant(c.TelefonoCaso)

	if err := h.Repo.Create(r.Context(), &c); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *ClubHandler) UpdateClub(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var c models.Club
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondError(w, apierror.Validation("Cuerpo de la solicitud invalido"))
		return
	}
	c.ID = id

	if err := h.Repo.Update(r.Context(), scope, &c); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *ClubHandler) DeleteClub(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Repo.Delete(r.Context(), scope, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
