package handlers

import (
	"context"
	"net/http"
	"strconv"

	"botpanel-backend/internal/middleware"
	"botpanel-backend/internal/models"

	"github.com/gorilla/mux"
)

type FormStore interface {
	List(ctx context.Context, scope models.Scope) ([]*models.FormSubmission, error)
	Get(ctx context.Context, scope models.Scope, id int) (*models.FormSubmission, error)
	Delete(ctx context.Context, scope models.Scope, id int) error
}

// FormHandler exposes contact form submissions, read and delete only.
type FormHandler struct {
	Repo FormStore
}

func NewFormHandler(repo FormStore) *FormHandler {
	return &FormHandler{Repo: repo}
}

func (h *FormHandler) ListForms(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())

	forms, err := h.Repo.List(r.Context(), scope)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, forms)
}

func (h *FormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	form, err := h.Repo.Get(r.Context(), scope, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, form)
}

func (h *FormHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Repo.Delete(r.Context(), scope, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
