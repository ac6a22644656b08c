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

type BankStore interface {
	List(ctx context.Context, scope models.Scope) ([]*models.Bank, error)
	Create(ctx context.Context, b *models.Bank) error
	Update(ctx context.Context, scope models.Scope, b *models.Bank) error
	Delete(ctx context.Context, scope models.Scope, id int) error
}

type BankHandler struct {
	Repo BankStore
}

func NewBankHandler(repo BankStore) *BankHandler {
	return &BankHandler{Repo: repo}
}

func (h *BankHandler) ListBanks(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())

	banks, err := h.Repo.List(r.Context(), scope)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, banks)
}

func (h *BankHandler) CreateBank(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())

	var b models.Bank
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		respondError(w, apierror.Validation("Cuerpo de la solicitud invalido"))
		return
	}
	if b.Banco == "" || b.NumeroCuenta == "" {
		respondError(w, apierror.Validation("Banco y numero de cuenta son requeridos"))
		return
	}
	b.TelefonoCaso = scope.Tenant(b.TelefonoCaso)

	if err := h.Repo.Create(r.Context(), &b); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

func (h *BankHandler) UpdateBank(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var b models.Bank
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		respondError(w, apierror.Validation("Cuerpo de la solicitud invalido"))
		return
	}
	b.ID = id

	if err := h.Repo.Update(r.Context(), scope, &b); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (h *BankHandler) DeleteBank(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Repo.Delete(r.Context(), scope, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
