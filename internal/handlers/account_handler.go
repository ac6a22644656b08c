package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/middleware"
	"botpanel-backend/internal/models"
	"botpanel-backend/internal/services"

	"github.com/gorilla/mux"
)

// AccountHandler manages panel accounts. Admin only; the router mounts
// it behind RequireAdmin.
type AccountHandler struct {
	Service *services.AccountService
}

func NewAccountHandler(s *services.AccountService) *AccountHandler {
	return &AccountHandler{Service: s}
}

func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Service.ListAccounts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	account, err := h.Service.GetAccount(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apierror.Validation("Cuerpo de la solicitud invalido"))
		return
	}

	account, err := h.Service.CreateAccount(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, account)
}

func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apierror.Validation("Cuerpo de la solicitud invalido"))
		return
	}

	account, err := h.Service.UpdateAccount(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	caller, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		respondError(w, apierror.Unauthenticated("No hay sesion activa"))
		return
	}

	if err := h.Service.DeleteAccount(r.Context(), caller.ID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
