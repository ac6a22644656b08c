package handlers

import (
	"encoding/json"
	"net/http"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/middleware"
	"botpanel-backend/internal/services"
)

type TOTPHandler struct {
	Service *services.TOTPService
}

func NewTOTPHandler(s *services.TOTPService) *TOTPHandler {
	return &TOTPHandler{Service: s}
}

// Setup starts 2FA enrollment for the session account.
func (h *TOTPHandler) Setup(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		respondError(w, apierror.Unauthenticated("No hay sesion activa"))
		return
	}
	if account.TOTPEnabled {
		respondError(w, apierror.Validation("2FA ya esta habilitado"))
		return
	}

	resp, err := h.Service.GenerateSetup(r.Context(), account)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Enable verifies the first code and turns 2FA on.
func (h *TOTPHandler) Enable(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		respondError(w, apierror.Unauthenticated("No hay sesion activa"))
		return
	}

	var req struct {
		Codigo string `json:"codigo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Codigo == "" {
		respondError(w, apierror.Validation("El codigo es requerido"))
		return
	}

	if err := h.Service.VerifyAndEnable(r.Context(), account.ID, req.Codigo); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"enabled": true})
}

// Disable turns 2FA off after re-verifying a current code.
func (h *TOTPHandler) Disable(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		respondError(w, apierror.Unauthenticated("No hay sesion activa"))
		return
	}

	var req struct {
		Codigo string `json:"codigo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Codigo == "" {
		respondError(w, apierror.Validation("El codigo es requerido"))
		return
	}

	if err := h.Service.Disable(r.Context(), account.ID, req.Codigo); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"enabled": false})
}
