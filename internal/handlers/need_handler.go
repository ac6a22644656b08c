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

type NeedHandler struct {
	Service *services.NeedService
}

func NewNeedHandler(s *services.NeedService) *NeedHandler {
	return &NeedHandler{Service: s}
}

func (h *NeedHandler) ListNeeds(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())

	needs, err := h.Service.List(r.Context(), scope)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, needs)
}

func (h *NeedHandler) GetNeed(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	need, err := h.Service.Get(r.Context(), scope, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, need)
}

func (h *NeedHandler) CreateNeed(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())

	var req models.CreateNeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apierror.Validation("Cuerpo de la solicitud invalido"))
		return
	}

	need, err := h.Service.Create(r.Context(), scope, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, need)
}

func (h *NeedHandler) UpdateNeed(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateNeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apierror.Validation("Cuerpo de la solicitud invalido"))
		return
	}

	need, err := h.Service.Update(r.Context(), scope, id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, need)
}

func (h *NeedHandler) DeleteNeed(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.Delete(r.Context(), scope, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
