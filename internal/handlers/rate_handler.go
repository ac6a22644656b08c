package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/middleware"
	"botpanel-backend/internal/models"
	"botpanel-backend/internal/services"
	"botpanel-backend/internal/timeutil"

	"github.com/gorilla/mux"
)

type RateHandler struct {
	Repo    services.RateRepo
	Reports *services.ReportService
}

func NewRateHandler(repo services.RateRepo, reports *services.ReportService) *RateHandler {
	return &RateHandler{
		Repo:    repo,
		Reports: reports,
	}
}

// ListRates returns visible rates, optionally filtered with
// ?destino=substring (case-insensitive).
func (h *RateHandler) ListRates(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	destino := r.URL.Query().Get("destino")

	rates, err := h.Repo.List(r.Context(), scope, destino)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rates)
}

func (h *RateHandler) CreateRate(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())

	var rate models.Rate
	if err := json.NewDecoder(r.Body).Decode(&rate); err != nil {
		respondError(w, apierror.Validation("Cuerpo de la solicitud invalido"))
		return
	}
	if rate.Origen == "" || rate.Destino == "" {
		respondError(w, apierror.Validation("Origen y destino son requeridos"))
		return
	}
	rate.TelefonoCaso = scope.Tenant(rate.TelefonoCaso)

	if err := h.Repo.Create(r.Context(), &rate); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rate)
}

func (h *RateHandler) UpdateRate(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var rate models.Rate
	if err := json.NewDecoder(r.Body).Decode(&rate); err != nil {
		respondError(w, apierror.Validation("Cuerpo de la solicitud invalido"))
		return
	}
	rate.ID = id

	if err := h.Repo.Update(r.Context(), scope, &rate); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rate)
}

func (h *RateHandler) DeleteRate(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Repo.Delete(r.Context(), scope, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RatesReport streams the visible rate table as a PDF download.
func (h *RateHandler) RatesReport(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	destino := r.URL.Query().Get("destino")

	pdfBytes, err := h.Reports.RatesPDF(r.Context(), scope, destino)
	if err != nil {
		respondError(w, err)
		return
	}

	filename := fmt.Sprintf("tarifas_%s.pdf", timeutil.FormatVET(timeutil.Now(), timeutil.DateLayout))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(pdfBytes)
}
