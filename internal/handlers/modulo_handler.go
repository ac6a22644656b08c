package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"botpanel-backend/internal/cache"
	"botpanel-backend/internal/models"
)

const moduloCacheTTL = 10 * time.Minute

type ModuloStore interface {
	List(ctx context.Context) ([]*models.Modulo, error)
}

// ModuloHandler serves the module catalog. The catalog changes only on
// deploys, so it sits in Redis with a long TTL.
type ModuloHandler struct {
	Repo ModuloStore
}

func NewModuloHandler(repo ModuloStore) *ModuloHandler {
	return &ModuloHandler{Repo: repo}
}

func (h *ModuloHandler) ListModulos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if data, ok := cache.GetCached(ctx, cache.ModulosKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	modulos, err := h.Repo.List(ctx)
	if err != nil {
		respondError(w, err)
		return
	}

	data, err := json.Marshal(modulos)
	if err != nil {
		respondError(w, err)
		return
	}
	cache.SetCached(ctx, cache.ModulosKey, data, moduloCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
