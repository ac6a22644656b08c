package handlers

import (
	"context"
	"net/http"
	"time"
)

const readinessPingTimeout = 2 * time.Second

// DBPinger is the slice of pgxpool.Pool the readiness probe needs.
type DBPinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	DB DBPinger
}

func NewHealthHandler(db DBPinger) *HealthHandler {
	return &HealthHandler{DB: db}
}

// BasicHealth answers liveness probes without touching dependencies.
func (h *HealthHandler) BasicHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessHealth pings the database before reporting ready.
func (h *HealthHandler) ReadinessHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessPingTimeout)
	defer cancel()

	start := time.Now()
	err := h.DB.Ping(ctx)
	latencia := time.Since(start).Milliseconds()

	if err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "degradado",
			"base_de_datos": map[string]interface{}{
				"estado":      "sin conexion",
				"latencia_ms": latencia,
			},
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"base_de_datos": map[string]interface{}{
			"estado":      "conectada",
			"latencia_ms": latencia,
		},
	})
}
