package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"botpanel-backend/internal/apierror"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// respondError translates any error into its taxonomy status and a
// client-safe JSON body. Internal causes are logged, never echoed.
func respondError(w http.ResponseWriter, err error) {
	status := apierror.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("[API] Error interno: %v", err)
	}
	respondJSON(w, status, map[string]string{"error": apierror.Message(err)})
}
