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

type ConversationHandler struct {
	Service *services.ConversationService
}

func NewConversationHandler(s *services.ConversationService) *ConversationHandler {
	return &ConversationHandler{Service: s}
}

// ListConversations returns visible conversations, optionally filtered
// with ?estado=pendiente|completado.
func (h *ConversationHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	estado := r.URL.Query().Get("estado")

	conversations, err := h.Service.List(r.Context(), scope, estado)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, conversations)
}

func (h *ConversationHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	guid := mux.Vars(r)["guid"]

	conversation, err := h.Service.Get(r.Context(), scope, guid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, conversation)
}

// EnviarRespuesta completes a pending conversation and forwards the
// reply to the chatbot callback.
func (h *ConversationHandler) EnviarRespuesta(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		respondError(w, apierror.Unauthenticated("No hay sesion activa"))
		return
	}

	var req models.EnviarRespuestaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apierror.Validation("Cuerpo de la solicitud invalido"))
		return
	}

	conversation, err := h.Service.EnviarRespuesta(r.Context(), scope, account.Usuario, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, conversation)
}

// Imagen streams the conversation's inline image with its real content
// type.
func (h *ConversationHandler) Imagen(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	guid := mux.Vars(r)["guid"]

	contentType, data, err := h.Service.Imagen(r.Context(), scope, guid)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// Video streams the conversation's inline video.
func (h *ConversationHandler) Video(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	guid := mux.Vars(r)["guid"]

	contentType, data, err := h.Service.Video(r.Context(), scope, guid)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
