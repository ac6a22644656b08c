package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/cache"
	"botpanel-backend/internal/models"
	"botpanel-backend/internal/webhook"
)

// Conversations also change from the chatbot side, so the list cache
// stays short-lived.
const conversacionesCacheTTL = 30 * time.Second

type ConversationRepo interface {
	List(ctx context.Context, scope models.Scope, estado string) ([]*models.Conversation, error)
	Get(ctx context.Context, scope models.Scope, guid string) (*models.Conversation, error)
	Complete(ctx context.Context, scope models.Scope, guid, accionAdmin, respuesta string) (*models.Conversation, error)
}

// RespuestaSender delivers the operator reply to the chatbot callback.
type RespuestaSender interface {
	SendRespuesta(ctx context.Context, enlace string, payload webhook.RespuestaPayload) error
}

type ConversationService struct {
	Repo    ConversationRepo
	Webhook RespuestaSender
}

func NewConversationService(repo ConversationRepo, sender RespuestaSender) *ConversationService {
	return &ConversationService{
		Repo:    repo,
		Webhook: sender,
	}
}

// List returns the conversations visible in the scope, served from the
// per-tenant Redis cache when warm. A scope that cannot match rows
// never touches the cache, so the admin "*" entry stays out of reach of
// phoneless sessions.
func (s *ConversationService) List(ctx context.Context, scope models.Scope, estado string) ([]*models.Conversation, error) {
	if estado != "" && estado != models.ConversacionPendiente && estado != models.ConversacionCompletado {
		return nil, apierror.Validation("Estado invalido")
	}
	if !scope.Visible() {
		return []*models.Conversation{}, nil
	}

	tenant := scope.Telefono
	if scope.All {
		tenant = ""
	}
	key := cache.ConversacionesKey(tenant, estado)

	if data, ok := cache.GetCached(ctx, key); ok {
		var cached []*models.Conversation
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	conversations, err := s.Repo.List(ctx, scope, estado)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(conversations); err == nil {
		cache.SetCached(ctx, key, data, conversacionesCacheTTL)
	}
	return conversations, nil
}

func (s *ConversationService) Get(ctx context.Context, scope models.Scope, guid string) (*models.Conversation, error) {
	if guid == "" {
		return nil, apierror.Validation("El guid es requerido")
	}
	return s.Repo.Get(ctx, scope, guid)
}

// EnviarRespuesta completes a pending conversation and forwards the
// operator reply to the chatbot. The completion is committed before the
// webhook fires; a delivery failure surfaces as upstream_failure but
// the conversation stays completed.
func (s *ConversationService) EnviarRespuesta(ctx context.Context, scope models.Scope, actor string, req *models.EnviarRespuestaRequest) (*models.Conversation, error) {
	if req.GUID == "" {
		return nil, apierror.Validation("El guid es requerido")
	}
	if req.Enlace == "" {
		return nil, apierror.Validation("El enlace es requerido")
	}
	if req.Respuesta == "" {
		return nil, apierror.Validation("La respuesta es requerida")
	}

	conv, err := s.Repo.Complete(ctx, scope, req.GUID, actor, req.Respuesta)
	if err != nil {
		return nil, err
	}

	cache.InvalidateConversacionCaches(ctx)

	if err := s.Webhook.SendRespuesta(ctx, req.Enlace, webhook.RespuestaPayload{
		GUID:      conv.GUID,
		Respuesta: req.Respuesta,
	}); err != nil {
		log.Printf("[Conversaciones] Fallo el envio de la respuesta para %s: %v", conv.GUID, err)
		return nil, err
	}

	return conv, nil
}

// Imagen returns the decoded inline image of a conversation.
func (s *ConversationService) Imagen(ctx context.Context, scope models.Scope, guid string) (string, []byte, error) {
	conv, err := s.Repo.Get(ctx, scope, guid)
	if err != nil {
		return "", nil, err
	}
	if conv.Imagen == "" {
		return "", nil, apierror.NotFound("La conversacion no tiene imagen")
	}
	return models.DecodeDataURL(conv.Imagen)
}

// Video returns the decoded inline video of a conversation.
func (s *ConversationService) Video(ctx context.Context, scope models.Scope, guid string) (string, []byte, error) {
	conv, err := s.Repo.Get(ctx, scope, guid)
	if err != nil {
		return "", nil, err
	}
	if conv.Video == "" {
		return "", nil, apierror.NotFound("La conversacion no tiene video")
	}
	return models.DecodeDataURL(conv.Video)
}
