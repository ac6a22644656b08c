package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/models"
)

type QuestionRepo interface {
	List(ctx context.Context, scope models.Scope, necesidad string) ([]*models.Question, error)
	Get(ctx context.Context, scope models.Scope, id int) (*models.Question, error)
	Create(ctx context.Context, q *models.Question) error
	SetMediaURLs(ctx context.Context, id int, urlImagen, videoURL string) error
	Update(ctx context.Context, scope models.Scope, id int, req *models.UpdateQuestionRequest) (*models.Question, error)
	Delete(ctx context.Context, scope models.Scope, id int) error
}

type QuestionService struct {
	Repo    QuestionRepo
	BaseURL string
}

func NewQuestionService(repo QuestionRepo, baseURL string) *QuestionService {
	return &QuestionService{
		Repo:    repo,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *QuestionService) List(ctx context.Context, scope models.Scope, necesidad string) ([]*models.Question, error) {
	return s.Repo.List(ctx, scope, necesidad)
}

func (s *QuestionService) Get(ctx context.Context, scope models.Scope, id int) (*models.Question, error) {
	return s.Repo.Get(ctx, scope, id)
}

// Create inserts a question and, when the request carries media
// extensions, derives the public media URLs from the new id and patches
// them back in a second statement.
func (s *QuestionService) Create(ctx context.Context, scope models.Scope, req *models.CreateQuestionRequest) (*models.Question, error) {
	if req.Pregunta == "" {
		return nil, apierror.Validation("La pregunta es requerida")
	}
	if req.Necesidad == "" {
		return nil, apierror.Validation("La necesidad es requerida")
	}

	q := &models.Question{
		TelefonoCaso: scope.Tenant(req.TelefonoCaso),
		Categoria:    req.Categoria,
		Necesidad:    req.Necesidad,
		Pregunta:     req.Pregunta,
		Respuesta:    req.Respuesta,
		Variante:     models.JoinVariantes(req.Variantes),
		URLImagen:    req.URLImagen,
		VideoURL:     req.VideoURL,
		Habilitado:   req.Respuesta != "",
	}

	if err := s.Repo.Create(ctx, q); err != nil {
		return nil, err
	}

	if req.ImagenExt != "" || req.VideoExt != "" {
		if req.ImagenExt != "" {
			q.URLImagen = s.MediaURL("pregunta", q.ID, req.ImagenExt)
		}
		if req.VideoExt != "" {
			q.VideoURL = s.MediaURL("pregunta_video", q.ID, req.VideoExt)
		}
		if err := s.Repo.SetMediaURLs(ctx, q.ID, q.URLImagen, q.VideoURL); err != nil {
			log.Printf("[Preguntas] No se pudieron guardar las URLs de media para %d: %v", q.ID, err)
			return nil, err
		}
	}

	return q, nil
}

// MediaURL derives the public URL for a media file named after a row id.
func (s *QuestionService) MediaURL(prefix string, id int, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("%s/uploads/%s_%d.%s", s.BaseURL, prefix, id, ext)
}

func (s *QuestionService) Update(ctx context.Context, scope models.Scope, id int, req *models.UpdateQuestionRequest) (*models.Question, error) {
	return s.Repo.Update(ctx, scope, id, req)
}

func (s *QuestionService) Delete(ctx context.Context, scope models.Scope, id int) error {
	return s.Repo.Delete(ctx, scope, id)
}
