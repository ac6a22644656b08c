package services

import (
	"context"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/models"
)

type NeedRepo interface {
	List(ctx context.Context, scope models.Scope) ([]*models.Need, error)
	Get(ctx context.Context, scope models.Scope, id int) (*models.Need, error)
	Create(ctx context.Context, n *models.Need) error
	Update(ctx context.Context, scope models.Scope, id int, req *models.UpdateNeedRequest) (*models.Need, error)
	Delete(ctx context.Context, scope models.Scope, id int) error
}

type NeedService struct {
	Repo NeedRepo
}

func NewNeedService(repo NeedRepo) *NeedService {
	return &NeedService{Repo: repo}
}

func (s *NeedService) List(ctx context.Context, scope models.Scope) ([]*models.Need, error) {
	return s.Repo.List(ctx, scope)
}

func (s *NeedService) Get(ctx context.Context, scope models.Scope, id int) (*models.Need, error) {
	return s.Repo.Get(ctx, scope, id)
}

func (s *NeedService) Create(ctx context.Context, scope models.Scope, req *models.CreateNeedRequest) (*models.Need, error) {
	if req.Necesidad == "" {
		return nil, apierror.Validation("La necesidad es requerida")
	}

	n := &models.Need{
		TelefonoCaso:  scope.Tenant(req.TelefonoCaso),
		Categoria:     req.Categoria,
		Necesidad:     req.Necesidad,
		Descripcion:   req.Descripcion,
		Habilitado:    true,
		ControlHumano: req.ControlHumano,
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NeedService) Update(ctx context.Context, scope models.Scope, id int, req *models.UpdateNeedRequest) (*models.Need, error) {
	return s.Repo.Update(ctx, scope, id, req)
}

func (s *NeedService) Delete(ctx context.Context, scope models.Scope, id int) error {
	return s.Repo.Delete(ctx, scope, id)
}
