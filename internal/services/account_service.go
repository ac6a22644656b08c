package services

import (
	"context"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/auth"
	"botpanel-backend/internal/models"
)

// AccountRepo is the repository surface the service needs; the pgx
// implementation lives in internal/repositories.
type AccountRepo interface {
	Create(ctx context.Context, a *models.Account) error
	Get(ctx context.Context, id int) (*models.Account, error)
	GetByUsuario(ctx context.Context, usuario string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	Update(ctx context.Context, a *models.Account) error
	Delete(ctx context.Context, id int) error
}

type AccountService struct {
	Repo     AccountRepo
	Sessions *auth.SessionManager
}

func NewAccountService(repo AccountRepo, sessions *auth.SessionManager) *AccountService {
	return &AccountService{
		Repo:     repo,
		Sessions: sessions,
	}
}

// Login authenticates a panel account. A blocked account is rejected
// with a distinct error so the handler returns 403 without a cookie.
func (s *AccountService) Login(ctx context.Context, req *models.LoginRequest) (*models.Account, error) {
	if req.Usuario == "" || req.Contrasena == "" {
		return nil, apierror.Validation("Usuario y contrasena son requeridos")
	}

	account, err := s.Repo.GetByUsuario(ctx, req.Usuario)
	if err != nil {
		return nil, apierror.Unauthenticated("Usuario o contrasena incorrectos")
	}

	if !auth.VerifyPassword(account.PasswordHash, req.Contrasena) {
		return nil, apierror.Unauthenticated("Usuario o contrasena incorrectos")
	}

	if account.Estado == models.EstadoBloqueado {
		return nil, apierror.Unauthorized("La cuenta esta bloqueada")
	}

	return account, nil
}

// CreateAccount creates a panel account with a hashed password.
func (s *AccountService) CreateAccount(ctx context.Context, req *models.CreateAccountRequest) (*models.Account, error) {
	if req.Nombre == "" {
		return nil, apierror.Validation("El nombre es requerido")
	}
	if req.Usuario == "" {
		return nil, apierror.Validation("El usuario es requerido")
	}
	if req.Contrasena == "" {
		return nil, apierror.Validation("La contrasena es requerida")
	}
	if req.TipoUsuario != "" && req.TipoUsuario != models.RoleAdmin && req.TipoUsuario != models.RoleUser {
		return nil, apierror.Validation("Tipo de usuario invalido")
	}

	hash, err := auth.HashPassword(req.Contrasena)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Nombre:       req.Nombre,
		TipoUsuario:  req.TipoUsuario,
		Usuario:      req.Usuario,
		PasswordHash: hash,
		Correo:       req.Correo,
		Telefono:     req.Telefono,
		Modulos:      req.Modulos,
	}

	if err := s.Repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id int) (*models.Account, error) {
	return s.Repo.Get(ctx, id)
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	return s.Repo.List(ctx)
}

// UpdateAccount updates an account. The password only changes when the
// request carries a non-empty contrasena.
func (s *AccountService) UpdateAccount(ctx context.Context, id int, req *models.UpdateAccountRequest) (*models.Account, error) {
	current, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != "" {
		current.Nombre = req.Nombre
	}
	if req.TipoUsuario != "" {
		if req.TipoUsuario != models.RoleAdmin && req.TipoUsuario != models.RoleUser {
			return nil, apierror.Validation("Tipo de usuario invalido")
		}
		current.TipoUsuario = req.TipoUsuario
	}
	if req.Usuario != "" {
		current.Usuario = req.Usuario
	}
	if req.Correo != "" {
		current.Correo = req.Correo
	}
	if req.Telefono != "" {
		current.Telefono = req.Telefono
	}
	if req.Estado != "" {
		if req.Estado != models.EstadoActivo && req.Estado != models.EstadoBloqueado {
			return nil, apierror.Validation("Estado invalido")
		}
		current.Estado = req.Estado
	}
	if req.Modulos != nil {
		current.Modulos = req.Modulos
	}

	current.PasswordHash = ""
	if req.Contrasena != "" {
		hash, err := auth.HashPassword(req.Contrasena)
		if err != nil {
			return nil, err
		}
		current.PasswordHash = hash
	}

	if err := s.Repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

// DeleteAccount deletes an account. An account can never delete
// itself, admin or not.
func (s *AccountService) DeleteAccount(ctx context.Context, callerID, id int) error {
	if callerID == id {
		return apierror.Validation("No puede eliminar su propia cuenta")
	}
	return s.Repo.Delete(ctx, id)
}
