package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"botpanel-backend/internal/auth"
	"botpanel-backend/internal/config"
	"botpanel-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAccountStore struct {
	accounts map[int]*models.Account
}

func (s *stubAccountStore) Get(_ context.Context, id int) (*models.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return a, nil
}

func testSessions() *auth.SessionManager {
	cfg := &config.Config{}
	cfg.Session.Secret = "clave-de-prueba"
	cfg.Session.ExpirationHours = 24
	cfg.Session.Issuer = "botpanel-backend"
	cfg.Session.CookieName = "session"
	return auth.NewSessionManager(cfg)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func loginAs(t *testing.T, sessions *auth.SessionManager, a *models.Account) *http.Cookie {
	t.Helper()
	token, err := sessions.GenerateToken(a)
	require.NoError(t, err)
	return &http.Cookie{Name: sessions.CookieName(), Value: token}
}

func TestAuthenticateWithoutCookie(t *testing.T) {
	sessions := testSessions()
	m := NewAuthMiddleware(sessions, &stubAccountStore{})

	req := httptest.NewRequest("GET", "/api/conversaciones", nil)
	rr := httptest.NewRecorder()
	m.Authenticate(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "No hay sesion activa")
}

func TestAuthenticateLoadsAccountFromStore(t *testing.T) {
	sessions := testSessions()
	account := &models.Account{
		ID:          3,
		TipoUsuario: models.RoleUser,
		Usuario:     "operador1",
		Telefono:    "584120000001",
		Estado:      models.EstadoActivo,
		Modulos:     []string{"preguntas"},
	}
	store := &stubAccountStore{accounts: map[int]*models.Account{3: account}}
	m := NewAuthMiddleware(sessions, store)

	var got *models.Account
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = AccountFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/preguntas", nil)
	req.AddCookie(loginAs(t, sessions, account))
	rr := httptest.NewRecorder()
	m.Authenticate(inner).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.ID)
}

func TestAuthenticateRejectsBlockedAccount(t *testing.T) {
	sessions := testSessions()
	account := &models.Account{ID: 4, Usuario: "bloqueado", Estado: models.EstadoBloqueado}
	store := &stubAccountStore{accounts: map[int]*models.Account{4: account}}
	m := NewAuthMiddleware(sessions, store)

	// Cookie issued before the account was blocked
	req := httptest.NewRequest("GET", "/api/preguntas", nil)
	req.AddCookie(loginAs(t, sessions, account))
	rr := httptest.NewRecorder()
	m.Authenticate(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "bloqueada")
}

func TestAuthenticateRejectsDeletedAccount(t *testing.T) {
	sessions := testSessions()
	account := &models.Account{ID: 9, Usuario: "borrado", Estado: models.EstadoActivo}
	m := NewAuthMiddleware(sessions, &stubAccountStore{accounts: map[int]*models.Account{}})

	req := httptest.NewRequest("GET", "/api/preguntas", nil)
	req.AddCookie(loginAs(t, sessions, account))
	rr := httptest.NewRecorder()
	m.Authenticate(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func withAccount(req *http.Request, a *models.Account) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), AccountKey, a))
}

func TestRequireAdmin(t *testing.T) {
	sessions := testSessions()
	m := NewAuthMiddleware(sessions, &stubAccountStore{})

	admin := &models.Account{ID: 1, TipoUsuario: models.RoleAdmin}
	user := &models.Account{ID: 2, TipoUsuario: models.RoleUser}

	rr := httptest.NewRecorder()
	m.RequireAdmin(okHandler()).ServeHTTP(rr, withAccount(httptest.NewRequest("GET", "/api/cuentas", nil), admin))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	m.RequireAdmin(okHandler()).ServeHTTP(rr, withAccount(httptest.NewRequest("GET", "/api/cuentas", nil), user))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireModule(t *testing.T) {
	sessions := testSessions()
	m := NewAuthMiddleware(sessions, &stubAccountStore{})
	gate := m.RequireModule("bancos")

	withModule := &models.Account{ID: 2, TipoUsuario: models.RoleUser, Modulos: []string{"bancos"}}
	withoutModule := &models.Account{ID: 3, TipoUsuario: models.RoleUser, Modulos: []string{"clubes"}}
	admin := &models.Account{ID: 1, TipoUsuario: models.RoleAdmin}

	rr := httptest.NewRecorder()
	gate(okHandler()).ServeHTTP(rr, withAccount(httptest.NewRequest("GET", "/api/bancos", nil), withModule))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	gate(okHandler()).ServeHTTP(rr, withAccount(httptest.NewRequest("GET", "/api/bancos", nil), withoutModule))
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "bancos")

	// Admins bypass module membership
	rr = httptest.NewRecorder()
	gate(okHandler()).ServeHTTP(rr, withAccount(httptest.NewRequest("GET", "/api/bancos", nil), admin))
	assert.Equal(t, http.StatusOK, rr.Code)
}
