package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/auth"
	"botpanel-backend/internal/config"
	"botpanel-backend/internal/models"
	"botpanel-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAccounts struct {
	byID      map[int]*models.Account
	byUsuario map[string]*models.Account
	secrets   map[int]string
}

func newStubAccounts() *stubAccounts {
	return &stubAccounts{
		byID:      make(map[int]*models.Account),
		byUsuario: make(map[string]*models.Account),
		secrets:   make(map[int]string),
	}
}

func (s *stubAccounts) add(a *models.Account) {
	s.byID[a.ID] = a
	s.byUsuario[a.Usuario] = a
}

func (s *stubAccounts) Create(_ context.Context, a *models.Account) error {
	a.ID = len(s.byID) + 1
	s.add(a)
	return nil
}

func (s *stubAccounts) Get(_ context.Context, id int) (*models.Account, error) {
	a, ok := s.byID[id]
	if !ok {
		return nil, apierror.NotFound("No encontrado")
	}
	return a, nil
}

func (s *stubAccounts) GetByUsuario(_ context.Context, usuario string) (*models.Account, error) {
	a, ok := s.byUsuario[usuario]
	if !ok {
		return nil, apierror.NotFound("No encontrado")
	}
	return a, nil
}

func (s *stubAccounts) List(_ context.Context) ([]*models.Account, error) { return nil, nil }
func (s *stubAccounts) Update(_ context.Context, a *models.Account) error { return nil }
func (s *stubAccounts) Delete(_ context.Context, id int) error            { return nil }

func (s *stubAccounts) GetTOTPSecret(_ context.Context, id int) (string, error) {
	return s.secrets[id], nil
}
func (s *stubAccounts) SetTOTPSecret(_ context.Context, id int, secret string) error {
	s.secrets[id] = secret
	return nil
}
func (s *stubAccounts) EnableTOTP(_ context.Context, id int) error {
	s.byID[id].TOTPEnabled = true
	return nil
}
func (s *stubAccounts) DisableTOTP(_ context.Context, id int) error {
	s.byID[id].TOTPEnabled = false
	delete(s.secrets, id)
	return nil
}

func newAuthHandler(t *testing.T, repo *stubAccounts) (*AuthHandler, *auth.SessionManager) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Session.Secret = "clave-de-prueba"
	cfg.Session.ExpirationHours = 24
	cfg.Session.Issuer = "botpanel-backend"
	cfg.Session.CookieName = "session"
	sessions := auth.NewSessionManager(cfg)
	return NewAuthHandler(
		services.NewAccountService(repo, sessions),
		services.NewTOTPService(repo),
		sessions,
	), sessions
}

func seedOperator(t *testing.T, repo *stubAccounts, usuario, contrasena, estado string) *models.Account {
	t.Helper()
	hash, err := auth.HashPassword(contrasena)
	require.NoError(t, err)
	a := &models.Account{
		ID:           len(repo.byID) + 1,
		Nombre:       "Cuenta " + usuario,
		TipoUsuario:  models.RoleUser,
		Usuario:      usuario,
		PasswordHash: hash,
		Estado:       estado,
	}
	repo.add(a)
	return a
}

func postJSON(t *testing.T, body interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	return nil
}

func TestLoginSetsSessionCookie(t *testing.T) {
	repo := newStubAccounts()
	seedOperator(t, repo, "operador1", "secreto123", models.EstadoActivo)
	h, sessions := newAuthHandler(t, repo)

	rr := httptest.NewRecorder()
	h.Login(rr, postJSON(t, models.LoginRequest{Usuario: "operador1", Contrasena: "secreto123"}))

	require.Equal(t, http.StatusOK, rr.Code)

	cookie := sessionCookie(rr)
	require.NotNil(t, cookie, "a session cookie must be set")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)

	claims, err := sessions.ValidateToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "operador1", claims.Usuario)

	assert.NotContains(t, rr.Body.String(), "secreto123")
	assert.NotContains(t, rr.Body.String(), "$2a$")
}

func TestLoginBadPasswordNoCookie(t *testing.T) {
	repo := newStubAccounts()
	seedOperator(t, repo, "operador1", "secreto123", models.EstadoActivo)
	h, _ := newAuthHandler(t, repo)

	rr := httptest.NewRecorder()
	h.Login(rr, postJSON(t, models.LoginRequest{Usuario: "operador1", Contrasena: "mal"}))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Nil(t, sessionCookie(rr))
}

func TestLoginBlockedAccountNoCookie(t *testing.T) {
	repo := newStubAccounts()
	seedOperator(t, repo, "bloqueado", "secreto123", models.EstadoBloqueado)
	h, _ := newAuthHandler(t, repo)

	rr := httptest.NewRecorder()
	h.Login(rr, postJSON(t, models.LoginRequest{Usuario: "bloqueado", Contrasena: "secreto123"}))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Nil(t, sessionCookie(rr), "a blocked account must never receive a cookie")
}

func TestLoginWith2FAReturnsTempToken(t *testing.T) {
	repo := newStubAccounts()
	account := seedOperator(t, repo, "operador1", "secreto123", models.EstadoActivo)
	account.TOTPEnabled = true
	h, sessions := newAuthHandler(t, repo)

	rr := httptest.NewRecorder()
	h.Login(rr, postJSON(t, models.LoginRequest{Usuario: "operador1", Contrasena: "secreto123"}))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, sessionCookie(rr), "2FA logins withhold the cookie until the code is verified")

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.RequiresTOTP)
	require.NotEmpty(t, resp.TempToken)

	claims, err := sessions.ValidateTempToken(resp.TempToken)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.AccountID)
}

func TestLogoutExpiresCookie(t *testing.T) {
	repo := newStubAccounts()
	h, _ := newAuthHandler(t, repo)

	rr := httptest.NewRecorder()
	h.Logout(rr, httptest.NewRequest("POST", "/api/auth/logout", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	cookie := sessionCookie(rr)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.MaxAge < 0)
}
