package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"botpanel-backend/internal/auth"
	"botpanel-backend/internal/models"
)

type contextKey string

const AccountKey contextKey = "account"

// AccountStore is the slice of the account repository the middleware
// needs to re-check a session against the database.
type AccountStore interface {
	Get(ctx context.Context, id int) (*models.Account, error)
}

type AuthMiddleware struct {
	sessions *auth.SessionManager
	accounts AccountStore
}

func NewAuthMiddleware(sessions *auth.SessionManager, accounts AccountStore) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		accounts: accounts,
	}
}

func denyJSON(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Authenticate validates the signed session cookie and loads the
// account from the database, so role and module revocations apply
// immediately instead of waiting for the cookie to expire.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.sessions.CookieName())
		if err != nil {
			denyJSON(w, http.StatusUnauthorized, "No hay sesion activa")
			return
		}

		claims, err := m.sessions.ValidateToken(cookie.Value)
		if err != nil {
			denyJSON(w, http.StatusUnauthorized, "Sesion invalida o expirada")
			return
		}

		// Check database for current account status (for immediate permission updates)
		account, err := m.accounts.Get(r.Context(), claims.AccountID)
		if err != nil {
			denyJSON(w, http.StatusUnauthorized, "No hay sesion activa")
			return
		}

		if account.Estado == models.EstadoBloqueado {
			denyJSON(w, http.StatusForbidden, "La cuenta esta bloqueada")
			return
		}

		ctx := context.WithValue(r.Context(), AccountKey, account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AccountFromContext extracts the authenticated account from the request context
func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	account, ok := ctx.Value(AccountKey).(*models.Account)
	return account, ok
}

// ScopeFromContext derives the tenant row scope for the authenticated
// account.
func ScopeFromContext(ctx context.Context) (models.Scope, bool) {
	account, ok := AccountFromContext(ctx)
	if !ok {
		return models.Scope{}, false
	}
	return models.ScopeFor(account.TipoUsuario, account.Telefono), true
}

// RequireAdmin ensures the account is an Administrador.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, ok := AccountFromContext(r.Context())
		if !ok {
			denyJSON(w, http.StatusUnauthorized, "No hay sesion activa")
			return
		}
		if !account.IsAdmin() {
			denyJSON(w, http.StatusForbidden, "Se requiere rol de Administrador")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireModule ensures the account may use the named module. Admins
// bypass the check; everyone else needs exact membership in their
// modulos allow-list.
func (m *AuthMiddleware) RequireModule(nombre string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, ok := AccountFromContext(r.Context())
			if !ok {
				denyJSON(w, http.StatusUnauthorized, "No hay sesion activa")
				return
			}
			if !account.IsAdmin() && !account.HasModulo(nombre) {
				denyJSON(w, http.StatusForbidden, "No tiene acceso al modulo "+nombre)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
