package handlers

import (
	"encoding/json"
	"net/http"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/auth"
	"botpanel-backend/internal/middleware"
	"botpanel-backend/internal/models"
	"botpanel-backend/internal/services"
)

type AuthHandler struct {
	Service  *services.AccountService
	TOTP     *services.TOTPService
	Sessions *auth.SessionManager
}

func NewAuthHandler(s *services.AccountService, totp *services.TOTPService, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{
		Service:  s,
		TOTP:     totp,
		Sessions: sessions,
	}
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Sessions.CookieName(),
		Value:    token,
		Path:     "/",
		MaxAge:   h.Sessions.CookieMaxAge(),
		HttpOnly: true,
		Secure:   h.Sessions.CookieSecure(),
		SameSite: http.SameSiteLaxMode,
	})
}

// Login verifies credentials and opens a session. Accounts with 2FA
// enabled get a short-lived temp token instead of a cookie and must
// finish on /auth/login/totp.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apierror.Validation("Cuerpo de la solicitud invalido"))
		return
	}

	account, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	if account.TOTPEnabled {
		tempToken, err := h.Sessions.GenerateTempToken(account)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, models.LoginResponse{
			Success:      false,
			RequiresTOTP: true,
			TempToken:    tempToken,
		})
		return
	}

	token, err := h.Sessions.GenerateToken(account)
	if err != nil {
		respondError(w, err)
		return
	}
	h.setSessionCookie(w, token)
	respondJSON(w, http.StatusOK, models.LoginResponse{Success: true, Usuario: account.Usuario})
}

// LoginTOTP finishes a 2FA login: temp token plus authenticator code.
func (h *AuthHandler) LoginTOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TempToken string `json:"temp_token"`
		Codigo    string `json:"codigo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apierror.Validation("Cuerpo de la solicitud invalido"))
		return
	}

	claims, err := h.Sessions.ValidateTempToken(req.TempToken)
	if err != nil {
		respondError(w, apierror.Unauthenticated("Token temporal invalido o expirado"))
		return
	}

	if err := h.TOTP.VerifyCode(r.Context(), claims.AccountID, req.Codigo); err != nil {
		respondError(w, err)
		return
	}

	account, err := h.Service.GetAccount(r.Context(), claims.AccountID)
	if err != nil {
		respondError(w, err)
		return
	}
	if account.Estado == models.EstadoBloqueado {
		respondError(w, apierror.Unauthorized("La cuenta esta bloqueada"))
		return
	}

	token, err := h.Sessions.GenerateToken(account)
	if err != nil {
		respondError(w, err)
		return
	}
	h.setSessionCookie(w, token)
	respondJSON(w, http.StatusOK, models.LoginResponse{Success: true, Usuario: account.Usuario})
}

// Me returns the authenticated account, password hash excluded.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		respondError(w, apierror.Unauthenticated("No hay sesion activa"))
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// Logout expires the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Sessions.CookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Sessions.CookieSecure(),
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
