package auth

import (
	"errors"
	"time"

	"botpanel-backend/internal/config"
	"botpanel-backend/internal/models"
	"botpanel-backend/internal/timeutil"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed session payload carried in the cookie. The
// client can read it but cannot forge it; role and module grants are
// re-checked against the store on every request anyway.
type Claims struct {
	AccountID   int      `json:"id"`
	Nombre      string   `json:"nombre"`
	TipoUsuario string   `json:"tipousuario"`
	Usuario     string   `json:"usuario"`
	Correo      string   `json:"correo"`
	Telefono    string   `json:"telefono"`
	Modulos     []string `json:"modulos"`
	jwt.RegisteredClaims
}

type SessionManager struct {
	cfg *config.Config
}

func NewSessionManager(cfg *config.Config) *SessionManager {
	return &SessionManager{cfg: cfg}
}

// GenerateToken creates a signed session token for an account.
func (m *SessionManager) GenerateToken(a *models.Account) (string, error) {
	now := timeutil.Now()
	expirationTime := now.Add(time.Duration(m.cfg.Session.ExpirationHours) * time.Hour)

	claims := &Claims{
		AccountID:   a.ID,
		Nombre:      a.Nombre,
		TipoUsuario: a.TipoUsuario,
		Usuario:     a.Usuario,
		Correo:      a.Correo,
		Telefono:    a.Telefono,
		Modulos:     a.Modulos,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.cfg.Session.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.Session.Secret))
}

// ValidateToken verifies a session token and returns the claims.
func (m *SessionManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(m.cfg.Session.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// CookieMaxAge returns the session cookie lifetime in seconds.
func (m *SessionManager) CookieMaxAge() int {
	return m.cfg.Session.ExpirationHours * 3600
}

// CookieName returns the configured session cookie name.
func (m *SessionManager) CookieName() string {
	return m.cfg.Session.CookieName
}

// CookieSecure reports whether the session cookie requires HTTPS.
func (m *SessionManager) CookieSecure() bool {
	return m.cfg.Session.CookieSecure
}

// TempClaims for short-lived 2FA tokens (used between login step 1 and step 2)
type TempClaims struct {
	AccountID int    `json:"id"`
	Usuario   string `json:"usuario"`
	Type      string `json:"type"` // "2fa_pending"
	jwt.RegisteredClaims
}

// GenerateTempToken creates a short-lived token for 2FA verification (5 minutes)
func (m *SessionManager) GenerateTempToken(a *models.Account) (string, error) {
	now := timeutil.Now()

	claims := &TempClaims{
		AccountID: a.ID,
		Usuario:   a.Usuario,
		Type:      "2fa_pending",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(5 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.cfg.Session.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.Session.Secret))
}

// ValidateTempToken verifies a temporary 2FA token and returns the claims
func (m *SessionManager) ValidateTempToken(tokenString string) (*TempClaims, error) {
	claims := &TempClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(m.cfg.Session.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Type != "2fa_pending" {
		return nil, errors.New("invalid token type")
	}

	return claims, nil
}
