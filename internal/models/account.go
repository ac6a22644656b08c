package models

import "time"

// Roles y estados de cuenta. Los valores son los que viajan en JSON y
// se comparan de forma exacta (sensible a mayusculas).
const (
	RoleAdmin = "Administrador"
	RoleUser  = "Usuario"

	EstadoActivo    = "activo"
	EstadoBloqueado = "bloqueado"
)

// Account is a panel operator account (tabla cuentassystem). Telefono
// doubles as the tenant key for non-admin accounts.
type Account struct {
	ID           int       `json:"id"`
	Nombre       string    `json:"nombre"`
	TipoUsuario  string    `json:"tipousuario"` // Administrador o Usuario
	Usuario      string    `json:"usuario"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Correo       string    `json:"correo"`
	Telefono     string    `json:"telefono"`
	Estado       string    `json:"estado"` // activo o bloqueado
	Modulos      []string  `json:"modulos"`
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the account bypasses module checks.
func (a *Account) IsAdmin() bool {
	return a.TipoUsuario == RoleAdmin
}

// HasModulo reports module membership, exact match.
func (a *Account) HasModulo(nombre string) bool {
	for _, m := range a.Modulos {
		if m == nombre {
			return true
		}
	}
	return false
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Usuario    string `json:"usuario"`
	Contrasena string `json:"contrasena"`
}

// LoginResponse is returned after a successful login. When the account
// has 2FA enabled the cookie is withheld and TempToken must be echoed
// back to /auth/login/totp.
type LoginResponse struct {
	Success      bool   `json:"success"`
	Usuario      string `json:"usuario,omitempty"`
	RequiresTOTP bool   `json:"requires_totp,omitempty"`
	TempToken    string `json:"temp_token,omitempty"`
}

// CreateAccountRequest represents the request body for creating an account
type CreateAccountRequest struct {
	Nombre      string   `json:"nombre"`
	TipoUsuario string   `json:"tipousuario"`
	Usuario     string   `json:"usuario"`
	Contrasena  string   `json:"contrasena"`
	Correo      string   `json:"correo"`
	Telefono    string   `json:"telefono"`
	Modulos     []string `json:"modulos"`
}

// UpdateAccountRequest represents the request body for updating an
// account. Contrasena is only applied when non-empty.
type UpdateAccountRequest struct {
	Nombre      string   `json:"nombre"`
	TipoUsuario string   `json:"tipousuario"`
	Usuario     string   `json:"usuario"`
	Contrasena  string   `json:"contrasena,omitempty"`
	Correo      string   `json:"correo"`
	Telefono    string   `json:"telefono"`
	Estado      string   `json:"estado"`
	Modulos     []string `json:"modulos"`
}
