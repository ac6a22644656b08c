package repositories

import (
	"context"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepository struct {
	DB *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{DB: db}
}

const accountColumns = `id, nombre, tipousuario, usuario, contrasena, correo, telefono, estado, modulos,
	 COALESCE(totp_secret, ''), totp_enabled, created_at, updated_at`

func scanAccount(row interface{ Scan(...interface{}) error }, secret *string) (*models.Account, error) {
	var a models.Account
	var totpSecret string
	err := row.Scan(&a.ID, &a.Nombre, &a.TipoUsuario, &a.Usuario, &a.PasswordHash,
		&a.Correo, &a.Telefono, &a.Estado, &a.Modulos,
		&totpSecret, &a.TOTPEnabled, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if secret != nil {
		*secret = totpSecret
	}
	return &a, nil
}

func (r *AccountRepository) Create(ctx context.Context, a *models.Account) error {
	if a.TipoUsuario == "" {
		a.TipoUsuario = models.RoleUser
	}
	if a.Estado == "" {
		a.Estado = models.EstadoActivo
	}
	if a.Modulos == nil {
		a.Modulos = []string{}
	}
	err := r.DB.QueryRow(ctx,
		`INSERT INTO cuentassystem(nombre, tipousuario, usuario, contrasena, correo, telefono, estado, modulos)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at, updated_at`,
		a.Nombre, a.TipoUsuario, a.Usuario, a.PasswordHash, a.Correo, a.Telefono, a.Estado, a.Modulos,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return r.mapConflict(err)
}

func (r *AccountRepository) Get(ctx context.Context, id int) (*models.Account, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM cuentassystem WHERE id=$1`, id)
	a, err := scanAccount(row, nil)
	if err != nil {
		return nil, translateRowError(err)
	}
	return a, nil
}

func (r *AccountRepository) GetByUsuario(ctx context.Context, usuario string) (*models.Account, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM cuentassystem WHERE usuario=$1`, usuario)
	a, err := scanAccount(row, nil)
	if err != nil {
		return nil, translateRowError(err)
	}
	return a, nil
}

// GetTOTPSecret returns the stored TOTP secret for an account.
func (r *AccountRepository) GetTOTPSecret(ctx context.Context, id int) (string, error) {
	var secret string
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(totp_secret, '') FROM cuentassystem WHERE id=$1`, id).Scan(&secret)
	if err != nil {
		return "", translateRowError(err)
	}
	return secret, nil
}

// List returns all accounts, newest first.
func (r *AccountRepository) List(ctx context.Context) ([]*models.Account, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+accountColumns+` FROM cuentassystem ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		a, err := scanAccount(rows, nil)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// Update updates an existing account. If PasswordHash is empty the
// stored password is kept.
func (r *AccountRepository) Update(ctx context.Context, a *models.Account) error {
	if a.PasswordHash != "" {
		tag, err := r.DB.Exec(ctx,
			`UPDATE cuentassystem SET nombre=$1, tipousuario=$2, usuario=$3, contrasena=$4, correo=$5, telefono=$6, estado=$7, modulos=$8, updated_at=NOW()
			 WHERE id=$9`,
			a.Nombre, a.TipoUsuario, a.Usuario, a.PasswordHash, a.Correo, a.Telefono, a.Estado, a.Modulos, a.ID)
		if err != nil {
			return r.mapConflict(err)
		}
		if tag.RowsAffected() == 0 {
			return apierror.NotFound("No encontrado")
		}
		return nil
	}

	tag, err := r.DB.Exec(ctx,
		`UPDATE cuentassystem SET nombre=$1, tipousuario=$2, usuario=$3, correo=$4, telefono=$5, estado=$6, modulos=$7, updated_at=NOW()
         WHERE id=$8`,
		a.Nombre, a.TipoUsuario, a.Usuario, a.Correo, a.Telefono, a.Estado, a.Modulos, a.ID)
	if err != nil {
		return r.mapConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("No encontrado")
	}
	return nil
}

// Delete deletes an account.
func (r *AccountRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM cuentassystem WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("No encontrado")
	}
	return nil
}

// SetTOTPSecret stores the TOTP secret (during setup, before verification)
func (r *AccountRepository) SetTOTPSecret(ctx context.Context, id int, secret string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE cuentassystem SET totp_secret=$1, updated_at=NOW() WHERE id=$2`, secret, id)
	return err
}

// EnableTOTP marks 2FA as enabled after verification
func (r *AccountRepository) EnableTOTP(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE cuentassystem SET totp_enabled=true, updated_at=NOW() WHERE id=$1`, id)
	return err
}

// DisableTOTP disables 2FA and clears the secret
func (r *AccountRepository) DisableTOTP(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE cuentassystem SET totp_enabled=false, totp_secret=NULL, updated_at=NOW() WHERE id=$1`, id)
	return err
}

// mapConflict turns the unique indexes on usuario/correo/telefono into
// field-specific conflict errors.
func (r *AccountRepository) mapConflict(err error) error {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return err
	}
	switch constraint {
	case "cuentas_usuario_unico":
		return apierror.Conflict("El nombre de usuario ya existe")
	case "cuentas_correo_unico":
		return apierror.Conflict("El correo ya esta registrado")
	case "cuentas_telefono_unico":
		return apierror.Conflict("El telefono ya esta registrado")
	default:
		return apierror.Conflict("El registro ya existe")
	}
}
