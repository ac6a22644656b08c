package repositories

import (
	"fmt"
	"testing"

	"botpanel-backend/internal/apierror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pgUnique(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func TestUniqueViolation(t *testing.T) {
	constraint, ok := uniqueViolation(pgUnique("bancos_cuenta_unica"))
	require.True(t, ok)
	assert.Equal(t, "bancos_cuenta_unica", constraint)

	// Wrapped errors still unwrap to the driver error
	_, ok = uniqueViolation(fmt.Errorf("insert: %w", pgUnique("clubes_nombre_unico")))
	assert.True(t, ok)

	_, ok = uniqueViolation(&pgconn.PgError{Code: "23503"})
	assert.False(t, ok)
	_, ok = uniqueViolation(nil)
	assert.False(t, ok)
}

func TestTranslateRowError(t *testing.T) {
	err := translateRowError(pgx.ErrNoRows)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
	assert.Equal(t, "No encontrado", apierror.Message(err))

	other := fmt.Errorf("conexion perdida")
	assert.Equal(t, other, translateRowError(other))
}

func TestAccountConflictMessages(t *testing.T) {
	r := &AccountRepository{}
	cases := map[string]string{
		"cuentas_usuario_unico":  "El nombre de usuario ya existe",
		"cuentas_correo_unico":   "El correo ya esta registrado",
		"cuentas_telefono_unico": "El telefono ya esta registrado",
		"otra_restriccion":       "El registro ya existe",
	}
	for constraint, want := range cases {
		err := r.mapConflict(pgUnique(constraint))
		assert.True(t, apierror.IsKind(err, apierror.KindConflict), constraint)
		assert.Equal(t, want, apierror.Message(err), constraint)
	}

	assert.NoError(t, r.mapConflict(nil))
}

func TestBankAndClubConflicts(t *testing.T) {
	err := bankConflict(pgUnique("bancos_cuenta_unica"))
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
	assert.Equal(t, "El numero de cuenta ya esta registrado", apierror.Message(err))

	err = clubConflict(pgUnique("clubes_nombre_unico"))
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
	assert.Equal(t, "El nombre del club ya existe", apierror.Message(err))

	// Anything that is not a 23505 passes through untouched
	plain := fmt.Errorf("timeout")
	assert.Equal(t, plain, bankConflict(plain))
	assert.NoError(t, clubConflict(nil))
}
