package repositories

import (
	"errors"

	"botpanel-backend/internal/apierror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation reports whether err is a Postgres 23505 and returns
// the violated constraint name. Uniqueness is enforced by the indexes,
// not by check-then-act pre-checks, so this is the only place a
// duplicate can surface.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// translateRowError collapses a missing row into the API not-found
// error. A row outside the caller's scope takes the same path, so
// cross-tenant existence never leaks.
func translateRowError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apierror.NotFound("No encontrado")
	}
	return err
}
