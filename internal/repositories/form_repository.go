package repositories

import (
	"context"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FormRepository struct {
	DB *pgxpool.Pool
}

func NewFormRepository(db *pgxpool.Pool) *FormRepository {
	return &FormRepository{DB: db}
}

const formColumns = `id, telefonocaso, nombre, telefono, correo, mensaje, created_at`

func scanForm(row interface{ Scan(...interface{}) error }) (*models.FormSubmission, error) {
	var f models.FormSubmission
	err := row.Scan(&f.ID, &f.TelefonoCaso, &f.Nombre, &f.Telefono, &f.Correo, &f.Mensaje, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns form submissions visible in the scope, newest first.
func (r *FormRepository) List(ctx context.Context, scope models.Scope) ([]*models.FormSubmission, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+formColumns+` FROM formdv0
		 WHERE ($1 OR ($2 <> '' AND telefonocaso = $2))
		 ORDER BY created_at DESC`,
		scope.All, scope.Telefono)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forms []*models.FormSubmission
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
	return forms, rows.Err()
}

// Get returns one form submission by id within the scope.
func (r *FormRepository) Get(ctx context.Context, scope models.Scope, id int) (*models.FormSubmission, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+formColumns+` FROM formdv0
		 WHERE id = $3 AND ($1 OR ($2 <> '' AND telefonocaso = $2))`,
		scope.All, scope.Telefono, id)
	f, err := scanForm(row)
	if err != nil {
		return nil, translateRowError(err)
	}
	return f, nil
}

// Delete removes a form submission within the scope.
func (r *FormRepository) Delete(ctx context.Context, scope models.Scope, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM formdv0 WHERE id = $3 AND ($1 OR ($2 <> '' AND telefonocaso = $2))`,
		scope.All, scope.Telefono, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("No encontrado")
	}
	return nil
}
