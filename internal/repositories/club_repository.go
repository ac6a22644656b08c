package repositories

import (
	"context"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ClubRepository struct {
	DB *pgxpool.Pool
}

func NewClubRepository(db *pgxpool.Pool) *ClubRepository {
	return &ClubRepository{DB: db}
}

const clubColumns = `id, telefonocaso, nombre, descripcion, monto, fechapago, habilitado, created_at`

func scanClub(row interface{ Scan(...interface{}) error }) (*models.Club, error) {
	var c models.Club
	err := row.Scan(&c.ID, &c.TelefonoCaso, &c.Nombre, &c.Descripcion, &c.Monto,
		&c.FechaPago, &c.Habilitado, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns clubs visible in the scope.
func (r *ClubRepository) List(ctx context.Context, scope models.Scope) ([]*models.Club, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+clubColumns+` FROM clubesdv0
		 WHERE ($1 OR ($2 <> '' AND telefonocaso = $2))
		 ORDER BY id`,
		scope.All, scope.Telefono)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clubs []*models.Club
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, err
		}
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

// clubConflict maps the per-tenant club name index to its message.
func clubConflict(err error) error {
	if _, ok := uniqueViolation(err); ok {
		return apierror.Conflict("El nombre del club ya existe")
	}
	return err
}

func (r *ClubRepository) Create(ctx context.Context, c *models.Club) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO clubesdv0(telefonocaso, nombre, descripcion, monto, fechapago, habilitado)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at`,
		c.TelefonoCaso, c.Nombre, c.Descripcion, c.Monto, c.FechaPago, c.Habilitado,
	).Scan(&c.ID, &c.CreatedAt)
	return clubConflict(err)
}

// Update replaces the editable fields within the scope.
func (r *ClubRepository) Update(ctx context.Context, scope models.Scope, c *models.Club) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE clubesdv0 SET nombre=$4, descripcion=$5, monto=$6, fechapago=$7, habilitado=$8
		 WHERE id = $3 AND ($1 OR ($2 <> '' AND telefonocaso = $2))`,
		scope.All, scope.Telefono, c.ID,
		c.Nombre, c.Descripcion, c.Monto, c.FechaPago, c.Habilitado)
	if err != nil {
		return clubConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("No encontrado")
	}
	return nil
}

// Delete removes a club within the scope.
func (r *ClubRepository) Delete(ctx context.Context, scope models.Scope, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM clubesdv0 WHERE id = $3 AND ($1 OR ($2 <> '' AND telefonocaso = $2))`,
		scope.All, scope.Telefono, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("No encontrado")
	}
	return nil
}
