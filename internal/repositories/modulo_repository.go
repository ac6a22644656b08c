package repositories

import (
	"context"

	"botpanel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ModuloRepository struct {
	DB *pgxpool.Pool
}

func NewModuloRepository(db *pgxpool.Pool) *ModuloRepository {
	return &ModuloRepository{DB: db}
}

// List returns the static module catalog.
func (r *ModuloRepository) List(ctx context.Context) ([]*models.Modulo, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, nombre, categoria FROM modulossystem ORDER BY categoria, nombre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var modulos []*models.Modulo
	for rows.Next() {
		var m models.Modulo
		if err := rows.Scan(&m.ID, &m.Nombre, &m.Categoria); err != nil {
			return nil, err
		}
		modulos = append(modulos, &m)
	}
	return modulos, rows.Err()
}
