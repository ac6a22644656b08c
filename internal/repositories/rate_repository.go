package repositories

import (
	"context"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RateRepository struct {
	DB *pgxpool.Pool
}

func NewRateRepository(db *pgxpool.Pool) *RateRepository {
	return &RateRepository{DB: db}
}

const rateColumns = `id, telefonocaso, origen, destino, tarifa, moneda, created_at`

func scanRate(row interface{ Scan(...interface{}) error }) (*models.Rate, error) {
	var t models.Rate
	err := row.Scan(&t.ID, &t.TelefonoCaso, &t.Origen, &t.Destino, &t.Tarifa, &t.Moneda, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns rates visible in the scope. Destino filters by
// case-insensitive substring when non-empty.
func (r *RateRepository) List(ctx context.Context, scope models.Scope, destino string) ([]*models.Rate, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+rateColumns+` FROM tarifas_transporte
		 WHERE ($1 OR ($2 <> '' AND telefonocaso = $2)) AND ($3 = '' OR destino ILIKE '%' || $3 || '%')
		 ORDER BY destino, id`,
		scope.All, scope.Telefono, destino)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []*models.Rate
	for rows.Next() {
		t, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		rates = append(rates, t)
	}
	return rates, rows.Err()
}

func (r *RateRepository) Create(ctx context.Context, t *models.Rate) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO tarifas_transporte(telefonocaso, origen, destino, tarifa, moneda)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		t.TelefonoCaso, t.Origen, t.Destino, t.Tarifa, t.Moneda,
	).Scan(&t.ID, &t.CreatedAt)
}

// Update replaces the editable fields within the scope.
func (r *RateRepository) Update(ctx context.Context, scope models.Scope, t *models.Rate) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE tarifas_transporte SET origen=$4, destino=$5, tarifa=$6, moneda=$7
		 WHERE id = $3 AND ($1 OR ($2 <> '' AND telefonocaso = $2))`,
		scope.All, scope.Telefono, t.ID, t.Origen, t.Destino, t.Tarifa, t.Moneda)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("No encontrado")
	}
	return nil
}

// Delete removes a rate within the scope.
func (r *RateRepository) Delete(ctx context.Context, scope models.Scope, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM tarifas_transporte WHERE id = $3 AND ($1 OR ($2 <> '' AND telefonocaso = $2))`,
		scope.All, scope.Telefono, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("No encontrado")
	}
	return nil
}
