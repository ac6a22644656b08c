package repositories

import (
	"context"
	"fmt"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NeedRepository struct {
	DB *pgxpool.Pool
}

func NewNeedRepository(db *pgxpool.Pool) *NeedRepository {
	return &NeedRepository{DB: db}
}

const needColumns = `id, telefonocaso, categoria, necesidad, descripcion, habilitado, controlhumano, created_at, updated_at`

func scanNeed(row interface{ Scan(...interface{}) error }) (*models.Need, error) {
	var n models.Need
	err := row.Scan(&n.ID, &n.TelefonoCaso, &n.Categoria, &n.Necesidad, &n.Descripcion,
		&n.Habilitado, &n.ControlHumano, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns needs visible in the scope.
func (r *NeedRepository) List(ctx context.Context, scope models.Scope) ([]*models.Need, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+needColumns+` FROM necesidadessystem
		 WHERE ($1 OR ($2 <> '' AND telefonocaso = $2))
		 ORDER BY id`,
		scope.All, scope.Telefono)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var needs []*models.Need
	for rows.Next() {
		n, err := scanNeed(rows)
		if err != nil {
			return nil, err
		}
		needs = append(needs, n)
	}
	return needs, rows.Err()
}

// Get returns one need by id within the scope.
func (r *NeedRepository) Get(ctx context.Context, scope models.Scope, id int) (*models.Need, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+needColumns+` FROM necesidadessystem
		 WHERE id = $3 AND ($1 OR ($2 <> '' AND telefonocaso = $2))`,
		scope.All, scope.Telefono, id)
	n, err := scanNeed(row)
	if err != nil {
		return nil, translateRowError(err)
	}
	return n, nil
}

func (r *NeedRepository) Create(ctx context.Context, n *models.Need) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO necesidadessystem(telefonocaso, categoria, necesidad, descripcion, habilitado, controlhumano)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at, updated_at`,
		n.TelefonoCaso, n.Categoria, n.Necesidad, n.Descripcion, n.Habilitado, n.ControlHumano,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

// needPatch builds the SET clauses for a need patch.
func needPatch(scope models.Scope, id int, req *models.UpdateNeedRequest) *patchBuilder {
	b := newPatchBuilder(scope.All, scope.Telefono, id)
	b.text("categoria", req.Categoria)
	b.text("necesidad", req.Necesidad)
	b.text("descripcion", req.Descripcion)
	b.boolean("habilitado", req.Habilitado)
	b.boolean("controlhumano", req.ControlHumano)
	return b
}

// Update applies a coalesce patch within the scope.
func (r *NeedRepository) Update(ctx context.Context, scope models.Scope, id int, req *models.UpdateNeedRequest) (*models.Need, error) {
	b := needPatch(scope, id, req)

	query := fmt.Sprintf(
		`UPDATE necesidadessystem SET %s
		 WHERE id = $3 AND ($1 OR ($2 <> '' AND telefonocaso = $2))
		 RETURNING `+needColumns,
		b.clause())

	n, err := scanNeed(r.DB.QueryRow(ctx, query, b.args...))
	if err != nil {
		return nil, translateRowError(err)
	}
	return n, nil
}

// Delete removes a need within the scope.
func (r *NeedRepository) Delete(ctx context.Context, scope models.Scope, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM necesidadessystem WHERE id = $3 AND ($1 OR ($2 <> '' AND telefonocaso = $2))`,
		scope.All, scope.Telefono, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("No encontrado")
	}
	return nil
}
