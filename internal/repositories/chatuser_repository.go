package repositories

import (
	"context"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ChatUserRepository struct {
	DB *pgxpool.Pool
}

func NewChatUserRepository(db *pgxpool.Pool) *ChatUserRepository {
	return &ChatUserRepository{DB: db}
}

const chatUserColumns = `id, telefonocaso, nombre, telefono, estado, created_at, updated_at`

func scanChatUser(row interface{ Scan(...interface{}) error }) (*models.ChatUser, error) {
	var u models.ChatUser
	err := row.Scan(&u.ID, &u.TelefonoCaso, &u.Nombre, &u.Telefono, &u.Estado, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns chatbot users visible in the scope. Estado filters when
// non-empty.
func (r *ChatUserRepository) List(ctx context.Context, scope models.Scope, estado string) ([]*models.ChatUser, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+chatUserColumns+` FROM usuariossystem
		 WHERE ($1 OR ($2 <> '' AND telefonocaso = $2)) AND ($3 = '' OR estado = $3)
		 ORDER BY created_at DESC`,
		scope.All, scope.Telefono, estado)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.ChatUser
	for rows.Next() {
		u, err := scanChatUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateEstado approves or rejects a chatbot user within the scope.
func (r *ChatUserRepository) UpdateEstado(ctx context.Context, scope models.Scope, id int, estado string) (*models.ChatUser, error) {
	row := r.DB.QueryRow(ctx,
		`UPDATE usuariossystem SET estado=$4, updated_at=NOW()
		 WHERE id = $3 AND ($1 OR ($2 <> '' AND telefonocaso = $2))
		 RETURNING `+chatUserColumns,
		scope.All, scope.Telefono, id, estado)
	u, err := scanChatUser(row)
	if err != nil {
		return nil, translateRowError(err)
	}
	return u, nil
}

// Delete removes a chatbot user within the scope.
func (r *ChatUserRepository) Delete(ctx context.Context, scope models.Scope, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM usuariossystem WHERE id = $3 AND ($1 OR ($2 <> '' AND telefonocaso = $2))`,
		scope.All, scope.Telefono, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("No encontrado")
	}
	return nil
}
