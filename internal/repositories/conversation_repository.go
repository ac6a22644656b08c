package repositories

import (
	"context"

	"botpanel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ConversationRepository struct {
	DB *pgxpool.Pool
}

func NewConversationRepository(db *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{DB: db}
}

const conversationColumns = `guid, telefonocliente, telefonoempresa, contexto, pregunta, estado, paso,
	 enlace, accionadmin, respuesta, imagen, video, created_at, updated_at`

func scanConversation(row interface{ Scan(...interface{}) error }) (*models.Conversation, error) {
	var c models.Conversation
	err := row.Scan(&c.GUID, &c.TelefonoCliente, &c.TelefonoEmpresa, &c.Contexto, &c.Pregunta,
		&c.Estado, &c.Paso, &c.Enlace, &c.AccionAdmin, &c.Respuesta, &c.Imagen, &c.Video,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns conversations visible in the scope, newest first.
// Estado filters when non-empty.
func (r *ConversationRepository) List(ctx context.Context, scope models.Scope, estado string) ([]*models.Conversation, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+conversationColumns+` FROM consultanecesidad
		 WHERE ($1 OR ($2 <> '' AND telefonoempresa = $2)) AND ($3 = '' OR estado = $3)
		 ORDER BY created_at DESC`,
		scope.All, scope.Telefono, estado)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []*models.Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

// Get returns one conversation by guid within the scope.
func (r *ConversationRepository) Get(ctx context.Context, scope models.Scope, guid string) (*models.Conversation, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+conversationColumns+` FROM consultanecesidad
		 WHERE guid = $3 AND ($1 OR ($2 <> '' AND telefonoempresa = $2))`,
		scope.All, scope.Telefono, guid)
	c, err := scanConversation(row)
	if err != nil {
		return nil, translateRowError(err)
	}
	return c, nil
}

// Complete stores the operator response and flips the conversation to
// completado in a single statement; the pendiente guard makes the
// transition happen at most once.
func (r *ConversationRepository) Complete(ctx context.Context, scope models.Scope, guid, accionAdmin, respuesta string) (*models.Conversation, error) {
	row := r.DB.QueryRow(ctx,
		`UPDATE consultanecesidad
		 SET estado = 'completado', accionadmin = $4, respuesta = $5, updated_at = NOW()
		 WHERE guid = $3 AND estado = 'pendiente' AND ($1 OR ($2 <> '' AND telefonoempresa = $2))
		 RETURNING `+conversationColumns,
		scope.All, scope.Telefono, guid, accionAdmin, respuesta)
	c, err := scanConversation(row)
	if err != nil {
		return nil, translateRowError(err)
	}
	return c, nil
}
