package repositories

import (
	"context"
	"fmt"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type QuestionRepository struct {
	DB *pgxpool.Pool
}

func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

const questionColumns = `id, telefonocaso, categoria, necesidad, pregunta, respuesta, variante,
	 urlimagen, videourl, habilitado, created_at, updated_at`

func scanQuestion(row interface{ Scan(...interface{}) error }) (*models.Question, error) {
	var q models.Question
	err := row.Scan(&q.ID, &q.TelefonoCaso, &q.Categoria, &q.Necesidad, &q.Pregunta, &q.Respuesta,
		&q.Variante, &q.URLImagen, &q.VideoURL, &q.Habilitado, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// List returns questions visible in the scope. Necesidad filters when
// non-empty.
func (r *QuestionRepository) List(ctx context.Context, scope models.Scope, necesidad string) ([]*models.Question, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+questionColumns+` FROM preguntassystem
		 WHERE ($1 OR ($2 <> '' AND telefonocaso = $2)) AND ($3 = '' OR necesidad = $3)
		 ORDER BY id`,
		scope.All, scope.Telefono, necesidad)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Get returns one question by id within the scope.
func (r *QuestionRepository) Get(ctx context.Context, scope models.Scope, id int) (*models.Question, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM preguntassystem
		 WHERE id = $3 AND ($1 OR ($2 <> '' AND telefonocaso = $2))`,
		scope.All, scope.Telefono, id)
	q, err := scanQuestion(row)
	if err != nil {
		return nil, translateRowError(err)
	}
	return q, nil
}

func (r *QuestionRepository) Create(ctx context.Context, q *models.Question) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO preguntassystem(telefonocaso, categoria, necesidad, pregunta, respuesta, variante, urlimagen, videourl, habilitado)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id, created_at, updated_at`,
		q.TelefonoCaso, q.Categoria, q.Necesidad, q.Pregunta, q.Respuesta, q.Variante,
		q.URLImagen, q.VideoURL, q.Habilitado,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// SetMediaURLs patches the media URLs derived from the row id after
// creation (second step of the create-then-patch flow).
func (r *QuestionRepository) SetMediaURLs(ctx context.Context, id int, urlImagen, videoURL string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE preguntassystem SET urlimagen=$1, videourl=$2, updated_at=NOW() WHERE id=$3`,
		urlImagen, videoURL, id)
	return err
}

// questionPatch builds the SET clauses for a question patch. Habilitado
// flips to true in the same statement when a non-empty respuesta
// arrives; there is no reverse path.
func questionPatch(scope models.Scope, id int, req *models.UpdateQuestionRequest) *patchBuilder {
	b := newPatchBuilder(scope.All, scope.Telefono, id)

	b.text("categoria", req.Categoria)
	b.text("necesidad", req.Necesidad)
	b.text("pregunta", req.Pregunta)
	b.text("respuesta", req.Respuesta)
	b.text("urlimagen", req.URLImagen)
	b.text("videourl", req.VideoURL)

	if req.Variantes.Set {
		if req.Variantes.Null {
			b.set("variante", "")
		} else {
			b.set("variante", models.JoinVariantes(req.Variantes.Value))
		}
	}

	if req.Respuesta.HasValue() && req.Respuesta.Value != "" {
		b.set("habilitado", true)
	}
	return b
}

// Update applies a coalesce patch within the scope: only fields present
// in the request touch the row; explicit nulls clear.
func (r *QuestionRepository) Update(ctx context.Context, scope models.Scope, id int, req *models.UpdateQuestionRequest) (*models.Question, error) {
	b := questionPatch(scope, id, req)

	query := fmt.Sprintf(
		`UPDATE preguntassystem SET %s
		 WHERE id = $3 AND ($1 OR ($2 <> '' AND telefonocaso = $2))
		 RETURNING `+questionColumns,
		b.clause())

	q, err := scanQuestion(r.DB.QueryRow(ctx, query, b.args...))
	if err != nil {
		return nil, translateRowError(err)
	}
	return q, nil
}

// Delete removes a question within the scope.
func (r *QuestionRepository) Delete(ctx context.Context, scope models.Scope, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM preguntassystem WHERE id = $3 AND ($1 OR ($2 <> '' AND telefonocaso = $2))`,
		scope.All, scope.Telefono, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("No encontrado")
	}
	return nil
}
