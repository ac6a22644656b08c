package services

import (
	"context"
	"testing"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuestionRepo struct {
	questions map[int]*models.Question
	nextID    int
}

func newStubQuestionRepo() *stubQuestionRepo {
	return &stubQuestionRepo{questions: make(map[int]*models.Question), nextID: 1}
}

func (r *stubQuestionRepo) visible(scope models.Scope, q *models.Question) bool {
	return scope.All || (scope.Telefono != "" && q.TelefonoCaso == scope.Telefono)
}

func (r *stubQuestionRepo) List(_ context.Context, scope models.Scope, necesidad string) ([]*models.Question, error) {
	var out []*models.Question
	for _, q := range r.questions {
		if !r.visible(scope, q) {
			continue
		}
		if necesidad != "" && q.Necesidad != necesidad {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (r *stubQuestionRepo) Get(_ context.Context, scope models.Scope, id int) (*models.Question, error) {
	q, ok := r.questions[id]
	if !ok || !r.visible(scope, q) {
		return nil, apierror.NotFound("No encontrado")
	}
	return q, nil
}

func (r *stubQuestionRepo) Create(_ context.Context, q *models.Question) error {
	q.ID = r.nextID
	r.nextID++
	copied := *q
	r.questions[q.ID] = &copied
	return nil
}

func (r *stubQuestionRepo) SetMediaURLs(_ context.Context, id int, urlImagen, videoURL string) error {
	q, ok := r.questions[id]
	if !ok {
		return apierror.NotFound("No encontrado")
	}
	q.URLImagen = urlImagen
	q.VideoURL = videoURL
	return nil
}

func (r *stubQuestionRepo) Update(_ context.Context, scope models.Scope, id int, req *models.UpdateQuestionRequest) (*models.Question, error) {
	q, ok := r.questions[id]
	if !ok || !r.visible(scope, q) {
		return nil, apierror.NotFound("No encontrado")
	}
	if req.Respuesta.HasValue() {
		q.Respuesta = req.Respuesta.Value
		if q.Respuesta != "" {
			q.Habilitado = true
		}
	}
	if req.Respuesta.Set && req.Respuesta.Null {
		q.Respuesta = ""
	}
	if req.Pregunta.HasValue() {
		q.Pregunta = req.Pregunta.Value
	}
	return q, nil
}

func (r *stubQuestionRepo) Delete(_ context.Context, scope models.Scope, id int) error {
	q, ok := r.questions[id]
	if !ok || !r.visible(scope, q) {
		return apierror.NotFound("No encontrado")
	}
	delete(r.questions, id)
	return nil
}

func TestCreateQuestionDerivesMediaURLsFromID(t *testing.T) {
	repo := newStubQuestionRepo()
	s := NewQuestionService(repo, "https://panel.example.com/")

	scope := models.ScopeFor(models.RoleUser, "584120000001")
	q, err := s.Create(context.Background(), scope, &models.CreateQuestionRequest{
		Necesidad: "ubicacion",
		Pregunta:  "Donde queda la tienda?",
		ImagenExt: ".jpg",
		VideoExt:  "mp4",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://panel.example.com/uploads/pregunta_1.jpg", q.URLImagen)
	assert.Equal(t, "https://panel.example.com/uploads/pregunta_video_1.mp4", q.VideoURL)

	stored := repo.questions[q.ID]
	assert.Equal(t, q.URLImagen, stored.URLImagen, "derived URLs must be persisted")
	assert.Equal(t, "584120000001", stored.TelefonoCaso)
}

func TestCreateQuestionWithoutMediaSkipsPatch(t *testing.T) {
	repo := newStubQuestionRepo()
	s := NewQuestionService(repo, "https://panel.example.com")

	q, err := s.Create(context.Background(), models.ScopeFor(models.RoleAdmin, ""), &models.CreateQuestionRequest{
		TelefonoCaso: "584120000002",
		Necesidad:    "horario",
		Pregunta:     "A que hora abren?",
		URLImagen:    "https://cdn.example.com/existente.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/existente.png", q.URLImagen)
	assert.Equal(t, "584120000002", repo.questions[q.ID].TelefonoCaso)
}

func TestCreateQuestionHabilitadoFollowsRespuesta(t *testing.T) {
	repo := newStubQuestionRepo()
	s := NewQuestionService(repo, "https://panel.example.com")
	scope := models.ScopeFor(models.RoleAdmin, "")

	sin, err := s.Create(context.Background(), scope, &models.CreateQuestionRequest{Necesidad: "n", Pregunta: "p"})
	require.NoError(t, err)
	assert.False(t, sin.Habilitado)

	con, err := s.Create(context.Background(), scope, &models.CreateQuestionRequest{Necesidad: "n", Pregunta: "p", Respuesta: "r"})
	require.NoError(t, err)
	assert.True(t, con.Habilitado)
}

func TestCreateQuestionValidation(t *testing.T) {
	s := NewQuestionService(newStubQuestionRepo(), "https://panel.example.com")
	scope := models.ScopeFor(models.RoleAdmin, "")

	_, err := s.Create(context.Background(), scope, &models.CreateQuestionRequest{Necesidad: "n"})
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))

	_, err = s.Create(context.Background(), scope, &models.CreateQuestionRequest{Pregunta: "p"})
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestCreateQuestionJoinsVariantes(t *testing.T) {
	repo := newStubQuestionRepo()
	s := NewQuestionService(repo, "https://panel.example.com")

	q, err := s.Create(context.Background(), models.ScopeFor(models.RoleAdmin, ""), &models.CreateQuestionRequest{
		Necesidad: "ubicacion",
		Pregunta:  "Donde queda?",
		Variantes: []string{"donde estan", "direccion"},
	})
	require.NoError(t, err)
	assert.Equal(t, "donde estan;direccion", q.Variante)
	assert.Equal(t, []string{"donde estan", "direccion"}, q.Variantes())
}
