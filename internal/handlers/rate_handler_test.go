package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/middleware"
	"botpanel-backend/internal/models"
	"botpanel-backend/internal/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRateRepo struct {
	rates  map[int]*models.Rate
	nextID int
}

func newStubRateRepo() *stubRateRepo {
	return &stubRateRepo{rates: make(map[int]*models.Rate), nextID: 1}
}

// visible mirrors the repository predicate ($1 OR ($2 <> '' AND
// telefonocaso = $2)).
func (r *stubRateRepo) visible(scope models.Scope, rate *models.Rate) bool {
	return scope.All || (scope.Telefono != "" && rate.TelefonoCaso == scope.Telefono)
}

func (r *stubRateRepo) List(_ context.Context, scope models.Scope, destino string) ([]*models.Rate, error) {
	out := []*models.Rate{}
	for _, rate := range r.rates {
		if !r.visible(scope, rate) {
			continue
		}
		if destino != "" && !strings.Contains(strings.ToLower(rate.Destino), strings.ToLower(destino)) {
			continue
		}
		out = append(out, rate)
	}
	return out, nil
}

func (r *stubRateRepo) Create(_ context.Context, rate *models.Rate) error {
	rate.ID = r.nextID
	r.nextID++
	copied := *rate
	r.rates[rate.ID] = &copied
	return nil
}

func (r *stubRateRepo) Update(_ context.Context, scope models.Scope, rate *models.Rate) error {
	current, ok := r.rates[rate.ID]
	if !ok || !r.visible(scope, current) {
		return apierror.NotFound("No encontrado")
	}
	rate.TelefonoCaso = current.TelefonoCaso
	copied := *rate
	r.rates[rate.ID] = &copied
	return nil
}

func (r *stubRateRepo) Delete(_ context.Context, scope models.Scope, id int) error {
	current, ok := r.rates[id]
	if !ok || !r.visible(scope, current) {
		return apierror.NotFound("No encontrado")
	}
	delete(r.rates, id)
	return nil
}

func asAccount(req *http.Request, a *models.Account) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.AccountKey, a))
}

func operatorAccount(telefono string) *models.Account {
	return &models.Account{ID: 2, TipoUsuario: models.RoleUser, Usuario: "operador1", Telefono: telefono, Modulos: []string{"tarifas"}}
}

func adminAccount() *models.Account {
	return &models.Account{ID: 1, TipoUsuario: models.RoleAdmin, Usuario: "admin"}
}

func seedRates(repo *stubRateRepo) {
	repo.Create(context.Background(), &models.Rate{TelefonoCaso: "584120000001", Origen: "Caracas", Destino: "Valencia", Tarifa: 25, Moneda: "USD"})
	repo.Create(context.Background(), &models.Rate{TelefonoCaso: "584120000001", Origen: "Caracas", Destino: "Maracay", Tarifa: 15, Moneda: "USD"})
	repo.Create(context.Background(), &models.Rate{TelefonoCaso: "584129999999", Origen: "Maracaibo", Destino: "Valencia", Tarifa: 40, Moneda: "USD"})
}

func TestListRatesScopedToTenant(t *testing.T) {
	repo := newStubRateRepo()
	seedRates(repo)
	h := NewRateHandler(repo, services.NewReportService(repo))

	req := asAccount(httptest.NewRequest("GET", "/api/tarifas", nil), operatorAccount("584120000001"))
	rr := httptest.NewRecorder()
	h.ListRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var rates []*models.Rate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rates))
	assert.Len(t, rates, 2)
	for _, rate := range rates {
		assert.Equal(t, "584120000001", rate.TelefonoCaso)
	}
}

func TestListRatesAdminSeesAll(t *testing.T) {
	repo := newStubRateRepo()
	seedRates(repo)
	h := NewRateHandler(repo, services.NewReportService(repo))

	req := asAccount(httptest.NewRequest("GET", "/api/tarifas", nil), adminAccount())
	rr := httptest.NewRecorder()
	h.ListRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var rates []*models.Rate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rates))
	assert.Len(t, rates, 3)
}

func TestListRatesDestinoFilter(t *testing.T) {
	repo := newStubRateRepo()
	seedRates(repo)
	h := NewRateHandler(repo, services.NewReportService(repo))

	req := asAccount(httptest.NewRequest("GET", "/api/tarifas?destino=vale", nil), adminAccount())
	rr := httptest.NewRecorder()
	h.ListRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var rates []*models.Rate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rates))
	require.Len(t, rates, 2)
	for _, rate := range rates {
		assert.Equal(t, "Valencia", rate.Destino)
	}
}

func TestListRatesOperatorWithoutTelefonoSeesNothing(t *testing.T) {
	repo := newStubRateRepo()
	seedRates(repo)
	h := NewRateHandler(repo, services.NewReportService(repo))

	req := asAccount(httptest.NewRequest("GET", "/api/tarifas", nil), operatorAccount(""))
	rr := httptest.NewRecorder()
	h.ListRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var rates []*models.Rate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rates))
	assert.Empty(t, rates, "an operator without telefono must get an empty set, never everything")
}

func TestListRatesEmptyTenantRowsHiddenFromPhonelessOperator(t *testing.T) {
	repo := newStubRateRepo()
	// An admin create with an omitted telefonocaso leaves the row in the
	// empty tenant; such rows belong to nobody but the admin.
	repo.Create(context.Background(), &models.Rate{TelefonoCaso: "", Origen: "Caracas", Destino: "Barinas", Tarifa: 20, Moneda: "USD"})
	h := NewRateHandler(repo, services.NewReportService(repo))

	req := asAccount(httptest.NewRequest("GET", "/api/tarifas", nil), operatorAccount(""))
	rr := httptest.NewRecorder()
	h.ListRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var rates []*models.Rate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rates))
	assert.Empty(t, rates, "empty-tenant rows must not leak to a phoneless operator")

	del := asAccount(httptest.NewRequest("DELETE", "/api/tarifas/1", nil), operatorAccount(""))
	del = mux.SetURLVars(del, map[string]string{"id": "1"})
	rr = httptest.NewRecorder()
	h.DeleteRate(rr, del)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Len(t, repo.rates, 1, "the empty-tenant row must survive")
}

func TestCreateRateForcesOwnTenant(t *testing.T) {
	repo := newStubRateRepo()
	h := NewRateHandler(repo, services.NewReportService(repo))

	body, _ := json.Marshal(models.Rate{TelefonoCaso: "584129999999", Origen: "Caracas", Destino: "Merida", Tarifa: 30, Moneda: "USD"})
	req := asAccount(httptest.NewRequest("POST", "/api/tarifas", bytes.NewReader(body)), operatorAccount("584120000001"))
	rr := httptest.NewRecorder()
	h.CreateRate(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var created models.Rate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "584120000001", created.TelefonoCaso, "a non-admin cannot write into another tenant")
}

func TestDeleteRateCrossTenantIsNotFound(t *testing.T) {
	repo := newStubRateRepo()
	seedRates(repo)
	h := NewRateHandler(repo, services.NewReportService(repo))

	req := asAccount(httptest.NewRequest("DELETE", "/api/tarifas/3", nil), operatorAccount("584120000001"))
	req = mux.SetURLVars(req, map[string]string{"id": "3"})
	rr := httptest.NewRecorder()
	h.DeleteRate(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Len(t, repo.rates, 3, "the foreign row must survive")
}

func TestRatesReportProducesPDF(t *testing.T) {
	repo := newStubRateRepo()
	seedRates(repo)
	h := NewRateHandler(repo, services.NewReportService(repo))

	req := asAccount(httptest.NewRequest("GET", "/api/tarifas/reporte", nil), adminAccount())
	rr := httptest.NewRecorder()
	h.RatesReport(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")), "body must be a PDF document")
}
