package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/mohammad-safakhou/capitol/internal/region"
	"github.com/mohammad-safakhou/capitol/internal/store"
	"github.com/mohammad-safakhou/capitol/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	meta        map[string]*models.Metadata
	bills       []models.Bill
	legislators []models.Legislator
	fail        error
}

func (f *fakeStore) GetMetadata(_ context.Context, abbr string) (*models.Metadata, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	m, ok := f.meta[abbr]
	if !ok {
		return nil, models.ErrRegionNotFound
	}
	return m, nil
}

func (f *fakeStore) Sessions(context.Context, string) ([]models.Session, error) {
	return []models.Session{{ID: "2024", DisplayName: "2024 Regular Session"}}, nil
}

func (f *fakeStore) ActiveLegislators(_ context.Context, abbr string) ([]models.Legislator, error) {
	var out []models.Legislator
	for _, l := range f.legislators {
		if l.State == abbr {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) CountCommittees(context.Context, string, models.Chamber) (int, error) {
	return 3, nil
}

func (f *fakeStore) LatestBills(_ context.Context, abbr string, chamber models.Chamber, limit int) ([]models.Bill, error) {
	var out []models.Bill
	for _, b := range f.bills {
		if b.State == abbr && b.Chamber == chamber && len(out) < limit {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) PassedBills(context.Context, string, models.Chamber, int) ([]models.Bill, error) {
	return nil, nil
}

func (f *fakeStore) BillsByBillID(_ context.Context, scope, billID string) ([]models.Bill, error) {
	var out []models.Bill
	for _, b := range f.bills {
		if b.BillID == billID && (scope == models.AllRegions || b.State == scope) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) SearchLegislatorNames(_ context.Context, scope, text string, limit int) ([]models.Legislator, error) {
	var out []models.Legislator
	for _, l := range f.legislators {
		if strings.Contains(strings.ToLower(l.FullName), strings.ToLower(text)) && (scope == models.AllRegions || l.State == scope) && len(out) < limit {
			out = append(out, l)
		}
	}
	return out, nil
}

type titleSearcher struct{ bills []models.Bill }

func (t titleSearcher) SearchBills(_ context.Context, text, scope string, limit int) ([]models.Bill, error) {
	var out []models.Bill
	for _, b := range t.bills {
		if strings.Contains(strings.ToLower(b.Title), strings.ToLower(text)) && (scope == models.AllRegions || b.State == scope) && len(out) < limit {
			out = append(out, b)
		}
	}
	return out, nil
}

func (titleSearcher) Strategy() string { return "substring" }

func newFakeStore() *fakeStore {
	introduced := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	return &fakeStore{
		meta: map[string]*models.Metadata{
			"ca": {Abbr: "ca", Name: "California", LegislatureName: "California State Legislature",
				UpperChamberName: "Senate", UpperChamberTitle: "Senator",
				LowerChamberName: "Assembly", LowerChamberTitle: "Assembly Member"},
		},
		bills: []models.Bill{
			{ID: "CAB1", State: "ca", Session: "2024", Chamber: models.ChamberLower, BillID: "AB 1", Title: "Water storage",
				ActionDates: models.ActionDates{First: &introduced}},
			{ID: "CAB2", State: "ca", Session: "2024", Chamber: models.ChamberUpper, BillID: "SB 2", Title: "Water rights"},
		},
		legislators: []models.Legislator{
			{ID: "CAL1", State: "ca", Chamber: models.ChamberUpper, Party: "Democratic", FullName: "Ada Lovelace", Active: true},
			{ID: "CAL2", State: "ca", Chamber: models.ChamberLower, Party: "Republican", FullName: "Grace Hopper", Active: true},
		},
	}
}

func newTestServer(t *testing.T, st region.MetadataStore, checks map[string]Pinger) *echo.Echo {
	t.Helper()
	svc := region.NewService(st, nil, titleSearcher{bills: newFakeStore().bills}, nil)
	e, err := New(Deps{Regions: svc, Checks: checks, Metrics: true})
	require.NoError(t, err)
	return e
}

func serve(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestStateSelectionRedirects(t *testing.T) {
	e := newTestServer(t, newFakeStore(), nil)

	rec := serve(e, "/state-selection?abbr=ca")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/ca", rec.Header().Get(echo.HeaderLocation))
}

func TestStateSelectionRejectsBadCodes(t *testing.T) {
	e := newTestServer(t, newFakeStore(), nil)
	for _, target := range []string{
		"/state-selection",
		"/state-selection?abbr=",
		"/state-selection?abbr=c",
		"/state-selection?abbr=cal",
	} {
		rec := serve(e, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Empty(t, rec.Header().Get(echo.HeaderLocation), target)
	}
}

func TestStateSelectionEscapesCode(t *testing.T) {
	e := newTestServer(t, newFakeStore(), nil)
	for target, want := range map[string]string{
		"/state-selection?abbr=/e":     "/%2Fe",
		"/state-selection?abbr=%2F%2F": "/%2F%2F",
		"/state-selection?abbr=c%3F":   "/c%3F",
	} {
		rec := serve(e, target)
		assert.Equal(t, http.StatusFound, rec.Code, target)
		assert.Equal(t, want, rec.Header().Get(echo.HeaderLocation), target)
	}
}

func TestPagesMountUnderPrefix(t *testing.T) {
	e := echo.New()
	(&PagesHandler{}).Register(e.Group("/states"))

	rec := serve(e, "/states/state-selection?abbr=ny")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/states/ny", rec.Header().Get(echo.HeaderLocation))
}

func TestStateSelectionHandlerDirect(t *testing.T) {
	e := newTestServer(t, newFakeStore(), nil)
	req := httptest.NewRequest(http.MethodGet, "/state-selection?abbr=tx", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	h := &PagesHandler{}
	require.NoError(t, h.stateSelection(ctx))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/tx", rec.Header().Get(echo.HeaderLocation))
}

func TestDashboardRenders(t *testing.T) {
	e := newTestServer(t, newFakeStore(), nil)

	rec := serve(e, "/ca")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "California State Legislature")
	assert.Contains(t, body, "Democratic: 1")
	assert.Contains(t, body, "AB 1 Water storage")
	assert.Contains(t, body, "Jan 8, 2024")
	assert.Contains(t, body, "2024 Regular Session")
}

func TestUnknownRegionIsNotFound(t *testing.T) {
	e := newTestServer(t, newFakeStore(), nil)

	for _, target := range []string{"/zz", "/zz/not-active-yet", "/zz/search?q=water"} {
		rec := serve(e, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "Region not found", target)
	}
}

func TestStoreFailureIsInternalError(t *testing.T) {
	st := newFakeStore()
	st.fail = errors.New("pq: connection refused")
	e := newTestServer(t, st, nil)

	rec := serve(e, "/ca")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestSearchRequiresQuery(t *testing.T) {
	e := newTestServer(t, newFakeStore(), nil)

	rec := serve(e, "/ca/search")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchByBillID(t *testing.T) {
	e := newTestServer(t, newFakeStore(), nil)

	rec := serve(e, "/ca/search?q=ab1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Exact bill id match.")
	assert.Contains(t, body, "AB 1 Water storage")
	assert.NotContains(t, body, "SB 2")
	assert.Contains(t, body, "No legislators found.")
}

func TestSearchAllRegions(t *testing.T) {
	e := newTestServer(t, newFakeStore(), nil)

	rec := serve(e, "/all/search?q=water")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "AB 1 Water storage")
	assert.Contains(t, body, "SB 2 Water rights")
	assert.NotContains(t, body, "Exact bill id match.")
}

func TestNotActiveYetFromStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT abbr, name, legislature_name, upper_chamber_name, upper_chamber_title, lower_chamber_name, lower_chamber_title\s+FROM regions\s+WHERE abbr=\$1`).
		WithArgs("pr").
		WillReturnRows(sqlmock.NewRows([]string{"abbr", "name", "legislature_name", "upper_chamber_name", "upper_chamber_title", "lower_chamber_name", "lower_chamber_title"}).
			AddRow("pr", "Puerto Rico", "Legislative Assembly of Puerto Rico", "Senate", "Senator", "House", "Representative"))

	e := newTestServer(t, newFakeStore(), nil)
	req := httptest.NewRequest(http.MethodGet, "/PR/not-active-yet", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("abbr")
	ctx.SetParamValues("PR")

	h := &PagesHandler{Regions: region.NewService(&store.Store{DB: db}, nil, nil, nil)}
	if err := h.notActiveYet(ctx); err != nil {
		t.Fatalf("notActiveYet: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Legislative Assembly of Puerto Rico") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthAndReadiness(t *testing.T) {
	healthy := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("dial tcp: refused") })

	e := newTestServer(t, newFakeStore(), map[string]Pinger{"postgres": healthy})
	rec := serve(e, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = serve(e, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)

	e = newTestServer(t, newFakeStore(), map[string]Pinger{"postgres": healthy, "reports": down})
	rec = serve(e, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reports":"dial tcp: refused"`)
	assert.NotContains(t, rec.Body.String(), `"postgres"`)
}

func TestMetricsExposeRequestsAndSearches(t *testing.T) {
	st := newFakeStore()
	svc := region.NewService(st, nil, titleSearcher{bills: st.bills}, nil)
	svc.Observer = searchObserver{}
	e, err := New(Deps{Regions: svc, Metrics: true})
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, serve(e, "/ca/search?q=water").Code)

	rec := serve(e, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `capitol_http_requests_total{method="GET",route="/:abbr/search",status="200"}`)
	assert.Contains(t, body, `capitol_search_queries_total{strategy="substring"}`)
}

func TestResponsesCarryRequestID(t *testing.T) {
	e := newTestServer(t, newFakeStore(), nil)
	rec := serve(e, "/healthz")
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
}
