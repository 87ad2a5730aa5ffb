package supplier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	dbgen "github.com/noah-isme/backend-dentlab/internal/db/gen"
)

type stubQueries struct {
	rows   []dbgen.Supplier
	nextID int64
}

func (s *stubQueries) find(id int64) int {
	for i, row := range s.rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

func (s *stubQueries) CreateSupplier(_ context.Context, arg dbgen.CreateSupplierParams) (dbgen.Supplier, error) {
	s.nextID++
	row := dbgen.Supplier{ID: s.nextID, Name: arg.Name, Type: arg.Type}
	s.rows = append(s.rows, row)
	return row, nil
}

func (s *stubQueries) GetSupplier(_ context.Context, id int64) (dbgen.Supplier, error) {
	if i := s.find(id); i >= 0 {
		return s.rows[i], nil
	}
	return dbgen.Supplier{}, pgx.ErrNoRows
}

func (s *stubQueries) ListSuppliers(context.Context) ([]dbgen.Supplier, error) {
	return append([]dbgen.Supplier(nil), s.rows...), nil
}

func (s *stubQueries) UpdateSupplier(_ context.Context, arg dbgen.UpdateSupplierParams) (dbgen.Supplier, error) {
	i := s.find(arg.ID)
	if i < 0 {
		return dbgen.Supplier{}, pgx.ErrNoRows
	}
	s.rows[i] = dbgen.Supplier{ID: arg.ID, Name: arg.Name, Type: arg.Type}
	return s.rows[i], nil
}

func (s *stubQueries) DeleteSupplier(_ context.Context, id int64) (int64, error) {
	i := s.find(id)
	if i < 0 {
		return 0, nil
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return 1, nil
}

func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestSupplierHandlers(t *testing.T) {
	svc, err := NewService(&stubQueries{})
	require.NoError(t, err)
	h := NewHandler(svc, nil)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/suppliers", strings.NewReader(`{"name":"Milling Center","type":"Milling"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/suppliers", strings.NewReader(`{"name":"Ali","type":"Post NPG"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/suppliers", strings.NewReader(`{"name":"Ali","type":"Gold"}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "VALIDATION_ERROR")

	rec = httptest.NewRecorder()
	h.Update(rec, withID(httptest.NewRequest(http.MethodPut, "/api/v1/suppliers/2", strings.NewReader(`{"name":"Ali R.","type":"PFM"}`)), "2"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Ali R.")

	rec = httptest.NewRecorder()
	h.Get(rec, withID(httptest.NewRequest(http.MethodGet, "/api/v1/suppliers/7", nil), "7"))
	require.Equal(t, http.StatusNotFound, rec.Code)

	names, err := svc.Names(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[int64]string{1: "Milling Center", 2: "Ali R."}, names)

	rec = httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodGet, "/api/v1/suppliers/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Equal(t, "id,name,type", lines[0])
	require.Len(t, lines, 3)

	rec = httptest.NewRecorder()
	h.Delete(rec, withID(httptest.NewRequest(http.MethodDelete, "/api/v1/suppliers/1", nil), "1"))
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = httptest.NewRecorder()
	h.Delete(rec, withID(httptest.NewRequest(http.MethodDelete, "/api/v1/suppliers/1", nil), "1"))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
