package customer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-dentlab/internal/common"
	dbgen "github.com/noah-isme/backend-dentlab/internal/db/gen"
	"github.com/noah-isme/backend-dentlab/internal/pricing"
)

type stubQueries struct {
	rows      map[int64]dbgen.Customer
	nextID    int64
	lastList  dbgen.ListCustomersParams
	tierError error
}

func newStub() *stubQueries {
	return &stubQueries{rows: map[int64]dbgen.Customer{}}
}

func (s *stubQueries) CreateCustomer(_ context.Context, arg dbgen.CreateCustomerParams) (dbgen.Customer, error) {
	s.nextID++
	row := dbgen.Customer{ID: s.nextID, Name: arg.Name, Phone: arg.Phone, Category: arg.Category, Notes: arg.Notes, PriceTier: arg.PriceTier}
	s.rows[row.ID] = row
	return row, nil
}

func (s *stubQueries) GetCustomer(_ context.Context, id int64) (dbgen.Customer, error) {
	row, ok := s.rows[id]
	if !ok {
		return dbgen.Customer{}, pgx.ErrNoRows
	}
	return row, nil
}

func (s *stubQueries) ListCustomers(_ context.Context, arg dbgen.ListCustomersParams) ([]dbgen.Customer, error) {
	s.lastList = arg
	var out []dbgen.Customer
	for id := int64(1); id <= s.nextID; id++ {
		row, ok := s.rows[id]
		if !ok {
			continue
		}
		if arg.Name.Valid && !strings.Contains(strings.ToLower(row.Name), strings.ToLower(arg.Name.String)) {
			continue
		}
		if arg.ID.Valid && row.ID != arg.ID.Int64 {
			continue
		}
		if arg.Category.Valid && row.Category.String != arg.Category.String {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *stubQueries) UpdateCustomer(_ context.Context, arg dbgen.UpdateCustomerParams) (dbgen.Customer, error) {
	if _, ok := s.rows[arg.ID]; !ok {
		return dbgen.Customer{}, pgx.ErrNoRows
	}
	row := dbgen.Customer{ID: arg.ID, Name: arg.Name, Phone: arg.Phone, Category: arg.Category, Notes: arg.Notes, PriceTier: arg.PriceTier}
	s.rows[arg.ID] = row
	return row, nil
}

func (s *stubQueries) DeleteCustomer(_ context.Context, id int64) (int64, error) {
	if _, ok := s.rows[id]; !ok {
		return 0, nil
	}
	delete(s.rows, id)
	return 1, nil
}

func (s *stubQueries) GetCustomerPriceTier(_ context.Context, id int64) (string, error) {
	if s.tierError != nil {
		return "", s.tierError
	}
	row, ok := s.rows[id]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return row.PriceTier, nil
}

func TestCreateDefaultsToStandardTier(t *testing.T) {
	svc, err := NewService(newStub())
	require.NoError(t, err)

	c, err := svc.Create(context.Background(), Input{Name: "  Clinic Rose ", Category: "Clinic"})
	require.NoError(t, err)
	require.Equal(t, "Clinic Rose", c.Name)
	require.Equal(t, pricing.TierStandard, c.PriceTier)

	_, err = svc.Create(context.Background(), Input{Name: " "})
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestTierLookup(t *testing.T) {
	stub := newStub()
	svc, err := NewService(stub)
	require.NoError(t, err)
	ctx := context.Background()
	legacy, err := svc.Create(ctx, Input{Name: "Dr. Old", PriceTier: "Legacy"})
	require.NoError(t, err)

	tier, err := svc.Tier(ctx, legacy.ID)
	require.NoError(t, err)
	require.Equal(t, pricing.TierLegacy, tier)

	tier, err = svc.Tier(ctx, 404)
	require.NoError(t, err)
	require.Equal(t, pricing.TierStandard, tier)

	stub.tierError = errors.New("connection reset")
	_, err = svc.Tier(ctx, legacy.ID)
	require.Error(t, err)
}

func TestListFilters(t *testing.T) {
	stub := newStub()
	svc, err := NewService(stub)
	require.NoError(t, err)
	ctx := context.Background()
	for _, in := range []Input{{Name: "Rose Clinic", Category: "Clinic"}, {Name: "Dr. Rahimi", Category: "Doctor"}, {Name: "North Lab", Category: "Lab"}} {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, Filter{Name: "ros"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Rose Clinic", list[0].Name)

	list, err = svc.List(ctx, Filter{Category: "Lab"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = svc.List(ctx, Filter{ID: 2})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, stub.lastList.ID.Valid)

	names, err := svc.Names(ctx)
	require.NoError(t, err)
	require.Equal(t, "North Lab", names[3])
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	svc, err := NewService(newStub())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Update(ctx, 9, Input{Name: "X"})
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, 9), ErrNotFound)
	_, err = svc.Get(ctx, 9)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHandlersValidateEnums(t *testing.T) {
	svc, err := NewService(newStub())
	require.NoError(t, err)
	h := NewHandler(svc, nil)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader(`{"name":"A","category":"Hospital"}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"category"`)

	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader(`{"name":"A","price_tier":"Gold"}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader(`{"name":"Rose Clinic","category":"Clinic","price_tier":"Legacy"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"price_tier":"Legacy"`)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/customers?category=Clinic", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Rose Clinic")

	rec = httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodGet, "/api/v1/customers/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.HasPrefix(rec.Body.String(), "id,name,phone,category,notes,price_tier"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "customers.csv")
}
