package common_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-dentlab/internal/common"
)

type sampleRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"customer_category"`
	Type     string `json:"type" validate:"supplier_type"`
	Shade    string `json:"shade" validate:"shade"`
	Tier     string `json:"price_tier" validate:"price_tier"`
}

func TestValidateStructEnums(t *testing.T) {
	v := common.NewValidator()
	ok := sampleRequest{Name: "Dr. Rahimi", Category: "Clinic", Type: "Post NPG", Shade: "A3.5", Tier: "Legacy"}
	require.NoError(t, common.ValidateStruct(v, ok))

	empty := sampleRequest{Name: "x"}
	require.NoError(t, common.ValidateStruct(v, empty))

	bad := sampleRequest{Category: "Hospital", Type: "Gold", Shade: "Z9", Tier: "VIP"}
	err := common.ValidateStruct(v, bad)
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)
	fields := appErr.Details.(map[string]any)["fields"].(map[string]string)
	require.Contains(t, fields, "name")
	require.Contains(t, fields, "category")
	require.Contains(t, fields, "type")
	require.Contains(t, fields, "shade")
	require.Contains(t, fields, "price_tier")
}

func TestNumericRoundTrip(t *testing.T) {
	d := decimal.RequireFromString("1575000.50")
	require.True(t, d.Equal(common.Decimal(common.Numeric(d))))
	require.True(t, common.Decimal(common.Numeric(decimal.Zero)).IsZero())
}

func TestWriteErrorMapsAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	common.WriteError(rec, common.Conflict("category already exists", nil))
	require.Equal(t, http.StatusConflict, rec.Code)
	var body struct {
		Error common.ErrorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "CONFLICT", body.Error.Code)

	rec = httptest.NewRecorder()
	common.WriteError(rec, errors.New("boom"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

type csvRow struct {
	ID   int64  `csv:"id"`
	Name string `csv:"name"`
}

func TestWriteCSVHeaderOnEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	common.WriteCSV(rec, "customers.csv", []csvRow{})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "id,name", strings.TrimSpace(rec.Body.String()))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "customers.csv")
}

func TestIntList(t *testing.T) {
	require.Equal(t, []int{1, 3}, common.IntList("1, x,3,"))
	require.Nil(t, common.IntList(" "))
}

func TestIdempotencyRejectsReplay(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	calls := 0
	h := common.Idem{R: client, TTL: time.Minute}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))
	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
		req.Header.Set("Idempotency-Key", "abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	require.Equal(t, http.StatusCreated, send())
	require.Equal(t, http.StatusConflict, send())
	require.Equal(t, 1, calls)
}

func TestIdempotencyReleasesKeyOnFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	h := common.Idem{R: client, TTL: time.Minute}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", nil)
		req.Header.Set("Idempotency-Key", "retry")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}
}
