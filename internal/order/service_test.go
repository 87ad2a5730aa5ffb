package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-dentlab/internal/catalog"
	"github.com/noah-isme/backend-dentlab/internal/common"
	dbgen "github.com/noah-isme/backend-dentlab/internal/db/gen"
	"github.com/noah-isme/backend-dentlab/internal/lineitem"
	"github.com/noah-isme/backend-dentlab/internal/pricing"
)

type stubQueries struct {
	rows      map[int64]dbgen.Order
	nextID    int64
	customers map[int64]string
	lastList  dbgen.ListOrdersParams
	createErr error
}

func newStubQueries() *stubQueries {
	return &stubQueries{rows: map[int64]dbgen.Order{}, customers: map[int64]string{}}
}

func (s *stubQueries) CreateOrder(_ context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error) {
	if s.createErr != nil {
		return dbgen.Order{}, s.createErr
	}
	s.nextID++
	row := dbgen.Order{
		ID: s.nextID, CustomerID: arg.CustomerID,
		DayArrivalNumber: arg.DayArrivalNumber, MonthArrivalNumber: arg.MonthArrivalNumber, YearArrivalNumber: arg.YearArrivalNumber,
		DayDepartureNumber: arg.DayDepartureNumber, MonthDepartureNumber: arg.MonthDepartureNumber, YearDepartureNumber: arg.YearDepartureNumber,
		DoctorName: arg.DoctorName, PatientName: arg.PatientName, DentCategory: arg.DentCategory, CoWorkerOwns: arg.CoWorkerOwns,
		NoUnits: arg.NoUnits, Color: arg.Color, Price: arg.Price, Status: arg.Status,
	}
	s.rows[row.ID] = row
	return row, nil
}

func (s *stubQueries) GetOrder(_ context.Context, id int64) (dbgen.Order, error) {
	row, ok := s.rows[id]
	if !ok {
		return dbgen.Order{}, pgx.ErrNoRows
	}
	return row, nil
}

func (s *stubQueries) ListOrders(_ context.Context, arg dbgen.ListOrdersParams) ([]dbgen.ListOrdersRow, error) {
	s.lastList = arg
	var out []dbgen.ListOrdersRow
	for id := int64(1); id <= s.nextID; id++ {
		row, ok := s.rows[id]
		if !ok || (arg.ID.Valid && arg.ID.Int64 != id) {
			continue
		}
		name, ok := s.customers[row.CustomerID]
		out = append(out, dbgen.ListOrdersRow{
			ID: row.ID, CustomerID: row.CustomerID,
			DayArrivalNumber: row.DayArrivalNumber, MonthArrivalNumber: row.MonthArrivalNumber, YearArrivalNumber: row.YearArrivalNumber,
			DayDepartureNumber: row.DayDepartureNumber, MonthDepartureNumber: row.MonthDepartureNumber, YearDepartureNumber: row.YearDepartureNumber,
			DoctorName: row.DoctorName, PatientName: row.PatientName, DentCategory: row.DentCategory, CoWorkerOwns: row.CoWorkerOwns,
			NoUnits: row.NoUnits, Color: row.Color, Price: row.Price, Status: row.Status,
			CustomerName: pgtype.Text{String: name, Valid: ok},
		})
	}
	return out, nil
}

func (s *stubQueries) CountOrders(_ context.Context, arg dbgen.CountOrdersParams) (int64, error) {
	if arg.ID.Valid {
		if _, ok := s.rows[arg.ID.Int64]; ok {
			return 1, nil
		}
		return 0, nil
	}
	return int64(len(s.rows)), nil
}

func (s *stubQueries) UpdateOrder(ctx context.Context, arg dbgen.UpdateOrderParams) (dbgen.Order, error) {
	if _, ok := s.rows[arg.ID]; !ok {
		return dbgen.Order{}, pgx.ErrNoRows
	}
	row := dbgen.Order{
		ID: arg.ID, CustomerID: arg.CustomerID,
		DayArrivalNumber: arg.DayArrivalNumber, MonthArrivalNumber: arg.MonthArrivalNumber, YearArrivalNumber: arg.YearArrivalNumber,
		DayDepartureNumber: arg.DayDepartureNumber, MonthDepartureNumber: arg.MonthDepartureNumber, YearDepartureNumber: arg.YearDepartureNumber,
		DoctorName: arg.DoctorName, PatientName: arg.PatientName, DentCategory: arg.DentCategory, CoWorkerOwns: arg.CoWorkerOwns,
		NoUnits: arg.NoUnits, Color: arg.Color, Price: arg.Price, Status: arg.Status,
	}
	s.rows[arg.ID] = row
	return row, nil
}

func (s *stubQueries) DeleteOrder(_ context.Context, id int64) (int64, error) {
	if _, ok := s.rows[id]; !ok {
		return 0, nil
	}
	delete(s.rows, id)
	return 1, nil
}

type stubTiers map[int64]pricing.Tier

func (s stubTiers) Tier(_ context.Context, id int64) (pricing.Tier, error) {
	if t, ok := s[id]; ok {
		return t, nil
	}
	return pricing.TierStandard, nil
}

type stubPrices struct{ entries []pricing.Entry }

func (s *stubPrices) Snapshot(context.Context) (pricing.PriceList, error) {
	return pricing.NewPriceList(s.entries), nil
}

type stubNames map[int64]string

func (s stubNames) Names(context.Context) (map[int64]string, error) { return s, nil }

type fixture struct {
	q      *stubQueries
	prices *stubPrices
	svc    *Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	q := newStubQueries()
	q.customers[1] = "Rose Clinic"
	q.customers[2] = "Dr. Old"
	prices := &stubPrices{entries: []pricing.Entry{
		{Category: "Zirconia Crown", UnitPrice: decimal.NewFromInt(1000000)},
		{Category: "PMMA", UnitPrice: decimal.NewFromInt(500000)},
	}}
	svc, err := NewService(ServiceConfig{
		Queries:   q,
		Tiers:     stubTiers{2: pricing.TierLegacy},
		Prices:    prices,
		Customers: stubNames(q.customers),
		Suppliers: stubNames{3: "Milling Center"},
		Engine:    pricing.NewEngine(decimal.RequireFromString("0.90")),
	})
	require.NoError(t, err)
	return fixture{q: q, prices: prices, svc: svc}
}

func baseInput(customer int64) Input {
	return Input{
		CustomerID: customer,
		Arrival:    Date{Day: 12, Month: 4, Year: 1403},
		Items:      []lineitem.Item{{Category: "Zirconia Crown", Quantity: 2}, {Category: "PMMA", Quantity: 0}},
	}
}

func TestCreateFreezesTierAdjustedPrice(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	in := baseInput(2)
	in.CoWorkerIDs = []int64{3, 9, 3}
	o, err := fx.svc.Create(ctx, in)
	require.NoError(t, err)
	require.Equal(t, "Zirconia Crown:2", o.LineItems)
	require.Equal(t, 2, o.Units)
	require.Equal(t, "1800000", o.Price.String())
	require.Equal(t, "Dr. Old", o.CustomerName)
	require.Equal(t, []int64{3, 9}, o.CoWorkerIDs)
	require.Equal(t, []string{"Milling Center", "ID 9"}, o.CoWorkers)
	require.False(t, o.Departed)

	fx.prices.entries[0].UnitPrice = decimal.NewFromInt(2000000)
	stored, err := fx.svc.Get(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, "1800000", stored.Price.String())
	require.Equal(t, 2, stored.Units)
}

func TestUpdateRepricesAgainstCurrentList(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	o, err := fx.svc.Create(ctx, baseInput(1))
	require.NoError(t, err)
	require.Equal(t, "2000000", o.Price.String())

	fx.prices.entries[1].UnitPrice = decimal.NewFromInt(400000)
	in := baseInput(1)
	in.Items = []lineitem.Item{{Category: "PMMA", Quantity: 1}, {Category: "Unknown", Quantity: 1}, {Category: "PMMA", Quantity: 2}}
	in.Departure = &Date{Day: 20, Month: 4, Year: 1403}
	updated, err := fx.svc.Update(ctx, o.ID, in)
	require.NoError(t, err)
	require.Equal(t, "PMMA:3, Unknown:1", updated.LineItems)
	require.Equal(t, 4, updated.Units)
	require.Equal(t, "1200000", updated.Price.String())
	require.True(t, updated.Departed)

	_, err = fx.svc.Update(ctx, 42, in)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRejectsZeroUnits(t *testing.T) {
	fx := newFixture(t)
	in := baseInput(1)
	in.Items = []lineitem.Item{{Category: "PMMA", Quantity: 0}}
	_, err := fx.svc.Create(context.Background(), in)
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)
	require.Empty(t, fx.q.rows)

	in.Items = []lineitem.Item{{Category: "PMMA", Quantity: -1}}
	_, err = fx.svc.Create(context.Background(), in)
	require.True(t, errors.As(err, &appErr))
}

func TestCreateMapsMissingCustomer(t *testing.T) {
	fx := newFixture(t)
	fx.q.createErr = &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	_, err := fx.svc.Create(context.Background(), baseInput(77))
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr), "got %v", err)
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)
	require.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	require.Equal(t, map[string]any{"field": field}, appErr.Details)
}

func TestCreateWithDefaultPriceListKeepsLineItems(t *testing.T) {
	fx := newFixture(t)
	fx.prices.entries = catalog.DefaultPriceList
	ctx := context.Background()

	in := baseInput(1)
	in.Items = []lineitem.Item{{Category: "Full Zirconia Crown (Multi-unit Anterior)", Quantity: 2}}
	o, err := fx.svc.Create(ctx, in)
	require.NoError(t, err)
	require.Equal(t, 2, o.Units)
	require.Equal(t, "3400000", o.Price.String())
	require.Equal(t, in.Items, lineitem.Parse(o.LineItems))

	stored, err := fx.svc.Get(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, in.Items, stored.Items)
}

func TestCreateRejectsSeparatorInCategory(t *testing.T) {
	fx := newFixture(t)
	in := baseInput(1)
	in.Items = []lineitem.Item{{Category: "PMMA", Quantity: 1}, {Category: "Crown (Multi-unit, Anterior)", Quantity: 2}}
	_, err := fx.svc.Create(context.Background(), in)
	requireValidation(t, err, "items[1].category")
	require.Empty(t, fx.q.rows)

	in.Items = []lineitem.Item{{Category: "Bridge:3", Quantity: 2}}
	fx.prices.entries = append(fx.prices.entries, pricing.Entry{Category: "Bridge:3", UnitPrice: decimal.NewFromInt(100)})
	o, err := fx.svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "Bridge:3:2", o.LineItems)
	require.Equal(t, 2, o.Units)
	require.Equal(t, "200", o.Price.String())
}

func TestCreateBoundsQuantities(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	in := baseInput(1)
	in.Items = []lineitem.Item{{Category: "PMMA", Quantity: 4294967297}}
	_, err := fx.svc.Create(ctx, in)
	requireValidation(t, err, "items[0].quantity")

	in.Items = []lineitem.Item{{Category: "PMMA", Quantity: lineitem.MaxQuantity}, {Category: "PMMA", Quantity: 1}}
	_, err = fx.svc.Create(ctx, in)
	requireValidation(t, err, "items")

	in.Items = nil
	in.LineItems = "PMMA:4294967297"
	_, err = fx.svc.Create(ctx, in)
	requireValidation(t, err, "line_items")

	parts := make([]string, 0, 11)
	for i := range 11 {
		parts = append(parts, fmt.Sprintf("Crown %d:%d", i, lineitem.MaxQuantity))
	}
	in.LineItems = strings.Join(parts, ", ")
	_, err = fx.svc.Create(ctx, in)
	requireValidation(t, err, "line_items")

	_, err = fx.svc.Quote(ctx, QuoteInput{LineItems: "PMMA:4294967297"})
	requireValidation(t, err, "line_items")
	require.Empty(t, fx.q.rows)

	in.LineItems = "PMMA:" + strconv.Itoa(lineitem.MaxQuantity)
	o, err := fx.svc.Create(ctx, in)
	require.NoError(t, err)
	require.Equal(t, lineitem.MaxQuantity, o.Units)
	require.Equal(t, "500000000", o.Price.String())
}

func TestCreateMapsNumericOverflow(t *testing.T) {
	fx := newFixture(t)
	fx.q.createErr = &pgconn.PgError{Code: pgerrcode.NumericValueOutOfRange}
	_, err := fx.svc.Create(context.Background(), baseInput(1))
	requireValidation(t, err, "price")
}

func TestListLabelsDeletedCustomers(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	_, err := fx.svc.Create(ctx, baseInput(1))
	require.NoError(t, err)
	_, err = fx.svc.Create(ctx, baseInput(2))
	require.NoError(t, err)
	delete(fx.q.customers, 2)

	list, total, err := fx.svc.List(ctx, Filter{Page: 2, PerPage: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Equal(t, "Rose Clinic", list[0].CustomerName)
	require.Equal(t, DeletedCustomer, list[1].CustomerName)
	require.EqualValues(t, 10, fx.q.lastList.OffsetValue)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1403-02-30")
	require.NoError(t, err)
	require.Equal(t, Date{Day: 30, Month: 2, Year: 1403}, d)
	require.Equal(t, "1403-02-30", d.String())

	for _, bad := range []string{"", "1403-13-01", "1403-01-31", "yesterday", "1403-01"} {
		_, err := ParseDate(bad)
		require.Error(t, err, bad)
	}
}

func TestHandlers(t *testing.T) {
	fx := newFixture(t)
	h := NewHandler(fx.svc, nil)

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body)))
		return rec
	}

	rec := post(`{"customer_id":1,"arrival":{"day":3,"month":5,"year":1403},"items":[{"category":"PMMA","quantity":2}],"color":"A3.5"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"price":"1000000"`)

	rec = post(`{"customer_id":1,"arrival":{"day":31,"month":5,"year":1403},"items":[{"category":"PMMA","quantity":1}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "arrival.day")

	rec = post(`{"customer_id":1,"arrival":{"day":3,"month":5,"year":1403},"departure":{"day":4},"items":[{"category":"PMMA","quantity":1}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(`{"customer_id":1,"arrival":{"day":3,"month":5,"year":1403},"items":[{"category":"PMMA","quantity":1}],"color":"Z9"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "color")

	rec = httptest.NewRecorder()
	h.Quote(rec, httptest.NewRequest(http.MethodPost, "/api/v1/orders/quote", strings.NewReader(`{"customer_id":2,"line_items":"Zirconia Crown:1, PMMA:x"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var quote struct {
		Data pricing.Quote `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	require.Equal(t, pricing.TierLegacy, quote.Data.Tier)
	require.Equal(t, "900000", quote.Data.Total.String())

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders?from=1403-01-01&to=1403-12-30", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "1", rec.Header().Get("X-Total-Count"))
	require.True(t, fx.q.lastList.FromYear.Valid)
	require.EqualValues(t, 30, fx.q.lastList.ToDay.Int32)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders?from=soon", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Equal(t, "id,customer,arrival,departure,doctor_name,patient_name,line_items,co_workers,units,color,price,status", lines[0])
	require.Contains(t, lines[1], "1403-05-03")
	require.Contains(t, lines[1], "1000000.00")
}
