package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-dentlab/internal/common"
	dbgen "github.com/noah-isme/backend-dentlab/internal/db/gen"
	"github.com/noah-isme/backend-dentlab/internal/lineitem"
	"github.com/noah-isme/backend-dentlab/internal/obs"
	"github.com/noah-isme/backend-dentlab/internal/pricing"
)

// ErrNotFound is returned when the order id does not exist.
var ErrNotFound = errors.New("order: not found")

const (
	defaultPerPage = 50
	maxPerPage     = 500
	maxExportRows  = 10000
	maxUnits       = 10000
)

// Querier is the subset of generated queries used for orders.
type Querier interface {
	CreateOrder(ctx context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error)
	GetOrder(ctx context.Context, id int64) (dbgen.Order, error)
	ListOrders(ctx context.Context, arg dbgen.ListOrdersParams) ([]dbgen.ListOrdersRow, error)
	CountOrders(ctx context.Context, arg dbgen.CountOrdersParams) (int64, error)
	UpdateOrder(ctx context.Context, arg dbgen.UpdateOrderParams) (dbgen.Order, error)
	DeleteOrder(ctx context.Context, id int64) (int64, error)
}

// TierSource resolves the pricing tier of a customer.
type TierSource interface {
	Tier(ctx context.Context, customerID int64) (pricing.Tier, error)
}

// PriceSource provides the current price list.
type PriceSource interface {
	Snapshot(ctx context.Context) (pricing.PriceList, error)
}

// NameSource maps record ids to display names.
type NameSource interface {
	Names(ctx context.Context) (map[int64]string, error)
}

// Service prices and stores orders.
type Service struct {
	queries   Querier
	tiers     TierSource
	prices    PriceSource
	customers NameSource
	suppliers NameSource
	engine    pricing.Engine
	perPage   int
	logger    zerolog.Logger
}

// ServiceConfig groups Service dependencies. Customers and Suppliers are optional.
type ServiceConfig struct {
	Queries   Querier
	Tiers     TierSource
	Prices    PriceSource
	Customers NameSource
	Suppliers NameSource
	Engine    pricing.Engine
	PerPage   int
	Logger    *zerolog.Logger
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Queries == nil {
		return nil, errors.New("order: queries provider is required")
	}
	if cfg.Tiers == nil || cfg.Prices == nil {
		return nil, errors.New("order: tier and price sources are required")
	}
	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "order").Logger()
	}
	return &Service{
		queries:   cfg.Queries,
		tiers:     cfg.Tiers,
		prices:    cfg.Prices,
		customers: cfg.Customers,
		suppliers: cfg.Suppliers,
		engine:    cfg.Engine,
		perPage:   perPage,
		logger:    logger,
	}, nil
}

// Quote prices a product mix for a customer without storing anything. A zero
// customer id prices at the Standard tier.
func (s *Service) Quote(ctx context.Context, in QuoteInput) (pricing.Quote, error) {
	if err := checkQuantities(in.Items); err != nil {
		return pricing.Quote{}, err
	}
	q, err := s.quote(ctx, in.CustomerID, canonicalLineItems(in.Items, in.LineItems))
	if err != nil {
		return pricing.Quote{}, err
	}
	if err := checkUnits(q, in.Items); err != nil {
		return pricing.Quote{}, err
	}
	return q, nil
}

func (s *Service) quote(ctx context.Context, customerID int64, raw string) (pricing.Quote, error) {
	tier := pricing.TierStandard
	if customerID > 0 {
		t, err := s.tiers.Tier(ctx, customerID)
		if err != nil {
			return pricing.Quote{}, err
		}
		tier = t
	}
	prices, err := s.prices.Snapshot(ctx)
	if err != nil {
		return pricing.Quote{}, fmt.Errorf("price list snapshot: %w", err)
	}
	return s.engine.Quote(raw, prices, tier), nil
}

// Create prices the order with the customer's tier and stores the result.
// Units and price are frozen at this point.
func (s *Service) Create(ctx context.Context, in Input) (Order, error) {
	params, q, err := s.prepare(ctx, in)
	if err != nil {
		return Order{}, err
	}
	row, err := s.queries.CreateOrder(ctx, dbgen.CreateOrderParams(params))
	if err != nil {
		return Order{}, mapWriteError(err)
	}
	s.recordSave("create", q)
	return s.enrich(ctx, fromRow(row))
}

// Update re-prices the order against the current price list and stores it.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Order, error) {
	params, q, err := s.prepare(ctx, in)
	if err != nil {
		return Order{}, err
	}
	row, err := s.queries.UpdateOrder(ctx, dbgen.UpdateOrderParams{
		ID:                   id,
		CustomerID:           params.CustomerID,
		DayArrivalNumber:     params.DayArrivalNumber,
		MonthArrivalNumber:   params.MonthArrivalNumber,
		YearArrivalNumber:    params.YearArrivalNumber,
		DayDepartureNumber:   params.DayDepartureNumber,
		MonthDepartureNumber: params.MonthDepartureNumber,
		YearDepartureNumber:  params.YearDepartureNumber,
		DoctorName:           params.DoctorName,
		PatientName:          params.PatientName,
		DentCategory:         params.DentCategory,
		CoWorkerOwns:         params.CoWorkerOwns,
		NoUnits:              params.NoUnits,
		Color:                params.Color,
		Price:                params.Price,
		Status:               params.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, common.NotFound("order not found", ErrNotFound)
		}
		return Order{}, mapWriteError(err)
	}
	s.recordSave("update", q)
	return s.enrich(ctx, fromRow(row))
}

// orderParams mirrors dbgen.CreateOrderParams so create and update share one builder.
type orderParams dbgen.CreateOrderParams

func (s *Service) prepare(ctx context.Context, in Input) (orderParams, pricing.Quote, error) {
	if err := checkQuantities(in.Items); err != nil {
		return orderParams{}, pricing.Quote{}, err
	}
	raw := canonicalLineItems(in.Items, in.LineItems)
	q, err := s.quote(ctx, in.CustomerID, raw)
	if err != nil {
		return orderParams{}, pricing.Quote{}, err
	}
	if err := checkUnits(q, in.Items); err != nil {
		return orderParams{}, q, err
	}
	if q.Units < 1 {
		return orderParams{}, q, common.Validation("items", "at least one unit is required")
	}
	p := orderParams{
		CustomerID:         in.CustomerID,
		DayArrivalNumber:   int32(in.Arrival.Day),
		MonthArrivalNumber: int32(in.Arrival.Month),
		YearArrivalNumber:  int32(in.Arrival.Year),
		DoctorName:         common.Text(in.DoctorName),
		PatientName:        common.Text(in.PatientName),
		DentCategory:       raw,
		CoWorkerOwns:       formatCoWorkers(in.CoWorkerIDs),
		NoUnits:            int32(q.Units),
		Color:              common.Text(in.Color),
		Price:              common.Numeric(q.Total),
		Status:             common.Text(in.Status),
	}
	if d := in.Departure; d != nil {
		p.DayDepartureNumber = pgtype.Int4{Int32: int32(d.Day), Valid: true}
		p.MonthDepartureNumber = pgtype.Int4{Int32: int32(d.Month), Valid: true}
		p.YearDepartureNumber = pgtype.Int4{Int32: int32(d.Year), Valid: true}
	}
	return p, q, nil
}

func (s *Service) recordSave(operation string, q pricing.Quote) {
	obs.Inc(obs.OrdersSavedTotal, operation, string(q.Tier))
	for _, f := range q.Skipped {
		obs.Inc(obs.LineItemsSkippedTotal, f.Reason)
	}
	if len(q.Skipped) > 0 {
		s.logger.Warn().Int("skipped", len(q.Skipped)).Str("line_items", q.Raw).Msg("line item fragments dropped")
	}
}

// Get returns one order with customer and co-worker names filled in.
func (s *Service) Get(ctx context.Context, id int64) (Order, error) {
	row, err := s.queries.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, common.NotFound("order not found", ErrNotFound)
		}
		return Order{}, fmt.Errorf("get order: %w", err)
	}
	return s.enrich(ctx, fromRow(row))
}

// List returns one page of orders matching f and the total match count.
func (s *Service) List(ctx context.Context, f Filter) ([]Order, int64, error) {
	page, perPage := f.Page, f.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = s.perPage
	}
	if perPage > maxExportRows {
		perPage = maxExportRows
	}
	count := countParams(f)
	total, err := s.queries.CountOrders(ctx, count)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	rows, err := s.queries.ListOrders(ctx, dbgen.ListOrdersParams{
		ID:          count.ID,
		Customer:    count.Customer,
		Doctor:      count.Doctor,
		Status:      count.Status,
		FromYear:    count.FromYear,
		FromMonth:   count.FromMonth,
		FromDay:     count.FromDay,
		ToYear:      count.ToYear,
		ToMonth:     count.ToMonth,
		ToDay:       count.ToDay,
		LimitValue:  int32(perPage),
		OffsetValue: common.Offset(page, perPage),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	suppliers := s.supplierNames(ctx)
	out := make([]Order, 0, len(rows))
	for _, row := range rows {
		o := fromListRow(row)
		o.CoWorkers = coWorkerNames(o.CoWorkerIDs, suppliers)
		out = append(out, o)
	}
	return out, total, nil
}

// Delete removes an order.
func (s *Service) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteOrder(ctx, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if n == 0 {
		return common.NotFound("order not found", ErrNotFound)
	}
	return nil
}

func (s *Service) enrich(ctx context.Context, o Order) (Order, error) {
	o.CustomerName = DeletedCustomer
	if s.customers != nil {
		names, err := s.customers.Names(ctx)
		if err != nil {
			return Order{}, err
		}
		if name, ok := names[o.CustomerID]; ok {
			o.CustomerName = name
		}
	}
	o.CoWorkers = coWorkerNames(o.CoWorkerIDs, s.supplierNames(ctx))
	return o, nil
}

func (s *Service) supplierNames(ctx context.Context) map[int64]string {
	if s.suppliers == nil {
		return nil
	}
	names, err := s.suppliers.Names(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("load supplier names")
		return nil
	}
	return names
}

func countParams(f Filter) dbgen.CountOrdersParams {
	p := dbgen.CountOrdersParams{
		Customer: common.Text(f.Customer),
		Doctor:   common.Text(f.Doctor),
		Status:   common.Text(f.Status),
	}
	if f.ID > 0 {
		id := f.ID
		p.ID = common.Int8(&id)
	}
	if f.From != nil {
		p.FromYear = pgtype.Int4{Int32: int32(f.From.Year), Valid: true}
		p.FromMonth = pgtype.Int4{Int32: int32(f.From.Month), Valid: true}
		p.FromDay = pgtype.Int4{Int32: int32(f.From.Day), Valid: true}
	}
	if f.To != nil {
		p.ToYear = pgtype.Int4{Int32: int32(f.To.Year), Valid: true}
		p.ToMonth = pgtype.Int4{Int32: int32(f.To.Month), Valid: true}
		p.ToDay = pgtype.Int4{Int32: int32(f.To.Day), Valid: true}
	}
	return p
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			appErr := common.Validation("customer_id", "customer does not exist")
			appErr.Err = err
			return appErr
		case pgerrcode.NumericValueOutOfRange:
			appErr := common.Validation("price", "order total is too large to store")
			appErr.Err = err
			return appErr
		case pgerrcode.CheckViolation:
			appErr := common.Validation(pgErr.ColumnName, "value rejected by "+pgErr.ConstraintName)
			appErr.Err = err
			return appErr
		}
	}
	return fmt.Errorf("write order: %w", err)
}

func checkQuantities(items []lineitem.Item) error {
	for i, it := range items {
		if !lineitem.ValidCategory(it.Category) {
			return common.Validation(fmt.Sprintf("items[%d].category", i), "category is required and must not contain "+`"`+lineitem.Separator+`"`)
		}
		if it.Quantity < 0 {
			return common.Validation(fmt.Sprintf("items[%d].quantity", i), "quantity must not be negative")
		}
		if it.Quantity > lineitem.MaxQuantity {
			return common.Validation(fmt.Sprintf("items[%d].quantity", i), fmt.Sprintf("quantity must be at most %d", lineitem.MaxQuantity))
		}
	}
	return nil
}

// checkUnits bounds the merged lines and the order total after parsing, which
// also covers quantities sent as a raw line_items string.
func checkUnits(q pricing.Quote, items []lineitem.Item) error {
	field := "line_items"
	if len(items) > 0 {
		field = "items"
	}
	for _, it := range q.Items {
		if it.Quantity > lineitem.MaxQuantity {
			return common.Validation(field, fmt.Sprintf("%s: quantity must be at most %d", it.Category, lineitem.MaxQuantity))
		}
	}
	if q.Units > maxUnits {
		return common.Validation(field, fmt.Sprintf("an order may carry at most %d units", maxUnits))
	}
	return nil
}
