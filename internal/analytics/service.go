package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/noah-isme/backend-dentlab/internal/cache"
	"github.com/noah-isme/backend-dentlab/internal/common"
	dbgen "github.com/noah-isme/backend-dentlab/internal/db/gen"
	"github.com/noah-isme/backend-dentlab/internal/obs"
)

// Querier defines the database access required for analytics operations.
type Querier interface {
	ListAllOrders(ctx context.Context) ([]dbgen.Order, error)
	CountCustomers(ctx context.Context) (int64, error)
	CountOrdersTotal(ctx context.Context) (int64, error)
	CountIncompleteOrders(ctx context.Context) (int64, error)
	CountReminders(ctx context.Context) (int64, error)
	CountSuppliers(ctx context.Context) (int64, error)
}

// NameSource maps record ids to display names.
type NameSource interface {
	Names(ctx context.Context) (map[int64]string, error)
}

// Service loads orders and builds cached reports.
type Service struct {
	Q             Querier
	Customers     NameSource
	Suppliers     NameSource
	Cache         *cache.Cache
	TopN          int
	TopCategories int
	Currency      string
}

// Overview holds the dashboard counters.
type Overview struct {
	Customers        int64 `json:"customers"`
	Orders           int64 `json:"orders"`
	IncompleteOrders int64 `json:"incomplete_orders"`
	Reminders        int64 `json:"reminders"`
	Suppliers        int64 `json:"suppliers"`
}

// Overview returns the dashboard counters.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	if s == nil || s.Q == nil {
		return Overview{}, fmt.Errorf("analytics service not configured")
	}
	var (
		out Overview
		err error
	)
	counters := []struct {
		name string
		dst  *int64
		fn   func(context.Context) (int64, error)
	}{
		{"customers", &out.Customers, s.Q.CountCustomers},
		{"orders", &out.Orders, s.Q.CountOrdersTotal},
		{"incomplete orders", &out.IncompleteOrders, s.Q.CountIncompleteOrders},
		{"reminders", &out.Reminders, s.Q.CountReminders},
		{"suppliers", &out.Suppliers, s.Q.CountSuppliers},
	}
	for _, c := range counters {
		if *c.dst, err = c.fn(ctx); err != nil {
			return Overview{}, fmt.Errorf("count %s: %w", c.name, err)
		}
	}
	return out, nil
}

// Orders loads every order with its customer name resolved.
func (s *Service) Orders(ctx context.Context) ([]Order, error) {
	if s == nil || s.Q == nil {
		return nil, fmt.Errorf("analytics service not configured")
	}
	rows, err := s.Q.ListAllOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	names, err := lookupNames(ctx, s.Customers)
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row, names))
	}
	return out, nil
}

// Report builds the full report for f. topN overrides the configured size when positive.
func (s *Service) Report(ctx context.Context, f Filter, topN int) (Report, error) {
	f = normalizeFilter(f)
	if topN <= 0 {
		topN = s.TopN
	}
	key := cache.Key("an", "report", common.JoinInts(f.Years), common.JoinInts(f.Months), topN)
	var cached Report
	if ok, err := s.Cache.GetJSON(ctx, key, &cached); err == nil && ok {
		obs.Inc(obs.ReportBuildsTotal, "report", "hit")
		return cached, nil
	}
	obs.Inc(obs.ReportBuildsTotal, "report", "miss")
	orders, err := s.Orders(ctx)
	if err != nil {
		return Report{}, err
	}
	suppliers, err := lookupNames(ctx, s.Suppliers)
	if err != nil {
		return Report{}, err
	}
	report := Build(orders, f, ReportOptions{
		TopN:          topN,
		TopCategories: s.TopCategories,
		Currency:      s.Currency,
		SupplierNames: suppliers,
	})
	_ = s.Cache.SetJSON(ctx, key, report)
	return report, nil
}

// Revenue returns revenue per arrival month for f.
func (s *Service) Revenue(ctx context.Context, f Filter) ([]PeriodRevenue, error) {
	orders, err := s.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return RevenueByPeriod(normalizeFilter(f).Apply(orders)), nil
}

// Categories returns every category's popularity and prorated revenue for f.
func (s *Service) Categories(ctx context.Context, f Filter) ([]CategoryStat, error) {
	orders, err := s.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return CategoryStats(normalizeFilter(f).Apply(orders)), nil
}

func lookupNames(ctx context.Context, src NameSource) (map[int64]string, error) {
	if src == nil {
		return map[int64]string{}, nil
	}
	return src.Names(ctx)
}

// normalizeFilter sorts and de-duplicates the filter so equal filters share a cache key.
func normalizeFilter(f Filter) Filter {
	return Filter{Years: uniqueSorted(f.Years), Months: uniqueSorted(f.Months)}
}

func uniqueSorted(values []int) []int {
	if len(values) == 0 {
		return nil
	}
	out := append([]int(nil), values...)
	sort.Ints(out)
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}

func fromRow(row dbgen.Order, customers map[int64]string) Order {
	return Order{
		ID:           row.ID,
		CustomerID:   row.CustomerID,
		CustomerName: customers[row.CustomerID],
		LineItems:    row.DentCategory,
		Units:        int(row.NoUnits),
		Price:        common.Decimal(row.Price),
		Status:       common.TextValue(row.Status),
		Color:        common.TextValue(row.Color),
		CoWorkerIDs:  common.IDList(row.CoWorkerOwns),
		Year:         int(row.YearArrivalNumber),
		Month:        int(row.MonthArrivalNumber),
		Day:          int(row.DayArrivalNumber),
		Departed:     row.DayDepartureNumber.Valid && row.MonthDepartureNumber.Valid && row.YearDepartureNumber.Valid,
	}
}
