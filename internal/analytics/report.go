package analytics

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-dentlab/internal/lineitem"
)

// DeletedCustomer labels revenue from customers that no longer exist.
const DeletedCustomer = "Deleted"

// Insight thresholds.
var (
	HighValueFactor  = decimal.RequireFromString("1.5")
	CompletionTarget = 0.90
	TopCustomerShare = decimal.RequireFromString("0.2")
)

// Order is the priced order shape the report functions read.
type Order struct {
	ID           int64           `json:"id"`
	CustomerID   int64           `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	LineItems    string          `json:"line_items"`
	Units        int             `json:"units"`
	Price        decimal.Decimal `json:"price"`
	Status       string          `json:"status,omitempty"`
	Color        string          `json:"color,omitempty"`
	CoWorkerIDs  []int64         `json:"co_worker_ids,omitempty"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	Day          int             `json:"day"`
	Departed     bool            `json:"departed"`
}

func (o Order) customerLabel() string {
	if o.CustomerName == "" {
		return DeletedCustomer
	}
	return o.CustomerName
}

// Filter restricts orders by arrival year and month. Empty slices match everything.
type Filter struct {
	Years  []int `json:"years,omitempty"`
	Months []int `json:"months,omitempty"`
}

// Apply returns the orders that match f. The input slice is not modified.
func (f Filter) Apply(orders []Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if len(f.Years) > 0 && !containsInt(f.Years, o.Year) {
			continue
		}
		if len(f.Months) > 0 && !containsInt(f.Months, o.Month) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// PeriodRevenue is the revenue of one arrival month.
type PeriodRevenue struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RevenueByPeriod sums order prices per arrival (year, month), oldest first.
func RevenueByPeriod(orders []Order) []PeriodRevenue {
	type period struct{ year, month int }
	groups := make(map[period]*PeriodRevenue)
	for _, o := range orders {
		key := period{o.Year, o.Month}
		g, ok := groups[key]
		if !ok {
			g = &PeriodRevenue{Year: o.Year, Month: o.Month, Revenue: decimal.Zero}
			groups[key] = g
		}
		g.Orders++
		g.Revenue = g.Revenue.Add(o.Price)
	}
	out := make([]PeriodRevenue, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// RankedOrder is an entry of the top orders table.
type RankedOrder struct {
	ID        int64           `json:"id"`
	Customer  string          `json:"customer"`
	LineItems string          `json:"line_items"`
	Price     decimal.Decimal `json:"price"`
}

// TopOrders returns the n most expensive orders, ties broken by id.
func TopOrders(orders []Order, n int) []RankedOrder {
	sorted := append([]Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := sorted[i].Price.Cmp(sorted[j].Price); c != 0 {
			return c > 0
		}
		return sorted[i].ID < sorted[j].ID
	})
	sorted = limit(sorted, n)
	out := make([]RankedOrder, 0, len(sorted))
	for _, o := range sorted {
		out = append(out, RankedOrder{ID: o.ID, Customer: o.customerLabel(), LineItems: o.LineItems, Price: o.Price})
	}
	return out
}

// CustomerRevenue is the revenue attributed to one customer.
type CustomerRevenue struct {
	CustomerID int64           `json:"customer_id,omitempty"`
	Customer   string          `json:"customer"`
	Orders     int             `json:"orders"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// TopCustomers ranks customers by total revenue. Orders of deleted customers
// are pooled under DeletedCustomer.
func TopCustomers(orders []Order, n int) []CustomerRevenue {
	groups := make(map[int64]*CustomerRevenue)
	for _, o := range orders {
		key := o.CustomerID
		if o.CustomerName == "" {
			key = 0
		}
		g, ok := groups[key]
		if !ok {
			g = &CustomerRevenue{CustomerID: key, Customer: o.customerLabel(), Revenue: decimal.Zero}
			groups[key] = g
		}
		g.Orders++
		g.Revenue = g.Revenue.Add(o.Price)
	}
	out := make([]CustomerRevenue, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].Customer < out[j].Customer
	})
	return limit(out, n)
}

// CategoryStat accumulates quantity and prorated revenue of one category.
// Revenue is an estimate: order price × quantity / order units.
type CategoryStat struct {
	Category       string          `json:"category"`
	Quantity       int             `json:"quantity"`
	Revenue        decimal.Decimal `json:"revenue"`
	RevenuePerUnit decimal.Decimal `json:"revenue_per_unit"`
}

// CategoryStats re-parses every order and returns per-category totals sorted by
// quantity (most popular first, then by name).
func CategoryStats(orders []Order) []CategoryStat {
	groups := make(map[string]*CategoryStat)
	for _, o := range orders {
		for _, it := range lineitem.Parse(o.LineItems) {
			g, ok := groups[it.Category]
			if !ok {
				g = &CategoryStat{Category: it.Category, Revenue: decimal.Zero}
				groups[it.Category] = g
			}
			g.Quantity += it.Quantity
			g.Revenue = g.Revenue.Add(prorate(o.Price, it.Quantity, o.Units))
		}
	}
	out := make([]CategoryStat, 0, len(groups))
	for _, g := range groups {
		if g.Quantity > 0 {
			g.RevenuePerUnit = g.Revenue.Div(decimal.NewFromInt(int64(g.Quantity)))
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func prorate(price decimal.Decimal, qty, units int) decimal.Decimal {
	if units <= 0 {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(qty))).Div(decimal.NewFromInt(int64(units)))
}

// TopByRevenuePerUnit re-sorts cats by revenue per unit and keeps n. cats is not modified.
func TopByRevenuePerUnit(cats []CategoryStat, n int) []CategoryStat {
	out := append([]CategoryStat(nil), cats...)
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].RevenuePerUnit.Cmp(out[j].RevenuePerUnit); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return limit(out, n)
}

// CompletionRate is the share of orders that have a full departure date. Zero orders give 0.
func CompletionRate(orders []Order) float64 {
	if len(orders) == 0 {
		return 0
	}
	done := 0
	for _, o := range orders {
		if o.Departed {
			done++
		}
	}
	return float64(done) / float64(len(orders))
}

// Summary is the headline block of the report.
type Summary struct {
	Orders         int             `json:"orders"`
	Revenue        decimal.Decimal `json:"revenue"`
	AverageOrder   decimal.Decimal `json:"average_order"`
	MedianOrder    decimal.Decimal `json:"median_order"`
	Units          int             `json:"units"`
	AverageUnits   float64         `json:"average_units"`
	CompletionRate float64         `json:"completion_rate"`
}

// Summarize computes the headline figures.
func Summarize(orders []Order) Summary {
	s := Summary{Orders: len(orders), Revenue: decimal.Zero, AverageOrder: decimal.Zero, MedianOrder: decimal.Zero}
	if len(orders) == 0 {
		return s
	}
	prices := make(stats.Float64Data, 0, len(orders))
	units := make(stats.Float64Data, 0, len(orders))
	for _, o := range orders {
		s.Revenue = s.Revenue.Add(o.Price)
		s.Units += o.Units
		prices = append(prices, o.Price.InexactFloat64())
		units = append(units, float64(o.Units))
	}
	s.AverageOrder = s.Revenue.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	if median, err := prices.Median(); err == nil {
		s.MedianOrder = decimal.NewFromFloat(median).Round(2)
	}
	if mean, err := units.Mean(); err == nil {
		s.AverageUnits, _ = stats.Round(mean, 2)
	}
	s.CompletionRate = CompletionRate(orders)
	return s
}

// SupplierLoad counts how many orders each co-worker was assigned.
type SupplierLoad struct {
	Supplier string `json:"supplier"`
	Orders   int    `json:"orders"`
}

// SupplierLoads counts assignments per co-worker. Ids missing from names are labelled "ID n".
func SupplierLoads(orders []Order, names map[int64]string) []SupplierLoad {
	counts := make(map[string]int)
	for _, o := range orders {
		for _, id := range o.CoWorkerIDs {
			label, ok := names[id]
			if !ok {
				label = fmt.Sprintf("ID %d", id)
			}
			counts[label]++
		}
	}
	out := make([]SupplierLoad, 0, len(counts))
	for name, n := range counts {
		out = append(out, SupplierLoad{Supplier: name, Orders: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders > out[j].Orders
		}
		return out[i].Supplier < out[j].Supplier
	})
	return out
}

// ColorCount is how often a shade was ordered.
type ColorCount struct {
	Color string `json:"color"`
	Count int    `json:"count"`
}

// ColorPreferences returns the n most requested shades. Orders without a shade are ignored.
func ColorPreferences(orders []Order, n int) []ColorCount {
	counts := make(map[string]int)
	for _, o := range orders {
		if o.Color != "" {
			counts[o.Color]++
		}
	}
	out := make([]ColorCount, 0, len(counts))
	for c, k := range counts {
		out = append(out, ColorCount{Color: c, Count: k})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Color < out[j].Color
	})
	return limit(out, n)
}

// Insight is a short observation derived from the report figures.
type Insight struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Insights derives observations: high-value orders, low completion, customer
// concentration and the best-selling category.
func Insights(orders []Order, currency string) []Insight {
	out := []Insight{}
	if len(orders) == 0 {
		return out
	}
	summary := Summarize(orders)
	threshold := summary.Revenue.Div(decimal.NewFromInt(int64(len(orders)))).Mul(HighValueFactor)
	high := 0
	for _, o := range orders {
		if o.Price.GreaterThan(threshold) {
			high++
		}
	}
	if high > 0 {
		out = append(out, Insight{
			Kind:    "high_value_orders",
			Message: fmt.Sprintf("%d high-value orders above %s %s", high, threshold.StringFixed(0), currency),
		})
	}
	if summary.CompletionRate < CompletionTarget {
		out = append(out, Insight{
			Kind:    "low_completion",
			Message: fmt.Sprintf("completion rate is %.1f%%", summary.CompletionRate*100),
		})
	}
	if top := TopCustomers(orders, 1); len(top) == 1 && summary.Revenue.IsPositive() {
		share := top[0].Revenue.Div(summary.Revenue)
		if share.GreaterThan(TopCustomerShare) {
			out = append(out, Insight{
				Kind:    "customer_concentration",
				Message: fmt.Sprintf("%s drives %s%% of revenue", top[0].Customer, share.Mul(decimal.NewFromInt(100)).StringFixed(1)),
			})
		}
	}
	if cats := CategoryStats(orders); len(cats) > 0 {
		out = append(out, Insight{Kind: "best_seller", Message: fmt.Sprintf("%s is the best seller", cats[0].Category)})
	}
	return out
}

// Report bundles every section of the reporting page.
type Report struct {
	Filter         Filter            `json:"filter"`
	Summary        Summary           `json:"summary"`
	Revenue        []PeriodRevenue   `json:"revenue"`
	TopOrders      []RankedOrder     `json:"top_orders"`
	TopCustomers   []CustomerRevenue `json:"top_customers"`
	Categories     []CategoryStat    `json:"categories"`
	RevenuePerUnit []CategoryStat    `json:"revenue_per_unit"`
	Suppliers      []SupplierLoad    `json:"suppliers"`
	Colors         []ColorCount      `json:"colors"`
	Insights       []Insight         `json:"insights"`
	Currency       string            `json:"currency"`
}

// ReportOptions sizes the ranked sections.
type ReportOptions struct {
	TopN          int
	TopCategories int
	Currency      string
	SupplierNames map[int64]string
}

// Build assembles a Report from orders after applying f.
func Build(orders []Order, f Filter, opts ReportOptions) Report {
	selected := f.Apply(orders)
	cats := CategoryStats(selected)
	return Report{
		Filter:         f,
		Summary:        Summarize(selected),
		Revenue:        RevenueByPeriod(selected),
		TopOrders:      TopOrders(selected, opts.TopN),
		TopCustomers:   TopCustomers(selected, opts.TopN),
		Categories:     limit(cats, opts.TopCategories),
		RevenuePerUnit: TopByRevenuePerUnit(cats, opts.TopCategories),
		Suppliers:      SupplierLoads(selected, opts.SupplierNames),
		Colors:         ColorPreferences(selected, opts.TopCategories),
		Insights:       Insights(selected, opts.Currency),
		Currency:       opts.Currency,
	}
}

func limit[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}
