package analytics

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func sampleOrders() []Order {
	return []Order{
		{ID: 1, CustomerID: 1, CustomerName: "Rose Clinic", LineItems: "Zirconia Crown:2, PMMA:1", Units: 3, Price: d(3000), Year: 1403, Month: 1, Departed: true, Color: "A2", CoWorkerIDs: []int64{3}},
		{ID: 2, CustomerID: 2, CustomerName: "Dr. Old", LineItems: "PMMA:4", Units: 4, Price: d(2000), Year: 1403, Month: 2, Color: "A2", CoWorkerIDs: []int64{3, 9}},
		{ID: 3, CustomerID: 1, CustomerName: "Rose Clinic", LineItems: "Zirconia Crown:1", Units: 1, Price: d(3000), Year: 1402, Month: 12, Departed: true, Color: "B1"},
	}
}

func TestRevenueByPeriod(t *testing.T) {
	got := RevenueByPeriod(sampleOrders())
	require.Len(t, got, 3)
	require.Equal(t, 1402, got[0].Year)
	require.Equal(t, 12, got[0].Month)
	require.Equal(t, "3000", got[0].Revenue.String())
	require.Equal(t, 2, got[2].Month)
	require.Equal(t, "2000", got[2].Revenue.String())
}

func TestTopOrdersBreaksTiesByID(t *testing.T) {
	got := TopOrders(sampleOrders(), 2)
	require.Len(t, got, 2)
	require.Equal(t, int64(1), got[0].ID)
	require.Equal(t, int64(3), got[1].ID)
}

func TestTopCustomers(t *testing.T) {
	orders := append(sampleOrders(), Order{ID: 4, CustomerID: 8, Price: d(500), Units: 1, LineItems: "PMMA:1"})
	got := TopCustomers(orders, 5)
	require.Len(t, got, 3)
	require.Equal(t, "Rose Clinic", got[0].Customer)
	require.Equal(t, "6000", got[0].Revenue.String())
	require.Equal(t, 2, got[0].Orders)
	require.Equal(t, DeletedCustomer, got[2].Customer)

	require.Len(t, TopCustomers(orders, 1), 1)
}

func TestCategoryStatsProratesRevenue(t *testing.T) {
	got := CategoryStats(sampleOrders())
	require.Len(t, got, 2)
	require.Equal(t, "PMMA", got[0].Category)
	require.Equal(t, 5, got[0].Quantity)
	require.Equal(t, "3000", got[0].Revenue.String())
	require.Equal(t, "600", got[0].RevenuePerUnit.String())
	require.Equal(t, "Zirconia Crown", got[1].Category)
	require.Equal(t, "5000", got[1].Revenue.String())

	top := TopByRevenuePerUnit(got, 1)
	require.Len(t, top, 1)
	require.Equal(t, "Zirconia Crown", top[0].Category)
	require.Equal(t, "PMMA", got[0].Category)
}

func TestCategoryQuantitiesSumToUnits(t *testing.T) {
	orders := sampleOrders()
	units := 0
	for _, o := range orders {
		units += o.Units
	}
	qty := 0
	for _, c := range CategoryStats(orders) {
		qty += c.Quantity
	}
	require.Equal(t, units, qty)
}

func TestMalformedAndZeroUnitOrders(t *testing.T) {
	orders := []Order{
		{ID: 1, LineItems: "A:x, :3", Units: 0, Price: d(500), Year: 1403, Month: 3},
		{ID: 2, LineItems: "B:2", Units: 0, Price: d(100), Year: 1403, Month: 3},
	}
	cats := CategoryStats(orders)
	require.Len(t, cats, 1)
	require.Equal(t, "B", cats[0].Category)
	require.True(t, cats[0].Revenue.IsZero())
	require.True(t, cats[0].RevenuePerUnit.IsZero())

	rev := RevenueByPeriod(orders)
	require.Len(t, rev, 1)
	require.Equal(t, "600", rev[0].Revenue.String())
}

func TestEmptyInput(t *testing.T) {
	require.Empty(t, RevenueByPeriod(nil))
	require.Empty(t, TopOrders(nil, 5))
	require.Empty(t, TopCustomers(nil, 5))
	require.Empty(t, CategoryStats(nil))
	require.Empty(t, SupplierLoads(nil, nil))
	require.Empty(t, ColorPreferences(nil, 5))
	require.Empty(t, Insights(nil, "IRR"))
	require.Zero(t, CompletionRate(nil))

	s := Summarize(nil)
	require.Zero(t, s.Orders)
	require.True(t, s.Revenue.IsZero())

	report := Build(nil, Filter{}, ReportOptions{TopN: 5, TopCategories: 10})
	data, err := json.Marshal(report)
	require.NoError(t, err)
	require.Contains(t, string(data), `"top_orders":[]`)
	require.Contains(t, string(data), `"categories":[]`)
}

func TestAggregationDoesNotMutateInput(t *testing.T) {
	orders := sampleOrders()
	before, err := json.Marshal(orders)
	require.NoError(t, err)
	opts := ReportOptions{TopN: 2, TopCategories: 1, Currency: "IRR", SupplierNames: map[int64]string{3: "Milling Center"}}

	first, err := json.Marshal(Build(orders, Filter{}, opts))
	require.NoError(t, err)
	second, err := json.Marshal(Build(orders, Filter{}, opts))
	require.NoError(t, err)
	require.JSONEq(t, string(first), string(second))

	after, err := json.Marshal(orders)
	require.NoError(t, err)
	require.JSONEq(t, string(before), string(after))
}

func TestSummary(t *testing.T) {
	s := Summarize(sampleOrders())
	require.Equal(t, 3, s.Orders)
	require.Equal(t, "8000", s.Revenue.String())
	require.Equal(t, "2666.67", s.AverageOrder.String())
	require.Equal(t, "3000", s.MedianOrder.String())
	require.Equal(t, 8, s.Units)
	require.InDelta(t, 2.67, s.AverageUnits, 1e-9)
	require.InDelta(t, 2.0/3.0, s.CompletionRate, 1e-9)
}

func TestSupplierLoadsAndColors(t *testing.T) {
	loads := SupplierLoads(sampleOrders(), map[int64]string{3: "Milling Center"})
	require.Equal(t, []SupplierLoad{{Supplier: "Milling Center", Orders: 2}, {Supplier: "ID 9", Orders: 1}}, loads)

	colors := ColorPreferences(sampleOrders(), 1)
	require.Equal(t, []ColorCount{{Color: "A2", Count: 2}}, colors)
}

func TestInsights(t *testing.T) {
	got := Insights(sampleOrders(), "IRR")
	kinds := make([]string, 0, len(got))
	for _, in := range got {
		kinds = append(kinds, in.Kind)
	}
	require.Equal(t, []string{"low_completion", "customer_concentration", "best_seller"}, kinds)
	require.Contains(t, got[1].Message, "Rose Clinic drives 75.0%")
	require.Contains(t, got[2].Message, "PMMA")

	orders := append(sampleOrders(), Order{ID: 9, CustomerID: 3, CustomerName: "Big Lab", LineItems: "PMMA:1", Units: 1, Price: d(20000), Departed: true})
	got = Insights(orders, "IRR")
	require.Equal(t, "high_value_orders", got[0].Kind)
}

func TestFilterApply(t *testing.T) {
	orders := sampleOrders()
	require.Len(t, Filter{Years: []int{1403}}.Apply(orders), 2)
	require.Len(t, Filter{Years: []int{1403}, Months: []int{2}}.Apply(orders), 1)
	require.Len(t, Filter{}.Apply(orders), 3)
	require.Empty(t, Filter{Years: []int{1399}}.Apply(orders))
}
