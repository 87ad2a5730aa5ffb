package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func priceList() PriceList {
	return NewPriceList([]Entry{
		{Category: "A", UnitPrice: decimal.NewFromInt(1000)},
		{Category: "Zirconia Crown", UnitPrice: decimal.NewFromInt(1750000)},
	})
}

func TestComputeTotalEmpty(t *testing.T) {
	e := NewEngine(DefaultLegacyMultiplier)
	require.True(t, e.ComputeTotal("", priceList(), TierStandard).IsZero())
	require.True(t, e.ComputeTotal("", priceList(), TierLegacy).IsZero())
}

func TestComputeTotalTiers(t *testing.T) {
	e := NewEngine(DefaultLegacyMultiplier)
	require.True(t, decimal.NewFromInt(3000).Equal(e.ComputeTotal("A:3", priceList(), TierStandard)))
	require.True(t, decimal.NewFromInt(2700).Equal(e.ComputeTotal("A:3", priceList(), TierLegacy)))
}

func TestComputeTotalUnknownCategory(t *testing.T) {
	e := NewEngine(DefaultLegacyMultiplier)
	require.True(t, e.ComputeTotal("Z:5", priceList(), TierStandard).IsZero())
}

func TestComputeTotalNeverNegative(t *testing.T) {
	e := Engine{Multipliers: map[Tier]decimal.Decimal{TierLegacy: decimal.NewFromInt(-2)}}
	prices := NewPriceList([]Entry{{Category: "N", UnitPrice: decimal.NewFromInt(-5)}, {Category: "A", UnitPrice: decimal.NewFromInt(10)}})
	inputs := []string{"", "A:3", "A:x", "N:4", ":::", "A:-3", "Z", ",,,", "A:2, N:2"}
	for _, raw := range inputs {
		for _, tier := range []Tier{TierStandard, TierLegacy, Tier("Gold")} {
			total := e.ComputeTotal(raw, prices, tier)
			require.False(t, total.IsNegative(), "raw=%q tier=%s", raw, tier)
		}
	}
}

func TestZeroValueEngineUsesDefaults(t *testing.T) {
	var e Engine
	require.True(t, decimal.NewFromInt(1).Equal(e.Multiplier(TierStandard)))
	require.True(t, DefaultLegacyMultiplier.Equal(e.Multiplier(TierLegacy)))
}

func TestQuoteBreakdown(t *testing.T) {
	e := NewEngine(DefaultLegacyMultiplier)
	q := e.Quote("Zirconia Crown:2, Z:1, A:x", priceList(), TierLegacy)
	require.Equal(t, TierLegacy, q.Tier)
	require.Len(t, q.Items, 2)
	require.Equal(t, 3, q.Units)
	require.True(t, q.Items[0].Listed)
	require.False(t, q.Items[1].Listed)
	require.True(t, decimal.NewFromInt(1575000).Equal(q.Items[0].AdjustedPrice))
	require.True(t, decimal.NewFromInt(3150000).Equal(q.Total))
	require.Len(t, q.Skipped, 1)
	require.Equal(t, "A:x", q.Skipped[0].Text)
}

func TestParseTier(t *testing.T) {
	require.Equal(t, TierLegacy, ParseTier(" legacy "))
	require.Equal(t, TierStandard, ParseTier(""))
	require.Equal(t, TierStandard, ParseTier("Gold"))
}

func TestPriceListEntriesSorted(t *testing.T) {
	entries := priceList().Entries()
	require.Equal(t, "A", entries[0].Category)
	require.Equal(t, 2, priceList().Len())
}
