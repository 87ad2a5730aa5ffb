package pricing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-dentlab/internal/lineitem"
)

// Tier is the pricing class of a customer.
type Tier string

const (
	TierStandard Tier = "Standard"
	TierLegacy   Tier = "Legacy"
)

// DefaultLegacyMultiplier is applied to unit prices for Legacy customers.
var DefaultLegacyMultiplier = decimal.RequireFromString("0.90")

// ParseTier maps free text to a Tier. Anything unrecognised is Standard.
func ParseTier(value string) Tier {
	if strings.EqualFold(strings.TrimSpace(value), string(TierLegacy)) {
		return TierLegacy
	}
	return TierStandard
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	return t == TierStandard || t == TierLegacy
}

// Entry is one category of the price list.
type Entry struct {
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PriceList is a read-only snapshot of the catalog taken before pricing or reporting.
type PriceList struct {
	prices map[string]decimal.Decimal
}

// NewPriceList builds a snapshot. Later entries win on duplicate categories.
func NewPriceList(entries []Entry) PriceList {
	prices := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		prices[e.Category] = e.UnitPrice
	}
	return PriceList{prices: prices}
}

// Lookup returns the unit price for category, or zero when it is not listed.
func (p PriceList) Lookup(category string) decimal.Decimal {
	price, ok := p.prices[category]
	if !ok {
		return decimal.Zero
	}
	return price
}

// Has reports whether category is listed.
func (p PriceList) Has(category string) bool {
	_, ok := p.prices[category]
	return ok
}

// Len returns the number of categories in the snapshot.
func (p PriceList) Len() int { return len(p.prices) }

// Entries returns the snapshot sorted by category.
func (p PriceList) Entries() []Entry {
	out := make([]Entry, 0, len(p.prices))
	for category, price := range p.prices {
		out = append(out, Entry{Category: category, UnitPrice: price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Engine prices raw line-item strings against a PriceList.
type Engine struct {
	Multipliers map[Tier]decimal.Decimal
}

// NewEngine returns an engine with the given Legacy multiplier.
func NewEngine(legacy decimal.Decimal) Engine {
	return Engine{Multipliers: map[Tier]decimal.Decimal{
		TierStandard: decimal.NewFromInt(1),
		TierLegacy:   legacy,
	}}
}

// Multiplier returns the factor applied to unit prices for tier.
func (e Engine) Multiplier(tier Tier) decimal.Decimal {
	if m, ok := e.Multipliers[tier]; ok {
		if m.IsNegative() {
			return decimal.Zero
		}
		return m
	}
	if tier == TierLegacy {
		return DefaultLegacyMultiplier
	}
	return decimal.NewFromInt(1)
}

// PricedItem is a parsed line with its tier-adjusted price.
type PricedItem struct {
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	AdjustedPrice decimal.Decimal `json:"adjusted_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
	Listed        bool            `json:"listed"`
}

// Quote is the detailed outcome of pricing one raw string.
type Quote struct {
	Raw     string              `json:"raw"`
	Tier    Tier                `json:"tier"`
	Items   []PricedItem        `json:"items"`
	Units   int                 `json:"units"`
	Total   decimal.Decimal     `json:"total"`
	Skipped []lineitem.Fragment `json:"skipped,omitempty"`
}

// ComputeTotal returns sum(quantity * adjusted unit price) for raw. Unknown
// categories price at zero and the result is never negative.
func (e Engine) ComputeTotal(raw string, prices PriceList, tier Tier) decimal.Decimal {
	return e.Quote(raw, prices, tier).Total
}

// Quote prices raw and keeps the per-line breakdown.
func (e Engine) Quote(raw string, prices PriceList, tier Tier) Quote {
	if !tier.Valid() {
		tier = TierStandard
	}
	parsed := lineitem.ParseDetailed(raw)
	multiplier := e.Multiplier(tier)
	q := Quote{
		Raw:     raw,
		Tier:    tier,
		Items:   make([]PricedItem, 0, len(parsed.Items)),
		Total:   decimal.Zero,
		Skipped: parsed.Skipped,
	}
	for _, it := range parsed.Items {
		unit := prices.Lookup(it.Category)
		if unit.IsNegative() {
			unit = decimal.Zero
		}
		adjusted := unit.Mul(multiplier)
		line := adjusted.Mul(decimal.NewFromInt(int64(it.Quantity)))
		q.Items = append(q.Items, PricedItem{
			Category:      it.Category,
			Quantity:      it.Quantity,
			UnitPrice:     unit,
			AdjustedPrice: adjusted,
			LineTotal:     line,
			Listed:        prices.Has(it.Category),
		})
		q.Units += it.Quantity
		q.Total = q.Total.Add(line)
	}
	q.Total = q.Total.Round(2)
	return q
}
