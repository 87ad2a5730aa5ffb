package lineitem

import (
	"strconv"
	"strings"
)

// Reasons attached to skipped fragments.
const (
	ReasonInvalidQuantity  = "invalid quantity"
	ReasonEmptyCategory    = "empty category"
	ReasonNonPositiveCount = "quantity must be positive"
)

// MaxQuantity is the largest quantity a single line may carry.
const MaxQuantity = 1000

// Separator splits fragments of a raw line-item string. Category names may not contain it.
const Separator = ","

// Item is a single (category, quantity) pair taken from an order's product mix.
type Item struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity" validate:"max=1000"`
}

// ValidCategory reports whether name survives a Format/Parse round trip.
func ValidCategory(name string) bool {
	return strings.TrimSpace(name) != "" && !strings.Contains(name, Separator)
}

// Fragment is a piece of the raw string that could not be turned into an Item.
type Fragment struct {
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Result carries the parsed items together with the fragments that were dropped.
type Result struct {
	Items   []Item     `json:"items"`
	Skipped []Fragment `json:"skipped,omitempty"`
}

// Parse reads a comma separated "Category:qty" list. Malformed fragments are dropped.
func Parse(raw string) []Item {
	return ParseDetailed(raw).Items
}

// ParseDetailed behaves like Parse but also reports every fragment it had to drop.
//
// A fragment is split at its last colon so category names may contain colons.
// Fragments without a colon are old records and count as a single unit.
func ParseDetailed(raw string) Result {
	res := Result{Items: []Item{}}
	if strings.TrimSpace(raw) == "" {
		return res
	}
	for _, part := range strings.Split(raw, Separator) {
		fragment := strings.TrimSpace(part)
		if fragment == "" {
			continue
		}
		idx := strings.LastIndex(fragment, ":")
		if idx < 0 {
			res.Items = append(res.Items, Item{Category: fragment, Quantity: 1})
			continue
		}
		category := strings.TrimSpace(fragment[:idx])
		qty, err := strconv.Atoi(strings.TrimSpace(fragment[idx+1:]))
		switch {
		case err != nil:
			res.Skipped = append(res.Skipped, Fragment{Text: fragment, Reason: ReasonInvalidQuantity})
		case category == "":
			res.Skipped = append(res.Skipped, Fragment{Text: fragment, Reason: ReasonEmptyCategory})
		case qty <= 0:
			res.Skipped = append(res.Skipped, Fragment{Text: fragment, Reason: ReasonNonPositiveCount})
		default:
			res.Items = append(res.Items, Item{Category: category, Quantity: qty})
		}
	}
	return res
}

// Format renders items in the canonical "A:2, B:1" form. Items without a
// category or with a non-positive quantity are omitted.
func Format(items []Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		category := strings.TrimSpace(it.Category)
		if category == "" || it.Quantity <= 0 {
			continue
		}
		parts = append(parts, category+":"+strconv.Itoa(it.Quantity))
	}
	return strings.Join(parts, Separator+" ")
}

// Units sums the quantities of items.
func Units(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

// Merge folds repeated categories into one item, keeping first-seen order.
func Merge(items []Item) []Item {
	out := make([]Item, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		if pos, ok := index[it.Category]; ok {
			out[pos].Quantity += it.Quantity
			continue
		}
		index[it.Category] = len(out)
		out = append(out, it)
	}
	return out
}
