package core

// lookup.go implements the price search over a sorted list.
//
// Shopkeepers in the game quote a price; the player looks the price up to
// narrow down what an unidentified item can be. A query matches on buy
// price, sell price, or both, and can be narrowed by category and state.

import (
	"fmt"
	"slices"
)

// Price targets accepted by Query.Target.
const (
	TargetAll  = "すべて"
	TargetBuy  = "買値"
	TargetSell = "売値"
)

// AnyValue disables a category or state filter.
const AnyValue = "すべて"

// unknownStatePlaceholder is how the list writes the state of items that
// have no blessed/cursed variant. It counts as normal when searching.
const unknownStatePlaceholder = "-"

// Targets lists the valid price targets in display order.
var Targets = []string{TargetAll, TargetBuy, TargetSell}

// Query is a lookup request. Zero values match everything.
type Query struct {
	Price          string
	Target         string
	Category       string
	State          string
	NonDefaultOnly bool
}

// Normalize returns q with the price folded to ASCII digits and an empty
// target defaulted to TargetAll. It fails on an unknown target.
func (q Query) Normalize() (Query, error) {
	q.Price = NormalizePriceQuery(q.Price)
	if q.Target == "" {
		q.Target = TargetAll
	}
	if !slices.Contains(Targets, q.Target) {
		return q, fmt.Errorf("%w: unknown price target %q", ErrInvalidQuery, q.Target)
	}
	return q, nil
}

// Match reports whether row satisfies q. q must be normalized.
func (q Query) Match(r Row) bool {
	return q.matchPrice(r) && q.matchCategory(r) && q.matchState(r) && q.matchFlag(r)
}

func (q Query) matchPrice(r Row) bool {
	if q.Price == "" {
		return true
	}
	buy := CleanPrice(r.Cell(ColBuy)) == q.Price
	sell := CleanPrice(r.Cell(ColSell)) == q.Price
	switch q.Target {
	case TargetBuy:
		return buy
	case TargetSell:
		return sell
	default:
		return buy || sell
	}
}

func (q Query) matchCategory(r Row) bool {
	if q.Category == "" || q.Category == AnyValue {
		return true
	}
	return r.Cell(ColCategory) == q.Category
}

func (q Query) matchState(r Row) bool {
	if q.State == "" || q.State == AnyValue {
		return true
	}
	state := r.Cell(ColState)
	if q.State == StateNormal && state == unknownStatePlaceholder {
		return true
	}
	return state == q.State
}

func (q Query) matchFlag(r Row) bool {
	return !q.NonDefaultOnly || r.Cell(ColFlag) != "1"
}

// Filter returns the items of p matching q, in list order, with group
// markers set for display. Blank rows never match.
func Filter(p *PriceList, q Query) ([]Item, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0)
	var prevCategory, prevBuy string
	for _, r := range p.Rows {
		if len(r) == 0 || !q.Match(r) {
			continue
		}
		it := ItemFromRow(r)
		if len(items) == 0 || it.Category != prevCategory || it.Buy != prevBuy {
			it.GroupStart = true
		}
		prevCategory, prevBuy = it.Category, it.Buy
		items = append(items, it)
	}
	return items, nil
}
