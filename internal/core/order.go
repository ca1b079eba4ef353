package core

// order.go defines the fixed ordering tables and the composite sort.

import (
	"fmt"
	"slices"
	"sort"
)

// Category labels in sort precedence.
const (
	CategoryBracelet = "腕輪"
	CategoryGrass    = "草"
	CategoryScroll   = "巻物"
	CategoryStaff    = "杖"
	CategoryPot      = "壺"
)

// State labels with a fixed rank.
const (
	StateNormal  = "ふつう"
	StateBlessed = "祝福"
	StateCursed  = "呪い"
)

// CategoryOrder is the primary sort precedence. A category outside this
// list cannot be sorted.
var CategoryOrder = [...]string{
	CategoryBracelet,
	CategoryGrass,
	CategoryScroll,
	CategoryStaff,
	CategoryPot,
}

// stateOrder ranks known states. Anything else ranks UnknownStateRank.
var stateOrder = map[string]int{
	StateNormal:  0,
	StateBlessed: 1,
	StateCursed:  2,
}

// UnknownStateRank sorts unmapped states after every known one.
const UnknownStateRank = 3

// CategoryRank returns the position of category in CategoryOrder.
func CategoryRank(category string) (int, error) {
	if i := slices.Index(CategoryOrder[:], category); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
}

// StateRank returns the rank of state, or UnknownStateRank if unmapped.
func StateRank(state string) int {
	if rank, ok := stateOrder[state]; ok {
		return rank
	}
	return UnknownStateRank
}

// KeyOf computes the composite sort key of a row.
// Checks run in key order: column count, category, then price.
func KeyOf(r Row) (SortKey, error) {
	if len(r) < MinColumns {
		return SortKey{}, fmt.Errorf("%w: has %d columns, expected at least %d", ErrMalformedRow, len(r), MinColumns)
	}

	cat, err := CategoryRank(r[ColCategory])
	if err != nil {
		return SortKey{}, err
	}

	price, err := ParsePrice(r[ColBuy])
	if err != nil {
		return SortKey{}, err
	}

	return SortKey{
		Category: cat,
		Price:    price,
		State:    StateRank(r[ColState]),
	}, nil
}

// SortRows stably sorts rows in place by (category, price, state).
//
// Keys for every row are computed before any row moves, so a bad row
// leaves the slice in its original order. Errors name the row by its
// 1-based position.
func SortRows(rows []Row) error {
	return sortKeyed(rows, nil)
}

// Sort stably sorts the data rows of p. Errors name the file line of the
// offending row when p was read from a file.
func (p *PriceList) Sort() error {
	if err := sortKeyed(p.Rows, p.Lines); err != nil {
		return err
	}
	p.Sorted = true
	return nil
}

// CheckKeys reports the first row of p, in file order, that has no valid
// sort key. It does not reorder anything.
func (p *PriceList) CheckKeys() error {
	_, err := keysOf(p.Rows, p.Lines)
	return err
}

func keysOf(rows []Row, lines []int) ([]SortKey, error) {
	keys := make([]SortKey, len(rows))
	for i, r := range rows {
		k, err := KeyOf(r)
		if err != nil {
			if i < len(lines) {
				return nil, fmt.Errorf("line %d: %w", lines[i], err)
			}
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		keys[i] = k
	}
	return keys, nil
}

func sortKeyed(rows []Row, lines []int) error {
	keys, err := keysOf(rows, lines)
	if err != nil {
		return err
	}

	if len(lines) != len(rows) {
		lines = nil
	}
	sort.Stable(keyedRows{rows: rows, keys: keys, lines: lines})
	return nil
}

// keyedRows sorts rows together with their precomputed keys and,
// when present, their source line numbers.
type keyedRows struct {
	rows  []Row
	keys  []SortKey
	lines []int
}

func (k keyedRows) Len() int           { return len(k.rows) }
func (k keyedRows) Less(i, j int) bool { return k.keys[i].Less(k.keys[j]) }
func (k keyedRows) Swap(i, j int) {
	k.rows[i], k.rows[j] = k.rows[j], k.rows[i]
	k.keys[i], k.keys[j] = k.keys[j], k.keys[i]
	if k.lines != nil {
		k.lines[i], k.lines[j] = k.lines[j], k.lines[i]
	}
}
