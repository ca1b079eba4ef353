package core

// Column positions within a price list row.
const (
	ColCategory = 0
	ColName     = 1
	ColUses     = 2
	ColState    = 3
	ColBuy      = 4
	ColSell     = 5
	ColNotes    = 6
	ColFlag     = 7
)

// MinColumns is the number of columns a row needs to be sortable.
const MinColumns = ColBuy + 1

// Row is one CSV record. Field text is kept exactly as read.
type Row []string

// Cell returns the field at i, or "" if the row is too short.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// PriceList is a parsed price list file.
type PriceList struct {
	Header Row
	Rows   []Row

	// Lines holds the source line of each row, parallel to Rows.
	// Empty for lists built in memory.
	Lines []int

	// CRLF is true when the source used \r\n line endings.
	// Writers reproduce the same terminator.
	CRLF bool

	// Sorted is set once Sort succeeds.
	Sorted bool
}

// Len returns the number of data rows.
func (p *PriceList) Len() int {
	return len(p.Rows)
}

// SortKey is the composite ordering key of a row.
type SortKey struct {
	Category int
	Price    int64
	State    int
}

// Less reports whether k orders strictly before o.
func (k SortKey) Less(o SortKey) bool {
	if k.Category != o.Category {
		return k.Category < o.Category
	}
	if k.Price != o.Price {
		return k.Price < o.Price
	}
	return k.State < o.State
}

// Item is a row viewed as a shop item, used by the lookup surfaces.
type Item struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Uses     string `json:"uses"`
	State    string `json:"state"`
	Buy      string `json:"buy"`
	Sell     string `json:"sell"`
	Notes    string `json:"notes,omitempty"`

	// Artificial marks rows flagged "1" in the last column.
	Artificial bool `json:"artificial"`

	// GroupStart is true when category or buy price differs from the
	// previous item in the result set.
	GroupStart bool `json:"group_start"`
}

// Class returns the display classes of an item.
func (it Item) Class() []string {
	var classes []string
	switch it.State {
	case StateCursed:
		classes = append(classes, "cursed")
	case StateBlessed:
		classes = append(classes, "blessed")
	}
	if it.Artificial {
		classes = append(classes, "artificial")
	}
	if it.GroupStart {
		classes = append(classes, "new-category")
	}
	return classes
}

// ItemFromRow converts a row to an Item. Missing columns become empty text.
func ItemFromRow(r Row) Item {
	return Item{
		Category:   r.Cell(ColCategory),
		Name:       r.Cell(ColName),
		Uses:       r.Cell(ColUses),
		State:      r.Cell(ColState),
		Buy:        r.Cell(ColBuy),
		Sell:       r.Cell(ColSell),
		Notes:      r.Cell(ColNotes),
		Artificial: r.Cell(ColFlag) == "1",
	}
}
