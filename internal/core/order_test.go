package core

import (
	"errors"
	"slices"
	"testing"
)

// ----------------------------------------------------------------------------
// Rank Tests
// ----------------------------------------------------------------------------

func TestCategoryRank(t *testing.T) {
	tests := []struct {
		category string
		want     int
		wantErr  bool
	}{
		{"腕輪", 0, false},
		{"草", 1, false},
		{"巻物", 2, false},
		{"杖", 3, false},
		{"壺", 4, false},
		{"指輪", 0, true},
		{"", 0, true},
		{" 草", 0, true}, // no trimming
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got, err := CategoryRank(tt.category)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownCategory) {
					t.Fatalf("CategoryRank(%q) error = %v, want ErrUnknownCategory", tt.category, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CategoryRank(%q) unexpected error: %v", tt.category, err)
			}
			if got != tt.want {
				t.Errorf("CategoryRank(%q) = %d, want %d", tt.category, got, tt.want)
			}
		})
	}
}

func TestStateRank(t *testing.T) {
	tests := []struct {
		state string
		want  int
	}{
		{"ふつう", 0},
		{"祝福", 1},
		{"呪い", 2},
		{"未鑑定", UnknownStateRank},
		{"-", UnknownStateRank},
		{"", UnknownStateRank},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			if got := StateRank(tt.state); got != tt.want {
				t.Errorf("StateRank(%q) = %d, want %d", tt.state, got, tt.want)
			}
		})
	}
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		name    string
		row     Row
		want    SortKey
		wantErr error
	}{
		{
			name: "plain row",
			row:  Row{"草", "薬草", "-", "ふつう", "100"},
			want: SortKey{Category: 1, Price: 100, State: 0},
		},
		{
			name: "price with thousands separator",
			row:  Row{"壺", "保存の壺", "5", "呪い", "1,200"},
			want: SortKey{Category: 4, Price: 1200, State: 2},
		},
		{
			name: "extra columns ignored",
			row:  Row{"杖", "一時しのぎの杖", "4", "祝福", "800", "280", "", "1"},
			want: SortKey{Category: 3, Price: 800, State: 1},
		},
		{
			name:    "too few columns",
			row:     Row{"草", "薬草", "-", "ふつう"},
			wantErr: ErrMalformedRow,
		},
		{
			name:    "unknown category checked before price",
			row:     Row{"指輪", "x", "-", "ふつう", "abc"},
			wantErr: ErrUnknownCategory,
		},
		{
			name:    "non-numeric price",
			row:     Row{"草", "薬草", "-", "ふつう", "百"},
			wantErr: ErrMalformedPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KeyOf(tt.row)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("KeyOf() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("KeyOf() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("KeyOf() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// SortRows Tests
// ----------------------------------------------------------------------------

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r[ColName]
	}
	return out
}

func TestSortRows(t *testing.T) {
	tests := []struct {
		name string
		rows []Row
		want []string
	}{
		{
			name: "category precedence",
			rows: []Row{
				{"杖", "staff", "4", "ふつう", "100"},
				{"草", "grass", "-", "ふつう", "100"},
			},
			want: []string{"grass", "staff"},
		},
		{
			name: "numeric price ignores commas",
			rows: []Row{
				{"草", "expensive", "-", "ふつう", "1,200"},
				{"草", "cheap", "-", "ふつう", "300"},
			},
			want: []string{"cheap", "expensive"},
		},
		{
			name: "blessed before cursed",
			rows: []Row{
				{"巻物", "cursed", "-", "呪い", "500"},
				{"巻物", "blessed", "-", "祝福", "500"},
			},
			want: []string{"blessed", "cursed"},
		},
		{
			name: "unknown state last",
			rows: []Row{
				{"腕輪", "unknown", "-", "未鑑定", "1000"},
				{"腕輪", "cursed", "-", "呪い", "1000"},
				{"腕輪", "normal", "-", "ふつう", "1000"},
				{"腕輪", "blessed", "-", "祝福", "1000"},
			},
			want: []string{"normal", "blessed", "cursed", "unknown"},
		},
		{
			name: "stable on equal keys",
			rows: []Row{
				{"壺", "first", "3", "-", "600"},
				{"壺", "second", "4", "未鑑定", "600"},
				{"壺", "third", "5", "-", "600"},
			},
			want: []string{"first", "second", "third"},
		},
		{
			name: "full ordering",
			rows: []Row{
				{"壺", "pot", "5", "ふつう", "500"},
				{"腕輪", "bracelet", "-", "ふつう", "1,000"},
				{"草", "grass-300", "-", "ふつう", "300"},
				{"巻物", "scroll", "-", "ふつう", "200"},
				{"草", "grass-50", "-", "ふつう", "50"},
			},
			want: []string{"bracelet", "grass-50", "grass-300", "scroll", "pot"},
		},
		{
			name: "empty",
			rows: nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := SortRows(tt.rows); err != nil {
				t.Fatalf("SortRows() unexpected error: %v", err)
			}
			if got := names(tt.rows); !slices.Equal(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortRows_UnknownCategoryIsFatal(t *testing.T) {
	rows := []Row{
		{"草", "b", "-", "ふつう", "200"},
		{"指輪", "ring", "-", "ふつう", "100"},
		{"草", "a", "-", "ふつう", "100"},
	}

	err := SortRows(rows)
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("SortRows() error = %v, want ErrUnknownCategory", err)
	}
	if got := names(rows); !slices.Equal(got, []string{"b", "ring", "a"}) {
		t.Errorf("rows reordered despite error: %v", got)
	}
}

func TestPriceListSort_ReportsLine(t *testing.T) {
	list := &PriceList{
		Rows: []Row{
			{"草", "a", "-", "ふつう", "100"},
			{"草", "b", "-", "ふつう", "1.5"},
		},
		Lines: []int{2, 5},
	}

	err := list.Sort()
	if !errors.Is(err, ErrMalformedPrice) {
		t.Fatalf("Sort() error = %v, want ErrMalformedPrice", err)
	}
	if got := err.Error(); got != `line 5: malformed price: "1.5"` {
		t.Errorf("Sort() error = %q", got)
	}
}

func TestPriceListSort_KeepsLinesAligned(t *testing.T) {
	list := &PriceList{
		Rows: []Row{
			{"壺", "pot", "5", "ふつう", "500"},
			{"草", "grass", "-", "ふつう", "50"},
		},
		Lines: []int{2, 3},
	}

	if err := list.Sort(); err != nil {
		t.Fatalf("Sort() unexpected error: %v", err)
	}
	if !slices.Equal(list.Lines, []int{3, 2}) {
		t.Errorf("Lines = %v, want [3 2]", list.Lines)
	}
}

// TestSortRows_Preorder checks that adjacent output rows never step down
// the composite key and that the output is a permutation of the input.
func TestSortRows_Preorder(t *testing.T) {
	rows := []Row{
		{"杖", "s1", "4", "呪い", "2,000"},
		{"草", "g1", "-", "未鑑定", "100"},
		{"壺", "p1", "3", "ふつう", "800"},
		{"草", "g2", "-", "祝福", "100"},
		{"腕輪", "b1", "-", "ふつう", "10,000"},
		{"巻物", "r1", "-", "-", "300"},
		{"草", "g3", "-", "ふつう", "100"},
		{"杖", "s2", "6", "ふつう", "2,000"},
		{"壺", "p2", "4", "祝福", "800"},
		{"巻物", "r2", "-", "ふつう", "300"},
	}
	before := names(rows)

	if err := SortRows(rows); err != nil {
		t.Fatalf("SortRows() unexpected error: %v", err)
	}

	for i := 1; i < len(rows); i++ {
		prev, _ := KeyOf(rows[i-1])
		cur, _ := KeyOf(rows[i])
		if cur.Less(prev) {
			t.Errorf("row %d %v orders before row %d %v", i, cur, i-1, prev)
		}
	}

	after := names(rows)
	slices.Sort(before)
	slices.Sort(after)
	if !slices.Equal(before, after) {
		t.Errorf("output is not a permutation of input: %v vs %v", after, before)
	}
}

func TestSortKey_Less(t *testing.T) {
	tests := []struct {
		name string
		a, b SortKey
		want bool
	}{
		{"category dominates", SortKey{0, 9999, 3}, SortKey{1, 0, 0}, true},
		{"price second", SortKey{1, 100, 3}, SortKey{1, 200, 0}, true},
		{"state last", SortKey{1, 100, 1}, SortKey{1, 100, 2}, true},
		{"equal is not less", SortKey{2, 100, 1}, SortKey{2, 100, 1}, false},
		{"greater", SortKey{2, 100, 1}, SortKey{1, 100, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Less(tt.b); got != tt.want {
				t.Errorf("%+v.Less(%+v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
