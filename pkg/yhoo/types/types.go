package types

import "sort"

// Record is one flattened output row keyed by column name.
// Values are scalars (string, bool, int64, float64) or nil.
type Record map[string]any

// Table accumulates records and tracks the union of their columns.
// Lead columns come first in the given order, the rest are sorted by name.
type Table struct {
	lead []string
	rows []Record
	seen map[string]struct{}
}

// NewTable returns an empty table whose leading columns are lead.
func NewTable(lead ...string) *Table {
	return &Table{lead: append([]string(nil), lead...), seen: map[string]struct{}{}}
}

// Append adds records in order.
func (t *Table) Append(recs ...Record) {
	if t.seen == nil {
		t.seen = map[string]struct{}{}
	}
	for _, r := range recs {
		for k := range r {
			t.seen[k] = struct{}{}
		}
		t.rows = append(t.rows, r)
	}
}

// Rows returns the records in insertion order.
func (t *Table) Rows() []Record { return t.rows }

// Len is the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the union of columns over all rows.
func (t *Table) Columns() []string {
	out := make([]string, 0, len(t.seen))
	used := map[string]struct{}{}
	for _, c := range t.lead {
		if _, ok := t.seen[c]; !ok {
			continue
		}
		if _, dup := used[c]; dup {
			continue
		}
		used[c] = struct{}{}
		out = append(out, c)
	}
	var rest []string
	for c := range t.seen {
		if _, ok := used[c]; !ok {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// Column returns the values of one column, nil where a row lacks it.
func (t *Table) Column(name string) []any {
	out := make([]any, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[name]
	}
	return out
}

// Watchlist represents a named list of tickers loaded from a source.
type Watchlist struct {
	Name  string
	Items []Item
}

// Item is a single watchlist entry.
type Item struct {
	Sym    string
	Name   string
	Fields map[string]any
}

// Tickers returns the symbols of all items, skipping blanks.
func (w Watchlist) Tickers() []string {
	out := make([]string, 0, len(w.Items))
	for _, it := range w.Items {
		if it.Sym != "" {
			out = append(out, it.Sym)
		}
	}
	return out
}
