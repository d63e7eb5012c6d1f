package columns

import (
	"sort"
	"strings"

	"github.com/komsit37/yhoo/pkg/yhoo/parser"
)

// Sets defines named column groups that expand into lists of columns.
// - "ohlcv": chart price buckets
// - "meta": chart metadata duplicated on every bucket
// - "contract": option contract fields
// - "fundamentals": fundamentals time-series rows
// - "quote": quote snapshot columns
var Sets = map[string][]string{
	"ohlcv": {"symbol", "timestamp", "open", "high", "low", "close", "adjclose", "volume"},
	"meta": {
		"symbol",
		"currency",
		"exchangeName",
		"instrumentType",
		"exchangeTimezoneName",
		"regularMarketPrice",
		"chartPreviousClose",
		"dataGranularity",
		"range",
	},
	"contract":     parser.OptionsColumns,
	"fundamentals": parser.FundamentalsColumns,
	"quote":        {"sym", "name", "price", "chg%"},
}

// ExpandSets returns the union of columns for the given set names.
// It preserves the order of the sets and the order of columns within each set,
// and de-duplicates columns while keeping the first occurrence.
func ExpandSets(setNames []string) ([]string, error) {
	out := make([]string, 0, 16)
	seen := map[string]struct{}{}
	for _, name := range setNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cols, ok := Sets[name]
		if !ok {
			return nil, &UnknownSetError{Name: name, Available: availableSets()}
		}
		for _, c := range cols {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out, nil
}

// UnknownSetError reports an unknown column set name.
type UnknownSetError struct {
	Name      string
	Available []string
}

func (e *UnknownSetError) Error() string {
	return "unknown column set: " + e.Name + "; available: " + strings.Join(e.Available, ", ")
}

func availableSets() []string {
	keys := make([]string, 0, len(Sets))
	for k := range Sets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
