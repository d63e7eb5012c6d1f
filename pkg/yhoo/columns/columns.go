// Package columns decides which columns of a table are shown and in what
// order, and formats cell values for human-readable output.
package columns

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/komsit37/yhoo/pkg/yhoo/types"
)

// SetPrefix marks a --columns entry as a set name rather than a column,
// e.g. "@ohlcv". Bare set names are accepted too when no column of that
// name exists in the table.
const SetPrefix = "@"

// Compute determines the final column order. Explicit entries are honored
// exactly (set names expand in place, duplicates dropped); otherwise every
// column of the table is shown in its natural order.
func Compute(explicit []string, t *types.Table) ([]string, error) {
	if len(explicit) == 0 {
		return t.Columns(), nil
	}
	present := map[string]struct{}{}
	for _, c := range t.Columns() {
		present[c] = struct{}{}
	}

	seen := map[string]struct{}{}
	out := make([]string, 0, len(explicit))
	add := func(cols ...string) {
		for _, c := range cols {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	for _, k := range explicit {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		name, isSet := strings.CutPrefix(k, SetPrefix)
		if !isSet {
			if _, col := present[k]; !col {
				_, isSet = Sets[k]
			}
		}
		if !isSet {
			add(k)
			continue
		}
		cols, err := ExpandSets([]string{name})
		if err != nil {
			return nil, err
		}
		add(cols...)
	}
	return out, nil
}

// Format renders a cell for display: integers get thousands separators,
// floats use the shortest exact form and nil is blank.
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return formatIntComma(t)
	case int:
		return formatIntComma(int64(t))
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// Numeric reports whether v should be right-aligned.
func Numeric(v any) bool {
	switch v.(type) {
	case int, int64, float64:
		return true
	}
	return false
}

// formatIntComma formats an integer with comma thousand separators.
func formatIntComma(n int64) string {
	neg := n < 0
	s := strconv.FormatInt(n, 10)
	if neg {
		s = s[1:]
	}
	if len(s) > 3 {
		out := make([]byte, 0, len(s)+len(s)/3)
		rem := len(s) % 3
		if rem == 0 {
			rem = 3
		}
		out = append(out, s[:rem]...)
		for i := rem; i < len(s); i += 3 {
			out = append(out, ',')
			out = append(out, s[i:i+3]...)
		}
		s = string(out)
	}
	if neg {
		return "-" + s
	}
	return s
}
