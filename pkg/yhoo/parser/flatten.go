package parser

import (
	"fmt"
	"strings"

	"github.com/komsit37/yhoo/pkg/yhoo/types"
)

// flatten copies a decoded JSON object into rec. Nested objects become
// dotted paths ("currentTradingPeriod.regular.start"), lists of scalars are
// joined with commas and lists holding objects are dropped.
func flatten(rec types.Record, prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch t := v.(type) {
		case map[string]any:
			flatten(rec, key, t)
		case []any:
			if s, ok := joinScalars(t); ok {
				rec[key] = s
			}
		default:
			rec[key] = scalar(t)
		}
	}
}

func joinScalars(list []any) (string, bool) {
	parts := make([]string, 0, len(list))
	for _, e := range list {
		switch e.(type) {
		case map[string]any, []any:
			return "", false
		case nil:
			parts = append(parts, "")
		default:
			parts = append(parts, fmt.Sprint(scalar(e)))
		}
	}
	return strings.Join(parts, ","), true
}
