// Package source loads ticker watchlists.
package source

import (
	"context"

	"github.com/komsit37/yhoo/pkg/yhoo/types"
)

// Source loads watchlists from a location (file or directory path).
type Source interface {
	Load(ctx context.Context, path string) ([]types.Watchlist, error)
}

// Tickers returns the symbols of all lists in order, keeping the first
// occurrence of duplicates.
func Tickers(lists []types.Watchlist) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, l := range lists {
		for _, t := range l.Tickers() {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
