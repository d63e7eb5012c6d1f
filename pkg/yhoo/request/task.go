// Package request builds the URL for one ticker and performs its single GET.
package request

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/komsit37/yhoo/pkg/yhoo/transport"
)

// DefaultBaseURL is the Yahoo Finance query host.
const DefaultBaseURL = "https://query2.finance.yahoo.com"

// Payload is a decoded response body keyed by top-level field
// ("chart", "timeseries", "optionChain", ...).
type Payload map[string]json.RawMessage

// Task fetches one ticker from one endpoint.
type Task struct {
	BaseURL string
	Path    string
	Ticker  string
	// Params are wire names mapped to wire values.
	Params map[string]any
}

// URL returns base/path/ticker with the query string appended when Params
// is non-empty. Keys are sorted; values are stringified without escaping.
func (t Task) URL() string {
	base := t.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u := strings.TrimRight(base, "/") + "/" + strings.Trim(t.Path, "/") + "/" + t.Ticker
	if len(t.Params) == 0 {
		return u
	}
	keys := make([]string, 0, len(t.Params))
	for k := range t.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + FormatValue(t.Params[k])
	}
	return u + "?" + strings.Join(pairs, "&")
}

// Run performs exactly one GET. Transport failures are returned as is.
func (t Task) Run(ctx context.Context, g transport.Getter) (Payload, error) {
	var p Payload
	if err := g.GetJSON(ctx, t.URL(), &p); err != nil {
		return nil, err
	}
	return p, nil
}

// FormatValue renders a wire value for the query string.
func FormatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}
