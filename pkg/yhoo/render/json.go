package render

import (
	"encoding/json"
	"io"

	"github.com/komsit37/yhoo/pkg/yhoo/types"
)

// JSONRenderer writes an array of objects restricted to the selected
// columns. Missing values are null.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, t *types.Table, cols []string, opts Options) error {
	out := make([]map[string]any, 0, t.Len())
	for _, rec := range t.Rows() {
		m := make(map[string]any, len(cols))
		for _, c := range cols {
			m[c] = rec[c]
		}
		out = append(out, m)
	}
	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
