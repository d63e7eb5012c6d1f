// Package render writes a types.Table as a terminal table, JSON or CSV.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/komsit37/yhoo/pkg/yhoo/types"
)

// Renderer renders the given columns of a table to w.
type Renderer interface {
	Render(w io.Writer, t *types.Table, cols []string, opts Options) error
}

type Options struct {
	Color      bool
	PrettyJSON bool
	// MaxColWidth wraps cell text; 0 means 40.
	MaxColWidth int
	// Width truncates table rows to the terminal width; 0 disables it.
	Width int
}

// UnknownFormatError reports an unsupported output format.
type UnknownFormatError struct {
	Name      string
	Available []string
}

func (e *UnknownFormatError) Error() string {
	return "unknown output format: " + e.Name + "; available: " + strings.Join(e.Available, ", ")
}

var formats = map[string]func() Renderer{
	"table": func() Renderer { return &TableRenderer{} },
	"json":  func() Renderer { return &JSONRenderer{} },
	"csv":   func() Renderer { return &CSVRenderer{} },
	"syms":  func() Renderer { return symsRenderer{} },
}

// New returns the renderer for an --output value.
func New(format string) (Renderer, error) {
	f, ok := formats[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		names := make([]string, 0, len(formats))
		for k := range formats {
			names = append(names, k)
		}
		sort.Strings(names)
		return nil, &UnknownFormatError{Name: format, Available: names}
	}
	return f(), nil
}

// symsRenderer prints the distinct tickers of a table on one comma-separated
// line, e.g. to feed another invocation.
type symsRenderer struct{}

var symColumns = []string{"symbol", "sym", "underlyingSymbol"}

func (symsRenderer) Render(w io.Writer, t *types.Table, _ []string, _ Options) error {
	var key string
	for _, c := range symColumns {
		for _, have := range t.Columns() {
			if have == c {
				key = c
				break
			}
		}
		if key != "" {
			break
		}
	}
	seen := map[string]struct{}{}
	var out []string
	if key != "" {
		for _, v := range t.Column(key) {
			s, _ := v.(string)
			if s = strings.TrimSpace(s); s == "" {
				continue
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	_, err := fmt.Fprintln(w, strings.Join(out, ","))
	return err
}
