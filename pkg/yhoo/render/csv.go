package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/komsit37/yhoo/pkg/yhoo/types"
)

// CSVRenderer writes a header row and one line per record. Numbers are
// written in full precision without separators.
type CSVRenderer struct{}

func (r *CSVRenderer) Render(w io.Writer, t *types.Table, cols []string, _ Options) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)

	hdr := make(table.Row, len(cols))
	for i, c := range cols {
		hdr[i] = c
	}
	tw.AppendHeader(hdr)
	for _, rec := range t.Rows() {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = csvValue(rec[c])
		}
		tw.AppendRow(row)
	}
	tw.RenderCSV()
	return nil
}

func csvValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}
