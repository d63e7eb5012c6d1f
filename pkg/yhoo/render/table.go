package render

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/yhoo/pkg/yhoo/columns"
	"github.com/komsit37/yhoo/pkg/yhoo/types"
)

// signed columns are colored by the sign of their value.
var signed = map[string]bool{"chg%": true, "change": true, "percentChange": true}

type TableRenderer struct{}

func (r *TableRenderer) Render(w io.Writer, t *types.Table, cols []string, opts Options) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	if !opts.Color {
		tw.SetStyle(table.StyleLight)
	}
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false
	if opts.Width > 0 {
		tw.SetAllowedRowLength(opts.Width)
	}

	hdr := make(table.Row, len(cols))
	for i, c := range cols {
		hdr[i] = strings.ToUpper(c)
	}
	tw.AppendHeader(hdr)

	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	numeric := make([]bool, len(cols))
	for _, rec := range t.Rows() {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			v := rec[c]
			if columns.Numeric(v) {
				numeric[i] = true
			}
			s := columns.Format(v)
			if opts.Color && signed[c] {
				switch sign(v) {
				case 1:
					s = text.Colors{text.FgGreen}.Sprint(s)
				case -1:
					s = text.Colors{text.FgRed}.Sprint(s)
				}
			}
			row[i] = s
		}
		tw.AppendRow(row)
	}

	cfgs := make([]table.ColumnConfig, len(cols))
	for i := range cols {
		cfgs[i] = table.ColumnConfig{Number: i + 1, WidthMax: maxWidth}
		if numeric[i] {
			cfgs[i].Align = text.AlignRight
			cfgs[i].AlignHeader = text.AlignRight
		}
	}
	tw.SetColumnConfigs(cfgs)

	tw.Render()
	return nil
}

func sign(v any) int {
	switch t := v.(type) {
	case float64:
		switch {
		case t > 0:
			return 1
		case t < 0:
			return -1
		}
	case int64:
		switch {
		case t > 0:
			return 1
		case t < 0:
			return -1
		}
	case string:
		t = strings.TrimSpace(t)
		switch {
		case strings.HasPrefix(t, "-"):
			return -1
		case t != "" && strings.Trim(t, "+0.%") != "":
			return 1
		}
	}
	return 0
}
