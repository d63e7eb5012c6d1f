package endpoint

import (
	"sort"
	"sync"

	"github.com/komsit37/yhoo/pkg/yhoo/errs"
	"github.com/komsit37/yhoo/pkg/yhoo/parser"
)

// Endpoint names.
const (
	Chart        = "chart"
	Fundamentals = "fundamentals"
	Options      = "options"
)

var registry = sync.OnceValue(func() map[string]*Spec {
	types := FundamentalsTypes()
	return map[string]*Spec{
		Chart: NewSpec(Chart, "v8/finance/chart", "chart", parser.NewChart, parser.ChartColumns,
			Param{Name: "start", WireName: "period1", Kind: String, Required: true, Converter: dateToTimestamp},
			Param{Name: "end", WireName: "period2", Kind: String, Required: true, Converter: dateToTimestamp},
			Param{Name: "granularity", WireName: "interval", Kind: String, Required: true,
				Default: string(parser.OneDay), Options: enumStrings(parser.Intervals)},
			Param{Name: "range", WireName: "range", Kind: String, Options: enumStrings(parser.Ranges)},
		),
		Fundamentals: NewSpec(Fundamentals, "ws/fundamentals-timeseries/v1/finance/timeseries", "timeseries",
			parser.NewFundamentals, parser.FundamentalsColumns,
			Param{Name: "start", WireName: "period1", Kind: String, Converter: dateToTimestamp},
			Param{Name: "end", WireName: "period2", Kind: String, Converter: dateToTimestamp},
			Param{Name: "type", WireName: "type", Kind: StringList, Required: true,
				Default: Prefixed("annual", types), Options: types, Prefixes: FundamentalsPrefixes,
				Converter: joinList},
		),
		Options: NewSpec(Options, "v7/finance/options", "optionChain", parser.NewOptionChain, parser.OptionsColumns,
			Param{Name: "start", WireName: "date", Kind: String, Converter: dateToTimestamp},
			Param{Name: "end", WireName: "endDate", Kind: String, Converter: dateToTimestamp},
			Param{Name: "strikeMin", WireName: "strikeMin", Kind: Float},
			Param{Name: "strikeMax", WireName: "strikeMax", Kind: Float},
		),
	}
})

// Lookup returns the Spec registered under name.
func Lookup(name string) (*Spec, error) {
	s, ok := registry()[name]
	if !ok {
		return nil, &errs.UnknownEndpointError{Name: name, Available: Names()}
	}
	return s, nil
}

// Names lists registered endpoint names, sorted.
func Names() []string {
	reg := registry()
	out := make([]string, 0, len(reg))
	for k := range reg {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func enumStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
