package parser

import (
	"encoding/json"

	"github.com/komsit37/yhoo/pkg/yhoo/errs"
	"github.com/komsit37/yhoo/pkg/yhoo/types"
)

// ChartColumns is the preferred leading column order for chart tables.
var ChartColumns = []string{
	"symbol", "timestamp", "open", "high", "low", "close", "adjclose", "volume",
	"currency", "exchangeName", "instrumentType", "dataGranularity", "range",
}

type chartPayload struct {
	Meta       json.RawMessage `json:"meta"`
	Timestamp  []int64         `json:"timestamp"`
	Indicators struct {
		Quote    []chartQuote `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

type chartQuote struct {
	High   []*float64     `json:"high"`
	Low    []*float64     `json:"low"`
	Open   []*float64     `json:"open"`
	Close  []*float64     `json:"close"`
	Volume []*json.Number `json:"volume"`
}

// Chart parses a price chart result: parallel OHLCV arrays plus a metadata
// object duplicated onto every bucket.
type Chart struct {
	Symbol      string
	Granularity Interval
	Range       Range
	ValidRanges []Range

	meta      types.Record
	timestamp []int64
	quote     chartQuote
	adjclose  []*float64
	align     Align
}

// NewChart builds a Chart parser from one result item.
func NewChart(item json.RawMessage, opts Options) (Parser, error) {
	return parseChart(item, opts)
}

func parseChart(item json.RawMessage, opts Options) (*Chart, error) {
	var p chartPayload
	if err := json.Unmarshal(item, &p); err != nil {
		return nil, &errs.MalformedResponseError{Field: "chart.result", Err: err}
	}
	meta, err := decodeObject(p.Meta, "meta")
	if err != nil {
		return nil, err
	}
	c := &Chart{
		meta:      types.Record{},
		timestamp: p.Timestamp,
		align:     opts.Align,
	}

	sym, ok := meta["symbol"].(string)
	if !ok || sym == "" {
		return nil, &errs.MalformedResponseError{Field: "meta.symbol", Reason: "missing"}
	}
	c.Symbol = sym

	gran, ok := meta["dataGranularity"].(string)
	if !ok {
		return nil, &errs.MalformedResponseError{Field: "meta.dataGranularity", Reason: "missing"}
	}
	if c.Granularity, err = ParseInterval(gran); err != nil {
		return nil, err
	}

	switch r := meta["range"].(type) {
	case nil:
	case string:
		if c.Range, err = ParseRange(r); err != nil {
			return nil, err
		}
	default:
		return nil, &errs.MalformedResponseError{Field: "meta.range", Reason: "not a string"}
	}

	if vr, ok := meta["validRanges"].([]any); ok {
		for _, v := range vr {
			s, _ := v.(string)
			rg, err := ParseRange(s)
			if err != nil {
				return nil, err
			}
			c.ValidRanges = append(c.ValidRanges, rg)
		}
	}

	flatten(c.meta, "", meta)
	if c.Range == RangeNone {
		c.meta["range"] = nil
	}

	if len(p.Indicators.Quote) > 0 {
		c.quote = p.Indicators.Quote[0]
	}
	if len(p.Indicators.AdjClose) > 0 {
		c.adjclose = p.Indicators.AdjClose[0].AdjClose
	}
	return c, nil
}

// Len is the number of records Records will produce.
func (c *Chart) Len() int {
	lengths := []int{
		len(c.timestamp), len(c.quote.High), len(c.quote.Low), len(c.quote.Volume),
		len(c.quote.Open), len(c.quote.Close), len(c.adjclose),
	}
	if c.align == AlignLongest {
		n := 0
		for _, l := range lengths {
			n = max(n, l)
		}
		return n
	}
	// Absent arrays (e.g. adjclose on intraday charts) do not truncate.
	present := []bool{
		c.timestamp != nil, c.quote.High != nil, c.quote.Low != nil, c.quote.Volume != nil,
		c.quote.Open != nil, c.quote.Close != nil, c.adjclose != nil,
	}
	n, found := 0, false
	for i, l := range lengths {
		if !present[i] {
			continue
		}
		if !found || l < n {
			n = l
		}
		found = true
	}
	return n
}

// Records returns one record per time bucket.
func (c *Chart) Records() []types.Record {
	n := c.Len()
	out := make([]types.Record, 0, n)
	for i := 0; i < n; i++ {
		rec := make(types.Record, len(c.meta)+7)
		for k, v := range c.meta {
			rec[k] = v
		}
		if i < len(c.timestamp) {
			rec["timestamp"] = c.timestamp[i]
		} else {
			rec["timestamp"] = nil
		}
		rec["high"] = floatAt(c.quote.High, i)
		rec["low"] = floatAt(c.quote.Low, i)
		rec["open"] = floatAt(c.quote.Open, i)
		rec["close"] = floatAt(c.quote.Close, i)
		rec["adjclose"] = floatAt(c.adjclose, i)
		rec["volume"] = numberAt(c.quote.Volume, i)
		out = append(out, rec)
	}
	return out
}

func floatAt(s []*float64, i int) any {
	if i >= len(s) || s[i] == nil {
		return nil
	}
	return *s[i]
}

func numberAt(s []*json.Number, i int) any {
	if i >= len(s) || s[i] == nil {
		return nil
	}
	return scalar(*s[i])
}
