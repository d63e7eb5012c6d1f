package parser

import (
	"encoding/json"

	"github.com/komsit37/yhoo/pkg/yhoo/errs"
	"github.com/komsit37/yhoo/pkg/yhoo/types"
)

// FundamentalsColumns is the column order of fundamentals records.
var FundamentalsColumns = []string{
	"symbol", "type", "asOfDate", "periodType", "reportedValue", "currencyCode", "dataId",
}

type fundamentalsMeta struct {
	Symbol []string `json:"symbol"`
	Type   []string `json:"type"`
}

// FundamentalsRow is one reported data point.
type FundamentalsRow struct {
	DataID        *int64 `json:"dataId"`
	AsOfDate      string `json:"asOfDate"`
	PeriodType    string `json:"periodType"`
	ReportedValue *struct {
		Raw *float64 `json:"raw"`
		Fmt string   `json:"fmt"`
	} `json:"reportedValue"`
	CurrencyCode *string `json:"currencyCode"`
}

// Fundamentals parses a timeseries result. The payload stores its rows under
// a key named after the metric type, which is discovered from meta.type.
type Fundamentals struct {
	Symbol    string
	Type      string
	Timestamp []int64
	Series    map[string][]FundamentalsRow
}

// NewFundamentals builds a Fundamentals parser from one result item.
func NewFundamentals(item json.RawMessage, _ Options) (Parser, error) {
	return parseFundamentals(item)
}

func parseFundamentals(item json.RawMessage) (*Fundamentals, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return nil, &errs.MalformedResponseError{Field: "timeseries.result", Err: err}
	}
	if isNull(fields["meta"]) {
		return nil, &errs.MalformedResponseError{Field: "meta", Reason: "missing"}
	}
	var meta fundamentalsMeta
	if err := unmarshalField(fields, "meta", &meta); err != nil {
		return nil, err
	}
	if len(meta.Symbol) == 0 || meta.Symbol[0] == "" {
		return nil, &errs.MalformedResponseError{Field: "meta.symbol", Reason: "missing"}
	}
	if len(meta.Type) == 0 || meta.Type[0] == "" {
		return nil, &errs.MalformedResponseError{Field: "meta.type", Reason: "missing"}
	}

	f := &Fundamentals{
		Symbol: meta.Symbol[0],
		Type:   meta.Type[0],
		Series: map[string][]FundamentalsRow{},
	}
	if err := unmarshalField(fields, "timestamp", &f.Timestamp); err != nil {
		return nil, err
	}

	var rows []*FundamentalsRow
	if err := unmarshalField(fields, f.Type, &rows); err != nil {
		return nil, err
	}
	series := make([]FundamentalsRow, 0, len(rows))
	for _, r := range rows {
		// Yahoo leaves null holes for periods without a report.
		if r == nil {
			continue
		}
		if r.AsOfDate == "" {
			return nil, &errs.MalformedResponseError{Field: f.Type + ".asOfDate", Reason: "missing"}
		}
		if r.PeriodType == "" {
			return nil, &errs.MalformedResponseError{Field: f.Type + ".periodType", Reason: "missing"}
		}
		if r.ReportedValue == nil {
			return nil, &errs.MalformedResponseError{Field: f.Type + ".reportedValue", Reason: "missing"}
		}
		series = append(series, *r)
	}
	f.Series[f.Type] = series
	return f, nil
}

// Records returns one record per reported row.
func (f *Fundamentals) Records() []types.Record {
	rows := f.Series[f.Type]
	out := make([]types.Record, 0, len(rows))
	for _, r := range rows {
		rec := types.Record{
			"type":          f.Type,
			"symbol":        f.Symbol,
			"dataId":        nil,
			"asOfDate":      r.AsOfDate,
			"periodType":    r.PeriodType,
			"reportedValue": nil,
			"currencyCode":  nil,
		}
		if r.DataID != nil {
			rec["dataId"] = *r.DataID
		}
		if r.ReportedValue.Raw != nil {
			rec["reportedValue"] = *r.ReportedValue.Raw
		}
		if r.CurrencyCode != nil {
			rec["currencyCode"] = *r.CurrencyCode
		}
		out = append(out, rec)
	}
	return out
}
