package parser

import (
	"encoding/json"

	"github.com/komsit37/yhoo/pkg/yhoo/errs"
	"github.com/komsit37/yhoo/pkg/yhoo/types"
)

// OptionsColumns is the preferred leading column order for options tables.
var OptionsColumns = []string{
	"underlyingSymbol", "type", "contractSymbol", "expiration", "strike",
	"lastPrice", "bid", "ask", "change", "percentChange", "volume", "openInterest",
	"impliedVolatility", "inTheMoney",
}

type optionsPayload struct {
	UnderlyingSymbol *string           `json:"underlyingSymbol"`
	ExpirationDates  []int64           `json:"expirationDates"`
	Strikes          []float64         `json:"strikes"`
	HasMiniOptions   bool              `json:"hasMiniOptions"`
	Quote            json.RawMessage   `json:"quote"`
	Options          []optionsGroupRaw `json:"options"`
}

type optionsGroupRaw struct {
	ExpirationDate *int64            `json:"expirationDate"`
	HasMiniOptions *bool             `json:"hasMiniOptions"`
	Calls          []json.RawMessage `json:"calls"`
	Puts           []json.RawMessage `json:"puts"`
}

// OptionChain parses an option chain result. Only the first expiration group
// is turned into records.
type OptionChain struct {
	UnderlyingSymbol string
	ExpirationDates  []int64
	Strikes          []float64
	HasMiniOptions   bool
	Quote            types.Record

	calls []types.Record
	puts  []types.Record
}

// NewOptionChain builds an OptionChain parser from one result item.
func NewOptionChain(item json.RawMessage, _ Options) (Parser, error) {
	return parseOptionChain(item)
}

func parseOptionChain(item json.RawMessage) (*OptionChain, error) {
	var p optionsPayload
	if err := json.Unmarshal(item, &p); err != nil {
		return nil, &errs.MalformedResponseError{Field: "optionChain.result", Err: err}
	}
	if p.UnderlyingSymbol == nil {
		return nil, &errs.MalformedResponseError{Field: "underlyingSymbol", Reason: "missing"}
	}
	o := &OptionChain{
		UnderlyingSymbol: *p.UnderlyingSymbol,
		ExpirationDates:  p.ExpirationDates,
		Strikes:          p.Strikes,
		HasMiniOptions:   p.HasMiniOptions,
		Quote:            types.Record{},
	}
	if !isNull(p.Quote) {
		q, err := decodeObject(p.Quote, "quote")
		if err != nil {
			return nil, err
		}
		flatten(o.Quote, "", q)
	}
	if len(p.Options) == 0 {
		return o, nil
	}
	var err error
	group := p.Options[0]
	if o.calls, err = contracts(group.Calls, "calls"); err != nil {
		return nil, err
	}
	if o.puts, err = contracts(group.Puts, "puts"); err != nil {
		return nil, err
	}
	return o, nil
}

func contracts(raws []json.RawMessage, field string) ([]types.Record, error) {
	out := make([]types.Record, 0, len(raws))
	for _, raw := range raws {
		m, err := decodeObject(raw, "options."+field)
		if err != nil {
			return nil, err
		}
		rec := types.Record{}
		flatten(rec, "", m)
		out = append(out, rec)
	}
	return out, nil
}

// Records returns one record per call then one per put.
func (o *OptionChain) Records() []types.Record {
	out := make([]types.Record, 0, len(o.calls)+len(o.puts))
	out = appendContracts(out, o.calls, Call, o.UnderlyingSymbol)
	return appendContracts(out, o.puts, Put, o.UnderlyingSymbol)
}

func appendContracts(out, legs []types.Record, kind ContractType, underlying string) []types.Record {
	for _, c := range legs {
		rec := make(types.Record, len(c)+2)
		for k, v := range c {
			rec[k] = v
		}
		rec["underlyingSymbol"] = underlying
		rec["type"] = string(kind)
		out = append(out, rec)
	}
	return out
}
