// Package parser flattens one ticker's result item into output records.
//
// Each endpoint has its own parser. A parser is built from a single raw JSON
// result object, fails at construction when required fields are missing, and
// then yields its records eagerly through Records.
package parser

import (
	"bytes"
	"encoding/json"

	"github.com/komsit37/yhoo/pkg/yhoo/errs"
	"github.com/komsit37/yhoo/pkg/yhoo/types"
)

// Parser turns one result item into flat records.
type Parser interface {
	Records() []types.Record
}

// Factory builds a Parser from one raw result item.
type Factory func(item json.RawMessage, opts Options) (Parser, error)

// Align selects how ragged chart arrays are combined.
type Align int

const (
	// AlignLongest extends to the longest array and pads missing values with nil.
	AlignLongest Align = iota
	// AlignShortest truncates to the shortest array.
	AlignShortest
)

func (a Align) String() string {
	if a == AlignShortest {
		return "shortest"
	}
	return "longest"
}

// Options tune parser behavior.
type Options struct {
	Align Align
}

// decodeObject unmarshals a JSON object, keeping numbers as json.Number so
// integers survive flattening untouched.
func decodeObject(raw json.RawMessage, field string) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, &errs.MalformedResponseError{Field: field, Reason: "missing"}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, &errs.MalformedResponseError{Field: field, Err: err}
	}
	return m, nil
}

// unmarshalField decodes m[key] into dst. Absent or null keys leave dst untouched.
func unmarshalField(fields map[string]json.RawMessage, key string, dst any) error {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &errs.MalformedResponseError{Field: key, Err: err}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// scalar converts a decoded JSON value into a record value.
func scalar(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// ParseAlign maps "longest" or "shortest" to an Align; "" is AlignLongest.
func ParseAlign(s string) (Align, error) {
	switch s {
	case "", "longest":
		return AlignLongest, nil
	case "shortest":
		return AlignShortest, nil
	}
	return AlignLongest, &errs.UnknownEnumValueError{Enum: "align", Value: s}
}
