package endpoint

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/yhoo/pkg/yhoo/errs"
	"github.com/komsit37/yhoo/pkg/yhoo/parser"
)

func testSpec() *Spec {
	return NewSpec("test", "v1/test", "test", parser.NewChart, nil,
		Param{Name: "a", WireName: "wireA", Kind: String, Required: true, Default: "x", Options: []string{"x", "y"}},
		Param{Name: "b", WireName: "wireB", Kind: Float},
		Param{Name: "c", WireName: "wireC", Kind: String, Required: true},
		Param{Name: "p", WireName: "p", Kind: StringList, Prefixes: []string{"p_", "p_long_"}, Options: []string{"x"}},
	)
}

func TestSpecValidate(t *testing.T) {
	s := testSpec()

	tests := []struct {
		name   string
		params Params
		want   Params
		target any
	}{
		{
			name:   "defaults injected",
			params: Params{"c": "v"},
			want:   Params{"a": "x", "c": "v"},
		},
		{
			name:   "unknown parameter",
			params: Params{"c": "v", "zzz": 1},
			target: new(*errs.UnknownParameterError),
		},
		{
			name:   "missing required without default",
			params: Params{},
			target: new(*errs.MissingParameterError),
		},
		{
			name:   "wrong type",
			params: Params{"c": "v", "b": "1.5"},
			target: new(*errs.InvalidParameterTypeError),
		},
		{
			name:   "int is not float",
			params: Params{"c": "v", "b": 1},
			target: new(*errs.InvalidParameterTypeError),
		},
		{
			name:   "value not in options",
			params: Params{"c": "v", "a": "z"},
			target: new(*errs.InvalidParameterValueError),
		},
		{
			name:   "longest prefix stripped before option check",
			params: Params{"c": "v", "p": []string{"p_x", "p_long_x"}},
			want:   Params{"a": "x", "c": "v", "p": []string{"p_x", "p_long_x"}},
		},
		{
			name:   "stripped value not in options",
			params: Params{"c": "v", "p": []string{"p_long_long_x"}},
			target: new(*errs.InvalidParameterValueError),
		},
		{
			name:   "missing prefix",
			params: Params{"c": "v", "p": []string{"x"}},
			target: new(*errs.InvalidParameterPrefixError),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Validate(tt.params)
			if tt.target != nil {
				require.Error(t, err)
				assert.ErrorAs(t, err, tt.target)
				assert.ErrorIs(t, err, errs.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpecValidateDoesNotMutateInput(t *testing.T) {
	in := Params{"c": "v"}
	out, err := testSpec().Validate(in)
	require.NoError(t, err)
	assert.Equal(t, Params{"c": "v"}, in)
	assert.Equal(t, "x", out["a"])
}

func TestSpecFormat(t *testing.T) {
	s := testSpec()
	wire, err := s.Format(Params{"a": "y", "b": 2.5})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"wireA": "y", "wireB": 2.5}, wire)

	_, err = s.Format(Params{"nope": 1})
	var unknown *errs.UnknownParameterError
	assert.ErrorAs(t, err, &unknown)
}

func TestUnprefixLongestWins(t *testing.T) {
	p := Param{Name: "p", Prefixes: []string{"p_", "p_long_"}}
	got, err := p.Unprefix("p_long_x")
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	got, err = p.Unprefix("p_x")
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	_, err = p.Unprefix("q_x")
	var perr *errs.InvalidParameterPrefixError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "q_x", perr.Value)

	bare := Param{Name: "bare"}
	got, err = bare.Unprefix("anything")
	require.NoError(t, err)
	assert.Equal(t, "anything", got)
}

func TestParamFormatConverterError(t *testing.T) {
	p := Param{Name: "start", WireName: "period1", Kind: String, Converter: dateToTimestamp}
	_, err := p.Format("01/02/2024")
	var verr *errs.InvalidParameterValueError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "start", verr.Param)
	assert.NotEmpty(t, verr.Reason)
}

func TestLookup(t *testing.T) {
	for _, name := range []string{Chart, Fundamentals, Options} {
		s, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, s.Name)
	}
	assert.Equal(t, []string{Chart, Fundamentals, Options}, Names())

	_, err := Lookup("quotes")
	var uerr *errs.UnknownEndpointError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, Names(), uerr.Available)
	assert.True(t, errors.Is(err, errs.ErrConfiguration))
}

func TestChartSpec(t *testing.T) {
	s, err := Lookup(Chart)
	require.NoError(t, err)
	assert.Equal(t, "v8/finance/chart", s.Path)
	assert.Equal(t, "chart", s.ResponseField)

	params, err := s.Validate(Params{"start": "2024-01-01", "end": "2024-01-10"})
	require.NoError(t, err)
	assert.Equal(t, "1d", params["granularity"])

	wire, err := s.Format(params)
	require.NoError(t, err)
	assert.Equal(t, "1d", wire["interval"])
	start, _ := DateToTimestamp("2024-01-01")
	assert.Equal(t, start, wire["period1"])
	assert.Contains(t, wire, "period2")
	assert.NotContains(t, wire, "range")

	_, err = s.Validate(Params{"start": "2024-01-01"})
	var missing *errs.MissingParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "end", missing.Param)

	_, err = s.Validate(Params{"start": "2024-01-01", "end": "2024-01-10", "granularity": "7m"})
	var bad *errs.InvalidParameterValueError
	assert.ErrorAs(t, err, &bad)
}

func TestFundamentalsSpec(t *testing.T) {
	s, err := Lookup(Fundamentals)
	require.NoError(t, err)
	assert.Equal(t, "timeseries", s.ResponseField)

	params, err := s.Validate(Params{})
	require.NoError(t, err)
	def, ok := params["type"].([]string)
	require.True(t, ok)
	assert.Len(t, def, len(FundamentalsTypes()))
	assert.Contains(t, def, "annualWorkInProcess")

	// The injected default is a copy.
	def[0] = "mutated"
	again, err := s.Validate(Params{})
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again["type"].([]string)[0])

	params, err = s.Validate(Params{"type": []string{"quarterlyWorkInProcess", "annualConstructionInProgress"}})
	require.NoError(t, err)
	wire, err := s.Format(params)
	require.NoError(t, err)
	assert.Equal(t, "quarterlyWorkInProcess,annualConstructionInProgress", wire["type"])

	_, err = s.Validate(Params{"type": []string{"WorkInProcess"}})
	var perr *errs.InvalidParameterPrefixError
	assert.ErrorAs(t, err, &perr)

	_, err = s.Validate(Params{"type": []string{"annualNotAMetric"}})
	var verr *errs.InvalidParameterValueError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "NotAMetric", verr.Value)
}

func TestOptionsSpec(t *testing.T) {
	s, err := Lookup(Options)
	require.NoError(t, err)
	assert.Equal(t, "optionChain", s.ResponseField)

	params, err := s.Validate(Params{})
	require.NoError(t, err)
	assert.Empty(t, params)

	params, err = s.Validate(Params{"strikeMin": 150.0, "strikeMax": 200.5})
	require.NoError(t, err)
	wire, err := s.Format(params)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"strikeMin": 150.0, "strikeMax": 200.5}, wire)
}

func TestDateRoundTrip(t *testing.T) {
	for _, d := range []string{"2024-01-01", "2023-03-12", "1999-12-31"} {
		ts, err := DateToTimestamp(d)
		require.NoError(t, err)
		assert.Equal(t, d, TimestampToDate(ts))
		assert.Equal(t, 0, time.Unix(ts, 0).In(time.Local).Hour())
	}
	_, err := DateToTimestamp("2024-13-01")
	assert.Error(t, err)
}
