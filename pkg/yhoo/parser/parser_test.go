package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/yhoo/pkg/yhoo/errs"
)

func fixture(t *testing.T, name string) json.RawMessage {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return b
}

func TestChartRecords(t *testing.T) {
	p, err := NewChart(fixture(t, "chart.json"), Options{})
	require.NoError(t, err)

	c := p.(*Chart)
	assert.Equal(t, "AAPL", c.Symbol)
	assert.Equal(t, OneDay, c.Granularity)
	assert.Equal(t, RangeNone, c.Range)
	assert.Len(t, c.ValidRanges, 11)

	recs := p.Records()
	require.Len(t, recs, 5)

	first := recs[0]
	assert.Equal(t, int64(1704205800), first["timestamp"])
	assert.Equal(t, 187.15, first["open"])
	assert.Equal(t, 188.44, first["high"])
	assert.Equal(t, 183.89, first["low"])
	assert.Equal(t, 185.64, first["close"])
	assert.Equal(t, 184.73, first["adjclose"])
	assert.Equal(t, int64(82488700), first["volume"])

	// Metadata is duplicated on every row.
	for _, r := range recs {
		assert.Equal(t, "AAPL", r["symbol"])
		assert.Equal(t, "USD", r["currency"])
		assert.Equal(t, "1d", r["dataGranularity"])
		assert.Equal(t, 185.14, r["regularMarketPrice"])
		assert.Equal(t, int64(1704810600), r["currentTradingPeriod.regular.start"])
		v, ok := r["range"]
		assert.True(t, ok)
		assert.Nil(t, v)
		assert.NotContains(t, r, "tradingPeriods")
	}
	assert.Equal(t, "1d,5d,1mo,3mo,6mo,1y,2y,5y,10y,ytd,max", first["validRanges"])
	assert.Equal(t, int64(1704724200), recs[4]["timestamp"])
}

const raggedChart = `{
  "meta": {"symbol": "X", "dataGranularity": "1h", "range": "5d"},
  "timestamp": [1, 2, 3],
  "indicators": {"quote": [{"open": [1.5, 2.5, 3.5], "close": [1.0, null], "high": [1, 2, 3], "low": [1, 2, 3], "volume": [10, 20, 30]}]}
}`

func TestChartAlignment(t *testing.T) {
	longest, err := parseChart(json.RawMessage(raggedChart), Options{Align: AlignLongest})
	require.NoError(t, err)
	assert.Equal(t, RangeFiveDays, longest.Range)

	recs := longest.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, 1.0, recs[0]["close"])
	assert.Nil(t, recs[1]["close"])
	assert.Nil(t, recs[2]["close"])
	assert.Nil(t, recs[0]["adjclose"])
	assert.Equal(t, int64(30), recs[2]["volume"])
	assert.Equal(t, "5d", recs[0]["range"])

	shortest, err := parseChart(json.RawMessage(raggedChart), Options{Align: AlignShortest})
	require.NoError(t, err)
	// close has 2 entries; the absent adjclose array does not truncate to zero.
	assert.Equal(t, 2, shortest.Len())
	assert.Len(t, shortest.Records(), 2)
}

func TestChartEmptyArrays(t *testing.T) {
	p, err := NewChart(json.RawMessage(`{"meta": {"symbol": "X", "dataGranularity": "1d"}, "indicators": {"quote": [{}]}}`), Options{})
	require.NoError(t, err)
	assert.Empty(t, p.Records())
}

func TestChartErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing meta", `{"timestamp": [1]}`},
		{"null meta", `{"meta": null}`},
		{"missing symbol", `{"meta": {"dataGranularity": "1d"}}`},
		{"missing granularity", `{"meta": {"symbol": "X"}}`},
		{"unknown granularity", `{"meta": {"symbol": "X", "dataGranularity": "7m"}}`},
		{"unknown range", `{"meta": {"symbol": "X", "dataGranularity": "1d", "range": "7y"}}`},
		{"not an object", `[1, 2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChart(json.RawMessage(tt.body), Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrParse)
		})
	}

	_, err := NewChart(json.RawMessage(`{"meta": {"symbol": "X", "dataGranularity": "7m"}}`), Options{})
	var enum *errs.UnknownEnumValueError
	require.ErrorAs(t, err, &enum)
	assert.Equal(t, "7m", enum.Value)
}

func TestFundamentalsRecords(t *testing.T) {
	p, err := NewFundamentals(fixture(t, "fundamentals.json"), Options{})
	require.NoError(t, err)

	f := p.(*Fundamentals)
	assert.Equal(t, "AAPL", f.Symbol)
	assert.Equal(t, "annualTotalRevenue", f.Type)
	assert.Equal(t, []int64{1664496000, 1696032000}, f.Timestamp)

	recs := p.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "annualTotalRevenue", recs[0]["type"])
	assert.Equal(t, "AAPL", recs[0]["symbol"])
	assert.Equal(t, "2022-09-30", recs[0]["asOfDate"])
	assert.Equal(t, "12M", recs[0]["periodType"])
	assert.Equal(t, 394328000000.0, recs[0]["reportedValue"])
	assert.Equal(t, "USD", recs[0]["currencyCode"])
	assert.Equal(t, int64(20100), recs[0]["dataId"])
	assert.Equal(t, "2023-09-30", recs[1]["asOfDate"])
}

func TestFundamentalsOptionalFields(t *testing.T) {
	body := `{"meta": {"symbol": ["X"], "type": ["quarterlyNetIncome"]},
	  "quarterlyNetIncome": [{"asOfDate": "2024-03-31", "periodType": "3M", "reportedValue": {}}]}`
	p, err := NewFundamentals(json.RawMessage(body), Options{})
	require.NoError(t, err)

	recs := p.Records()
	require.Len(t, recs, 1)
	assert.Nil(t, recs[0]["dataId"])
	assert.Nil(t, recs[0]["currencyCode"])
	assert.Nil(t, recs[0]["reportedValue"])
}

func TestFundamentalsNoSeries(t *testing.T) {
	p, err := NewFundamentals(json.RawMessage(`{"meta": {"symbol": ["X"], "type": ["annualEBIT"]}, "timestamp": null}`), Options{})
	require.NoError(t, err)
	assert.Empty(t, p.Records())
}

func TestFundamentalsErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing meta", `{"annualEBIT": []}`},
		{"empty symbol", `{"meta": {"symbol": [], "type": ["annualEBIT"]}}`},
		{"empty type", `{"meta": {"symbol": ["X"], "type": []}}`},
		{"row without asOfDate", `{"meta": {"symbol": ["X"], "type": ["annualEBIT"]}, "annualEBIT": [{"periodType": "12M", "reportedValue": {"raw": 1}}]}`},
		{"row without periodType", `{"meta": {"symbol": ["X"], "type": ["annualEBIT"]}, "annualEBIT": [{"asOfDate": "2024-01-01", "reportedValue": {"raw": 1}}]}`},
		{"row without reportedValue", `{"meta": {"symbol": ["X"], "type": ["annualEBIT"]}, "annualEBIT": [{"asOfDate": "2024-01-01", "periodType": "12M"}]}`},
		{"series not a list", `{"meta": {"symbol": ["X"], "type": ["annualEBIT"]}, "annualEBIT": 3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFundamentals(json.RawMessage(tt.body), Options{})
			var merr *errs.MalformedResponseError
			require.ErrorAs(t, err, &merr)
			assert.ErrorIs(t, err, errs.ErrParse)
		})
	}
}

func TestOptionChainRecords(t *testing.T) {
	p, err := NewOptionChain(fixture(t, "options.json"), Options{})
	require.NoError(t, err)

	o := p.(*OptionChain)
	assert.Equal(t, "AAPL", o.UnderlyingSymbol)
	assert.Equal(t, []int64{1705622400, 1706227200}, o.ExpirationDates)
	assert.Equal(t, []float64{180, 185, 190}, o.Strikes)
	assert.Equal(t, 185.14, o.Quote["regularMarketPrice"])

	recs := p.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, "CALL", recs[0]["type"])
	assert.Equal(t, "CALL", recs[1]["type"])
	assert.Equal(t, "PUT", recs[2]["type"])
	for _, r := range recs {
		assert.Equal(t, "AAPL", r["underlyingSymbol"])
	}
	assert.Equal(t, "AAPL240119C00180000", recs[0]["contractSymbol"])
	assert.Equal(t, int64(180), recs[0]["strike"])
	assert.Equal(t, 0.2412, recs[0]["impliedVolatility"])
	assert.Equal(t, true, recs[0]["inTheMoney"])
	assert.Equal(t, int64(1705622400), recs[2]["expiration"])
}

func TestOptionChainEdges(t *testing.T) {
	p, err := NewOptionChain(json.RawMessage(`{"underlyingSymbol": "X", "options": []}`), Options{})
	require.NoError(t, err)
	assert.Empty(t, p.Records())

	p, err = NewOptionChain(json.RawMessage(`{"underlyingSymbol": "X", "options": [{"calls": [], "puts": [{"strike": 1.5}]}]}`), Options{})
	require.NoError(t, err)
	recs := p.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, "PUT", recs[0]["type"])
	assert.Equal(t, 1.5, recs[0]["strike"])

	_, err = NewOptionChain(json.RawMessage(`{"options": []}`), Options{})
	var merr *errs.MalformedResponseError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "underlyingSymbol", merr.Field)
}

func TestFlatten(t *testing.T) {
	rec := map[string]any{}
	flatten(rec, "", map[string]any{
		"a":    json.Number("1"),
		"b":    map[string]any{"c": "x", "d": map[string]any{"e": true}},
		"list": []any{"p", json.Number("2.5"), nil},
		"objs": []any{map[string]any{"z": 1}},
		"nil":  nil,
	})
	assert.Equal(t, map[string]any{
		"a":     int64(1),
		"b.c":   "x",
		"b.d.e": true,
		"list":  "p,2.5,",
		"nil":   nil,
	}, rec)
}

func TestEnums(t *testing.T) {
	for _, iv := range Intervals {
		got, err := ParseInterval(string(iv))
		require.NoError(t, err)
		assert.Equal(t, iv, got)
	}
	_, err := ParseInterval("")
	assert.ErrorIs(t, err, errs.ErrParse)

	got, err := ParseRange("")
	require.NoError(t, err)
	assert.Equal(t, RangeNone, got)
	assert.NotContains(t, Ranges, RangeNone)

	got, err = ParseRange("ytd")
	require.NoError(t, err)
	assert.Equal(t, RangeYTD, got)

	a, err := ParseAlign("shortest")
	require.NoError(t, err)
	assert.Equal(t, AlignShortest, a)
	_, err = ParseAlign("widest")
	assert.Error(t, err)
}
