package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/yhoo/pkg/yhoo/types"
)

func sample() *types.Table {
	t := types.NewTable("symbol", "timestamp", "close", "volume")
	t.Append(
		types.Record{"symbol": "AAPL", "timestamp": int64(1704205800), "close": 185.64, "volume": int64(82488700)},
		types.Record{"symbol": "AAPL", "timestamp": int64(1704292200), "close": nil, "volume": int64(58414500)},
		types.Record{"symbol": "MSFT", "timestamp": int64(1704205800), "close": 370.87, "volume": int64(25258600)},
	)
	return t
}

var cols = []string{"symbol", "close", "volume"}

func TestNew(t *testing.T) {
	for _, f := range []string{"table", "JSON", " csv ", "syms"} {
		r, err := New(f)
		require.NoError(t, err, f)
		assert.NotNil(t, r)
	}
	_, err := New("xml")
	var uerr *UnknownFormatError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, []string{"csv", "json", "syms", "table"}, uerr.Available)
}

func TestTableRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableRenderer{}).Render(&buf, sample(), cols, Options{}))
	out := buf.String()
	assert.Contains(t, out, "SYMBOL")
	assert.Contains(t, out, "VOLUME")
	assert.Contains(t, out, "82,488,700")
	assert.Contains(t, out, "185.64")
	assert.NotContains(t, out, "TIMESTAMP")
	assert.NotContains(t, out, "\x1b[")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONRenderer{}).Render(&buf, sample(), cols, Options{PrettyJSON: true}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, map[string]any{"symbol": "AAPL", "close": 185.64, "volume": 82488700.0}, got[0])
	assert.Nil(t, got[1]["close"])
	assert.NotContains(t, got[0], "timestamp")
	assert.True(t, strings.HasPrefix(buf.String(), "[\n  {"))
}

func TestCSVRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVRenderer{}).Render(&buf, sample(), cols, Options{}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "symbol,close,volume", lines[0])
	assert.Equal(t, "AAPL,185.64,82488700", lines[1])
	assert.Equal(t, "AAPL,,58414500", lines[2])
}

func TestSymsRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, symsRenderer{}.Render(&buf, sample(), nil, Options{}))
	assert.Equal(t, "AAPL,MSFT\n", buf.String())

	buf.Reset()
	require.NoError(t, symsRenderer{}.Render(&buf, types.NewTable(), nil, Options{}))
	assert.Equal(t, "\n", buf.String())
}

func TestSign(t *testing.T) {
	assert.Equal(t, 1, sign(0.5))
	assert.Equal(t, -1, sign(int64(-3)))
	assert.Equal(t, 0, sign(0.0))
	assert.Equal(t, 1, sign("+1.25%"))
	assert.Equal(t, -1, sign("-0.40%"))
	assert.Equal(t, 0, sign("0.00%"))
	assert.Equal(t, 0, sign(nil))
}
