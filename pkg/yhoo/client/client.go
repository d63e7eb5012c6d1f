// Package client is the entry point: it validates endpoint parameters, fans
// requests out per ticker and flattens every response into one table.
package client

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/komsit37/yhoo/pkg/yhoo/dispatch"
	"github.com/komsit37/yhoo/pkg/yhoo/endpoint"
	"github.com/komsit37/yhoo/pkg/yhoo/errs"
	"github.com/komsit37/yhoo/pkg/yhoo/parser"
	"github.com/komsit37/yhoo/pkg/yhoo/request"
	"github.com/komsit37/yhoo/pkg/yhoo/transport"
	"github.com/komsit37/yhoo/pkg/yhoo/types"
)

// Tickers is the set of symbols to query, in output order.
type Tickers []string

// Ticker wraps a single symbol.
func Ticker(sym string) Tickers { return Tickers{sym} }

// List builds Tickers from several symbols.
func List(syms ...string) Tickers { return Tickers(syms) }

// Request describes one Get call.
type Request struct {
	Endpoint string
	Tickers  Tickers
	Params   endpoint.Params
	// MaxConcurrentCalls caps in-flight requests; 0 means 100.
	MaxConcurrentCalls int
	// IgnoreErrors drops tickers whose response carries an API error instead
	// of failing the call.
	IgnoreErrors bool
	// FailSoft records transport and parse failures per ticker in
	// Result.Failures instead of aborting the call.
	FailSoft bool
	Align    parser.Align
}

// Failure is a ticker excluded from the table in fail-soft mode.
type Failure struct {
	Ticker string
	Err    error
}

// Result is the outcome of Get.
type Result struct {
	Table    *types.Table
	Failures []Failure
}

// Client runs requests against the remote API.
type Client struct {
	baseURL   string
	getter    transport.Getter
	timeout   time.Duration
	userAgent string
	log       zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API host.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithLogger sets the logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = d } }

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option { return func(c *Client) { c.userAgent = ua } }

// WithGetter replaces the per-call HTTP session. The getter is then
// responsible for honoring any connection ceiling.
func WithGetter(g transport.Getter) Option { return func(c *Client) { c.getter = g } }

// New returns a Client.
func New(opts ...Option) *Client {
	c := &Client{baseURL: request.DefaultBaseURL, log: zerolog.Nop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get fetches req.Endpoint for every ticker with default options.
func Get(ctx context.Context, name string, tickers Tickers, params endpoint.Params) (*types.Table, error) {
	res, err := New().Get(ctx, Request{Endpoint: name, Tickers: tickers, Params: params})
	if err != nil {
		return nil, err
	}
	return res.Table, nil
}

// Get validates the request, fetches every ticker and returns the
// concatenated records in ticker order. Validation errors are returned
// before any network call.
func (c *Client) Get(ctx context.Context, req Request) (*Result, error) {
	spec, err := endpoint.Lookup(req.Endpoint)
	if err != nil {
		return nil, err
	}
	params, err := spec.Validate(req.Params)
	if err != nil {
		return nil, err
	}
	wire, err := spec.Format(params)
	if err != nil {
		return nil, err
	}

	res := &Result{Table: types.NewTable(spec.Columns...)}
	if len(req.Tickers) == 0 {
		return res, nil
	}

	limit := req.MaxConcurrentCalls
	if limit <= 0 {
		limit = dispatch.DefaultMaxConcurrentCalls
	}
	getter := c.getter
	if getter == nil {
		getter = transport.New(transport.Options{
			MaxConns:  limit,
			Timeout:   c.timeout,
			UserAgent: c.userAgent,
			Logger:    c.log,
		})
	}
	mode := dispatch.FailFast
	if req.FailSoft {
		mode = dispatch.FailSoft
	}
	d := &dispatch.Dispatcher{
		Getter:             getter,
		BaseURL:            c.baseURL,
		MaxConcurrentCalls: limit,
		Mode:               mode,
		Logger:             c.log,
	}
	outcomes, err := d.Run(ctx, spec.Path, req.Tickers, wire)
	if err != nil {
		return nil, err
	}

	popts := parser.Options{Align: req.Align}
	for _, o := range outcomes {
		if o.Err != nil {
			res.Failures = append(res.Failures, Failure{Ticker: o.Ticker, Err: o.Err})
			continue
		}
		recs, err := c.records(spec, o, req.IgnoreErrors, popts)
		if err != nil {
			if _, api := err.(*errs.APIError); api || !req.FailSoft {
				return nil, err
			}
			res.Failures = append(res.Failures, Failure{Ticker: o.Ticker, Err: err})
			continue
		}
		res.Table.Append(recs...)
	}
	return res, nil
}

type envelope struct {
	Result []json.RawMessage `json:"result"`
	Error  *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// records turns one ticker's payload into records. A reported API error
// yields no records when ignore is set.
func (c *Client) records(spec *endpoint.Spec, o dispatch.Outcome, ignore bool, popts parser.Options) ([]types.Record, error) {
	raw, ok := o.Payload[spec.ResponseField]
	if !ok {
		// Some failures come back under a generic "finance" envelope.
		raw, ok = o.Payload["finance"]
		if !ok {
			return nil, &errs.MalformedResponseError{Field: spec.ResponseField, Reason: "missing"}
		}
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &errs.MalformedResponseError{Field: spec.ResponseField, Err: err}
	}
	if env.Error != nil {
		if ignore {
			c.log.Warn().
				Str("ticker", o.Ticker).
				Str("code", env.Error.Code).
				Str("description", env.Error.Description).
				Msg("skipping ticker with api error")
			return nil, nil
		}
		return nil, &errs.APIError{Ticker: o.Ticker, Code: env.Error.Code, Description: env.Error.Description}
	}

	var out []types.Record
	for _, item := range env.Result {
		p, err := spec.Parser(item, popts)
		if err != nil {
			return nil, err
		}
		out = append(out, p.Records()...)
	}
	return out, nil
}
