// Package pipeline wires ticker sourcing, fetching and rendering for the CLI.
package pipeline

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/komsit37/yhoo/pkg/yhoo/client"
	"github.com/komsit37/yhoo/pkg/yhoo/columns"
	"github.com/komsit37/yhoo/pkg/yhoo/filter"
	"github.com/komsit37/yhoo/pkg/yhoo/render"
	"github.com/komsit37/yhoo/pkg/yhoo/source"
	"github.com/komsit37/yhoo/pkg/yhoo/types"
)

// ErrNoTickers is returned when neither arguments nor a watchlist name a ticker.
var ErrNoTickers = errors.New("no tickers given")

// FetchFunc produces the table for a list of tickers.
type FetchFunc func(ctx context.Context, tickers []string) (*client.Result, error)

// Endpoint fetches through c with req as template; req.Tickers is replaced.
func Endpoint(c *client.Client, req client.Request) FetchFunc {
	return func(ctx context.Context, tickers []string) (*client.Result, error) {
		req.Tickers = client.List(tickers...)
		return c.Get(ctx, req)
	}
}

type Runner struct {
	Source   source.Source
	Renderer render.Renderer
	Writer   io.Writer
	Logger   zerolog.Logger
}

type ExecuteOptions struct {
	Tickers []string
	// Watchlist is a YAML file or directory; Filter selects its lists by name.
	Watchlist string
	Filter    filter.Filter
	Columns   []string
	Render    render.Options
}

// Tickers merges explicit tickers with those of the selected watchlists,
// keeping the first occurrence of duplicates.
func (r *Runner) Tickers(ctx context.Context, opts ExecuteOptions) ([]string, error) {
	lists := []types.Watchlist{{Name: "args"}}
	for _, t := range opts.Tickers {
		lists[0].Items = append(lists[0].Items, types.Item{Sym: t})
	}
	if opts.Watchlist != "" {
		if r.Source == nil {
			r.Source = source.YAMLSource{}
		}
		loaded, err := r.Source.Load(ctx, opts.Watchlist)
		if err != nil {
			return nil, err
		}
		var filt filter.Filter = filter.Always(true)
		if opts.Filter != nil {
			filt = opts.Filter
		}
		for _, l := range loaded {
			if filt.Match(l.Name) {
				lists = append(lists, l)
			}
		}
	}
	tickers := source.Tickers(lists)
	if len(tickers) == 0 {
		return nil, ErrNoTickers
	}
	return tickers, nil
}

// Execute resolves tickers, fetches them and renders the result. Per-ticker
// failures are logged and returned with the result.
func (r *Runner) Execute(ctx context.Context, fetch FetchFunc, opts ExecuteOptions) (*client.Result, error) {
	tickers, err := r.Tickers(ctx, opts)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug().Strs("tickers", tickers).Msg("resolved tickers")

	res, err := fetch(ctx, tickers)
	if err != nil {
		return nil, err
	}
	for _, f := range res.Failures {
		r.Logger.Warn().Str("ticker", f.Ticker).Err(f.Err).Msg("ticker failed")
	}

	cols, err := columns.Compute(opts.Columns, res.Table)
	if err != nil {
		return nil, err
	}
	if err := r.Renderer.Render(r.Writer, res.Table, cols, opts.Render); err != nil {
		return nil, err
	}
	return res, nil
}
