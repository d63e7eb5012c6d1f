// Package dispatch fans one request per ticker out under a concurrency ceiling
// and gathers the results in input order.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/komsit37/yhoo/pkg/yhoo/request"
	"github.com/komsit37/yhoo/pkg/yhoo/transport"
)

// DefaultMaxConcurrentCalls is used when Dispatcher.MaxConcurrentCalls is not positive.
const DefaultMaxConcurrentCalls = 100

// Mode selects how task failures propagate.
type Mode int

const (
	// FailFast aborts the batch on the first failure and returns it.
	FailFast Mode = iota
	// FailSoft runs every task and records failures per ticker.
	FailSoft
)

func (m Mode) String() string {
	if m == FailSoft {
		return "fail-soft"
	}
	return "fail-fast"
}

// Outcome is the result of one ticker's request. Exactly one of Payload and
// Err is set.
type Outcome struct {
	Ticker  string
	Payload request.Payload
	Err     error
}

// TickerError attaches the ticker to a task failure.
type TickerError struct {
	Ticker string
	Err    error
}

func (e *TickerError) Error() string { return fmt.Sprintf("ticker %s: %v", e.Ticker, e.Err) }

func (e *TickerError) Unwrap() error { return e.Err }

// Dispatcher runs request tasks concurrently.
type Dispatcher struct {
	Getter             transport.Getter
	BaseURL            string
	MaxConcurrentCalls int
	Mode               Mode
	Logger             zerolog.Logger
}

// Run issues one GET per ticker with at most MaxConcurrentCalls in flight.
// Tasks beyond the ceiling wait for a free slot. Outcomes follow the order
// of tickers regardless of completion order.
func (d *Dispatcher) Run(ctx context.Context, path string, tickers []string, params map[string]any) ([]Outcome, error) {
	limit := d.MaxConcurrentCalls
	if limit <= 0 {
		limit = DefaultMaxConcurrentCalls
	}
	start := time.Now()
	d.Logger.Debug().
		Str("path", path).
		Int("tickers", len(tickers)).
		Int("limit", limit).
		Stringer("mode", d.Mode).
		Msg("dispatch start")

	out := make([]Outcome, len(tickers))
	var (
		g    *errgroup.Group
		gctx = ctx
	)
	if d.Mode == FailFast {
		g, gctx = errgroup.WithContext(ctx)
	} else {
		g = &errgroup.Group{}
	}
	g.SetLimit(limit)

	for i, ticker := range tickers {
		i, ticker := i, ticker
		task := request.Task{BaseURL: d.BaseURL, Path: path, Ticker: ticker, Params: params}
		g.Go(func() error {
			out[i].Ticker = ticker
			p, err := task.Run(gctx, d.Getter)
			if err != nil {
				terr := &TickerError{Ticker: ticker, Err: err}
				out[i].Err = terr
				if d.Mode == FailFast {
					return terr
				}
				return nil
			}
			out[i].Payload = p
			return nil
		})
	}
	err := g.Wait()

	failed := 0
	for _, o := range out {
		if o.Err != nil {
			failed++
		}
	}
	d.Logger.Debug().
		Str("path", path).
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("dispatch done")

	if err != nil {
		return nil, err
	}
	return out, nil
}
