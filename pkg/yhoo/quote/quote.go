// Package quote fetches current price snapshots for a list of symbols.
package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	yfgo "github.com/komsit37/yf-go"

	"github.com/komsit37/yhoo/pkg/yhoo/types"
)

// Columns is the column order of snapshot tables.
var Columns = []string{"sym", "name", "price", "chg%"}

// Snapshot is the current quote of one symbol.
type Snapshot struct {
	Sym    string
	Name   string
	Price  string
	ChgFmt string
	ChgRaw float64
}

// Record flattens s into a table row.
func (s Snapshot) Record() types.Record {
	return types.Record{"sym": s.Sym, "name": s.Name, "price": s.Price, "chg%": s.ChgFmt}
}

// Service fetches a snapshot for a symbol.
type Service interface {
	Get(ctx context.Context, sym string) (Snapshot, error)
}

// YFService implements Service using yf-go.
type YFService struct {
	client  *yfgo.Client
	timeout time.Duration
}

func NewYFService(timeout time.Duration) *YFService {
	return &YFService{client: yfgo.NewClient(), timeout: timeout}
}

func (s *YFService) Get(ctx context.Context, sym string) (Snapshot, error) {
	if sym == "" {
		return Snapshot{}, nil
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	res, err := s.client.QuoteSummaryTyped(ctx, sym, []yfgo.QuoteSummaryModule{yfgo.ModulePrice})
	if err != nil {
		return Snapshot{}, err
	}
	if res.Price == nil {
		return Snapshot{}, fmt.Errorf("no price for %s", sym)
	}

	q := Snapshot{Sym: sym}
	p := res.Price.RegularMarketPrice
	if p.Fmt != "" {
		q.Price = p.Fmt
	} else if p.Raw != nil {
		q.Price = fmt.Sprintf("%.2f", *p.Raw)
	}
	cp := res.Price.RegularMarketChangePercent
	if cp.Fmt != "" {
		q.ChgFmt = cp.Fmt
	}
	if cp.Raw != nil {
		q.ChgRaw = *cp.Raw
		if q.ChgFmt == "" {
			q.ChgFmt = fmt.Sprintf("%.2f%%", q.ChgRaw)
		}
	}
	if res.Price.ShortName != "" {
		q.Name = res.Price.ShortName
	} else if res.Price.LongName != "" {
		q.Name = res.Price.LongName
	}
	return q, nil
}

// Table fetches every symbol with at most limit requests in flight. A symbol
// that fails keeps its row with only sym set; the failure is logged.
func Table(ctx context.Context, svc Service, syms []string, limit int, log zerolog.Logger) *types.Table {
	snaps := make([]Snapshot, len(syms))
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, sym := range syms {
		i, sym := i, sym
		g.Go(func() error {
			s, err := svc.Get(ctx, sym)
			if err != nil {
				log.Warn().Str("ticker", sym).Err(err).Msg("quote failed")
				s = Snapshot{}
			}
			s.Sym = sym
			snaps[i] = s
			return nil
		})
	}
	_ = g.Wait()

	t := types.NewTable(Columns...)
	for _, s := range snaps {
		t.Append(s.Record())
	}
	return t
}
