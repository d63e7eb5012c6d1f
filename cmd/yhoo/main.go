package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/komsit37/yhoo/pkg/yhoo/client"
	"github.com/komsit37/yhoo/pkg/yhoo/config"
	"github.com/komsit37/yhoo/pkg/yhoo/endpoint"
	"github.com/komsit37/yhoo/pkg/yhoo/filter"
	"github.com/komsit37/yhoo/pkg/yhoo/parser"
	"github.com/komsit37/yhoo/pkg/yhoo/pipeline"
	"github.com/komsit37/yhoo/pkg/yhoo/quote"
	"github.com/komsit37/yhoo/pkg/yhoo/render"
	"github.com/komsit37/yhoo/pkg/yhoo/source"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type app struct {
	v        *viper.Viper
	settings *config.Settings
	log      zerolog.Logger

	cfgFile      string
	verbose      bool
	output       string
	columns      []string
	watchlist    string
	list         string
	ignoreErrors bool
	failSoft     bool
	align        string
	noColor      bool
	pretty       bool
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:          "yhoo",
		Short:        "Query Yahoo Finance chart, fundamentals and options data for many tickers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default $HOME/.config/yhoo/config.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	pf.StringVarP(&a.output, "output", "o", "table", "output format: table, json, csv, syms")
	pf.StringSliceVarP(&a.columns, "columns", "c", nil, "columns or column sets (ohlcv, meta, contract, fundamentals, quote) to show")
	pf.StringVarP(&a.watchlist, "watchlist", "w", "", "YAML watchlist file or directory to read tickers from")
	pf.StringVarP(&a.list, "list", "l", "", "watchlist name filter: names,a,b | glob* | /regex/ | substring")
	pf.Int("max-concurrent", 0, "maximum concurrent requests (default from config, 100)")
	pf.BoolVar(&a.ignoreErrors, "ignore-errors", false, "skip tickers the API reports errors for")
	pf.BoolVar(&a.failSoft, "fail-soft", false, "report per-ticker transport and parse failures instead of aborting")
	pf.StringVar(&a.align, "align", "longest", "chart array alignment: longest or shortest")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored table output")
	pf.BoolVar(&a.pretty, "pretty", false, "indent JSON output")
	_ = a.v.BindPFlag("max_concurrent_calls", pf.Lookup("max-concurrent"))

	root.AddCommand(
		a.chartCmd(),
		a.fundamentalsCmd(),
		a.optionsCmd(),
		a.quoteCmd(),
		a.typesCmd(),
	)
	return root
}

func (a *app) init(_ *cobra.Command) error {
	s, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.settings = s

	lvl, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if a.verbose {
		lvl = zerolog.DebugLevel
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
	return nil
}

func (a *app) chartCmd() *cobra.Command {
	var start, end, granularity, rng string
	cmd := &cobra.Command{
		Use:   "chart TICKER...",
		Short: "Price history: one row per time bucket",
		Example: "  yhoo chart AAPL MSFT --start 2024-01-01 --end 2024-02-01 -i 1d\n" +
			"  yhoo chart -w lists/ -l tech --start 2024-01-01 --end 2024-01-10 -c @ohlcv",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := endpoint.Params{}
			set(cmd, params, "start", start)
			set(cmd, params, "end", end)
			set(cmd, params, "granularity", granularity)
			set(cmd, params, "range", rng)
			return a.runEndpoint(cmd, endpoint.Chart, args, params)
		},
	}
	f := cmd.Flags()
	f.StringVar(&start, "start", "", "first date, YYYY-MM-DD")
	f.StringVar(&end, "end", "", "last date, YYYY-MM-DD")
	f.StringVarP(&granularity, "granularity", "i", "", "bucket size: "+joinEnum(parser.Intervals))
	f.StringVar(&rng, "range", "", "range: "+joinEnum(parser.Ranges))
	return cmd
}

func (a *app) fundamentalsCmd() *cobra.Command {
	var start, end string
	var typ []string
	cmd := &cobra.Command{
		Use:   "fundamentals TICKER...",
		Short: "Fundamentals time series: one row per reported value",
		Example: "  yhoo fundamentals AAPL --type annualTotalRevenue,quarterlyNetIncome\n" +
			"  yhoo types revenue",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := endpoint.Params{}
			set(cmd, params, "start", start)
			set(cmd, params, "end", end)
			if cmd.Flags().Changed("type") {
				params["type"] = typ
			}
			return a.runEndpoint(cmd, endpoint.Fundamentals, args, params)
		},
	}
	f := cmd.Flags()
	f.StringVar(&start, "start", "", "first date, YYYY-MM-DD")
	f.StringVar(&end, "end", "", "last date, YYYY-MM-DD")
	f.StringSliceVarP(&typ, "type", "t", nil, "prefixed metric types (default: every annual metric)")
	return cmd
}

func (a *app) optionsCmd() *cobra.Command {
	var start, end string
	var strikeMin, strikeMax float64
	cmd := &cobra.Command{
		Use:     "options TICKER...",
		Short:   "Option chain: one row per call or put contract",
		Example: "  yhoo options AAPL --strike-min 150 --strike-max 200 -c @contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := endpoint.Params{}
			set(cmd, params, "start", start)
			set(cmd, params, "end", end)
			if cmd.Flags().Changed("strike-min") {
				params["strikeMin"] = strikeMin
			}
			if cmd.Flags().Changed("strike-max") {
				params["strikeMax"] = strikeMax
			}
			return a.runEndpoint(cmd, endpoint.Options, args, params)
		},
	}
	f := cmd.Flags()
	f.StringVar(&start, "start", "", "expiration date, YYYY-MM-DD")
	f.StringVar(&end, "end", "", "last expiration date, YYYY-MM-DD")
	f.Float64Var(&strikeMin, "strike-min", 0, "lowest strike")
	f.Float64Var(&strikeMax, "strike-max", 0, "highest strike")
	return cmd
}

func (a *app) quoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote TICKER...",
		Short: "Current price and change for each ticker",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := quote.NewYFService(a.settings.Timeout)
			fetch := func(ctx context.Context, tickers []string) (*client.Result, error) {
				t := quote.Table(ctx, svc, tickers, a.settings.MaxConcurrentCalls, a.log)
				return &client.Result{Table: t}, nil
			}
			return a.execute(cmd, args, fetch)
		},
	}
}

func (a *app) typesCmd() *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "types [FILTER]",
		Short: "List fundamentals metric types",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := ""
			if len(args) == 1 {
				expr = args[0]
			}
			f, err := filter.Parse(expr)
			if err != nil {
				return err
			}
			names := filter.Select(f, endpoint.FundamentalsTypes())
			if prefix != "" {
				names = endpoint.Prefixed(prefix, names)
			}
			w := cmd.OutOrStdout()
			for _, n := range names {
				fmt.Fprintln(w, n)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "prepend a period prefix: "+strings.Join(endpoint.FundamentalsPrefixes, ", "))
	return cmd
}

func (a *app) runEndpoint(cmd *cobra.Command, name string, args []string, params endpoint.Params) error {
	align, err := parser.ParseAlign(a.align)
	if err != nil {
		return err
	}
	c := client.New(
		client.WithBaseURL(a.settings.BaseURL),
		client.WithLogger(a.log),
		client.WithTimeout(a.settings.Timeout),
		client.WithUserAgent(a.settings.UserAgent),
	)
	req := client.Request{
		Endpoint:           name,
		Params:             params,
		MaxConcurrentCalls: a.settings.MaxConcurrentCalls,
		IgnoreErrors:       a.ignoreErrors,
		FailSoft:           a.failSoft,
		Align:              align,
	}
	return a.execute(cmd, args, pipeline.Endpoint(c, req))
}

func (a *app) execute(cmd *cobra.Command, args []string, fetch pipeline.FetchFunc) error {
	r, err := render.New(a.output)
	if err != nil {
		return err
	}
	var filt filter.Filter
	if a.list != "" {
		if filt, err = filter.Parse(a.list); err != nil {
			return err
		}
	}
	width, tty := termWidth(os.Stdout)
	runner := &pipeline.Runner{
		Source:   source.YAMLSource{},
		Renderer: r,
		Writer:   cmd.OutOrStdout(),
		Logger:   a.log,
	}
	res, err := runner.Execute(cmd.Context(), fetch, pipeline.ExecuteOptions{
		Tickers:   args,
		Watchlist: a.watchlist,
		Filter:    filt,
		Columns:   a.columns,
		Render: render.Options{
			Color:       !a.noColor && tty && os.Getenv("NO_COLOR") == "",
			PrettyJSON:  a.pretty,
			MaxColWidth: a.settings.MaxColWidth,
			Width:       width,
		},
	})
	if err != nil {
		return err
	}
	if n := len(res.Failures); n > 0 {
		return fmt.Errorf("%d ticker(s) failed", n)
	}
	return nil
}

// set copies a string flag into params when it was given on the command line.
func set(cmd *cobra.Command, params endpoint.Params, name, val string) {
	if cmd.Flags().Changed(name) {
		params[name] = val
	}
}

func joinEnum[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
