package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/dshills/informed-search/internal/config"
	"github.com/dshills/informed-search/internal/telemetry"
	"github.com/dshills/informed-search/puzzle"
	"github.com/dshills/informed-search/search"
	"github.com/dshills/informed-search/search/emit"
	"github.com/dshills/informed-search/search/store"
)

type rootFlags struct {
	configPath  string
	logLevel    string
	logFormat   string
	metricsAddr string
	trace       string
	store       string
	dsn         string
}

// app holds everything a subcommand needs once flags and config are merged.
type app struct {
	version string
	stdout  io.Writer
	stderr  io.Writer
	flags   rootFlags

	cfg      config.Config
	logger   zerolog.Logger
	tp       *sdktrace.TracerProvider
	registry *prometheus.Registry
	metrics  *search.PrometheusMetrics
	server   *telemetry.MetricsServer

	history    store.Store[puzzle.Board]
	closeStore func() error
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
	a.applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger, err = telemetry.NewLogger(cfg.Logging, a.stderr)
	if err != nil {
		return err
	}

	a.tp, err = telemetry.NewTracerProvider(cmd.Context(), cfg.Tracing, "puzzle", a.version, a.stderr)
	if err != nil {
		return err
	}

	a.registry = telemetry.NewRegistry()
	a.metrics = search.NewPrometheusMetrics(a.registry)
	if cfg.Metrics.Addr != "" {
		a.server, err = telemetry.StartMetricsServer(cfg.Metrics.Addr, cfg.Metrics.Path, a.registry, a.logger)
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
	}

	return a.openStore()
}

// applyFlags copies explicitly set root flags over cfg.
func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("log-level") {
		cfg.Logging.Level = a.flags.logLevel
	}
	if changed("log-format") {
		cfg.Logging.Format = a.flags.logFormat
	}
	if changed("metrics-addr") {
		cfg.Metrics.Addr = a.flags.metricsAddr
	}
	if changed("trace") {
		cfg.Tracing.Exporter = a.flags.trace
	}
	if changed("store") {
		cfg.Store.Driver = a.flags.store
	}
	if changed("dsn") {
		if cfg.Store.Driver == "sqlite" {
			cfg.Store.Path = a.flags.dsn
		} else {
			cfg.Store.DSN = a.flags.dsn
		}
	}
}

func (a *app) openStore() error {
	switch a.cfg.Store.Driver {
	case "sqlite":
		s, err := store.NewSQLiteStore[puzzle.Board](a.cfg.Store.Path)
		if err != nil {
			return err
		}
		a.history, a.closeStore = s, s.Close
	case "mysql":
		s, err := store.NewMySQLStore[puzzle.Board](a.cfg.Store.DSN)
		if err != nil {
			return err
		}
		a.history, a.closeStore = s, s.Close
	default:
		a.history = store.NewMemStore[puzzle.Board]()
	}

	a.logger.Debug().Str("driver", a.cfg.Store.Driver).Msg("run history store ready")
	return nil
}

// teardown releases whatever setup managed to create.
func (a *app) teardown(ctx context.Context) error {
	var errs []error
	if a.server != nil {
		errs = append(errs, a.server.Shutdown(ctx))
	}
	if a.tp != nil {
		errs = append(errs, a.tp.Shutdown(ctx))
	}
	if a.closeStore != nil {
		errs = append(errs, a.closeStore())
	}
	return errors.Join(errs...)
}

// searchOverrides are per-command flags that take precedence over the
// search and puzzle config sections.
type searchOverrides struct {
	algorithm string
	heuristic string
}

func (a *app) newEngine(o searchOverrides, extra ...search.Option) (*search.Engine[puzzle.Board], error) {
	algName := a.cfg.Search.Algorithm
	if o.algorithm != "" {
		algName = o.algorithm
	}
	alg, err := search.ParseAlgorithm(algName)
	if err != nil {
		return nil, err
	}

	hName := a.cfg.Puzzle.Heuristic
	if o.heuristic != "" {
		hName = o.heuristic
	}
	h, err := puzzle.ParseHeuristic(hName)
	if err != nil {
		return nil, err
	}

	opts := []search.Option{
		search.WithAlgorithm(alg),
		search.WithEmitter(a.emitter()),
		search.WithMetrics(a.metrics),
		search.WithMaxExpansions(a.cfg.Search.MaxExpansions),
		search.WithSuccessorLimit(a.cfg.Search.SuccessorLimit),
		search.WithTimeBudget(a.cfg.Search.TimeBudget),
		search.WithRecorder[puzzle.Board](a.history),
	}
	return search.New[puzzle.Board](puzzle.Policy{Heuristic: h}, append(opts, extra...)...)
}

func (a *app) emitter() emit.Emitter {
	var emitters []emit.Emitter
	if a.cfg.Tracing.Exporter != "none" {
		emitters = append(emitters, emit.NewOTelEmitter(a.tp.Tracer("github.com/dshills/informed-search")))
	}
	if a.cfg.Logging.Events {
		emitters = append(emitters, emit.NewZerologEmitter(a.logger.With().Str("component", "search").Logger()))
	}

	switch len(emitters) {
	case 0:
		return emit.NewNullEmitter()
	case 1:
		return emitters[0]
	default:
		return emit.NewMultiEmitter(emitters...)
	}
}

// startBoard parses board, or scrambles the goal when board is empty.
func (a *app) startBoard(board string, moves int, seed uint64) (puzzle.Board, error) {
	if board != "" {
		return puzzle.Parse(board)
	}

	if moves <= 0 {
		moves = a.cfg.Puzzle.ScrambleMoves
	}
	if seed == 0 {
		seed = a.cfg.Puzzle.Seed
	}
	if seed == 0 {
		seed = rand.Uint64()
	}

	a.logger.Debug().Uint64("seed", seed).Int("moves", moves).Msg("scrambling board")
	return puzzle.Scramble(rand.New(rand.NewPCG(seed, seed)), moves), nil
}
