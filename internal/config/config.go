// Package config loads the puzzle CLI configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dshills/informed-search/puzzle"
	"github.com/dshills/informed-search/search"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete CLI configuration. Flags override file values.
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Puzzle  PuzzleConfig  `yaml:"puzzle"`
	Logging LoggingConfig `yaml:"logging"`
	Tracing TracingConfig `yaml:"tracing"`
	Metrics MetricsConfig `yaml:"metrics"`
	Store   StoreConfig   `yaml:"store"`
}

// SearchConfig configures the engine.
type SearchConfig struct {
	// Algorithm is any name search.ParseAlgorithm accepts: astar, dijkstra,
	// best-first and their aliases.
	Algorithm string `yaml:"algorithm" validate:"algorithm"`

	// MaxExpansions caps expanded nodes per search; 0 is unlimited.
	MaxExpansions int `yaml:"max_expansions" validate:"gte=0"`

	// SuccessorLimit bounds each expansion's successor buffer; 0 is unbounded.
	SuccessorLimit int `yaml:"successor_limit" validate:"gte=0"`

	// TimeBudget bounds a whole search, e.g. "2s"; 0 is unlimited.
	TimeBudget time.Duration `yaml:"time_budget" validate:"gte=0"`
}

// PuzzleConfig configures board generation.
type PuzzleConfig struct {
	Heuristic     string `yaml:"heuristic" validate:"heuristic"`
	ScrambleMoves int    `yaml:"scramble_moves" validate:"gte=1,lte=100000"`

	// Seed makes scrambles reproducible; 0 picks a random seed.
	Seed uint64 `yaml:"seed"`

	// ProgressEvery is how many steps pass between progress lines in step mode.
	ProgressEvery int `yaml:"progress_every" validate:"gte=1"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json"`

	// Events logs engine events through the process logger at debug level.
	Events bool `yaml:"events"`
}

// TracingConfig selects the span exporter.
type TracingConfig struct {
	Exporter     string  `yaml:"exporter" validate:"oneof=none stdout otlp"`
	Endpoint     string  `yaml:"endpoint" validate:"required_if=Exporter otlp"`
	Insecure     bool    `yaml:"insecure"`
	SamplingRate float64 `yaml:"sampling_rate" validate:"gte=0,lte=1"`
}

// MetricsConfig configures the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
	Path string `yaml:"path" validate:"startswith=/"`
}

// StoreConfig selects where finished runs are recorded.
type StoreConfig struct {
	Driver string `yaml:"driver" validate:"oneof=memory sqlite mysql"`

	// Path is the SQLite database file.
	Path string `yaml:"path" validate:"required_if=Driver sqlite"`

	// DSN is the MySQL data source name.
	DSN string `yaml:"dsn" validate:"required_if=Driver mysql"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Search: SearchConfig{
			Algorithm: "astar",
		},
		Puzzle: PuzzleConfig{
			Heuristic:     "manhattan",
			ScrambleMoves: 14,
			ProgressEvery: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Tracing: TracingConfig{
			Exporter:     "none",
			Endpoint:     "localhost:4317",
			SamplingRate: 1,
		},
		Metrics: MetricsConfig{
			Path: "/metrics",
		},
		Store: StoreConfig{
			Driver: "memory",
			Path:   "search-history.db",
		},
	}
}

// Load reads path over the defaults and validates the result. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = newValidator()

// newValidator registers the name checks that defer to the parsers the CLI
// uses, so config files accept exactly what flags accept.
func newValidator() *validator.Validate {
	v := validator.New()
	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	must("algorithm", func(fl validator.FieldLevel) bool {
		_, err := search.ParseAlgorithm(fl.Field().String())
		return err == nil
	})
	must("heuristic", func(fl validator.FieldLevel) bool {
		_, err := puzzle.ParseHeuristic(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fmt.Sprint(fe.Value()))
	case "algorithm", "heuristic":
		return fmt.Sprintf("%s must name a known %s, got %q", field, fe.Tag(), fmt.Sprint(fe.Value()))
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s must be %s %s, got %v", field, fe.Tag(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// ApplyEnv overrides fields from environment variables found by lookup:
//
//	LOG_LEVEL            logging.level
//	PUZZLE_ALGORITHM     search.algorithm
//	PUZZLE_STORE_DSN     store.dsn
//	PUZZLE_SEED          puzzle.seed
//	OTEL_EXPORTER_OTLP_ENDPOINT  tracing.endpoint
//
// The result is not validated; call Validate afterwards.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v, ok := lookup("PUZZLE_ALGORITHM"); ok && v != "" {
		c.Search.Algorithm = v
	}
	if v, ok := lookup("PUZZLE_STORE_DSN"); ok && v != "" {
		c.Store.DSN = v
	}
	if v, ok := lookup("OTEL_EXPORTER_OTLP_ENDPOINT"); ok && v != "" {
		c.Tracing.Endpoint = v
	}
	if v, ok := lookup("PUZZLE_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("PUZZLE_SEED: %w", err)
		}
		c.Puzzle.Seed = seed
	}
	return nil
}
