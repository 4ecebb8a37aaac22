package telemetry

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/informed-search/internal/config"
)

// NewLogger creates a logger writing to w in the configured format.
func NewLogger(cfg config.LoggingConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
