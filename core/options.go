package core

import (
	"io"
	"log/slog"

	"github.com/0xRadioAc7iv/go-quickdata/pkg/backend"
)

type options struct {
	logger  *slog.Logger
	metrics MetricsCollector
	sync    backend.SyncMode
}

func defaultOptions() *options {
	return &options{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: NoopMetricsCollector{},
		sync:    backend.SyncAlways,
	}
}

type Option func(*options)

// WithLogger sets the logger the store reports to. By default nothing is
// logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithSyncMode selects how Open flushes the store file. It has no effect on
// New, which takes an already opened backend.
func WithSyncMode(mode backend.SyncMode) Option {
	return func(o *options) {
		o.sync = mode
	}
}
