package jobs

import (
	"log/slog"
	"time"
)

type Option func(o *Orchestrator)

// WithLogger specifies the logger for the orchestrator
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// WithQueryInterval specifies how often the orchestrator checks for due jobs.
// Defaults to 1s
func WithQueryInterval(q time.Duration) Option {
	return func(o *Orchestrator) {
		o.queryInterval = q
	}
}

// WithRetryDelay specifies how soon a failed job is run again.
// Defaults to 10s
func WithRetryDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.retryDelay = d
	}
}
