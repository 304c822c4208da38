package engine

import (
	"io"
	"log"

	"git.lost.host/meutraa/yargcore/internal/eventlog"
)

// Option configures an engine at construction.
type Option func(*options)

type options struct {
	logger *log.Logger
	events *eventlog.Logger
}

func defaultOptions() options {
	return options{logger: log.New(io.Discard, "", 0)}
}

// WithLogger sets where contract violations are reported.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if nil != logger {
			o.logger = logger
		}
	}
}

// WithEventLogger records every engine event into events.
func WithEventLogger(events *eventlog.Logger) Option {
	return func(o *options) {
		o.events = events
	}
}
