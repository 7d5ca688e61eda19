package booking

import (
	"io"
	"log/slog"
)

// CallEvent records metadata about a single API call, including retries.
type CallEvent struct {
	Operation string
	Status    int
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives events about API calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes API call events through a slog.Logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"op", event.Operation,
		"status", event.Status,
		"latency_ms", event.LatencyMs,
		"attempts", event.Attempts,
	}
	if !event.Success {
		o.logger.Warn("api_call", append(attrs, "error_code", event.ErrorCode)...)
		return
	}
	o.logger.Debug("api_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
