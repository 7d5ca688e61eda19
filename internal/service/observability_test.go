package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := NewLogUseCaseObserver(logger)
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "login", Duration: 5 * time.Millisecond, Success: true})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "login", Err: errors.New("boom"), Fields: map[string]any{"attempt": 2}})

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "use_case=login")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "attempt=2")
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
