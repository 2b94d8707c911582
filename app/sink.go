package app

import (
	"context"
	"encoding/json"

	"github.com/viant/cmdbridge/internal/logger"
	"github.com/viant/cmdbridge/invocation"
)

// LogSink logs successes at info and failures at error level.
type LogSink struct {
	logger logger.Logger
}

func (s *LogSink) Success(_ context.Context, command string, value json.RawMessage) {
	s.logger.Info("command succeeded", "command", command, "result", string(value))
}

func (s *LogSink) Failure(_ context.Context, command string, failure *invocation.Failure) {
	s.logger.Error("command failed", "command", command, "kind", failure.Kind.String(), "code", failure.Code, "error", failure.Message)
}

// NewLogSink creates a log sink.
func NewLogSink(l logger.Logger) *LogSink {
	if l == nil {
		l = logger.Nop()
	}
	return &LogSink{logger: l}
}

// Sinks fans outcomes out to every sink in order.
type Sinks []Sink

func (s Sinks) Success(ctx context.Context, command string, value json.RawMessage) {
	for _, sink := range s {
		sink.Success(ctx, command, value)
	}
}

func (s Sinks) Failure(ctx context.Context, command string, failure *invocation.Failure) {
	for _, sink := range s {
		sink.Failure(ctx, command, failure)
	}
}
