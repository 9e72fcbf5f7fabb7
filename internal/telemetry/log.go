package telemetry

import (
	"context"

	"go.uber.org/zap"

	"github.com/ewilliams-labs/blendvoice/internal/core/ports"
)

// LogSink writes events as structured log lines.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink logging under the "telemetry" name.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.Named("telemetry")}
}

func (s *LogSink) Capture(_ context.Context, e ports.Event) {
	fields := []zap.Field{
		zap.String("kind", string(e.Kind)),
		zap.String("turn_id", e.TurnID),
		zap.String("user_id", e.UserID),
		zap.String("intent", e.Intent),
		zap.String("outcome", string(e.Outcome)),
	}
	if e.RawIntent != "" && e.RawIntent != e.Intent {
		fields = append(fields, zap.String("intent_name", e.RawIntent))
	}
	if e.Duration > 0 {
		fields = append(fields, zap.Duration("duration", e.Duration))
	}
	if e.Err != nil {
		fields = append(fields, zap.Error(e.Err))
	}

	switch {
	case e.Kind == ports.EventError && e.Outcome == ports.OutcomeError:
		s.logger.Error("turn error", fields...)
	case e.Kind == ports.EventError:
		s.logger.Warn("turn error", fields...)
	default:
		s.logger.Info("turn finished", fields...)
	}
}

var _ ports.Telemetry = (*LogSink)(nil)
