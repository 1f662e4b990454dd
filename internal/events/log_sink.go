package events

import (
	"context"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
)

// LogSink writes every event as a structured log record.
type LogSink struct {
	logger *slog.Logger
	level  slog.Level
}

func NewLogSink(logger *slog.Logger, level slog.Level) *LogSink {
	return &LogSink{
		logger: logger,
		level:  level,
	}
}

func (that *LogSink) Deliver(ctx context.Context, event entity.Event) error {
	that.logger.Log(ctx, that.level, "match event",
		"type", event.Type,
		"matchID", event.MatchID,
		"payload", event.Payload,
	)

	return nil
}
