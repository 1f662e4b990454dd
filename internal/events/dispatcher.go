// Package events relays match lifecycle notifications to observers without ever
// blocking the turn loop that emits them.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
)

const DefaultQueueSize = 256

// Sink receives events from the dispatcher's worker, one at a time and in emission order.
type Sink interface {
	Deliver(ctx context.Context, event entity.Event) error
}

type Dispatcher struct {
	logger *slog.Logger
	sinks  []Sink
	queue  chan entity.Event
	now    func() time.Time
}

func NewDispatcher(logger *slog.Logger, queueSize int, sinks ...Sink) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	return &Dispatcher{
		logger: logger,
		sinks:  sinks,
		queue:  make(chan entity.Event, queueSize),
		now:    time.Now,
	}
}

// Run - delivers queued events until ctx is done, then flushes what is already queued.
func (that *Dispatcher) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")
	log.Info("event dispatcher started", "sinks", len(that.sinks))

	for {
		select {
		case <-ctx.Done():
			flushed := that.flush(context.WithoutCancel(ctx))
			log.Info("event dispatcher stopped", "flushed", flushed)
			return
		case event := <-that.queue:
			that.deliverAll(ctx, event)
		}
	}
}

func (that *Dispatcher) flush(ctx context.Context) int {
	for flushed := 0; ; flushed++ {
		select {
		case event := <-that.queue:
			that.deliverAll(ctx, event)
		default:
			return flushed
		}
	}
}

func (that *Dispatcher) deliverAll(ctx context.Context, event entity.Event) {
	for _, sink := range that.sinks {
		that.deliver(ctx, sink, event)
	}
}

func (that *Dispatcher) deliver(ctx context.Context, sink Sink, event entity.Event) {
	defer func() {
		if r := recover(); r != nil {
			that.logger.Error("event sink panicked", "type", event.Type, "matchID", event.MatchID, "panic", r)
		}
	}()

	// delivery failures are not the match's concern
	if err := sink.Deliver(ctx, event); err != nil {
		that.logger.Debug("event delivery failed", "type", event.Type, "matchID", event.MatchID, "error", err)
	}
}

func (that *Dispatcher) emit(eventType, matchID string, payload any) {
	event := entity.Event{
		Type:      eventType,
		MatchID:   matchID,
		Timestamp: entity.Timestamp(that.now()),
		Payload:   payload,
	}

	select {
	case that.queue <- event:
	default:
		that.logger.Warn("event queue full, dropping event", "type", eventType, "matchID", matchID)
	}
}

func (that *Dispatcher) BroadcastMatchStart(payload entity.MatchStartPayload) {
	that.emit(entity.EventMatchStart, payload.MatchID, payload)
}

func (that *Dispatcher) BroadcastMatchMove(payload entity.MatchMovePayload) {
	that.emit(entity.EventMatchMove, payload.MatchID, payload)
}

func (that *Dispatcher) BroadcastMatchWin(payload entity.MatchWinPayload) {
	that.emit(entity.EventMatchWin, payload.MatchID, payload)
}

func (that *Dispatcher) BroadcastMatchDraw(payload entity.MatchDrawPayload) {
	that.emit(entity.EventMatchDraw, payload.MatchID, payload)
}

func (that *Dispatcher) BroadcastMatchError(payload entity.MatchErrorPayload) {
	that.emit(entity.EventMatchError, payload.MatchID, payload)
}

func (that *Dispatcher) BroadcastMatchAborted(payload entity.MatchAbortedPayload) {
	that.emit(entity.EventMatchAbort, payload.MatchID, payload)
}

func (that *Dispatcher) BroadcastMoveRemoval(payload entity.MoveRemovedPayload) {
	that.emit(entity.EventMoveRemoved, payload.MatchID, payload)
}

// BroadcastHumanTurn - the envelope carries the game id so observers of one match see its human turns.
func (that *Dispatcher) BroadcastHumanTurn(payload entity.HumanTurnPayload) {
	that.emit(entity.EventHumanTurn, payload.GameID, payload)
}
