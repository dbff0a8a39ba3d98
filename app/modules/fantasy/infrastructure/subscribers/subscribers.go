package fantasysubscribers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	fantasyqueue "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/queue"
	"github.com/aegis-league/aegis-fantasy/app/shared/events"
	"github.com/aegis-league/aegis-fantasy/internal/eventbus"
	"github.com/aegis-league/aegis-fantasy/internal/observability/attr"
)

// Subscribers wires fantasy event subscriptions.
type Subscribers interface {
	SubscribeToFantasyEvents(ctx context.Context) error
}

// FantasySubscribers reacts to series ingests by queueing a roster score
// sweep. The sweep itself runs on the river queue, not in the handler.
type FantasySubscribers struct {
	eventBus eventbus.EventBus
	queue    fantasyqueue.QueueService
	logger   *slog.Logger
}

func NewSubscribers(eventBus eventbus.EventBus, queue fantasyqueue.QueueService, logger *slog.Logger) Subscribers {
	return &FantasySubscribers{
		eventBus: eventBus,
		queue:    queue,
		logger:   logger,
	}
}

// SubscribeToFantasyEvents subscribes to series ingest events and consumes
// them until ctx is cancelled.
func (s *FantasySubscribers) SubscribeToFantasyEvents(ctx context.Context) error {
	msgs, err := s.eventBus.Subscribe(ctx, events.SeriesIngested)
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", events.SeriesIngested, err)
	}

	go s.consumeSeriesIngested(ctx, msgs)
	return nil
}

func (s *FantasySubscribers) consumeSeriesIngested(ctx context.Context, msgs <-chan *message.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			s.handleSeriesIngested(ctx, msg)
		}
	}
}

func (s *FantasySubscribers) handleSeriesIngested(ctx context.Context, msg *message.Message) {
	msgCtx := attr.WithCorrelationID(ctx, msg.Metadata.Get("correlation_id"))

	var payload events.SeriesIngestedPayloadV1
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		// Malformed payloads never become valid; ack so they don't redeliver.
		s.logger.ErrorContext(msgCtx, "dropping malformed series ingested event",
			attr.ExtractCorrelationID(msgCtx),
			attr.String("message_id", msg.UUID),
			attr.Error(err),
		)
		msg.Ack()
		return
	}

	if err := s.queue.EnqueueScoreSync(msgCtx, "series_ingested"); err != nil {
		s.logger.ErrorContext(msgCtx, "failed to queue roster score sync",
			attr.ExtractCorrelationID(msgCtx),
			attr.MatchID("match_id", payload.MatchID),
			attr.Error(err),
		)
		msg.Nack()
		return
	}

	s.logger.InfoContext(msgCtx, "series ingested, roster score sync queued",
		attr.ExtractCorrelationID(msgCtx),
		attr.MatchID("match_id", payload.MatchID),
	)
	msg.Ack()
}
