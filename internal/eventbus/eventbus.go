// Package eventbus wraps watermill's NATS JetStream transport behind a small
// publish/subscribe contract so modules never touch the broker directly.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"

	"github.com/aegis-league/aegis-fantasy/internal/observability/attr"
)

// EventBus is the messaging contract modules depend on.
type EventBus interface {
	// Publish marshals payload as JSON and publishes it on topic. The
	// context's correlation ID, when present, travels in message metadata.
	Publish(ctx context.Context, topic string, payload any) error

	// Subscribe returns a channel of messages for topic.
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)

	// Close releases the underlying connections.
	Close() error
}

const metadataCorrelationID = "correlation_id"

// Config holds the connection settings for the JetStream bus.
type Config struct {
	URL string
	// NKeySeed optionally authenticates the connection with an nkey seed.
	NKeySeed string
}

// JetStreamBus is the production EventBus over NATS JetStream.
type JetStreamBus struct {
	conn       *nc.Conn
	publisher  *wmnats.Publisher
	subscriber *wmnats.Subscriber
	logger     *slog.Logger
}

var _ EventBus = (*JetStreamBus)(nil)

// NewJetStreamBus connects to NATS and builds the watermill publisher and
// subscriber over one shared connection.
func NewJetStreamBus(cfg Config, logger *slog.Logger) (*JetStreamBus, error) {
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
		nc.ErrorHandler(func(_ *nc.Conn, s *nc.Subscription, err error) {
			if s != nil {
				logger.Error("nats subscription error",
					slog.String("subject", s.Subject), slog.Any("error", err))
				return
			}
			logger.Error("nats connection error", slog.Any("error", err))
		}),
	}

	if cfg.NKeySeed != "" {
		opt, err := nkeyOption(cfg.NKeySeed)
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
	}

	conn, err := nc.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	wmLogger := watermill.NewSlogLogger(logger)

	publisher, err := wmnats.NewPublisherWithNatsConn(conn, wmnats.PublisherPublishConfig{
		Marshaler: &wmnats.NATSMarshaler{},
		JetStream: wmnats.JetStreamConfig{AutoProvision: true},
	}, wmLogger)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriberWithNatsConn(conn, wmnats.SubscriberSubscriptionConfig{
		Unmarshaler:    &wmnats.NATSMarshaler{},
		JetStream:      wmnats.JetStreamConfig{AutoProvision: true, DurablePrefix: "aegis"},
		AckWaitTimeout: 30 * time.Second,
	}, wmLogger)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
	}

	return &JetStreamBus{
		conn:       conn,
		publisher:  publisher,
		subscriber: subscriber,
		logger:     logger,
	}, nil
}

// nkeyOption builds the NATS auth option from a raw nkey seed.
func nkeyOption(seed string) (nc.Option, error) {
	kp, err := nkeys.FromSeed([]byte(seed))
	if err != nil {
		return nil, fmt.Errorf("invalid nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive nkey public key: %w", err)
	}
	return nc.Nkey(pub, func(nonce []byte) ([]byte, error) {
		return kp.Sign(nonce)
	}), nil
}

// Publish marshals payload as JSON and publishes it on topic.
func (b *JetStreamBus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if id := attr.CorrelationID(ctx); id != "" {
		msg.Metadata.Set(metadataCorrelationID, id)
	} else {
		msg.Metadata.Set(metadataCorrelationID, uuid.NewString())
	}

	if err := b.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	b.logger.InfoContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("message_id", msg.UUID),
	)
	return nil
}

// Subscribe returns a channel of messages for topic.
func (b *JetStreamBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	messages, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return messages, nil
}

// Close releases the publisher, subscriber, and connection.
func (b *JetStreamBus) Close() error {
	if err := b.publisher.Close(); err != nil {
		b.logger.Error("failed to close publisher", slog.Any("error", err))
	}
	if err := b.subscriber.Close(); err != nil {
		b.logger.Error("failed to close subscriber", slog.Any("error", err))
	}
	b.conn.Close()
	return nil
}
