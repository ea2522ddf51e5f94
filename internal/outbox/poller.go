// Package outbox publishes pending integration events to Kafka. Events are
// written to the store in the same request that creates an order, so the
// poller delivers them at least once even across restarts.
package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/giovanniklein/inn-b2b-varejista/internal/repository"
	"github.com/segmentio/kafka-go"
)

const defaultBatchSize = 100

// messageWriter is the slice of kafka.Writer the poller needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Poller struct {
	tick   time.Duration
	repo   repository.OutboxRepository
	writer messageWriter
	log    *slog.Logger
}

func NewPoller(repo repository.OutboxRepository, log *slog.Logger, brokers ...string) *Poller {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "varejista-orders",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Poller{
		tick:   time.Second,
		repo:   repo,
		writer: w,
		log:    log,
	}
}

func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller) Close() {
	if err := p.writer.Close(); err != nil {
		p.log.Warn("failed to close kafka writer", "error", err)
	}
}

func (p *Poller) processUnpublishedEvents(ctx context.Context) {
	events, err := p.repo.Unprocessed(ctx, defaultBatchSize)
	if err != nil {
		p.log.Error("failed to fetch outbox events", "error", err)
		return
	}

	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			p.log.Error("failed to publish outbox event", "event_id", event.ID, "error", err)
			continue
		}
		if err := p.repo.MarkProcessed(ctx, event.ID); err != nil {
			p.log.Error("failed to mark outbox event as processed", "event_id", event.ID, "error", err)
		}
	}
}

func (p *Poller) publish(ctx context.Context, event *repository.OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.AggregateID), // order id keeps per-order ordering
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}
