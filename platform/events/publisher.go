package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PruneEvent announces that the retention job deleted log records.
type PruneEvent struct {
	EventID  string    `json:"event_id"`
	Category string    `json:"category,omitempty"`
	Cutoff   time.Time `json:"cutoff"`
	Deleted  int64     `json:"deleted"`
	PrunedAt time.Time `json:"pruned_at"`
}

// Publisher writes prune events to a Kafka topic.
type Publisher struct {
	writer    *kafka.Writer
	logger    *zap.Logger
	closeOnce sync.Once
	closeErr  error
}

// NewPublisher builds a writer that waits for all in-sync replicas.
func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            3,
		WriteTimeout:           10 * time.Second,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}

	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// Publish sends event keyed by category so events for one category stay ordered.
func (p *Publisher) Publish(ctx context.Context, event PruneEvent) error {
	msg, err := encode(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish prune event",
			zap.String("event_id", event.EventID),
			zap.String("category", event.Category),
			zap.Error(err))
		return fmt.Errorf("publish prune event: %w", err)
	}

	p.logger.Info("prune event published",
		zap.String("event_id", event.EventID),
		zap.String("category", event.Category),
		zap.Int64("deleted", event.Deleted))
	return nil
}

// Close flushes pending writes. Safe to call more than once.
func (p *Publisher) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = p.writer.Close()
	})
	return p.closeErr
}

func encode(event PruneEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal prune event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(event.Category),
		Value: value,
		Time:  event.PrunedAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte("logs.pruned")},
		},
	}, nil
}
