package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher publishes an event to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *Event) error
}

// Discard is a Publisher that drops every event. It is used when events are disabled.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(context.Context, string, *Event) error { return nil }

// ProducerConfig holds Kafka producer configuration.
type ProducerConfig struct {
	Brokers  []string
	ClientID string

	// BatchTimeout bounds how long a message waits for companions before the
	// writer flushes. Session events are sparse, so this stays small.
	BatchTimeout time.Duration
	WriteTimeout time.Duration
	DialTimeout  time.Duration
	RequiredAcks kafka.RequiredAcks
}

// DefaultProducerConfig returns the producer settings used for session events.
func DefaultProducerConfig(brokers []string) ProducerConfig {
	return ProducerConfig{
		Brokers:      brokers,
		ClientID:     TopicPrefix,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
		DialTimeout:  3 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
}

// Producer writes events to Kafka with a kafka-go writer.
type Producer struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewProducer creates a producer. It does not dial until the first publish.
func NewProducer(cfg ProducerConfig, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.Default()
	}

	// Hash keeps every event of one session on one partition.
	w := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Balancer: &kafka.Hash{},
		Transport: &kafka.Transport{
			ClientID:    cfg.ClientID,
			DialTimeout: cfg.DialTimeout,
		},
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
		RequiredAcks:           cfg.RequiredAcks,
		AllowAutoTopicCreation: true,
	}

	return &Producer{writer: w, logger: logger}
}

// Publish writes one event to topic.
func (p *Producer) Publish(ctx context.Context, topic string, event *Event) error {
	msg, err := event.Message(topic)
	if err != nil {
		return err
	}

	start := time.Now()
	err = p.writer.WriteMessages(ctx, msg)
	ProducerPublishDuration.WithLabelValues(topic).Observe(time.Since(start).Seconds())
	if err != nil {
		ProducerPublishErrors.WithLabelValues(topic).Inc()
		p.logger.WarnContext(ctx, "kafka write failed",
			slog.String("topic", topic),
			slog.String("event_id", event.EventID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("write %s to kafka: %w", topic, err)
	}
	ProducerMessagesPublished.WithLabelValues(topic).Inc()

	p.logger.DebugContext(ctx, "event written",
		slog.String("topic", topic),
		slog.String("event_id", event.EventID),
		slog.String("session_id", event.AggregateID),
	)
	return nil
}

// Stats returns the writer's counters since the previous call.
func (p *Producer) Stats() kafka.WriterStats {
	return p.writer.Stats()
}

// Close flushes pending messages and closes the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// PingBrokers returns nil as soon as one broker answers a metadata request.
// Otherwise it returns every broker's error joined.
func PingBrokers(ctx context.Context, brokers []string) error {
	if len(brokers) == 0 {
		return errors.New("kafka: no brokers configured")
	}

	dialer := &kafka.Dialer{ClientID: TopicPrefix, Timeout: 3 * time.Second}
	var errs []error
	for _, addr := range brokers {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", addr, err))
			continue
		}
		_, err = conn.Brokers()
		_ = conn.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", addr, err))
			continue
		}
		return nil
	}
	return fmt.Errorf("kafka: no broker reachable: %w", errors.Join(errs...))
}
