package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/domain"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/logger"
)

// Kafka topic constants for session lifecycle events.
var (
	TopicSessionStarted = pkgkafka.Topic("session", "started")
	TopicSessionEnded   = pkgkafka.Topic("session", "ended")
)

// AggregateTypeSession is the aggregate type of session events.
const AggregateTypeSession = "session"

// SourceStorefront identifies events originating from this service.
const SourceStorefront = "storefront"

// SessionStartedData is the payload for a session.started event.
type SessionStartedData struct {
	SessionID    string `json:"session_id"`
	Role         string `json:"role"`
	PreviousRole string `json:"previous_role,omitempty"`
}

// SessionEndedData is the payload for a session.ended event.
type SessionEndedData struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role,omitempty"`
}

// Producer publishes session lifecycle events.
type Producer struct {
	publisher pkgkafka.Publisher
	logger    *slog.Logger
}

// NewProducer creates a new event producer on top of any Publisher.
func NewProducer(publisher pkgkafka.Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishSessionStarted publishes a session.started event.
func (p *Producer) PublishSessionStarted(ctx context.Context, s *domain.Session, previous domain.Role) error {
	data := SessionStartedData{
		SessionID:    s.ID,
		Role:         s.Role.String(),
		PreviousRole: previous.String(),
	}
	return p.publish(ctx, TopicSessionStarted, s.ID, data)
}

// PublishSessionEnded publishes a session.ended event.
func (p *Producer) PublishSessionEnded(ctx context.Context, s *domain.Session) error {
	data := SessionEndedData{
		SessionID: s.ID,
		Role:      s.Role.String(),
	}
	return p.publish(ctx, TopicSessionEnded, s.ID, data)
}

func (p *Producer) publish(ctx context.Context, topic, sessionID string, data any) error {
	evt, err := pkgkafka.NewEvent(topic, sessionID, AggregateTypeSession, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	if err := p.publisher.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published session event",
		slog.String("topic", topic),
		slog.String("session_id", sessionID),
	)
	return nil
}
