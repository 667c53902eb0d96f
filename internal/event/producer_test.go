package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/logger"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, evt *pkgkafka.Event) error {
	args := m.Called(ctx, topic, evt)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTopics(t *testing.T) {
	assert.Equal(t, "storefront.session.started", TopicSessionStarted)
	assert.Equal(t, "storefront.session.ended", TopicSessionEnded)
}

func TestPublishSessionStarted(t *testing.T) {
	pub := new(mockPublisher)
	p := NewProducer(pub, testLogger())

	ctx := logger.WithCorrelationID(context.Background(), "corr-1")
	s := &domain.Session{ID: "sess-1", Role: domain.RoleVendor}

	pub.On("Publish", ctx, TopicSessionStarted, mock.MatchedBy(func(e *pkgkafka.Event) bool {
		var data SessionStartedData
		if err := e.UnmarshalData(&data); err != nil {
			return false
		}
		return e.AggregateID == "sess-1" &&
			e.AggregateType == AggregateTypeSession &&
			e.Source == SourceStorefront &&
			e.CorrelationID == "corr-1" &&
			data.Role == "Vendor" &&
			data.PreviousRole == "Customer"
	})).Return(nil)

	require.NoError(t, p.PublishSessionStarted(ctx, s, domain.RoleCustomer))
	pub.AssertExpectations(t)
}

func TestPublishSessionStarted_NoPreviousRoleOmitted(t *testing.T) {
	pub := new(mockPublisher)
	p := NewProducer(pub, testLogger())

	pub.On("Publish", mock.Anything, TopicSessionStarted, mock.MatchedBy(func(e *pkgkafka.Event) bool {
		return len(e.Data) > 0 && !strings.Contains(string(e.Data), "previous_role")
	})).Return(nil)

	require.NoError(t, p.PublishSessionStarted(context.Background(), &domain.Session{ID: "s", Role: domain.RoleAdmin}, domain.RoleNone))
	pub.AssertExpectations(t)
}

func TestPublishSessionEnded(t *testing.T) {
	pub := new(mockPublisher)
	p := NewProducer(pub, testLogger())

	pub.On("Publish", mock.Anything, TopicSessionEnded, mock.MatchedBy(func(e *pkgkafka.Event) bool {
		var data SessionEndedData
		_ = e.UnmarshalData(&data)
		return data.SessionID == "sess-2" && data.Role == "Admin" && e.CorrelationID == ""
	})).Return(nil)

	require.NoError(t, p.PublishSessionEnded(context.Background(), &domain.Session{ID: "sess-2", Role: domain.RoleAdmin}))
	pub.AssertExpectations(t)
}

func TestPublish_PropagatesError(t *testing.T) {
	pub := new(mockPublisher)
	p := NewProducer(pub, testLogger())
	pub.On("Publish", mock.Anything, TopicSessionEnded, mock.Anything).Return(errors.New("broker down"))

	err := p.PublishSessionEnded(context.Background(), &domain.Session{ID: "s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish storefront.session.ended event")
	assert.Contains(t, err.Error(), "broker down")
}

func TestProducer_WithDiscard(t *testing.T) {
	p := NewProducer(pkgkafka.Discard, testLogger())
	assert.NoError(t, p.PublishSessionStarted(context.Background(), &domain.Session{ID: "s", Role: domain.RoleCustomer}, domain.RoleNone))
}
