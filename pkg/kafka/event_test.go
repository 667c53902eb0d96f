package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionPayload struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
}

func header(msg kafka.Message, key string) (string, bool) {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value), true
		}
	}
	return "", false
}

func TestNewEvent(t *testing.T) {
	data := sessionPayload{SessionID: "sess-123", Role: "Vendor"}
	event, err := NewEvent("session.started", "sess-123", "session", "storefront", data)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "session.started", event.EventType)
	assert.Equal(t, "sess-123", event.AggregateID)
	assert.Equal(t, "session", event.AggregateType)
	assert.Equal(t, "storefront", event.Source)
	assert.Equal(t, 1, event.Version)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 2*time.Second)
	assert.Empty(t, event.CorrelationID)

	var got sessionPayload
	require.NoError(t, event.UnmarshalData(&got))
	assert.Equal(t, data, got)
}

func TestNewEvent_UnencodablePayload(t *testing.T) {
	_, err := NewEvent("session.started", "sess-1", "session", "storefront", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal session.started payload")
}

func TestNewEvent_UniqueIDs(t *testing.T) {
	a, err := NewEvent("session.started", "sess-1", "session", "storefront", nil)
	require.NoError(t, err)
	b, err := NewEvent("session.started", "sess-1", "session", "storefront", nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.EventID, b.EventID)
}

func TestEvent_WithCorrelationID(t *testing.T) {
	event, err := NewEvent("session.ended", "sess-1", "session", "storefront", nil)
	require.NoError(t, err)

	assert.Same(t, event, event.WithCorrelationID("corr-xyz"))
	assert.Equal(t, "corr-xyz", event.CorrelationID)
}

func TestEvent_Message(t *testing.T) {
	event, err := NewEvent("session.started", "sess-9", "session", "storefront", sessionPayload{SessionID: "sess-9", Role: "Admin"})
	require.NoError(t, err)
	event.WithCorrelationID("corr-1")

	msg, err := event.Message(Topic("session", "started"))
	require.NoError(t, err)

	assert.Equal(t, "storefront.session.started", msg.Topic)
	assert.Equal(t, "sess-9", string(msg.Key))

	v, ok := header(msg, HeaderEventType)
	assert.True(t, ok)
	assert.Equal(t, "session.started", v)
	v, ok = header(msg, HeaderSource)
	assert.True(t, ok)
	assert.Equal(t, "storefront", v)
	v, ok = header(msg, HeaderCorrelationID)
	assert.True(t, ok)
	assert.Equal(t, "corr-1", v)

	decoded, err := DecodeEvent(msg)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, event.CorrelationID, decoded.CorrelationID)
	assert.JSONEq(t, string(event.Data), string(decoded.Data))
	assert.WithinDuration(t, event.Timestamp, decoded.Timestamp, time.Millisecond)
}

func TestEvent_Message_NoCorrelationHeader(t *testing.T) {
	event, err := NewEvent("session.ended", "sess-1", "session", "storefront", nil)
	require.NoError(t, err)

	msg, err := event.Message(Topic("session", "ended"))
	require.NoError(t, err)

	_, ok := header(msg, HeaderCorrelationID)
	assert.False(t, ok)
	assert.NotContains(t, string(msg.Value), "correlation_id")
}

func TestDecodeEvent_Invalid(t *testing.T) {
	for name, value := range map[string][]byte{
		"empty":  {},
		"broken": []byte(`{broken json`),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeEvent(kafka.Message{Topic: "storefront.session.started", Value: value})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "decode event from storefront.session.started")
		})
	}
}

func TestEvent_UnmarshalData_Invalid(t *testing.T) {
	event := &Event{Data: json.RawMessage(`not valid json`)}
	var target map[string]string
	require.Error(t, event.UnmarshalData(&target))
}

func TestTopic(t *testing.T) {
	tests := []struct {
		domain, action, want string
	}{
		{"session", "started", "storefront.session.started"},
		{"session", "ended", "storefront.session.ended"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Topic(tt.domain, tt.action))
		})
	}
}
