package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeReport(t *testing.T, rec *httptest.ResponseRecorder) Report {
	t.Helper()
	var r Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	return r
}

func serve(h http.HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	return rec
}

func TestLiveness(t *testing.T) {
	h := NewHandler(0)
	h.Register("session_store", func(context.Context) error { return errors.New("down") })

	rec := serve(h.LivenessHandler())

	assert.Equal(t, http.StatusOK, rec.Code)
	report := decodeReport(t, rec)
	assert.Equal(t, StatusUp, report.Status)
	assert.Empty(t, report.Checks)
}

func TestReadiness_NoCheckers(t *testing.T) {
	rec := serve(NewHandler(0).ReadinessHandler())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, StatusUp, decodeReport(t, rec).Status)
}

func TestReadiness_AllUp(t *testing.T) {
	h := NewHandler(time.Second)
	h.Register("session_store", func(context.Context) error { return nil })
	h.Register("event_broker", func(context.Context) error { return nil })

	rec := serve(h.ReadinessHandler())

	assert.Equal(t, http.StatusOK, rec.Code)
	report := decodeReport(t, rec)
	assert.Equal(t, StatusUp, report.Status)
	require.Len(t, report.Checks, 2)
	assert.Equal(t, StatusUp, report.Checks["session_store"].Status)
	assert.NotEmpty(t, report.Checks["session_store"].Duration)
}

func TestReadiness_OneDown(t *testing.T) {
	h := NewHandler(time.Second)
	h.Register("session_store", func(context.Context) error { return errors.New("redis: connection refused") })
	h.Register("event_broker", func(context.Context) error { return nil })

	rec := serve(h.ReadinessHandler())

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	report := decodeReport(t, rec)
	assert.Equal(t, StatusDown, report.Status)
	assert.Equal(t, StatusDown, report.Checks["session_store"].Status)
	assert.Equal(t, "redis: connection refused", report.Checks["session_store"].Error)
	assert.Equal(t, StatusUp, report.Checks["event_broker"].Status)
}

func TestCheck_TimeoutBoundsSlowChecker(t *testing.T) {
	h := NewHandler(20 * time.Millisecond)
	h.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	start := time.Now()
	report := h.Check(context.Background())

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, StatusDown, report.Status)
	assert.Contains(t, report.Checks["slow"].Error, "deadline exceeded")
}

func TestCheck_RunsConcurrently(t *testing.T) {
	h := NewHandler(time.Second)
	release := make(chan struct{})
	h.Register("a", func(ctx context.Context) error {
		select {
		case <-release:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	h.Register("b", func(context.Context) error { close(release); return nil })

	done := make(chan Report, 1)
	go func() { done <- h.Check(context.Background()) }()

	select {
	case report := <-done:
		assert.Equal(t, StatusUp, report.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("checks ran sequentially")
	}
}

func TestRegister_Replaces(t *testing.T) {
	h := NewHandler(0)
	h.Register("session_store", func(context.Context) error { return errors.New("old") })
	h.Register("session_store", func(context.Context) error { return nil })

	assert.Equal(t, StatusUp, h.Check(context.Background()).Status)
}
