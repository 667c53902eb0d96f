package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	publicDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "index.html"), []byte("<html>entry</html>"), 0o644))

	return &config.Config{
		Environment:        "development",
		HTTPPort:           0,
		PublicDir:          publicDir,
		SrcDir:             t.TempDir(),
		EntryDocument:      "index.html",
		SessionStore:       config.SessionStoreMemory,
		SessionSecret:      config.DefaultSessionSecret,
		CORSAllowedOrigins: []string{"*"},
	}
}

func loginRedirect(t *testing.T, h http.Handler, role string) string {
	t.Helper()
	form := url.Values{"username": {"u"}, "password": {"p"}, "role": {role}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	return rec.Header().Get("Location")
}

func TestNewApp_MemoryStore(t *testing.T) {
	a, err := NewApp(testConfig(t), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { a.closeResources() })

	assert.Nil(t, a.rdb)
	assert.Nil(t, a.producer)
	assert.Equal(t, "/vendorDashboard", loginRedirect(t, a.Handler(), "Vendor"))

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/some/deep/link", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>entry</html>", rec.Body.String())
}

func TestNewApp_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.SessionStore = config.SessionStoreRedis
	cfg.RedisAddr = mr.Addr()

	a, err := NewApp(cfg, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { a.closeResources() })

	require.NotNil(t, a.rdb)
	assert.Equal(t, "/adminDashboard", loginRedirect(t, a.Handler(), "Admin"))
	assert.Len(t, mr.Keys(), 1)
	assert.True(t, strings.HasPrefix(mr.Keys()[0], "session:"))

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewApp_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(t)
	cfg.SessionStore = config.SessionStoreRedis
	cfg.RedisAddr = addr

	_, err := NewApp(cfg, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to redis")
}

func TestNewApp_MissingEntryDocument(t *testing.T) {
	cfg := testConfig(t)
	cfg.EntryDocument = "missing.html"

	_, err := NewApp(cfg, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "static files")
}

func TestNewApp_EventsEnabledWithDeadBroker(t *testing.T) {
	cfg := testConfig(t)
	cfg.EventsEnabled = true
	cfg.KafkaBrokers = []string{"127.0.0.1:1"}

	a, err := NewApp(cfg, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { a.closeResources() })

	require.NotNil(t, a.producer)
	assert.Equal(t, "/customerDashboard", loginRedirect(t, a.Handler(), "Customer"))
}

func TestShutdown_WithoutRun(t *testing.T) {
	a, err := NewApp(testConfig(t), testLogger())
	require.NoError(t, err)
	assert.NoError(t, a.Shutdown())
}
