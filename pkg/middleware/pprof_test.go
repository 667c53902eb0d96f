package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pprofRouter(cidrs []string) *chi.Mux {
	r := chi.NewRouter()
	RegisterPprof(r, cidrs, discardLogger())
	return r
}

func serveFrom(h http.Handler, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIPAllowlist(t *testing.T) {
	mw := IPAllowlist([]string{"127.0.0.0/8", "not-a-cidr", "::1/128"}, discardLogger())
	h := mw(okHandler())

	tests := []struct {
		remote string
		want   int
	}{
		{"127.0.0.1:5000", http.StatusOK},
		{"[::1]:5000", http.StatusOK},
		{"10.1.2.3:5000", http.StatusForbidden},
		{"garbage", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			assert.Equal(t, tt.want, serveFrom(h, "/debug/pprof/", tt.remote).Code)
		})
	}
}

func TestIPAllowlist_DeniedBodyIsEnvelope(t *testing.T) {
	h := IPAllowlist([]string{"10.0.0.0/8"}, discardLogger())(okHandler())

	rec := serveFrom(h, "/debug/pprof/", "192.168.1.1:1234")
	require.Equal(t, http.StatusForbidden, rec.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
}

func TestRegisterPprof(t *testing.T) {
	r := pprofRouter([]string{"127.0.0.1/32"})

	rec := serveFrom(r, "/debug/pprof/", "127.0.0.1:1234")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "goroutine")

	rec = serveFrom(r, "/debug/pprof/goroutine?debug=1", "127.0.0.1:1234")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serveFrom(r, "/debug/pprof/cmdline", "127.0.0.1:1234")
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusForbidden, serveFrom(r, "/debug/pprof/", "10.0.0.1:1234").Code)
}

func TestRegisterPprof_EmptyAllowlistDisables(t *testing.T) {
	r := pprofRouter(nil)
	assert.Equal(t, http.StatusNotFound, serveFrom(r, "/debug/pprof/", "127.0.0.1:1234").Code)
}
