package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/JonMunkholm/portfolio/internal/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		header     string
		wantStatus int
	}{
		{name: "no keys configured", keys: nil, header: "", wantStatus: http.StatusOK},
		{name: "missing key", keys: []string{"k1"}, header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong key", keys: []string{"k1"}, header: "nope", wantStatus: http.StatusForbidden},
		{name: "first key", keys: []string{"k1", "k2"}, header: "k1", wantStatus: http.StatusOK},
		{name: "second key", keys: []string{"k1", "k2"}, header: "k2", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.SecurityConfig{APIKeys: tt.keys}
			h := APIKeyAuth(cfg)(okHandler)

			req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
			if tt.header != "" {
				req.Header.Set(APIKeyHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		realIP     string
		forwarded  string
		want       string
	}{
		{
			name:       "untrusted peer keeps address",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "203.0.113.7:5555",
			realIP:     "1.2.3.4",
			want:       "203.0.113.7:5555",
		},
		{
			name:       "trusted peer uses X-Real-IP",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:5555",
			realIP:     "198.51.100.9",
			want:       "198.51.100.9",
		},
		{
			name:       "trusted peer uses first forwarded hop",
			trusted:    []string{"127.0.0.1"},
			remoteAddr: "127.0.0.1:5555",
			forwarded:  "198.51.100.9, 10.0.0.1",
			want:       "198.51.100.9",
		},
		{
			name:       "invalid header ignored",
			trusted:    []string{"127.0.0.1"},
			remoteAddr: "127.0.0.1:5555",
			realIP:     "not-an-ip",
			want:       "127.0.0.1:5555",
		},
		{
			name:       "invalid trusted entry skipped",
			trusted:    []string{"garbage", "::1"},
			remoteAddr: "[::1]:5555",
			realIP:     "2001:db8::1",
			want:       "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := TrustedRealIP(tt.trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAddr(t *testing.T) {
	addr, ok := ParseAddr("192.0.2.1:8080")
	assert.True(t, ok)
	assert.Equal(t, "192.0.2.1", addr.String())

	addr, ok = ParseAddr("::ffff:192.0.2.1")
	assert.True(t, ok)
	assert.Equal(t, "192.0.2.1", addr.String(), "v4-mapped addresses are unmapped")

	_, ok = ParseAddr("pipe")
	assert.False(t, ok)
}

func TestLoggerAndMetricsPassThrough(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Logger)
	r.Use(Metrics)
	r.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/42", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}
