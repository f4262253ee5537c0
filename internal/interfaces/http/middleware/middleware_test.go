package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hapkiduki/sgp-engine/internal/application/dto"
	"github.com/hapkiduki/sgp-engine/internal/application/port"
)

type logEntry struct {
	level  string
	msg    string
	fields []interface{}
}

type recordingLogger struct {
	mu      *sync.Mutex
	entries *[]logEntry
	fields  []interface{}
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{mu: &sync.Mutex{}, entries: &[]logEntry{}}
}

func (l *recordingLogger) log(level, msg string, kv []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, logEntry{level: level, msg: msg, fields: append(append([]interface{}{}, l.fields...), kv...)})
}

func (l *recordingLogger) Debug(msg string, kv ...interface{}) { l.log("debug", msg, kv) }
func (l *recordingLogger) Info(msg string, kv ...interface{})  { l.log("info", msg, kv) }
func (l *recordingLogger) Warn(msg string, kv ...interface{})  { l.log("warn", msg, kv) }
func (l *recordingLogger) Error(msg string, kv ...interface{}) { l.log("error", msg, kv) }

func (l *recordingLogger) With(kv ...interface{}) port.Logger {
	return &recordingLogger{mu: l.mu, entries: l.entries, fields: append(append([]interface{}{}, l.fields...), kv...)}
}

func (l *recordingLogger) WithContext(ctx context.Context) port.Logger {
	if id := GetRequestID(ctx); id != "" {
		return l.With("request_id", id)
	}
	return l
}

func (l *recordingLogger) all() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logEntry(nil), *l.entries...)
}

func field(fields []interface{}, key string) interface{} {
	for i := 0; i+1 < len(fields); i += 2 {
		if fields[i] == key {
			return fields[i+1]
		}
	}
	return nil
}

func decodeError(t *testing.T, body io.Reader) dto.APIResponse[any] {
	t.Helper()
	var resp dto.APIResponse[any]
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "from-gateway")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "from-gateway", seen)
	assert.Equal(t, "from-gateway", rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 500))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Len(t, seen, 36)
}

func TestLogger_LevelByStatus(t *testing.T) {
	log := newRecordingLogger()

	statuses := []int{http.StatusOK, http.StatusNotFound, http.StatusInternalServerError}
	for _, status := range statuses {
		h := RequestID(Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		})))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/calc/area", nil))
	}

	entries := log.all()
	require.Len(t, entries, 3)
	assert.Equal(t, "info", entries[0].level)
	assert.Equal(t, "warn", entries[1].level)
	assert.Equal(t, "error", entries[2].level)
	assert.Equal(t, "/api/v1/calc/area", field(entries[0].fields, "path"))
	assert.Equal(t, http.StatusNotFound, field(entries[1].fields, "status"))
	assert.NotNil(t, field(entries[0].fields, "request_id"))
}

func TestLogger_ImplicitOK(t *testing.T) {
	log := newRecordingLogger()
	h := Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	entries := log.all()
	require.Len(t, entries, 1)
	assert.Equal(t, http.StatusOK, field(entries[0].fields, "status"))
}

func TestRecoverer(t *testing.T) {
	log := newRecordingLogger()
	h := RequestID(Recoverer(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec.Body)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.CodeInternal, resp.Error.Code)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), resp.Meta.RequestID)

	entries := log.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "error", entries[0].level)
	assert.Equal(t, "boom", field(entries[0].fields, "error"))
}

func TestContentTypeJSON(t *testing.T) {
	h := ContentTypeJSON(http.HandlerFunc(okHandler))

	tests := []struct {
		name        string
		method      string
		contentType string
		want        int
	}{
		{"get without body", http.MethodGet, "", http.StatusOK},
		{"delete without body", http.MethodDelete, "", http.StatusOK},
		{"post json", http.MethodPost, "application/json", http.StatusOK},
		{"post json with charset", http.MethodPost, "application/json; charset=utf-8", http.StatusOK},
		{"post form", http.MethodPost, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"put missing", http.MethodPut, "", http.StatusUnsupportedMediaType},
		{"patch text", http.MethodPatch, "text/plain", http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", strings.NewReader("{}"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnsupportedMediaType {
				assert.Equal(t, dto.CodeUnsupportedMedia, decodeError(t, rec.Body).Error.Code)
			}
		})
	}
}

func TestSecureHeadersAndAPIVersion(t *testing.T) {
	h := SecureHeaders(APIVersion("0.1.0")(http.HandlerFunc(okHandler)))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "0.1.0", rec.Header().Get("X-API-Version"))
}

func TestMaxBodySize(t *testing.T) {
	var readErr error
	h := MaxBodySize(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	assert.Error(t, readErr)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123")))
	assert.NoError(t, readErr)
}

func TestRateLimiter(t *testing.T) {
	h := RateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 2})(http.HandlerFunc(okHandler))

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:2222").Code)

	limited := do("10.0.0.1:3333")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))
	assert.Equal(t, dto.CodeRateLimited, decodeError(t, limited.Body).Error.Code)

	assert.Equal(t, http.StatusOK, do("10.0.0.2:1111").Code)
}

func TestClientLimiters_SweepsIdleBuckets(t *testing.T) {
	now := time.Now()
	limiters := newClientLimiters(RateLimiterConfig{RequestsPerSecond: 1, Burst: 1, IdleTTL: time.Minute})
	limiters.now = func() time.Time { return now }

	limiters.get("a")
	limiters.get("b")
	assert.Equal(t, 2, limiters.size())

	now = now.Add(2 * time.Minute)
	limiters.get("c")
	assert.Equal(t, 1, limiters.size())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "192.168.1.10:5555"
	assert.Equal(t, "192.168.1.10", ClientIP(req))

	req.RemoteAddr = "203.0.113.7"
	assert.Equal(t, "203.0.113.7", ClientIP(req))
}
