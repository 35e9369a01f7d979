// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/courier/internal/api"
	"github.com/jeranaias/courier/internal/logging"
)

func newTestServer(t *testing.T, cfg Config) (*Server, http.Handler) {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	s := New(cfg)
	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return s, s.Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("User-Agent", "courier-test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) api.Envelope[T] {
	t.Helper()
	var env api.Envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

// =============================================================================
// MESSAGE
// =============================================================================

func TestHandleMessage(t *testing.T) {
	_, h := newTestServer(t, Config{})

	rec := do(t, h, http.MethodPost, "/api/message", `{"name":"ana","message":"hello there"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	env := decode[api.MessageResponseData](t, rec)
	assert.True(t, env.Success)
	require.NotNil(t, env.Data)
	assert.Equal(t, "Hello, ana! Nice to hear from you.", env.Data.Message)
	require.NotNil(t, env.Data.Metadata)
	assert.Equal(t, 2, env.Data.Metadata.WordCount)
	assert.True(t, env.Data.Metadata.HasGreeting)
	assert.Equal(t, api.ResponseTypeGreeting, env.Data.Metadata.ResponseType)
	assert.NotEmpty(t, env.Timestamp)
	assert.False(t, api.ParseTimestamp(env.Data.Timestamp).IsZero())
}

func TestHandleMessage_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"missing name", `{"message":"hi"}`, http.StatusBadRequest, "name is required"},
		{"blank name", `{"name":"   ","message":"hi"}`, http.StatusBadRequest, "name is required"},
		{"long name", `{"name":"` + strings.Repeat("n", 101) + `","message":"hi"}`, http.StatusBadRequest, "name must be at most 100 characters"},
		{"long message", `{"name":"a","message":"` + strings.Repeat("m", 2001) + `"}`, http.StatusBadRequest, "message must be at most 2000 characters"},
		{"bad json", `{"name":`, http.StatusBadRequest, "invalid JSON body"},
		{"too large", `{"name":"a","message":"` + strings.Repeat("m", MaxRequestBodySize) + `"}`, http.StatusRequestEntityTooLarge, "request body too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, h := newTestServer(t, Config{})
			rec := do(t, h, http.MethodPost, "/api/message", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			env := decode[json.RawMessage](t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantError, env.Error)
			assert.Equal(t, 0, s.Store().Len())
			assert.Equal(t, 1, s.Store().Stats().TotalMessages)
		})
	}
}

func TestHandleMessage_RecordsClientInfo(t *testing.T) {
	s, h := newTestServer(t, Config{})
	do(t, h, http.MethodPost, "/api/message", `{"name":"ana","message":"what time is it?"}`)

	items := s.Store().List(0)
	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, api.HistoryID("id-1"), item.ID)
	assert.Equal(t, "ana", item.Input.Name)
	assert.Equal(t, "what time is it?", item.Input.Message)
	require.NotNil(t, item.ClientInfo)
	assert.Equal(t, "courier-test", item.ClientInfo.UserAgent)
	assert.Equal(t, "192.0.2.1", item.ClientInfo.IP, "httptest default remote address")
	assert.Equal(t, api.ResponseTypeQuestion, item.Metadata.ResponseType)
}

// =============================================================================
// HISTORY
// =============================================================================

func TestHandleHistory(t *testing.T) {
	s, h := newTestServer(t, Config{})
	for _, msg := range []string{"one", "two words", "three little words"} {
		rec := do(t, h, http.MethodPost, "/api/message", `{"name":"ana","message":"`+msg+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	do(t, h, http.MethodPost, "/api/message", `{"message":"no name"}`)

	rec := do(t, h, http.MethodGet, "/api/history?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode[api.HistoryResponseData](t, rec)
	require.True(t, env.Success)
	require.Len(t, env.Data.History, 2)
	assert.Equal(t, "three little words", env.Data.History[0].Input.Message, "newest first")
	assert.Equal(t, "two words", env.Data.History[1].Input.Message)
	assert.Equal(t, 3, env.Data.Total)

	stats := env.Data.Stats
	assert.Equal(t, 4, stats.TotalMessages)
	assert.Equal(t, 3, stats.SuccessfulMessages)
	assert.Equal(t, 0.25, stats.ErrorRate)
	assert.Equal(t, 2.0, stats.AverageWordCount)

	rec = do(t, h, http.MethodGet, "/api/history", "")
	env = decode[api.HistoryResponseData](t, rec)
	assert.Len(t, env.Data.History, 3)
	assert.Equal(t, 3, s.Store().Len())
}

func TestHandleHistory_ByID(t *testing.T) {
	_, h := newTestServer(t, Config{})
	do(t, h, http.MethodPost, "/api/message", `{"name":"ana","message":"first"}`)
	do(t, h, http.MethodPost, "/api/message", `{"name":"bo","message":"second"}`)

	rec := do(t, h, http.MethodGet, "/api/history?id=id-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode[api.HistoryResponseData](t, rec)
	require.Len(t, env.Data.History, 1)
	assert.Equal(t, "first", env.Data.History[0].Input.Message)

	rec = do(t, h, http.MethodGet, "/api/history?id=missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	errEnv := decode[json.RawMessage](t, rec)
	assert.False(t, errEnv.Success)
	assert.Equal(t, "history item not found", errEnv.Error)
}

func TestHandleHistory_BadLimit(t *testing.T) {
	_, h := newTestServer(t, Config{})
	for _, q := range []string{"abc", "-1", "1.5"} {
		rec := do(t, h, http.MethodGet, "/api/history?limit="+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestHandleClearHistory(t *testing.T) {
	s, h := newTestServer(t, Config{})
	do(t, h, http.MethodPost, "/api/message", `{"name":"ana","message":"a"}`)
	do(t, h, http.MethodPost, "/api/message", `{"name":"ana","message":"b"}`)

	rec := do(t, h, http.MethodDelete, "/api/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode[ClearResult](t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, 2, env.Data.Cleared)
	assert.Equal(t, 0, s.Store().Len())
	assert.Equal(t, 0, s.Store().Stats().TotalMessages)
}

// =============================================================================
// HEALTH / ROUTING
// =============================================================================

func TestHandleHealth(t *testing.T) {
	_, h := newTestServer(t, Config{Version: "1.2.3"})
	rec := do(t, h, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode[api.HealthData](t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "ok", env.Data.Status)
	assert.Equal(t, "1.2.3", env.Data.Version)
}

func TestRouting_Errors(t *testing.T) {
	_, h := newTestServer(t, Config{})

	rec := do(t, h, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decode[json.RawMessage](t, rec).Success)

	rec = do(t, h, http.MethodPut, "/api/history", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.False(t, decode[json.RawMessage](t, rec).Success)
}

func TestSecurityHeaders(t *testing.T) {
	_, h := newTestServer(t, Config{})
	rec := do(t, h, http.MethodGet, "/api/health", "")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(logging.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Output: &buf})
	require.NoError(t, err)

	h := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("tea"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "/api/health", rec["path"])
	assert.Equal(t, float64(http.StatusTeapot), rec["status"])
	assert.Equal(t, float64(3), rec["bytes"])
	assert.Equal(t, "WARN", rec["level"])
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestServe_GracefulShutdown(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := api.NewClient("http://" + ln.Addr().String())
	require.Eventually(t, func() bool {
		return client.TestConnection(context.Background())
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := client.SendMessage(context.Background(), api.MessageRequest{Name: "ana", Message: "hi"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, ln.Addr().String(), s.Addr().String())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRun_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	s, _ := newTestServer(t, Config{Addr: ln.Addr().String()})
	err = s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on")
}
