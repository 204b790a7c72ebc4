package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
	"github.com/msto63/khwarizmi/internal/khwarizmi/store"
	"github.com/msto63/khwarizmi/pkg/core/logging"
)

func newTestService(t *testing.T) *service.Service {
	t.Helper()

	cfg := service.DefaultConfig()
	cfg.History = store.NewMemoryHistoryStore()
	cfg.Logger = logging.Wrap(logging.NewLogger(logging.LoggerConfig{Output: io.Discard}), "test")

	svc, err := service.NewService(cfg)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	svc := newTestService(t)
	return NewHandler(svc, logging.Wrap(logging.NewLogger(logging.LoggerConfig{Output: io.Discard}), "test"))
}

func TestHandler_Solve(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantResult string
		wantCode   string
	}{
		{"post", http.MethodPost, "/api/v1/solve", `{"equation":"2x+3=7"}`, http.StatusOK, "x = 2", ""},
		{"get", http.MethodGet, "/api/v1/solve?equation=10/x=2", "", http.StatusOK, "x = 5", ""},
		{"no equals", http.MethodPost, "/api/v1/solve", `{"equation":"2x+3"}`, http.StatusBadRequest, "", "NO_EQUALS_SIGN"},
		{"division by zero", http.MethodPost, "/api/v1/solve", `{"equation":"0x=1"}`, http.StatusBadRequest, "", "DIVISION_BY_ZERO"},
		{"missing input", http.MethodPost, "/api/v1/solve", `{}`, http.StatusBadRequest, "", ""},
		{"invalid json", http.MethodPost, "/api/v1/solve", `{`, http.StatusBadRequest, "", ""},
		{"wrong method", http.MethodDelete, "/api/v1/solve", "", http.StatusMethodNotAllowed, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.wantResult != "" {
				var resp service.SolveResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if resp.Output != tt.wantResult {
					t.Errorf("result = %q, want %q", resp.Output, tt.wantResult)
				}
				return
			}

			var errResp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if errResp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", errResp.Code, tt.wantCode)
			}
		})
	}
}

func TestHandler_History(t *testing.T) {
	h := newTestHandler(t)

	for _, eq := range []string{"x=1", "x=2", "x=3"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/solve", strings.NewReader(`{"equation":"`+eq+`"}`))
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp HistoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 || resp.Entries[0].Input != "x=3" {
		t.Errorf("history = %+v", resp)
	}
	if resp.Entries[0].Source != service.SourceHTTP {
		t.Errorf("source = %q", resp.Entries[0].Source)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid limit status = %d, want 400", rec.Code)
	}
}

func TestHandler_HealthAndStats(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"service":"khwarizmi"`) {
		t.Errorf("health body = %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	var stats StatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.History == nil {
		t.Error("stats should include history")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown status = %d, want 404", rec.Code)
	}
}

func TestWebSocketHandler_StreamsSteps(t *testing.T) {
	svc := newTestService(t)
	ws := NewWebSocketHandler(svc, logging.Wrap(logging.NewLogger(logging.LoggerConfig{Output: io.Discard}), "test"))

	srv := httptest.NewServer(ws)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	send := func(msg string) {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("WriteMessage() error = %v", err)
		}
	}
	read := func() map[string]interface{} {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		return msg
	}

	send(`{"type":"solve","payload":{"equation":"2x+3=7"}}`)

	var types []string
	for {
		msg := read()
		types = append(types, msg["type"].(string))
		if msg["type"] != "step" {
			payload := msg["payload"].(map[string]interface{})
			if payload["result"] != "x = 2" {
				t.Errorf("result payload = %v", payload)
			}
			break
		}
	}
	if strings.Join(types, ",") != "step,step,result" {
		t.Errorf("message types = %v", types)
	}

	send(`{"type":"solve","payload":{"equation":"x+y=1"}}`)
	msg := read()
	if msg["type"] != "error" {
		t.Fatalf("type = %v, want error", msg["type"])
	}
	if code := msg["payload"].(map[string]interface{})["code"]; code != "MULTIPLE_VARIABLES" {
		t.Errorf("code = %v", code)
	}

	send(`{"type":"ping"}`)
	if msg := read(); msg["type"] != "pong" {
		t.Errorf("type = %v, want pong", msg["type"])
	}
}
