package claude

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
)

func TestClientChat(t *testing.T) {
	var body map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": " {\"score\": 42} "}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 3, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	c := New("key", "claude-test", 0.3, option.WithBaseURL(srv.URL))

	out, err := c.Chat(context.Background(), "system text", "user text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != `{"score": 42}` {
		t.Fatalf("unexpected output %q", out)
	}

	if body["model"] != "claude-test" {
		t.Fatalf("unexpected model %v", body["model"])
	}

	system, ok := body["system"].([]any)
	if !ok || len(system) != 1 {
		t.Fatalf("expected one system block, got %v", body["system"])
	}
}

func TestClientChatStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	c := New("bad", "", 0.3, option.WithBaseURL(srv.URL))

	_, err := c.Chat(context.Background(), "", "user text")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.HTTPStatus() != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", statusErr.HTTPStatus())
	}
	if c.Model() != defaultModel {
		t.Fatalf("expected default model, got %q", c.Model())
	}
}
