package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func completionServer(t *testing.T, answer string, lastReq *openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(lastReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-3.5-turbo",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": answer},
					"finish_reason": "stop",
				},
			},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encoding response: %v", err)
		}
	}))
}

func TestAskOpenAICoding(t *testing.T) {
	var req openai.ChatCompletionRequest
	srv := completionServer(t, "Use close(ch) once the sender is done.", &req)
	defer srv.Close()

	cfg := Config{OpenAIKey: "test-key", OpenAIBaseURL: srv.URL}.withDefaults()
	tool := codingAnswerTool(cfg)
	got, err := tool.Handler(context.Background(), map[string]any{
		"question": "how do I close a channel?",
		"language": "go",
	})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if got != "OpenAI Answer:\n\nUse close(ch) once the sender is done." {
		t.Errorf("unexpected result: %q", got)
	}
	if req.Model != "gpt-3.5-turbo" {
		t.Errorf("model = %q, want gpt-3.5-turbo", req.Model)
	}
	if req.MaxTokens != 1024 || req.Temperature != 0.2 {
		t.Errorf("sampling params = (%d, %v), want (1024, 0.2)", req.MaxTokens, req.Temperature)
	}
	if len(req.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(req.Messages))
	}
	if req.Messages[0].Role != openai.ChatMessageRoleSystem || req.Messages[0].Content != codingSystemPrompt {
		t.Errorf("unexpected system message: %+v", req.Messages[0])
	}
	wantPrompt := "As an expert go developer, please answer this technical question: how do I close a channel?"
	if req.Messages[1].Content != wantPrompt {
		t.Errorf("user prompt = %q, want %q", req.Messages[1].Content, wantPrompt)
	}
}

func TestAskOpenAICodingNoLanguage(t *testing.T) {
	var req openai.ChatCompletionRequest
	srv := completionServer(t, "Yes.", &req)
	defer srv.Close()

	cfg := Config{OpenAIKey: "test-key", OpenAIBaseURL: srv.URL}.withDefaults()
	tool := codingAnswerTool(cfg)
	if _, err := tool.Handler(context.Background(), map[string]any{"question": "is Go garbage collected?"}); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	wantPrompt := "As a programming expert, please answer this technical question: is Go garbage collected?"
	if req.Messages[1].Content != wantPrompt {
		t.Errorf("user prompt = %q, want %q", req.Messages[1].Content, wantPrompt)
	}
}

func TestAskOpenAICodingNoKey(t *testing.T) {
	tool := codingAnswerTool(Config{}.withDefaults())
	got, err := tool.Handler(context.Background(), map[string]any{"question": "anything"})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "Unable to use OpenAI: API key not configured in environment variables (OPENAI_API_KEY)" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestAskOpenAICodingRequestFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"model overloaded","type":"server_error"}}`))
	}))
	defer srv.Close()

	cfg := Config{OpenAIKey: "test-key", OpenAIBaseURL: srv.URL}.withDefaults()
	tool := codingAnswerTool(cfg)
	got, err := tool.Handler(context.Background(), map[string]any{"question": "anything"})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !strings.HasPrefix(got, "An error occurred while getting an answer from OpenAI:") {
		t.Errorf("unexpected result: %q", got)
	}
}
