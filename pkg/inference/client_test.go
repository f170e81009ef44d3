package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dtnitsch/brochure-agent/models"
)

func TestNewClient_MissingKey(t *testing.T) {
	_, err := NewClient("")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("NewClient(\"\") error = %v, want ErrMissingAPIKey", err)
	}
}

func TestRespond_SendsExpectedPayload(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("failed to decode request payload: %v", err)
		}
		w.Write([]byte(`{"id": "resp_1", "status": "completed", "output": [
			{"type": "reasoning"},
			{"type": "message", "role": "assistant", "content": [
				{"type": "output_text", "text": "Hello "},
				{"type": "output_text", "text": "there"}
			]}
		]}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	text, err := client.Respond(context.Background(), Request{
		Model:        "test-model",
		Instructions: "behave",
		Input: []models.Message{
			{Role: models.RoleSystem, Content: "behave"},
			{Role: models.RoleUser, Content: "hi"},
		},
		Effort: EffortMedium,
	})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	if text != "Hello there" {
		t.Errorf("Respond() = %q, want concatenated output text", text)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotPayload["model"] != "test-model" {
		t.Errorf("payload model = %v, want test-model", gotPayload["model"])
	}
	if gotPayload["instructions"] != "behave" {
		t.Errorf("payload instructions = %v, want behave", gotPayload["instructions"])
	}
	reasoning, ok := gotPayload["reasoning"].(map[string]any)
	if !ok || reasoning["effort"] != "medium" {
		t.Errorf("payload reasoning = %v, want effort medium", gotPayload["reasoning"])
	}
	input, ok := gotPayload["input"].([]any)
	if !ok || len(input) != 2 {
		t.Fatalf("payload input = %v, want 2 messages", gotPayload["input"])
	}
}

func TestRespond_NoEffortOmitsReasoning(t *testing.T) {
	var gotPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(`{"output": []}`))
	}))
	defer server.Close()

	client, _ := NewClient("test-key", WithBaseURL(server.URL))
	if _, err := client.Respond(context.Background(), Request{Model: "m"}); err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if _, present := gotPayload["reasoning"]; present {
		t.Errorf("payload reasoning = %v, want omitted", gotPayload["reasoning"])
	}
}

func TestRespond_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "invalid key"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client, _ := NewClient("bad-key", WithBaseURL(server.URL))
	_, err := client.Respond(context.Background(), Request{Model: "m"})
	if err == nil {
		t.Fatal("Respond() error = nil, want provider failure")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %v, want the status code mentioned", err)
	}
}

func TestRespond_APIErrorObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"type": "invalid_request_error", "code": "model_not_found", "message": "no such model"}}`))
	}))
	defer server.Close()

	client, _ := NewClient("test-key", WithBaseURL(server.URL))
	_, err := client.Respond(context.Background(), Request{Model: "nope"})
	if err == nil {
		t.Fatal("Respond() error = nil, want API error surfaced")
	}
	if !strings.Contains(err.Error(), "no such model") {
		t.Errorf("error = %v, want the API message included", err)
	}
}

func TestOutputText_SkipsNonMessageItems(t *testing.T) {
	resp := responsesResponse{Output: []outputItem{
		{Type: "reasoning", Content: []contentPart{{Type: "output_text", Text: "internal"}}},
		{Type: "message", Content: []contentPart{
			{Type: "refusal", Text: "nope"},
			{Type: "output_text", Text: "visible"},
		}},
	}}
	if got := resp.outputText(); got != "visible" {
		t.Errorf("outputText() = %q, want %q", got, "visible")
	}
}
