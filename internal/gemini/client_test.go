package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/medstock/medstock/internal/chat"
)

func TestGenerateMapsRolesAndExtractsReply(t *testing.T) {
	var captured wireRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Fatalf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Fatalf("key = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"final answer"}]}}]}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, APIKey: "test-key", Model: "gemini-test"})
	reply, err := client.Generate(context.Background(), chat.ModelRequest{
		Turns: []chat.Turn{
			{Role: chat.RoleUser, Content: "q1"},
			{Role: chat.RoleAssistant, Content: "a1"},
			{Role: chat.RoleUser, Content: "q2"},
		},
		SystemInstruction: "be brief",
		Temperature:       0.2,
		MaxOutputTokens:   1000,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if reply != "final answer" {
		t.Fatalf("reply = %q", reply)
	}

	if len(captured.Contents) != 3 {
		t.Fatalf("contents = %d", len(captured.Contents))
	}
	if captured.Contents[0].Role != "user" || captured.Contents[1].Role != "model" {
		t.Fatalf("roles = %q, %q", captured.Contents[0].Role, captured.Contents[1].Role)
	}
	if captured.SystemInstruction.Parts[0].Text != "be brief" {
		t.Fatalf("system instruction = %q", captured.SystemInstruction.Parts[0].Text)
	}
	if captured.GenerationConfig.Temperature != 0.2 || captured.GenerationConfig.MaxOutputTokens != 1000 {
		t.Fatalf("generation config = %+v", captured.GenerationConfig)
	}
}

func TestGenerateEmptyEnvelopeIsEmptyReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, APIKey: "test-key"})
	reply, err := client.Generate(context.Background(), chat.ModelRequest{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if reply != "" {
		t.Fatalf("reply = %q, want empty", reply)
	}
}

func TestGenerateSurfacesUpstreamErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, APIKey: "bad-key"})
	_, err := client.Generate(context.Background(), chat.ModelRequest{})
	if err == nil || !strings.Contains(err.Error(), "API key not valid") {
		t.Fatalf("err = %v", err)
	}
}

func TestGenerateFallsBackToGenericUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("oops"))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, APIKey: "k"})
	_, err := client.Generate(context.Background(), chat.ModelRequest{})
	if err == nil || !strings.Contains(err.Error(), "failed to get response from the model") {
		t.Fatalf("err = %v", err)
	}
}

func TestReadyRequiresAPIKey(t *testing.T) {
	if err := New(Config{}).Ready(); err == nil {
		t.Fatal("Ready() expected error without api key")
	}
	if err := New(Config{APIKey: "k"}).Ready(); err != nil {
		t.Fatalf("Ready() error = %v", err)
	}
}
