package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"family-meal-planner/internal/config"
)

func TestGroqClient(t *testing.T) {
	var got struct {
		Model          string            `json:"model"`
		Messages       []groqMessage     `json:"messages"`
		ResponseFormat map[string]string `json:"response_format"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}],"usage":{"prompt_tokens":12,"completion_tokens":3,"total_tokens":15}}`))
	}))
	defer server.Close()

	c := NewGroqClient("test-key", "llama-test")
	c.url = server.URL

	t.Run("Success", func(t *testing.T) {
		resp, err := c.GenerateContent(context.Background(), "hello",
			WithSystem("be brief"),
			WithJSON(),
			WithHistory([]Message{{Role: RoleUser, Text: "hi"}, {Role: RoleModel, Text: "hey"}}),
		)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if resp.Content != `{"ok":true}` {
			t.Errorf("Unexpected content %q", resp.Content)
		}
		if resp.Usage.PromptTokens != 12 || resp.Usage.TotalTokens != 15 || resp.Usage.Model != "llama-test" {
			t.Errorf("Unexpected usage %+v", resp.Usage)
		}
		roles := []string{"system", "user", "assistant", "user"}
		if len(got.Messages) != len(roles) {
			t.Fatalf("Expected %d messages, got %+v", len(roles), got.Messages)
		}
		for i, role := range roles {
			if got.Messages[i].Role != role {
				t.Errorf("Message %d: expected role %s, got %s", i, role, got.Messages[i].Role)
			}
		}
		if got.ResponseFormat["type"] != "json_object" {
			t.Errorf("Expected JSON response format, got %v", got.ResponseFormat)
		}
	})

	t.Run("APIError", func(t *testing.T) {
		bad := NewGroqClient("wrong", "llama-test")
		bad.url = server.URL
		if _, err := bad.GenerateContent(context.Background(), "hello"); err == nil {
			t.Error("Expected an error for a rejected key")
		}
	})
}

func TestNew(t *testing.T) {
	gen, closer, err := New(context.Background(), &config.Config{AIProvider: config.ProviderNone})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer closer.Close()
	if _, err := gen.GenerateContent(context.Background(), "x"); !errors.Is(err, ErrDisabled) {
		t.Errorf("Expected ErrDisabled, got %v", err)
	}

	if _, _, err := New(context.Background(), &config.Config{AIProvider: "oracle"}); err == nil {
		t.Error("Expected an error for an unknown provider")
	}
}
