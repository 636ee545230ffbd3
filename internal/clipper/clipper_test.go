package clipper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"family-meal-planner/internal/llm"
	"family-meal-planner/internal/recipe"
)

// --- Mocks ---
type MockTextGenerator struct {
	Response    string
	ShouldError bool
	Prompt      string
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string, opts ...llm.Option) (llm.ContentResponse, error) {
	m.Prompt = prompt
	if m.ShouldError {
		return llm.ContentResponse{}, fmt.Errorf("mock ai error")
	}
	return llm.ContentResponse{Content: m.Response}, nil
}

const dirtyHTML = `
<html>
	<head><script>alert('bad');</script></head>
	<body>
		<h1>Tasty Recipe</h1>
		<div class="ads">Buy stuff!</div>
		<p>Mix flour and water.</p>
		<script>more_bad_stuff()</script>
		<footer>Copyright 2024</footer>
	</body>
</html>`

func newPageServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(dirtyHTML))
	}))
}

// --- Tests ---

func TestFetchAndCleanHTML(t *testing.T) {
	ts := newPageServer()
	defer ts.Close()

	c := NewClipper(&MockTextGenerator{})
	cleanText, err := c.fetchAndCleanHTML(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if strings.Contains(cleanText, "alert('bad')") {
		t.Error("Failed to remove <script> tags")
	}
	if strings.Contains(cleanText, "Buy stuff!") {
		t.Error("Failed to remove .ads class")
	}
	if strings.Contains(cleanText, "Copyright 2024") {
		t.Error("Failed to remove <footer>")
	}
	if !strings.Contains(cleanText, "Tasty Recipe") {
		t.Error("Expected to find 'Tasty Recipe'")
	}
	if !strings.Contains(cleanText, "Mix flour and water.") {
		t.Error("Expected to find body content")
	}
}

func TestClipURL(t *testing.T) {
	ts := newPageServer()
	defer ts.Close()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		gen := &MockTextGenerator{Response: `{"name":"Flatbread","type":"Lunch","description":"Quick bread","ingredients":["Flour","Water"],"steps":["Mix","Bake"]}`}
		got, err := NewClipper(gen).ClipURL(ctx, ts.URL)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Name != "Flatbread" || got.Type != recipe.Lunch || got.Description != "Quick bread" {
			t.Errorf("Unexpected recipe %+v", got)
		}
		for _, sub := range []string{"- Flour", "2. Bake", "Imported from: " + ts.URL} {
			if !strings.Contains(got.Instructions, sub) {
				t.Errorf("Expected instructions to contain %q, got %q", sub, got.Instructions)
			}
		}
		if !strings.Contains(gen.Prompt, "Mix flour and water.") {
			t.Error("Expected page text in prompt")
		}
	})

	t.Run("UnknownTypeDefaultsToDinner", func(t *testing.T) {
		gen := &MockTextGenerator{Response: `{"name":"Stew","type":"supper"}`}
		got, err := NewClipper(gen).ClipURL(ctx, ts.URL)
		if err != nil || got.Type != recipe.Dinner {
			t.Errorf("Expected dinner, got %+v, %v", got, err)
		}
	})

	t.Run("NoRecipe", func(t *testing.T) {
		gen := &MockTextGenerator{Response: `{"name":""}`}
		if _, err := NewClipper(gen).ClipURL(ctx, ts.URL); !errors.Is(err, ErrNoRecipe) {
			t.Errorf("Expected ErrNoRecipe, got %v", err)
		}
	})

	t.Run("FetchFailure", func(t *testing.T) {
		if _, err := NewClipper(&MockTextGenerator{}).ClipURL(ctx, ts.URL+"/missing"); err == nil {
			t.Error("Expected an error for a 404 page")
		}
	})

	t.Run("AIFailure", func(t *testing.T) {
		if _, err := NewClipper(&MockTextGenerator{ShouldError: true}).ClipURL(ctx, ts.URL); err == nil {
			t.Error("Expected an error when the AI fails")
		}
	})
}
