// Package clipper imports a recipe from a web page.
package clipper

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"text/template"
	"time"

	"github.com/PuerkitoBio/goquery"

	"family-meal-planner/internal/llm"
	"family-meal-planner/internal/recipe"
)

// ErrNoRecipe means the page could not be turned into a recipe.
var ErrNoRecipe = errors.New("no recipe found")

// maxPageText bounds how much page text is sent to the model.
const maxPageText = 20000

//go:embed extract_prompt.md
var extractPrompt string

var extractTmpl = template.Must(template.New("extract").Parse(extractPrompt))

// Clipper handles fetching and extracting recipes from URLs.
type Clipper struct {
	textGen    llm.TextGenerator
	httpClient *http.Client
}

// ExtractedRecipe represents the data structured by the AI.
type ExtractedRecipe struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

// NewClipper creates a new Clipper instance.
func NewClipper(textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		textGen:    textGen,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL and extracts a cookbook recipe from it. The
// returned recipe has no id. Unknown meal types fall back to dinner.
func (c *Clipper) ClipURL(ctx context.Context, url string) (recipe.Recipe, error) {
	content, err := c.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("failed to fetch content: %w", err)
	}

	var prompt bytes.Buffer
	if err := extractTmpl.Execute(&prompt, content); err != nil {
		return recipe.Recipe{}, fmt.Errorf("failed to build prompt: %w", err)
	}

	resp, err := c.textGen.GenerateContent(ctx, prompt.String(), llm.WithJSON(), llm.WithTemperature(0.1))
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("ai extraction failed: %w", err)
	}

	var extracted ExtractedRecipe
	raw := strings.TrimSpace(resp.Content)
	raw = strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(raw, "```json"), "```"), "```")
	if err := json.Unmarshal([]byte(raw), &extracted); err != nil {
		return recipe.Recipe{}, fmt.Errorf("%w: failed to parse AI response: %v", ErrNoRecipe, err)
	}
	if strings.TrimSpace(extracted.Name) == "" {
		return recipe.Recipe{}, fmt.Errorf("%w at %s", ErrNoRecipe, url)
	}

	mealType, err := recipe.ParseMealType(extracted.Type)
	if err != nil {
		mealType = recipe.Dinner
	}

	return recipe.Recipe{
		Name:         strings.TrimSpace(extracted.Name),
		Type:         mealType,
		Description:  strings.TrimSpace(extracted.Description),
		Instructions: formatInstructions(extracted, url),
	}, nil
}

func (c *Clipper) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	if len(text) > maxPageText {
		text = text[:maxPageText]
	}
	return text, nil
}

// formatInstructions renders the extracted lists as markdown.
func formatInstructions(r ExtractedRecipe, sourceURL string) string {
	var sb strings.Builder
	sb.WriteString("**Ingredients**\n")
	for _, ing := range r.Ingredients {
		sb.WriteString(fmt.Sprintf("- %s\n", ing))
	}

	sb.WriteString("\n**Instructions**\n")
	for i, step := range r.Steps {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
	}

	sb.WriteString(fmt.Sprintf("\n_Imported from: %s_", sourceURL))
	return sb.String()
}
