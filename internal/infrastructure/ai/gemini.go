// Package ai holds the external text-generation collaborator used for issue
// analysis.
package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/citylink/citylink-api/internal/core/ports"
)

const defaultModel = "gemini-2.0-flash"

// GeminiSummarizer implements ports.Summarizer against Google's Gemini API.
type GeminiSummarizer struct {
	client *genai.Client
	model  string
}

// NewGeminiSummarizer creates a summarizer. The model defaults to
// gemini-2.0-flash when empty.
func NewGeminiSummarizer(ctx context.Context, apiKey, model string) (*GeminiSummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiSummarizer{client: client, model: model}, nil
}

// Summarize sends the issue fields to Gemini and returns the analysis text.
// The collaborator only ever sees title, description, category, and address.
func (g *GeminiSummarizer) Summarize(ctx context.Context, input ports.SummarizeInput) (string, error) {
	prompt := buildPrompt(input)

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty analysis")
	}
	return text, nil
}

// Unavailable is a stand-in summarizer for deployments without an API key.
// Every call fails, which the issue service surfaces as a 503.
type Unavailable struct{}

func (Unavailable) Summarize(context.Context, ports.SummarizeInput) (string, error) {
	return "", fmt.Errorf("text generation is not configured")
}

func buildPrompt(input ports.SummarizeInput) string {
	var b strings.Builder
	b.WriteString("You are a municipal operations analyst. Summarize the following citizen-reported issue in two or three sentences, assess its likely priority, and note what city department should handle it.\n\n")
	fmt.Fprintf(&b, "Title: %s\n", input.Title)
	fmt.Fprintf(&b, "Category: %s\n", input.Category)
	fmt.Fprintf(&b, "Address: %s\n", input.Address)
	fmt.Fprintf(&b, "Description: %s\n", input.Description)
	return b.String()
}
