package services

import (
	"context"
	"errors"
	"strings"

	"vitascreen/config"

	"google.golang.org/genai"
)

// TextGenerator is the outbound text-generation seam. The engine treats the
// provider as an opaque prompt-in/text-out service; a nil generator disables
// all AI paths and the engine runs purely deterministically.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator is the production TextGenerator backed by the Gemini API.
type GeminiGenerator struct {
	client          *genai.Client
	model           string
	temperature     float32
	maxOutputTokens int32
}

// NewGeminiGenerator builds a generator from config. Returns (nil, nil) when
// no API key is configured, which callers treat as "AI disabled".
func NewGeminiGenerator(cfg *config.Config) (TextGenerator, error) {
	if cfg.Gemini.ApiKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: cfg.Gemini.ApiKey})
	if err != nil {
		return nil, err
	}
	return &GeminiGenerator{
		client:          client,
		model:           cfg.Gemini.Model,
		temperature:     cfg.Gemini.Temperature,
		maxOutputTokens: cfg.Gemini.MaxOutputTokens,
	}, nil
}

// GenerateText runs one generation call. A safety-blocked candidate or an
// empty response is reported as an error so callers can fall back.
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](g.temperature),
		MaxOutputTokens: g.maxOutputTokens,
		CandidateCount:  1,
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", errors.New("generation blocked by safety filter")
	}
	text := cleanModelOutput(resp.Text())
	if text == "" {
		return "", errors.New("empty model response")
	}
	return text, nil
}

func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
