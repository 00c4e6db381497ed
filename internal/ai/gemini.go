package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/wastewise/wastewise-backend/pkg/config"
)

// ErrDisabled is returned when no remote provider is configured.
var ErrDisabled = errors.New("completion provider disabled")

// ErrEmptyCompletion is returned when the vendor answered with no text.
var ErrEmptyCompletion = errors.New("empty completion")

// Gemini calls Google's Gemini API for short completions.
type Gemini struct {
	client *genai.Client
	cfg    config.GeminiConfig
}

// NewGemini builds the Gemini-backed provider. Returns Disabled behaviour
// via error when no API key is set; callers should fall back to Disabled.
func NewGemini(ctx context.Context, cfg config.GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, ErrDisabled
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Gemini{client: client, cfg: cfg}, nil
}

// Enabled reports that the remote vendor is reachable by configuration.
func (g *Gemini) Enabled() bool { return true }

// Complete sends the prompt and returns the trimmed single completion.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.cfg.Temperature),
		MaxOutputTokens: g.cfg.MaxOutputTokens,
		TopP:            genai.Ptr(g.cfg.TopP),
		TopK:            genai.Ptr(g.cfg.TopK),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
