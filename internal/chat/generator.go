// Package chat runs an interactive question/answer loop against a hosted
// text-generation model.
package chat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gramcli/gram/internal/config"
	"google.golang.org/genai"
)

// ErrNoAPIKey is returned when no API key is configured.
var ErrNoAPIKey = errors.New("no API key: set GEMINI_API_KEY or chat.api_key")

// APIKeyEnv lists the environment variables checked for a key, in order.
var APIKeyEnv = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}

// Generator produces one answer for one prompt.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// GeneratorFactory builds a Generator for an API key.
type GeneratorFactory func(ctx context.Context, apiKey string) (Generator, error)

// APIKey returns the first key found in the environment, else the one
// from the config file.
func APIKey(cfg config.ChatConfig) string {
	for _, name := range APIKeyEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return strings.TrimSpace(cfg.APIKey)
}

// GenAI is a Generator backed by the Gemini API.
type GenAI struct {
	client *genai.Client
}

// NewGenAI creates a Gemini API client.
func NewGenAI(ctx context.Context, apiKey string) (Generator, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenAI{client: client}, nil
}

// Generate sends prompt to model and returns the text of the reply.
func (g *GenAI) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty response")
	}
	return text, nil
}
