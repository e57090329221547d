package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/orderbot/internal/config"
)

const (
	groqBaseURL   = "https://api.groq.com/openai/v1"
	ollamaBaseURL = "http://localhost:11434"
)

// NewClient builds the completion client for cfg.Provider.
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, "", cfg.BaseURL).WithMaxTokens(cfg.MaxTokens), nil

	case "groq":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = groqBaseURL
		}
		return NewOpenAIClient(cfg.APIKey, cfg.Model, "", baseURL).WithMaxTokens(cfg.MaxTokens), nil

	case "ollama":
		return NewOpenAIClient(ollamaKey(cfg.APIKey), cfg.Model, "", ollamaURL(cfg.BaseURL)).WithMaxTokens(cfg.MaxTokens), nil

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, "")
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return c.WithMaxTokens(cfg.MaxTokens), nil

	case "claude":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL).WithMaxTokens(cfg.MaxTokens), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}

// NewEmbedder builds the query embedder for cfg.Provider; cfg.Model is the embedding model.
func NewEmbedder(ctx context.Context, cfg config.LLMConfig) (EmbedderClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, "", cfg.Model, cfg.BaseURL), nil

	case "ollama":
		return NewOpenAIClient(ollamaKey(cfg.APIKey), "", cfg.Model, ollamaURL(cfg.BaseURL)), nil

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, "", cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return c, nil

	case "groq", "claude":
		return nil, fmt.Errorf("llm provider %s does not support embeddings", provider)

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}

// Ollama serves the OpenAI API under /v1 and ignores the key, but the client requires one.
func ollamaURL(baseURL string) string {
	if baseURL == "" {
		baseURL = ollamaBaseURL
	}
	if !strings.HasSuffix(baseURL, "/v1") {
		baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
	}
	return baseURL
}

func ollamaKey(apiKey string) string {
	if apiKey == "" {
		return "ollama"
	}
	return apiKey
}
