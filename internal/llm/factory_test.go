package llm

import (
	"context"
	"testing"

	"github.com/agenthands/orderbot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	for _, provider := range []string{"openai", "Groq", "ollama", "claude"} {
		c, err := NewClient(ctx, config.LLMConfig{Provider: provider, Model: "m", APIKey: "k"})
		require.NoError(t, err, provider)
		assert.NotNil(t, c, provider)
	}

	_, err := NewClient(ctx, config.LLMConfig{Provider: "watson"})
	assert.EqualError(t, err, "unsupported llm provider: watson")
}

func TestNewClient_ClaudeMaxTokens(t *testing.T) {
	c, err := NewClient(context.Background(), config.LLMConfig{Provider: "claude", Model: "m", MaxTokens: 256})
	require.NoError(t, err)
	assert.Equal(t, 256, c.(*ClaudeClient).maxTokens)

	c, err = NewClient(context.Background(), config.LLMConfig{Provider: "claude", Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, defaultClaudeMaxTokens, c.(*ClaudeClient).maxTokens)
}

func TestNewEmbedder(t *testing.T) {
	ctx := context.Background()

	e, err := NewEmbedder(ctx, config.LLMConfig{Provider: "openai", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", e.(*OpenAIClient).embeddingModel)

	e, err = NewEmbedder(ctx, config.LLMConfig{Provider: "ollama", Model: "nomic-embed-text"})
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", e.(*OpenAIClient).embeddingModel)

	_, err = NewEmbedder(ctx, config.LLMConfig{Provider: "groq"})
	assert.Error(t, err)
	_, err = NewEmbedder(ctx, config.LLMConfig{Provider: "claude"})
	assert.Error(t, err)
	_, err = NewEmbedder(ctx, config.LLMConfig{Provider: ""})
	assert.Error(t, err)
}

func TestOllamaURL(t *testing.T) {
	assert.Equal(t, "http://localhost:11434/v1", ollamaURL(""))
	assert.Equal(t, "http://ollama:11434/v1", ollamaURL("http://ollama:11434/"))
	assert.Equal(t, "http://ollama:11434/v1", ollamaURL("http://ollama:11434/v1"))
	assert.Equal(t, "ollama", ollamaKey(""))
	assert.Equal(t, "k", ollamaKey("k"))
}
