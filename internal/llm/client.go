package llm

import (
	"context"
)

// LLMClient completes a prompt with a single blocking call.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
