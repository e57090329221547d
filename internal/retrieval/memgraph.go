package retrieval

import (
	"context"
	"fmt"

	"github.com/agenthands/orderbot/internal/core/model"
	"github.com/agenthands/orderbot/internal/driver"
	"github.com/agenthands/orderbot/internal/llm"
)

// MemgraphRetriever searches a Memgraph vector index of MenuItem nodes.
type MemgraphRetriever struct {
	Driver   driver.GraphDriver
	Embedder llm.EmbedderClient
	Index    string
}

func NewMemgraphRetriever(d driver.GraphDriver, embedder llm.EmbedderClient, index string) *MemgraphRetriever {
	return &MemgraphRetriever{
		Driver:   d,
		Embedder: embedder,
		Index:    index,
	}
}

func (r *MemgraphRetriever) Search(ctx context.Context, query string, topK int) (map[string][]model.RawCandidate, error) {
	if r.Embedder == nil {
		return nil, ErrNoEmbedder
	}

	vec, err := r.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	params := map[string]interface{}{
		"index_name": r.Index,
		"limit":      topK,
		"embedding":  vec,
	}

	result, err := r.Driver.ExecuteQuery(ctx, driver.SearchMenuItemsQuery, params)
	if err != nil {
		return nil, fmt.Errorf("vector search on %s failed: %w", r.Index, err)
	}

	candidates := make([]model.RawCandidate, 0, len(result.Records))
	for _, record := range result.Records {
		c := make(model.RawCandidate, len(record.Keys))
		for i, key := range record.Keys {
			if i < len(record.Values) {
				c[key] = record.Values[i]
			}
		}
		candidates = append(candidates, c)
	}

	return map[string][]model.RawCandidate{query: candidates}, nil
}
