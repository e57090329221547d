package retrieval

import (
	"context"
	"fmt"
	"sort"

	"github.com/agenthands/orderbot/internal/core/model"
	"github.com/agenthands/orderbot/internal/core/normalize"
)

type Partition struct {
	Name      string
	Retriever Retriever
}

// Partitioned searches several catalog partitions and keeps the topK most similar candidates
// overall. Ties keep partition order. Candidates without a source tag get the partition name.
type Partitioned struct {
	Partitions []Partition
}

func NewPartitioned(partitions ...Partition) *Partitioned {
	return &Partitioned{Partitions: partitions}
}

func (p *Partitioned) Search(ctx context.Context, query string, topK int) (map[string][]model.RawCandidate, error) {
	var merged []model.RawCandidate

	for _, part := range p.Partitions {
		res, err := part.Retriever.Search(ctx, query, topK)
		if err != nil {
			return nil, fmt.Errorf("partition %s: %w", part.Name, err)
		}
		for _, c := range res[query] {
			merged = append(merged, tagged(c, part.Name))
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return similarityOf(merged[i]) > similarityOf(merged[j])
	})
	if topK >= 0 && len(merged) > topK {
		merged = merged[:topK]
	}
	if merged == nil {
		merged = []model.RawCandidate{}
	}

	return map[string][]model.RawCandidate{query: merged}, nil
}

func tagged(c model.RawCandidate, partition string) model.RawCandidate {
	if s, ok := c[model.KeySourceFile].(string); ok && s != "" {
		return c
	}
	out := make(model.RawCandidate, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[model.KeySourceFile] = partition
	return out
}

func similarityOf(c model.RawCandidate) float64 {
	return normalize.Item(model.RawCandidate{model.KeySimilarity: c[model.KeySimilarity]}).Similarity
}
