// Package retrieval supplies ranked catalog candidates for a query.
//
// Backends return raw records keyed by the exact query string they were given. Ranking
// happens here or below; callers treat the returned order as authoritative.
package retrieval

import (
	"context"
	"errors"

	"github.com/agenthands/orderbot/internal/core/model"
)

type Retriever interface {
	Search(ctx context.Context, query string, topK int) (map[string][]model.RawCandidate, error)
}

var ErrNoEmbedder = errors.New("retriever has no embedder configured")
