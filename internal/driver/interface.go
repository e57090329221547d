package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error)
	BuildIndices(ctx context.Context, indices []VectorIndex) error
	Close(ctx context.Context) error
}

// VectorIndex describes a Memgraph vector index over MenuItem embeddings.
type VectorIndex struct {
	Name      string
	Dimension int
	Capacity  int
}
