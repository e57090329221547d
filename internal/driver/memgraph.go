package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/agenthands/orderbot/internal/logger"
)

type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
	logger *zap.Logger
}

func NewMemgraphDriver(ctx context.Context, uri, username, password string, lg *zap.Logger) (*MemgraphDriver, error) {
	lg = logger.OrNop(lg)

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to reach memgraph at %s: %w", uri, err)
	}

	lg.Info("connected to memgraph", zap.String("uri", uri))
	return &MemgraphDriver{Driver: driver, logger: lg}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

// BuildIndices creates the vector indices the retriever searches. Existing indices are left alone.
func (d *MemgraphDriver) BuildIndices(ctx context.Context, indices []VectorIndex) error {
	queries := []string{CreateMenuItemLabelIndexQuery}
	for _, idx := range indices {
		queries = append(queries, CreateVectorIndexQuery(idx))
	}

	for _, q := range queries {
		if _, err := d.ExecuteQuery(ctx, q, nil); err != nil {
			// Memgraph has no IF NOT EXISTS for these, so a failure usually means the index is there.
			d.logger.Warn("failed to create index", zap.String("query", q), zap.Error(err))
		}
	}

	return nil
}
