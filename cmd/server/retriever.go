package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/agenthands/orderbot/internal/config"
	"github.com/agenthands/orderbot/internal/driver"
	"github.com/agenthands/orderbot/internal/llm"
	"github.com/agenthands/orderbot/internal/retrieval"
)

// buildRetriever connects the configured backend. The returned func releases its connections.
func buildRetriever(ctx context.Context, cfg *config.Config, embedder llm.EmbedderClient, lg *zap.Logger, initIndex bool) (retrieval.Retriever, func(), error) {
	var (
		newPartition func(index string) retrieval.Retriever
		closeFn      func()
	)

	switch strings.ToLower(cfg.Retrieval.Backend) {
	case "memgraph":
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, lg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Memgraph: %w", err)
		}
		if initIndex {
			var indices []driver.VectorIndex
			for _, name := range cfg.Retrieval.IndexNames() {
				indices = append(indices, driver.VectorIndex{
					Name:      name,
					Dimension: cfg.Retrieval.Dimension,
					Capacity:  cfg.Retrieval.Capacity,
				})
			}
			if err := d.BuildIndices(ctx, indices); err != nil {
				d.Close(ctx)
				return nil, nil, fmt.Errorf("failed to build indices: %w", err)
			}
		}
		newPartition = func(index string) retrieval.Retriever {
			return retrieval.NewMemgraphRetriever(d, embedder, index)
		}
		closeFn = func() { d.Close(context.Background()) }

	case "postgres":
		if cfg.Postgres.URL == "" {
			return nil, nil, fmt.Errorf("postgres.url (DATABASE_URL) is required for the postgres backend")
		}
		poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid database url: %w", err)
		}
		if cfg.Postgres.MaxConns > 0 {
			poolCfg.MaxConns = cfg.Postgres.MaxConns
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping Postgres: %w", err)
		}
		if initIndex {
			lg.Warn("-init-index only applies to the memgraph backend")
		}
		newPartition = func(table string) retrieval.Retriever {
			return retrieval.NewPgVectorRetriever(pool, embedder, table)
		}
		closeFn = pool.Close

	default:
		return nil, nil, fmt.Errorf("unsupported retrieval backend: %s", cfg.Retrieval.Backend)
	}

	if len(cfg.Retrieval.Partitions) == 0 {
		return newPartition(cfg.Retrieval.Index), closeFn, nil
	}

	partitions := make([]retrieval.Partition, 0, len(cfg.Retrieval.Partitions))
	for _, p := range cfg.Retrieval.Partitions {
		partitions = append(partitions, retrieval.Partition{
			Name:      p.Name,
			Retriever: newPartition(p.Index),
		})
	}
	return retrieval.NewPartitioned(partitions...), closeFn, nil
}
