package retrieval

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/agenthands/orderbot/internal/core/model"
	"github.com/agenthands/orderbot/internal/llm"
)

// Querier is the part of *pgxpool.Pool the retriever needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PgVectorRetriever searches a Postgres table with a pgvector embedding column.
// Prices are read as text so numeric and formatted columns look the same to the normalizer.
type PgVectorRetriever struct {
	DB       Querier
	Embedder llm.EmbedderClient
	Table    string
}

func NewPgVectorRetriever(db Querier, embedder llm.EmbedderClient, table string) *PgVectorRetriever {
	return &PgVectorRetriever{
		DB:       db,
		Embedder: embedder,
		Table:    table,
	}
}

func SearchMenuItemsSQL(table string) string {
	return fmt.Sprintf(`
		SELECT category AS "Category",
			name AS "Name",
			description AS "Description",
			price::text AS "Price",
			old_price::text AS "Old_Price",
			image_url AS "Image_URL",
			source_file,
			1 - (embedding <=> $1) AS similarity
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2`, pgx.Identifier{table}.Sanitize())
}

func (r *PgVectorRetriever) Search(ctx context.Context, query string, topK int) (map[string][]model.RawCandidate, error) {
	if r.Embedder == nil {
		return nil, ErrNoEmbedder
	}

	vec, err := r.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	rows, err := r.DB.Query(ctx, SearchMenuItemsSQL(r.Table), pgvector.NewVector(vec), topK)
	if err != nil {
		return nil, fmt.Errorf("vector search on %s failed: %w", r.Table, err)
	}

	defer rows.Close()

	candidates := []model.RawCandidate{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read search result from %s: %w", r.Table, err)
		}
		fields := rows.FieldDescriptions()
		c := make(model.RawCandidate, len(fields))
		for i, f := range fields {
			if i < len(values) {
				c[f.Name] = values[i]
			}
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read search results from %s: %w", r.Table, err)
	}

	return map[string][]model.RawCandidate{query: candidates}, nil
}
