package retrieval

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/orderbot/internal/core/model"
	"github.com/agenthands/orderbot/internal/driver"
)

type MockDriver struct {
	QueryExecuted string
	QueryParams   map[string]interface{}
	MockResult    neo4j.EagerResult
	Err           error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.QueryExecuted = query
	m.QueryParams = params
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context, indices []driver.VectorIndex) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

type MockEmbedder struct {
	Vector []float32
	Err    error
	Texts  []string
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.Texts = append(m.Texts, text)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Vector, nil
}

type MockRetriever struct {
	Candidates []model.RawCandidate
	Err        error
	TopK       int
}

func (m *MockRetriever) Search(ctx context.Context, query string, topK int) (map[string][]model.RawCandidate, error) {
	m.TopK = topK
	if m.Err != nil {
		return nil, m.Err
	}
	return map[string][]model.RawCandidate{query: m.Candidates}, nil
}

// MockQuerier serves canned rows the way *pgxpool.Pool would.
type MockQuerier struct {
	SQL  string
	Args []any
	Rows *mockRows
	Err  error
}

func (m *MockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	m.SQL = sql
	m.Args = args
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Rows, nil
}

type mockRows struct {
	fields []string
	values [][]any
	pos    int
	err    error
	closed bool
}

func newMockRows(fields []string, values ...[]any) *mockRows {
	return &mockRows{fields: fields, values: values}
}

func (r *mockRows) Close()                        { r.closed = true }
func (r *mockRows) Err() error                    { return r.err }
func (r *mockRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *mockRows) RawValues() [][]byte           { return nil }
func (r *mockRows) Conn() *pgx.Conn               { return nil }
func (r *mockRows) Scan(dest ...any) error        { return nil }

func (r *mockRows) FieldDescriptions() []pgconn.FieldDescription {
	out := make([]pgconn.FieldDescription, len(r.fields))
	for i, f := range r.fields {
		out[i] = pgconn.FieldDescription{Name: f}
	}
	return out
}

func (r *mockRows) Next() bool {
	if r.pos >= len(r.values) {
		return false
	}
	r.pos++
	return true
}

func (r *mockRows) Values() ([]any, error) {
	return r.values[r.pos-1], nil
}
