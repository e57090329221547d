package core

import (
	"context"
	"sync"

	"github.com/agenthands/orderbot/internal/core/model"
)

type MockRetriever struct {
	Results map[string][]model.RawCandidate
	Err     error
	// Block waits for ctx to end before returning.
	Block bool

	mu      sync.Mutex
	Queries []string
	TopKs   []int
}

func (m *MockRetriever) Search(ctx context.Context, query string, topK int) (map[string][]model.RawCandidate, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	m.TopKs = append(m.TopKs, topK)
	m.mu.Unlock()

	if m.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}

type MockLLM struct {
	Response string
	Err      error
	Block    bool

	mu      sync.Mutex
	Prompts []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()

	if m.Block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
