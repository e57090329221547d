package core

import (
	"context"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/agenthands/orderbot/internal/core/model"
	"github.com/agenthands/orderbot/internal/core/normalize"
	"github.com/agenthands/orderbot/internal/core/prompt"
	"github.com/agenthands/orderbot/internal/llm"
	"github.com/agenthands/orderbot/internal/logger"
	"github.com/agenthands/orderbot/internal/retrieval"
)

const (
	DefaultTopK              = 5
	DefaultRetrievalTimeout  = 30 * time.Second
	DefaultCompletionTimeout = 60 * time.Second
	DefaultMaxQueryBytes     = 2048
)

// Orchestrator answers a query: retrieve, normalize, build the prompt, complete.
// It keeps no per-request state and is safe for concurrent use.
type Orchestrator struct {
	Retriever retrieval.Retriever
	LLM       llm.LLMClient
	Assembler *prompt.Assembler

	topK              int
	retrievalTimeout  time.Duration
	completionTimeout time.Duration
	maxQueryBytes     int
	logger            *zap.Logger

	degraded atomic.Uint64
}

type Option func(*Orchestrator)

func WithTopK(k int) Option {
	return func(o *Orchestrator) {
		if k > 0 {
			o.topK = k
		}
	}
}

func WithAssembler(a *prompt.Assembler) Option {
	return func(o *Orchestrator) {
		if a != nil {
			o.Assembler = a
		}
	}
}

// WithRetrievalTimeout bounds the retrieval call; zero disables the bound.
func WithRetrievalTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.retrievalTimeout = d }
}

// WithCompletionTimeout bounds the completion call; zero disables the bound.
func WithCompletionTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.completionTimeout = d }
}

// WithMaxQueryBytes caps the query before it is used; zero disables the cap.
func WithMaxQueryBytes(n int) Option {
	return func(o *Orchestrator) { o.maxQueryBytes = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger.OrNop(l) }
}

func NewOrchestrator(r retrieval.Retriever, c llm.LLMClient, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		Retriever:         r,
		LLM:               c,
		Assembler:         prompt.NewAssembler(""),
		topK:              DefaultTopK,
		retrievalTimeout:  DefaultRetrievalTimeout,
		completionTimeout: DefaultCompletionTimeout,
		maxQueryBytes:     DefaultMaxQueryBytes,
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Handle runs one query. Gateway failures come back as *RetrievalError or *CompletionError;
// malformed catalog data never fails a request.
func (o *Orchestrator) Handle(ctx context.Context, query string) (*model.QueryResponse, error) {
	query = CapQuery(query, o.maxQueryBytes)

	raws, err := o.retrieve(ctx, query)
	if err != nil {
		return nil, &RetrievalError{Cause: err}
	}

	items := make([]model.NormalizedItem, 0, len(raws))
	for i, raw := range raws {
		item, issues := normalize.ItemWithIssues(raw)
		if len(issues) > 0 {
			o.degraded.Add(1)
			o.logger.Debug("degraded catalog record",
				zap.Int("rank", i+1),
				zap.String("name", item.Name),
				zap.Stringers("issues", issues))
		}
		items = append(items, item)
	}

	answer, err := o.complete(ctx, o.Assembler.Build(items, query))
	if err != nil {
		return nil, &CompletionError{Cause: err}
	}

	return &model.QueryResponse{
		Matches:        items,
		Recommendation: answer,
	}, nil
}

// DegradedRecords counts candidates that needed at least one default since start-up.
func (o *Orchestrator) DegradedRecords() uint64 {
	return o.degraded.Load()
}

func (o *Orchestrator) retrieve(ctx context.Context, query string) ([]model.RawCandidate, error) {
	ctx, cancel := withTimeout(ctx, o.retrievalTimeout)
	defer cancel()

	results, err := o.Retriever.Search(ctx, query, o.topK)
	if err != nil {
		return nil, err
	}
	// A missing key means no candidates.
	return results[query], nil
}

func (o *Orchestrator) complete(ctx context.Context, p string) (string, error) {
	ctx, cancel := withTimeout(ctx, o.completionTimeout)
	defer cancel()

	return o.LLM.Generate(ctx, p)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// CapQuery truncates q to at most max bytes without splitting a UTF-8 sequence.
func CapQuery(q string, max int) string {
	if max <= 0 || len(q) <= max {
		return q
	}
	for max > 0 && !utf8.RuneStart(q[max]) {
		max--
	}
	return q[:max]
}
