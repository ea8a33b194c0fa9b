// Package agent composes the query pipeline: classify the question, run it
// against the remote tool surface, and assemble one AgentResponse. Every
// internal failure is converted at this boundary; callers never see a
// propagating error except their own cancellation.
package agent

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clipsight/clipsight/internal/config"
	"github.com/clipsight/clipsight/internal/intent"
	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/transport"
	"github.com/clipsight/clipsight/pkg/logger"
)

// Agent is the public entry point for video intelligence queries.
// It holds no mutable state; concurrent queries share only the
// transport's connection pool.
type Agent struct {
	transport    Transport
	orchestrator *SearchOrchestrator
	engine       *RecommendationEngine
	assembler    *Assembler
}

// New creates an agent backed by the configured HTTP transport
func New(cfg *config.Config) *Agent {
	return NewWithTransport(cfg, transport.New(&cfg.Backend))
}

// NewWithTransport creates an agent over an explicit transport,
// primarily for tests
func NewWithTransport(cfg *config.Config, t Transport) *Agent {
	return &Agent{
		transport:    t,
		orchestrator: NewSearchOrchestrator(t, &cfg.Search, &cfg.Synthesis),
		engine:       NewRecommendationEngine(t, &cfg.Search),
		assembler:    NewAssembler(&cfg.Search),
	}
}

// Query processes one natural-language question. The returned error is
// non-nil only when ctx was cancelled; every other failure surfaces as a
// success:false response.
func (a *Agent) Query(ctx context.Context, text string) (models.AgentResponse, error) {
	ctx = logger.ContextWithQueryID(ctx, uuid.NewString())
	log := logger.FromContext(ctx)

	cleaned := intent.Clean(text)
	classified := intent.Classify(cleaned)
	log.Info("query received",
		zap.String("intent", classified.String()),
		zap.Int("length", len(cleaned)),
	)

	if classified == models.IntentRecommend {
		return a.recommend(ctx, cleaned)
	}
	return a.search(ctx, models.Query{Text: cleaned})
}

// GetRecommendations returns catalog recommendations for an optional hint
func (a *Agent) GetRecommendations(ctx context.Context, hint string) (models.AgentResponse, error) {
	ctx = logger.ContextWithQueryID(ctx, uuid.NewString())
	return a.recommend(ctx, intent.Clean(hint))
}

// ListVideos is the explicit catalog entry point: the full library in
// backend order, untruncated
func (a *Agent) ListVideos(ctx context.Context) (models.AgentResponse, error) {
	ctx = logger.ContextWithQueryID(ctx, uuid.NewString())

	videos, err := a.engine.List(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return models.AgentResponse{}, ctx.Err()
		}
		return a.assembler.FailureResponse(err), nil
	}
	return a.assembler.RecommendationResponse(videos, OrderDefault), nil
}

// Ping checks backend reachability
func (a *Agent) Ping(ctx context.Context) error {
	return a.transport.Ping(ctx)
}

func (a *Agent) search(ctx context.Context, q models.Query) (models.AgentResponse, error) {
	segments, answer, err := a.orchestrator.Run(ctx, q)
	if err != nil {
		if ctx.Err() != nil {
			return models.AgentResponse{}, ctx.Err()
		}
		logger.FromContext(ctx).Warn("search pipeline failed", zap.Error(err))
		return a.assembler.FailureResponse(err), nil
	}

	if len(segments) == 0 {
		return a.assembler.NoMatchResponse(q), nil
	}
	return a.assembler.SearchResponse(q, segments, answer), nil
}

func (a *Agent) recommend(ctx context.Context, hint string) (models.AgentResponse, error) {
	videos, ordering, err := a.engine.Run(ctx, hint)
	if err != nil {
		if ctx.Err() != nil {
			return models.AgentResponse{}, ctx.Err()
		}
		logger.FromContext(ctx).Warn("recommendation pipeline failed", zap.Error(err))
		return a.assembler.FailureResponse(err), nil
	}
	return a.assembler.RecommendationResponse(videos, ordering), nil
}

// ==================== Blocking wrappers ====================

// QuerySync runs Query to completion on the caller's behalf. It carries no
// extra logic and is safe for concurrent use.
func (a *Agent) QuerySync(text string) models.AgentResponse {
	resp, _ := a.Query(context.Background(), text)
	return resp
}

// GetRecommendationsSync runs GetRecommendations to completion
func (a *Agent) GetRecommendationsSync(hint string) models.AgentResponse {
	resp, _ := a.GetRecommendations(context.Background(), hint)
	return resp
}
