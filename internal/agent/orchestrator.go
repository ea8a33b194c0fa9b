package agent

import (
	"context"

	"go.uber.org/zap"

	"github.com/clipsight/clipsight/internal/config"
	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/pkg/logger"
)

// Transport is the remote tool surface the agent depends on. The concrete
// implementation lives in internal/transport; tests substitute a fake.
type Transport interface {
	Search(ctx context.Context, query string, maxResults int) ([]models.VideoSegment, error)
	ListVideos(ctx context.Context) ([]models.VideoMetadata, error)
	Synthesize(ctx context.Context, query string, segments []models.VideoSegment, tone string) (string, error)
	Ping(ctx context.Context) error
}

// SearchOrchestrator drives the two-step search flow: search the library,
// then synthesize an answer from the matching segments. It moves data and
// short-circuits failures; it never generates language itself.
type SearchOrchestrator struct {
	transport  Transport
	maxResults int
	minScore   float64
	tone       string
}

func NewSearchOrchestrator(t Transport, search *config.SearchConfig, synthesis *config.SynthesisConfig) *SearchOrchestrator {
	return &SearchOrchestrator{
		transport:  t,
		maxResults: search.MaxResults,
		minScore:   search.MinScore,
		tone:       synthesis.Tone,
	}
}

// Run executes search then synthesize for one query. An empty segment list
// is a valid outcome (no synthesis is issued); any transport failure is
// propagated unchanged.
func (o *SearchOrchestrator) Run(ctx context.Context, q models.Query) ([]models.VideoSegment, string, error) {
	maxResults := o.maxResults
	if q.MaxResults > 0 {
		maxResults = q.MaxResults
	}

	segments, err := o.transport.Search(ctx, q.Text, maxResults)
	if err != nil {
		return nil, "", err
	}

	if o.minScore > 0 {
		kept := segments[:0]
		for _, s := range segments {
			if s.Relevance >= o.minScore {
				kept = append(kept, s)
			}
		}
		segments = kept
	}

	if len(segments) == 0 {
		logger.FromContext(ctx).Info("search found no segments", zap.String("query", q.Text))
		return nil, "", nil
	}

	// Bound synthesis cost, keeping the backend's relevance order
	if len(segments) > maxResults {
		segments = segments[:maxResults]
	}

	answer, err := o.transport.Synthesize(ctx, q.Text, segments, o.tone)
	if err != nil {
		return nil, "", err
	}

	return segments, answer, nil
}
