package agent

import (
	"context"
	"sort"
	"strings"

	"github.com/clipsight/clipsight/internal/config"
	"github.com/clipsight/clipsight/internal/models"
)

// Ordering names the sort policy a recommendation request resolved to
type Ordering int

const (
	OrderDefault Ordering = iota // featured first, then by view count
	OrderPopular
	OrderLatest
	OrderFeatured
)

// RecommendationEngine fetches the catalog and applies at most one ordering
// derived from the hint text. Ordering always sees the full catalog;
// truncation happens last.
type RecommendationEngine struct {
	transport  Transport
	maxResults int
}

func NewRecommendationEngine(t Transport, search *config.SearchConfig) *RecommendationEngine {
	return &RecommendationEngine{transport: t, maxResults: search.MaxResults}
}

// Run returns at most maxResults catalog entries ordered per the hint
func (e *RecommendationEngine) Run(ctx context.Context, hint string) ([]models.VideoMetadata, Ordering, error) {
	videos, err := e.transport.ListVideos(ctx)
	if err != nil {
		return nil, OrderDefault, err
	}

	ordering := resolveOrdering(hint)
	ordered := applyOrdering(videos, ordering)

	if len(ordered) > e.maxResults {
		ordered = ordered[:e.maxResults]
	}
	return ordered, ordering, nil
}

// List returns the full catalog in backend order, untruncated
func (e *RecommendationEngine) List(ctx context.Context) ([]models.VideoMetadata, error) {
	return e.transport.ListVideos(ctx)
}

func resolveOrdering(hint string) Ordering {
	h := strings.ToLower(hint)
	switch {
	case strings.Contains(h, "popular") || strings.Contains(h, "most viewed") || strings.Contains(h, "top"):
		return OrderPopular
	case strings.Contains(h, "latest") || strings.Contains(h, "newest") || strings.Contains(h, "recent"):
		return OrderLatest
	case strings.Contains(h, "featured"):
		return OrderFeatured
	default:
		return OrderDefault
	}
}

func applyOrdering(videos []models.VideoMetadata, ordering Ordering) []models.VideoMetadata {
	switch ordering {
	case OrderPopular:
		ordered := append([]models.VideoMetadata(nil), videos...)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].ViewCount > ordered[j].ViewCount
		})
		return ordered

	case OrderLatest:
		ordered := append([]models.VideoMetadata(nil), videos...)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].PublishDate > ordered[j].PublishDate
		})
		return ordered

	case OrderFeatured:
		var featured []models.VideoMetadata
		for _, v := range videos {
			if v.Featured {
				featured = append(featured, v)
			}
		}
		return featured

	default:
		// Featured first in catalog order, the rest by view count
		var featured, rest []models.VideoMetadata
		for _, v := range videos {
			if v.Featured {
				featured = append(featured, v)
			} else {
				rest = append(rest, v)
			}
		}
		sort.SliceStable(rest, func(i, j int) bool {
			return rest[i].ViewCount > rest[j].ViewCount
		})
		return append(featured, rest...)
	}
}
