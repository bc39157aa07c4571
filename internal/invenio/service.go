package invenio

import (
	"context"
	"time"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/stats"
)

// Service combines the stats API client with an optional Redis cache.
// Yearly aggregation documents are expensive to assemble server-side, so
// normalized models are cached per community and year span.
type Service struct {
	client *Client
	cache  *Cache

	communityID string
	startYear   int
	endYear     int
}

// NewService creates a service for one community and year span. The cache
// may be nil, in which case every load hits the API.
func NewService(client *Client, cache *Cache, communityID string, startYear, endYear int) *Service {
	return &Service{
		client:      client,
		cache:       cache,
		communityID: communityID,
		startYear:   startYear,
		endYear:     endYear,
	}
}

// Client returns the underlying API client.
func (s *Service) Client() *Client {
	return s.client
}

// CommunityID returns the community this service is scoped to.
func (s *Service) CommunityID() string {
	return s.communityID
}

func (s *Service) key() CacheKey {
	return CacheKey{
		CommunityID: s.communityID,
		StartYear:   s.startYear,
		EndYear:     s.endYear,
	}
}

// Load returns the normalized statistics model, preferring the cache.
// Cache errors degrade to an API fetch; a fetch error is returned as-is.
func (s *Service) Load(ctx context.Context) (stats.Model, time.Time, error) {
	if s.cache != nil {
		if model, fetchedAt, ok, err := s.cache.Get(ctx, s.key()); err == nil && ok {
			return model, fetchedAt, nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh fetches fresh yearly blocks from the API, normalizes them and
// updates the cache. A failed cache write does not fail the refresh.
func (s *Service) Refresh(ctx context.Context) (stats.Model, time.Time, error) {
	raw, err := s.client.CommunityStats(ctx, s.communityID, s.startYear, s.endYear)
	if err != nil {
		return stats.Model{}, time.Time{}, err
	}

	model := stats.Normalize(raw)
	fetchedAt := time.Now().UTC()

	if s.cache != nil {
		_ = s.cache.Set(ctx, s.key(), model, fetchedAt)
	}
	return model, fetchedAt, nil
}
