package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashimpk07/FMPortal-sub002/internal/cache"
	"github.com/hashimpk07/FMPortal-sub002/internal/domain"
	"github.com/hashimpk07/FMPortal-sub002/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const centreCacheKey = "fmportal:centres"

// CentreFetcher is the gateway surface the centre service needs.
type CentreFetcher interface {
	FetchCentres(ctx context.Context) ([]domain.Centre, error)
}

// CentreService loads the list of centres the dashboard can filter by. The
// list changes rarely, so it is cached for the session and concurrent loads
// are collapsed into one gateway call.
type CentreService struct {
	fetcher CentreFetcher
	cache   cache.Cache
	store   *store.Store
	logger  *zap.Logger
	ttl     time.Duration
	group   singleflight.Group
}

// NewCentreService creates a new CentreService instance. The cache may be
// nil, in which case every call goes to the gateway.
func NewCentreService(fetcher CentreFetcher, c cache.Cache, st *store.Store, ttl time.Duration, logger *zap.Logger) *CentreService {
	return &CentreService{
		fetcher: fetcher,
		cache:   c,
		store:   st,
		logger:  logger,
		ttl:     ttl,
	}
}

// Centres returns the centre list, serving from the session cache when
// fresh. The fetched list is written into the store so dashboard snapshots
// include it.
func (s *CentreService) Centres(ctx context.Context) ([]domain.Centre, error) {
	if s.cache != nil {
		var cached []domain.Centre
		err := s.cache.Get(ctx, centreCacheKey, &cached)
		if err == nil {
			s.store.SetCentres(cached)
			return cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("centre cache read failed", zap.Error(err))
		}
	}

	s.store.SetCentresLoading(true)
	defer s.store.SetCentresLoading(false)

	v, err, _ := s.group.Do(centreCacheKey, func() (interface{}, error) {
		centres, err := s.fetcher.FetchCentres(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, centreCacheKey, centres, s.ttl); err != nil {
				s.logger.Warn("centre cache write failed", zap.Error(err))
			}
		}
		return centres, nil
	})
	if err != nil {
		s.logger.Error("failed to load centres", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCentresUnavailable, err)
	}

	centres := v.([]domain.Centre)
	s.store.SetCentres(centres)
	return centres, nil
}
