package contentstore

import (
	"context"
	"errors"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
)

// CachedStore reads and writes through the authoritative store and mirrors
// every success into a local cache. The cache answers reads only while the
// authoritative store is unreachable.
type CachedStore struct {
	primary Accessor
	cache   Accessor
	logger  *logging.ChanneledLogger
}

func NewCachedStore(primary, cache Accessor, logger *logging.ChanneledLogger) *CachedStore {
	return &CachedStore{
		primary: primary,
		cache:   cache,
		logger:  logger,
	}
}

func (s *CachedStore) Get(ctx context.Context, name string) (content.Section, bool, error) {
	data, found, err := s.primary.Get(ctx, name)
	if err == nil {
		if found {
			s.mirror(ctx, name, data)
		}
		return data, found, nil
	}
	if !errors.Is(err, ErrUnreachable) {
		return nil, false, err
	}

	s.logger.Content().Warn("Content store unreachable, serving cached section", "section", name, "error", err.Error())
	cached, ok, cacheErr := s.cache.Get(ctx, name)
	if cacheErr != nil || !ok {
		return nil, false, err
	}
	return cached, true, nil
}

// Set fails when the authoritative write fails; the cache never accepts a
// write the authoritative store did not.
func (s *CachedStore) Set(ctx context.Context, name string, data content.Section) error {
	if err := s.primary.Set(ctx, name, data); err != nil {
		return err
	}
	s.mirror(ctx, name, data)
	return nil
}

func (s *CachedStore) mirror(ctx context.Context, name string, data content.Section) {
	if err := s.cache.Set(ctx, name, data); err != nil {
		s.logger.Content().Warn("Failed to refresh local content cache", "section", name, "error", err.Error())
	}
}
