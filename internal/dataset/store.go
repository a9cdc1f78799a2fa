package dataset

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/lueurxax/coverage-dashboard/internal/platform/observability"
)

// Store memoises whole-file loads keyed by absolute path.
// Entries never expire: the source file does not change during a session.
// Failed loads are not cached, so a later call retries the read.
type Store struct {
	schema Schema
	tables *cache.Cache
	group  singleflight.Group
	logger *zerolog.Logger
}

// NewStore creates a load memo that parses files with schema.
func NewStore(schema Schema, logger *zerolog.Logger) *Store {
	return &Store{
		schema: schema,
		tables: cache.New(cache.NoExpiration, 0),
		logger: logger,
	}
}

// Get returns the table for path, loading it on first use.
// Concurrent first calls for the same path share a single read.
func (s *Store) Get(path string) (*Table, error) {
	key := cacheKey(path)

	if v, ok := s.tables.Get(key); ok {
		return v.(*Table), nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		if v, ok := s.tables.Get(key); ok {
			return v, nil
		}

		start := time.Now()

		t, err := Load(path, s.schema)
		observability.DatasetLoadDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			observability.DatasetLoads.WithLabelValues(observability.LoadStatusError).Inc()
			return nil, err
		}

		s.tables.Set(key, t, cache.NoExpiration)

		observability.DatasetLoads.WithLabelValues(observability.LoadStatusOK).Inc()
		observability.DatasetRows.Set(float64(t.Len()))
		observability.DatasetColumns.Set(float64(len(t.columns)))

		s.logger.Info().
			Str("path", key).
			Int("rows", t.Len()).
			Int("columns", len(t.columns)).
			Dur("took", time.Since(start)).
			Msg("Dataset loaded")

		return t, nil
	})
	if err != nil {
		return nil, err
	}

	t, ok := v.(*Table)
	if !ok {
		return nil, fmt.Errorf("unexpected cached value %T", v)
	}

	return t, nil
}

// Loaded reports whether path has been loaded successfully.
func (s *Store) Loaded(path string) bool {
	_, ok := s.tables.Get(cacheKey(path))
	return ok
}

func cacheKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}

	return abs
}
