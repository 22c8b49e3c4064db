package catalog

import (
	"errors"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/conduit-lang/propls/internal/properties"
)

const (
	DefaultTTL             = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// Store serves the merged catalog of a list of files. Parsed files are cached
// by path until they expire or are invalidated. Returned catalogs are never
// mutated afterwards, so callers may use them without locking.
type Store struct {
	mu     sync.RWMutex
	paths  []string
	cache  *gocache.Cache
	logger *zap.Logger

	// loader is swapped in tests.
	loader func(path string) (*properties.ConfigurationMetadata, error)
}

// NewStore creates a store over the given files. A zero ttl uses DefaultTTL.
func NewStore(paths []string, ttl time.Duration, logger *zap.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		paths:  append([]string(nil), paths...),
		cache:  gocache.New(ttl, DefaultCleanupInterval),
		logger: logger,
		loader: LoadFile,
	}
}

// Paths returns the catalog files in precedence order.
func (s *Store) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.paths...)
}

// SetPaths replaces the catalog files and drops every cached entry.
func (s *Store) SetPaths(paths []string) {
	s.mu.Lock()
	s.paths = append([]string(nil), paths...)
	s.mu.Unlock()
	s.cache.Flush()
}

// Load returns the merged catalog. Files that fail to load are skipped and
// their errors returned joined; the catalog of the remaining files is still
// returned.
func (s *Store) Load() (*properties.ConfigurationMetadata, error) {
	var (
		catalogs []*properties.ConfigurationMetadata
		errs     []error
	)
	for _, path := range s.Paths() {
		metadata, err := s.file(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		catalogs = append(catalogs, metadata)
	}
	return Merge(catalogs...), errors.Join(errs...)
}

// Properties implements properties.Catalog. Load errors are logged.
func (s *Store) Properties() []*properties.ItemMetadata {
	metadata, err := s.Load()
	if err != nil {
		s.logger.Warn("catalog loaded with errors", zap.Error(err))
	}
	return metadata.Items
}

// Invalidate drops the cached catalog of path.
func (s *Store) Invalidate(path string) {
	s.cache.Delete(path)
	s.logger.Debug("catalog invalidated", zap.String("path", path))
}

func (s *Store) file(path string) (*properties.ConfigurationMetadata, error) {
	if cached, found := s.cache.Get(path); found {
		if metadata, ok := cached.(*properties.ConfigurationMetadata); ok {
			return metadata, nil
		}
		s.logger.Error("wrong type in catalog cache", zap.String("path", path))
	}

	metadata, err := s.loader(path)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(path, metadata)
	s.logger.Debug("catalog loaded",
		zap.String("path", path),
		zap.Int("properties", len(metadata.Items)),
		zap.Int("hints", len(metadata.Hints)))
	return metadata, nil
}
