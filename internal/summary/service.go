package summary

import (
	"fmt"
	"sync"

	"codex/internal/cache"
)

// DefaultCacheSize bounds each of the service's read-through caches.
const DefaultCacheSize = 100

// Service wraps a Store with read-through LRU caches for repeat lookups.
// All cache access is serialized behind a single mutex; the caches
// themselves do no locking. Any write clears both caches wholesale — a new
// summary can affect transitively many cached search results, so per-key
// invalidation is deliberately not attempted.
type Service struct {
	store *Store

	mu          sync.Mutex
	getCache    *cache.LRU[string, *Record]
	searchCache *cache.LRU[string, []SearchResult]
}

// NewService creates a Service over store with the given cache capacity
// (DefaultCacheSize when size is 0 or negative).
func NewService(store *Store, size int) *Service {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Service{
		store:       store,
		getCache:    cache.New[string, *Record](size),
		searchCache: cache.New[string, []SearchResult](size),
	}
}

// Store exposes the underlying store for callers that must bypass the cache,
// such as the graph builder and the staleness checker.
func (s *Service) Store() *Store {
	return s.store
}

// Get returns the record for a workspace-relative file, or nil when absent.
// Hits are served from the cache; misses read through and populate it.
// Absent records are not cached, so a summary generated after a miss is
// visible immediately.
func (s *Service) Get(file string) *Record {
	key := NormalizeKey(file)

	s.mu.Lock()
	if rec, ok := s.getCache.Get(key); ok {
		s.mu.Unlock()
		return rec
	}
	s.mu.Unlock()

	rec := s.store.Get(key)
	if rec != nil {
		s.mu.Lock()
		s.getCache.Set(key, rec)
		s.mu.Unlock()
	}
	return rec
}

// Search runs a store search, caching results per (query, mode).
func (s *Service) Search(query string, mode SearchMode) ([]SearchResult, error) {
	key := fmt.Sprintf("%s\x00%s", mode, query)

	s.mu.Lock()
	if results, ok := s.searchCache.Get(key); ok {
		s.mu.Unlock()
		return results, nil
	}
	s.mu.Unlock()

	results, err := s.store.Search(query, mode)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.searchCache.Set(key, results)
	s.mu.Unlock()
	return results, nil
}

// Save persists a record and invalidates both caches.
func (s *Service) Save(file string, rec *Record) error {
	if err := s.store.Save(file, rec); err != nil {
		return err
	}
	s.mu.Lock()
	s.getCache.Clear()
	s.searchCache.Clear()
	s.mu.Unlock()
	return nil
}

// List passes through to the store; listings are cheap enough that they are
// not cached.
func (s *Service) List() ([]ListEntry, error) {
	return s.store.List()
}
