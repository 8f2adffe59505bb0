package universe

import (
	"sync"

	"universe-builder/internal/catalog"
	"universe-builder/internal/shared/errors"
	"universe-builder/internal/system"
)

// Store holds the universe being served. Builds replace it whole.
type Store struct {
	mu      sync.RWMutex
	current *Universe
}

func NewStore(u *Universe) *Store {
	return &Store{current: u}
}

func (s *Store) Get() (*Universe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, errors.NotFound("no universe has been built")
	}
	return s.current, nil
}

// Current satisfies system.Provider.
func (s *Store) Current() (system.Universe, error) {
	u, err := s.Get()
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) Set(u *Universe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = u
}

// CurrentCatalog satisfies spatial.CatalogSource.
func (s *Store) CurrentCatalog() (*catalog.Catalog, float64, error) {
	u, err := s.Get()
	if err != nil {
		return nil, 0, err
	}
	return u.Catalog, u.params.Catalog.Scale, nil
}
