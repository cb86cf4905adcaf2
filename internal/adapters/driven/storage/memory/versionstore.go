package memory

import (
	"context"
	"sync"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driven"
)

// Ensure VersionStore implements the interface.
var _ driven.VersionStore = (*VersionStore)(nil)

// VersionStore is an in-memory implementation of driven.VersionStore.
// Versions are held as an append-only log per route; List walks the
// log backwards, which is newest-first because timestamps are
// non-decreasing in append order.
type VersionStore struct {
	mu      sync.RWMutex
	byRoute map[string][]domain.RouteVersion
	routeOf map[string]string
}

// NewVersionStore creates a new in-memory version store.
func NewVersionStore() *VersionStore {
	return &VersionStore{
		byRoute: make(map[string][]domain.RouteVersion),
		routeOf: make(map[string]string),
	}
}

// Save appends a version snapshot.
func (s *VersionStore) Save(_ context.Context, version domain.RouteVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byRoute[version.RouteID] = append(s.byRoute[version.RouteID], version)
	s.routeOf[version.ID] = version.RouteID
	return nil
}

// List returns a route's versions newest first. Versions with equal
// timestamps come out in reverse append order, keeping the view
// consistently reverse-chronological.
func (s *VersionStore) List(_ context.Context, routeID string) ([]domain.RouteVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	log := s.byRoute[routeID]
	result := make([]domain.RouteVersion, 0, len(log))
	for i := len(log) - 1; i >= 0; i-- {
		result = append(result, log[i])
	}
	return result, nil
}

// Delete removes a version from history.
func (s *VersionStore) Delete(_ context.Context, versionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	routeID, ok := s.routeOf[versionID]
	if !ok {
		return domain.ErrNotFound
	}
	log := s.byRoute[routeID]
	for i := range log {
		if log[i].ID == versionID {
			s.byRoute[routeID] = append(log[:i:i], log[i+1:]...)
			break
		}
	}
	delete(s.routeOf, versionID)
	return nil
}
