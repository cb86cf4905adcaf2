// Package memory provides in-memory implementations of the driven
// storage ports, used in tests and as the default when no durable
// store is configured.
package memory

import (
	"context"
	"sync"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driven"
)

// Ensure RouteStore implements the interface.
var _ driven.RouteStore = (*RouteStore)(nil)

// RouteStore is an in-memory implementation of driven.RouteStore.
type RouteStore struct {
	mu     sync.RWMutex
	routes map[string]domain.CableRoute
}

// NewRouteStore creates a new in-memory route store.
func NewRouteStore() *RouteStore {
	return &RouteStore{
		routes: make(map[string]domain.CableRoute),
	}
}

// Save stores or updates a route.
func (s *RouteStore) Save(_ context.Context, route domain.CableRoute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[route.ID] = route
	return nil
}

// Get retrieves a route by ID.
func (s *RouteStore) Get(_ context.Context, id string) (*domain.CableRoute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	route, ok := s.routes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &route, nil
}

// Delete removes a route.
func (s *RouteStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.routes, id)
	return nil
}

// List returns all routes.
func (s *RouteStore) List(_ context.Context) ([]domain.CableRoute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.CableRoute, 0, len(s.routes))
	for _, route := range s.routes {
		result = append(result, route)
	}
	return result, nil
}
