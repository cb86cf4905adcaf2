package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driven"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driving"
	"github.com/sitewire-labs/cableroute/internal/logger"
)

// Ensure VersionService implements the interface.
var _ driving.VersionService = (*VersionService)(nil)

// VersionService maintains the append-only version history of routes.
// Writers for the same route serialize on a per-route mutex so the
// append-only and timestamp-ordering invariants hold under concurrent
// saves; reads never take the route lock.
type VersionService struct {
	routes   driven.RouteStore
	versions driven.VersionStore

	mu     sync.Mutex
	locks  map[string]*sync.Mutex
	lastTS map[string]time.Time

	// now is swappable for tests.
	now func() time.Time
}

// NewVersionService creates a version service over the injected stores.
func NewVersionService(routes driven.RouteStore, versions driven.VersionStore) *VersionService {
	return &VersionService{
		routes:   routes,
		versions: versions,
		locks:    make(map[string]*sync.Mutex),
		lastTS:   make(map[string]time.Time),
		now:      time.Now,
	}
}

// routeLock returns the mutex serializing writers for one route.
func (s *VersionService) routeLock(routeID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[routeID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[routeID] = lock
	}
	return lock
}

// stamp returns a timestamp that never goes backwards within a
// route's history, even if the wall clock does.
func (s *VersionService) stamp(routeID string) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.now().UTC()
	if last, ok := s.lastTS[routeID]; ok && ts.Before(last) {
		ts = last
	}
	s.lastTS[routeID] = ts
	return ts
}

// Create snapshots the route's current state as a new version. Store
// failures propagate unchanged; no version entry is fabricated on
// failure.
func (s *VersionService) Create(ctx context.Context, routeID string, changeType domain.ChangeType, description string) (*domain.RouteVersion, error) {
	lock := s.routeLock(routeID)
	lock.Lock()
	defer lock.Unlock()

	return s.createLocked(ctx, routeID, changeType, description)
}

// createLocked appends a version for a route whose lock is held.
func (s *VersionService) createLocked(ctx context.Context, routeID string, changeType domain.ChangeType, description string) (*domain.RouteVersion, error) {
	route, err := s.routes.Get(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("creating version for route %s: %w", routeID, err)
	}

	version := domain.Snapshot(route, changeType, description)
	version.ID = uuid.NewString()
	version.Timestamp = s.stamp(routeID)

	if err := s.versions.Save(ctx, version); err != nil {
		return nil, fmt.Errorf("creating version for route %s: %w", routeID, err)
	}

	logger.Debug("saved version %s for route %s (%s)", version.ID, routeID, changeType)
	return &version, nil
}

// List returns the route's versions newest first. Reads take no route
// lock; the store's ordering contract supplies a stable view.
func (s *VersionService) List(ctx context.Context, routeID string) ([]domain.RouteVersion, error) {
	versions, err := s.versions.List(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("listing versions for route %s: %w", routeID, err)
	}
	return versions, nil
}

// Revert copies a version's geometry and cable fields onto the live
// route, saves it, and records the revert as a new manual version so
// the action itself is auditable.
func (s *VersionService) Revert(ctx context.Context, routeID, versionID string) (*domain.CableRoute, error) {
	lock := s.routeLock(routeID)
	lock.Lock()
	defer lock.Unlock()

	route, err := s.routes.Get(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("reverting route %s: %w", routeID, err)
	}

	version, err := s.find(ctx, routeID, versionID)
	if err != nil {
		return nil, fmt.Errorf("reverting route %s: %w", routeID, err)
	}

	version.Apply(route)
	if err := s.routes.Save(ctx, *route); err != nil {
		return nil, fmt.Errorf("reverting route %s: %w", routeID, err)
	}

	if _, err := s.createLocked(ctx, routeID, domain.ChangeManual,
		fmt.Sprintf("Reverted to version %s", versionID)); err != nil {
		return nil, err
	}

	return route, nil
}

// Delete removes a historical version. The live route is a separate
// entity and is never touched here.
func (s *VersionService) Delete(ctx context.Context, routeID, versionID string) error {
	if _, err := s.find(ctx, routeID, versionID); err != nil {
		return fmt.Errorf("deleting version %s: %w", versionID, err)
	}
	if err := s.versions.Delete(ctx, versionID); err != nil {
		return fmt.Errorf("deleting version %s: %w", versionID, err)
	}
	return nil
}

// find locates one of a route's versions by ID.
func (s *VersionService) find(ctx context.Context, routeID, versionID string) (*domain.RouteVersion, error) {
	versions, err := s.versions.List(ctx, routeID)
	if err != nil {
		return nil, err
	}
	for i := range versions {
		if versions[i].ID == versionID {
			return &versions[i], nil
		}
	}
	return nil, domain.ErrNotFound
}
