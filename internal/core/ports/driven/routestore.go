// Package driven defines the interfaces the core depends on.
// Adapters implement these to plug persistence and configuration into
// the engine; the core never knows which implementation it is given.
package driven

import (
	"context"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

// RouteStore persists live cable routes.
type RouteStore interface {
	// Save stores or updates a route.
	Save(ctx context.Context, route domain.CableRoute) error

	// Get retrieves a route by ID.
	Get(ctx context.Context, id string) (*domain.CableRoute, error)

	// Delete removes a route.
	Delete(ctx context.Context, id string) error

	// List returns all routes.
	List(ctx context.Context) ([]domain.CableRoute, error)
}
