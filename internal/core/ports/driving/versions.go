package driving

import (
	"context"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

// VersionService maintains the append-only per-route history of
// snapshots and supports revert and delete.
type VersionService interface {
	// Create snapshots the route's current state as a new version.
	// Prior versions are never mutated.
	Create(ctx context.Context, routeID string, changeType domain.ChangeType, description string) (*domain.RouteVersion, error)

	// List returns a route's versions newest first.
	List(ctx context.Context, routeID string) ([]domain.RouteVersion, error)

	// Revert copies a version's geometry and cable fields back onto
	// the live route, then records the revert as a new manual version.
	Revert(ctx context.Context, routeID, versionID string) (*domain.CableRoute, error)

	// Delete removes a historical version. The live route is never
	// deleted through this path.
	Delete(ctx context.Context, routeID, versionID string) error
}
