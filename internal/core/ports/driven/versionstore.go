package driven

import (
	"context"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

// VersionStore persists route version snapshots. Implementations must
// make Save atomic per version and return List results in a stable
// order; the engine imposes newest-first presentation on top.
type VersionStore interface {
	// Save appends a version snapshot. Existing versions are never
	// modified.
	Save(ctx context.Context, version domain.RouteVersion) error

	// List returns all versions for a route, newest first. Versions
	// with equal timestamps keep their insertion order.
	List(ctx context.Context, routeID string) ([]domain.RouteVersion, error)

	// Delete removes a version from history. Deleting a version never
	// touches the live route.
	Delete(ctx context.Context, versionID string) error
}
