package driving

import (
	"context"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

// ClashDetector tests a route's swept envelope against building
// elements. Detection is read-only and deterministic: the same inputs
// always produce the same clashes.
type ClashDetector interface {
	// Detect reports every overlap between the route and the objects.
	// Multiple clashes against the same object at different points on
	// the route are all reported.
	Detect(ctx context.Context, route domain.CableRoute, objects []domain.BIMObject) ([]domain.Clash, error)
}
