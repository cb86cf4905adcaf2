// Package driving defines the interfaces the core exposes to callers.
// The CLI adapter and the surrounding project-management application
// drive the engine through these.
package driving

import (
	"context"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

// Obstacle is an axis-aligned rectangular no-route zone on the
// routing plane, in plane units.
type Obstacle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether a plane point falls inside the obstacle.
// Bounds are inclusive: a point exactly on the edge is blocked.
func (o Obstacle) Contains(x, y float64) bool {
	return x >= o.X && x <= o.X+o.Width && y >= o.Y && y <= o.Y+o.Height
}

// Pathfinder computes routable polylines across a discretized plane.
type Pathfinder interface {
	// FindPath computes a path from start to end avoiding all
	// obstacles, preferring short, mostly orthogonal runs. If no
	// obstacle-free path exists it returns the direct two-point line
	// rather than failing; callers treat a direct line through an
	// obstacle as a downstream clash.
	FindPath(ctx context.Context, start, end domain.Point3D) ([]domain.Point3D, error)
}
