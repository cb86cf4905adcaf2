package services

import (
	"context"
	"fmt"
	"math"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driven"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driving"
	"github.com/sitewire-labs/cableroute/internal/logger"
)

// Ensure ClashService implements the interface.
var _ driving.ClashDetector = (*ClashService)(nil)

// ClashService tests a route's swept cylinder against building
// elements. Severity bands come from the injected config store.
// Detection holds no state between calls.
type ClashService struct {
	config driven.ConfigStore
}

// NewClashService creates a new clash detector.
func NewClashService(config driven.ConfigStore) *ClashService {
	return &ClashService{config: config}
}

// Detect reports every overlap between the route's envelope and the
// given objects. One clash is reported per (segment, object) overlap,
// so a route grazing the same beam twice yields two clashes. Output is
// deterministic for fixed inputs, including clash IDs.
func (s *ClashService) Detect(ctx context.Context, route domain.CableRoute, objects []domain.BIMObject) ([]domain.Clash, error) {
	if err := route.Validate(); err != nil {
		return nil, fmt.Errorf("detecting clashes: %w", err)
	}

	cfg, err := s.config.Engine(ctx)
	if err != nil {
		return nil, fmt.Errorf("detecting clashes: %w", err)
	}

	// Cable radius in metres; positions and dimensions are metres,
	// penetration is reported in millimetres.
	radius := route.Diameter / 2 / 1000
	polyline := route.Polyline()

	var clashes []domain.Clash
	for seg := 0; seg < len(polyline)-1; seg++ {
		for i := range objects {
			obj := &objects[i]
			hit, localPoint, penetrationMM := sweptSegmentOverlap(polyline[seg], polyline[seg+1], obj, radius)
			if !hit {
				continue
			}

			position := obj.ToWorld(localPoint)
			clashes = append(clashes, domain.Clash{
				ID:               fmt.Sprintf("%s-s%d-%s", route.ID, seg, obj.ID),
				Position:         position,
				Severity:         cfg.Severity.Classify(penetrationMM, obj.Discipline),
				PenetrationDepth: penetrationMM,
				ObjectID:         obj.ID,
				ObjectName:       obj.Name,
				Description: fmt.Sprintf("Cable %q passes through %s %q (%.1fmm penetration)",
					route.Name, obj.Type, obj.Name, penetrationMM),
			})
		}
	}

	logger.Debug("clash detection for route %s: %d segments x %d objects -> %d clashes",
		route.ID, len(polyline)-1, len(objects), len(clashes))
	return clashes, nil
}

// sweptSegmentOverlap tests the cylinder swept along segment [a,b]
// against an object's box. It reports whether they overlap, the
// deepest-penetration point on the segment in the object's local
// frame, and the penetration depth in millimetres.
//
// The signed distance from a point to a box is convex, so its
// restriction to the segment is convex in t and a ternary search finds
// the global minimum deterministically.
func sweptSegmentOverlap(a, b domain.Point3D, obj *domain.BIMObject, radius float64) (bool, domain.Point3D, float64) {
	la := obj.ToLocal(a)
	lb := obj.ToLocal(b)
	half := obj.HalfExtents()

	lo, hi := 0.0, 1.0
	for i := 0; i < 80; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if boxSignedDistance(lerp(la, lb, m1), half) <= boxSignedDistance(lerp(la, lb, m2), half) {
			hi = m2
		} else {
			lo = m1
		}
	}

	t := (lo + hi) / 2
	deepest := lerp(la, lb, t)
	separation := boxSignedDistance(deepest, half)

	overlap := radius - separation
	if overlap <= 0 {
		return false, domain.Point3D{}, 0
	}
	return true, deepest, overlap * 1000
}

// boxSignedDistance returns the signed distance from a point to an
// axis-aligned box centred at the origin: positive outside, negative
// inside (the depth below the nearest face).
func boxSignedDistance(p domain.Point3D, half domain.Point3D) float64 {
	qx := math.Abs(p.X) - half.X
	qy := math.Abs(p.Y) - half.Y
	qz := math.Abs(p.Z) - half.Z

	outside := math.Sqrt(
		math.Max(qx, 0)*math.Max(qx, 0) +
			math.Max(qy, 0)*math.Max(qy, 0) +
			math.Max(qz, 0)*math.Max(qz, 0))
	inside := math.Min(math.Max(qx, math.Max(qy, qz)), 0)
	return outside + inside
}

func lerp(a, b domain.Point3D, t float64) domain.Point3D {
	return domain.Point3D{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
		Z: a.Z + t*(b.Z-a.Z),
	}
}
