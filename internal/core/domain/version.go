package domain

import "time"

// ChangeType records what triggered a version save.
type ChangeType string

const (
	// ChangeManual is an explicit user save (including reverts).
	ChangeManual ChangeType = "manual"

	// ChangeAuto is a background save made by the sketching tool.
	ChangeAuto ChangeType = "auto"

	// ChangeOptimization is a save made after an auto-routing pass.
	ChangeOptimization ChangeType = "optimization"
)

// RouteVersion is an immutable snapshot of a route at save time.
// Versions are created on every save, never mutated afterwards, and
// are deletable and revertible. The live route is a separate entity
// from its saved versions.
type RouteVersion struct {
	// ID is the unique identifier for the version.
	ID string

	// RouteID identifies the route this version belongs to.
	RouteID string

	// Timestamp is when the version was created. Monotonically
	// non-decreasing within a route's history.
	Timestamp time.Time

	// Name is the route name at save time.
	Name string

	// Description is an optional note explaining the save.
	Description string

	// Points is the route geometry at save time.
	Points []RoutePoint

	// CableType is the cable construction at save time.
	CableType CableType

	// Diameter is the cable diameter at save time, in millimetres.
	Diameter float64

	// Metrics holds the derived figures at save time.
	Metrics RouteMetrics

	// ChangeType records what triggered the save.
	ChangeType ChangeType
}

// Snapshot captures the versionable fields of a route. The points
// slice is copied so later edits to the live route cannot reach into
// history.
func Snapshot(route *CableRoute, changeType ChangeType, description string) RouteVersion {
	points := make([]RoutePoint, len(route.Points))
	copy(points, route.Points)

	return RouteVersion{
		RouteID:     route.ID,
		Name:        route.Name,
		Description: description,
		Points:      points,
		CableType:   route.CableType,
		Diameter:    route.Diameter,
		Metrics:     route.Metrics,
		ChangeType:  changeType,
	}
}

// Apply copies the version's versionable fields back onto a live
// route. The route's metrics are taken from the snapshot verbatim;
// callers recompute them if policy has changed since the save.
func (v *RouteVersion) Apply(route *CableRoute) {
	points := make([]RoutePoint, len(v.Points))
	copy(points, v.Points)

	route.Points = points
	route.CableType = v.CableType
	route.Diameter = v.Diameter
	route.Metrics = v.Metrics
	route.Timestamp = time.Now().UTC()
}
