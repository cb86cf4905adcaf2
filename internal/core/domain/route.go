package domain

import "time"

// CableType identifies the construction of a cable.
type CableType string

const (
	// CablePVC is unarmoured PVC insulated and sheathed cable.
	CablePVC CableType = "PVC/PVC"

	// CablePVCSWA is PVC insulated, steel-wire armoured cable.
	CablePVCSWA CableType = "PVC/SWA/PVC"

	// CableXLPESWA is XLPE insulated, steel-wire armoured cable.
	CableXLPESWA CableType = "XLPE/SWA/PVC"

	// CableLSZH is low smoke zero halogen cable.
	CableLSZH CableType = "LSZH"
)

// CableTypeFromString converts a stored string to a CableType.
// Unknown values default to PVC/PVC.
func CableTypeFromString(s string) CableType {
	switch CableType(s) {
	case CablePVCSWA, CableXLPESWA, CableLSZH:
		return CableType(s)
	default:
		return CablePVC
	}
}

// Armoured reports whether the cable type carries steel-wire armour.
func (c CableType) Armoured() bool {
	return c == CablePVCSWA || c == CableXLPESWA
}

// Complexity is a coarse three-level classification of how intricate a
// route is, used for cost and labour estimation.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// RouteMetrics holds figures derived from a route's geometry.
// Metrics are never hand-edited; they are recomputed whenever the
// route's points change.
type RouteMetrics struct {
	// TotalLength is the 3D polyline length plus declared end drops, in metres.
	TotalLength float64

	// TotalCost is the most recent estimate for the route.
	TotalCost float64

	// SupportCount is the number of fixings needed along the run.
	SupportCount int

	// BendCount is the number of direction changes in the run.
	BendCount int

	// Complexity classifies the route for labour estimation.
	Complexity Complexity
}

// CableRoute is an engineered cable run through the building.
type CableRoute struct {
	// ID is the unique identifier for the route.
	ID string

	// Name is the human-readable name (e.g. "DB-1 to AHU-3").
	Name string

	// Points is the ordered polyline of the run. At least two points;
	// no two consecutive points may be coincident.
	Points []RoutePoint

	// CableType identifies the cable construction.
	CableType CableType

	// Diameter is the overall cable diameter in millimetres.
	Diameter float64

	// Timestamp is when the route was created or last modified.
	Timestamp time.Time

	// Metrics holds derived figures, recomputed on every geometry change.
	Metrics RouteMetrics
}

// Validate checks the route invariants: at least two points, a positive
// diameter, and no coincident consecutive points.
func (r *CableRoute) Validate() error {
	if len(r.Points) < 2 {
		return ErrTooFewPoints
	}
	if r.Diameter <= 0 {
		return ErrInvalidDiameter
	}
	for i := 0; i < len(r.Points)-1; i++ {
		if r.Points[i].Point3D == r.Points[i+1].Point3D {
			return ErrCoincidentPoints
		}
	}
	return nil
}

// Polyline returns the route's geometry stripped of point metadata.
func (r *CableRoute) Polyline() []Point3D {
	points := make([]Point3D, len(r.Points))
	for i := range r.Points {
		points[i] = r.Points[i].Point3D
	}
	return points
}
