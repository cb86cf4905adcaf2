package domain

// Severity classifies how serious a clash is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityMinor    Severity = "minor"
)

// Escalate bumps a severity one band towards critical.
func (s Severity) Escalate() Severity {
	switch s {
	case SeverityMinor:
		return SeverityWarning
	case SeverityWarning:
		return SeverityCritical
	default:
		return SeverityCritical
	}
}

// Clash is a detected spatial overlap between a route's swept envelope
// and a building element. Clashes are a point-in-time report:
// recomputed on demand, owned by the caller, never persisted as
// authoritative state.
type Clash struct {
	// ID is unique within one detection run.
	ID string

	// Position is a representative point of the overlap, in metres.
	Position Point3D

	// Severity classifies the clash from penetration depth and the
	// colliding object's discipline.
	Severity Severity

	// PenetrationDepth is the linear overlap along the axis of minimum
	// separation, in millimetres.
	PenetrationDepth float64

	// ObjectID identifies the colliding building element.
	ObjectID string

	// ObjectName is the colliding element's display name.
	ObjectName string

	// Description is a human-readable explanation of the overlap.
	Description string
}
