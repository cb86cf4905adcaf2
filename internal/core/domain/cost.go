package domain

// Material is one line item of a takeoff. Quantity and price are
// derived from route geometry, not authoritative inventory.
type Material struct {
	// Description is the line item text (e.g. "4-core SWA cable, 25mm").
	Description string

	// PartNumber is the supplier part reference.
	PartNumber string

	// Quantity is the amount required, in Unit.
	Quantity float64

	// Unit is the unit of measure ("m", "ea").
	Unit string

	// UnitPrice is the price per unit.
	UnitPrice float64

	// Supplier is the preferred supplier name.
	Supplier string

	// Notes is optional free text (wastage allowance, install hints).
	Notes string
}

// Total returns the extended price of the line.
func (m Material) Total() float64 {
	return m.Quantity * m.UnitPrice
}

// CostTemplate is a named set of multipliers applied to base
// material/installation/support costs to model pricing scenarios.
// Templates are externally managed and consumed read-only.
type CostTemplate struct {
	// ID is the unique identifier for the template.
	ID string

	// Name is the human-readable name (e.g. "Prime contract 2026").
	Name string

	// LaborRate is a percentage applied to the installation component.
	LaborRate float64

	// MaterialMultiplier scales the material cost component.
	MaterialMultiplier float64

	// InstallationMultiplier scales the installation cost component.
	InstallationMultiplier float64

	// SupportsMultiplier scales the supports cost component.
	SupportsMultiplier float64
}

// DefaultCostTemplate returns the unit-multiplier template used when a
// caller supplies none.
func DefaultCostTemplate() CostTemplate {
	return CostTemplate{
		ID:                     "default",
		Name:                   "Default",
		LaborRate:              0,
		MaterialMultiplier:     1,
		InstallationMultiplier: 1,
		SupportsMultiplier:     1,
	}
}

// Validate rejects malformed templates at load time.
func (t CostTemplate) Validate() error {
	if t.MaterialMultiplier <= 0 || t.InstallationMultiplier <= 0 || t.SupportsMultiplier <= 0 {
		return ErrInvalidConfig
	}
	if t.LaborRate < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// CostBreakdown splits a route estimate into its components.
type CostBreakdown struct {
	// MaterialCost covers cable and fittings.
	MaterialCost float64

	// InstallationCost covers pulling and terminating the cable.
	InstallationCost float64

	// SupportsCost covers tray, cleats, and fixings.
	SupportsCost float64

	// LaborCost is the labour percentage applied to installation.
	LaborCost float64
}

// Takeoff is the bill of materials and cost estimate for one route.
type Takeoff struct {
	// RouteID identifies the estimated route.
	RouteID string

	// Materials is the per-line breakdown. Quantities sum consistently
	// with the route's total length.
	Materials []Material

	// Breakdown splits the total into cost components.
	Breakdown CostBreakdown

	// TotalCost is the sum of the breakdown components.
	TotalCost float64
}
