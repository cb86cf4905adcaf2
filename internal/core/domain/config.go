package domain

// ComplexityThresholds classify a route from bend count and length.
// The exact figures are project policy, tuned per contract.
type ComplexityThresholds struct {
	// LowMaxBends is the most bends a low-complexity route may have.
	LowMaxBends int

	// LowMaxLength is the longest a low-complexity route may be, in metres.
	LowMaxLength float64

	// HighMinBends is the bend count at which a route becomes high complexity.
	HighMinBends int

	// HighMinLength is the length at which a route becomes high
	// complexity, in metres.
	HighMinLength float64
}

// Classify buckets a route into Low/Medium/High complexity.
func (t ComplexityThresholds) Classify(bendCount int, totalLength float64) Complexity {
	if bendCount > t.HighMinBends || totalLength > t.HighMinLength {
		return ComplexityHigh
	}
	if bendCount <= t.LowMaxBends && totalLength <= t.LowMaxLength {
		return ComplexityLow
	}
	return ComplexityMedium
}

// SeverityBands map clash penetration depth to severity.
type SeverityBands struct {
	// CriticalMM is the penetration depth at or above which a clash is
	// critical, in millimetres.
	CriticalMM float64

	// WarningMM is the penetration depth at or above which a clash is a
	// warning, in millimetres.
	WarningMM float64
}

// Classify maps a penetration depth to a severity. Clashes against
// structural elements escalate one band.
func (b SeverityBands) Classify(penetrationMM float64, discipline Discipline) Severity {
	var severity Severity
	switch {
	case penetrationMM >= b.CriticalMM:
		severity = SeverityCritical
	case penetrationMM >= b.WarningMM:
		severity = SeverityWarning
	default:
		severity = SeverityMinor
	}
	if discipline == DisciplineStructural {
		severity = severity.Escalate()
	}
	return severity
}

// ElectricalRuleParams hold the numeric bodies of the built-in
// compliance rules. These are project-supplied configuration, not
// engineering constants baked into the evaluation loop.
type ElectricalRuleParams struct {
	// ArmouredDeratingFactor scales a cable's rating when armoured
	// cable is clipped direct.
	ArmouredDeratingFactor float64

	// VoltageDropPerAmpMetre is the cable's voltage drop in
	// millivolts per ampere per metre.
	VoltageDropPerAmpMetre float64

	// MaxVoltageDropPercent is the allowed drop as a percentage of
	// supply voltage.
	MaxVoltageDropPercent float64

	// MinRouteLength flags suspiciously short routes, in metres.
	MinRouteLength float64

	// MaxRouteLength flags routes beyond a single practical pull, in metres.
	MaxRouteLength float64

	// MaxBendsBeforeWarning flags hard-to-pull routes.
	MaxBendsBeforeWarning int
}

// TakeoffParams hold the material takeoff policy figures.
type TakeoffParams struct {
	// WastageFactor scales cable length into ordered quantity
	// (1.05 = 5% cutting allowance).
	WastageFactor float64

	// SupportSpacing is the distance between fixings, in metres.
	SupportSpacing float64

	// CableUnitPrice is the base cable price per metre.
	CableUnitPrice float64

	// SupportUnitPrice is the base price per fixing.
	SupportUnitPrice float64

	// InstallRatePerMetre is the base installation price per metre.
	InstallRatePerMetre float64

	// BendSurcharge is the installation surcharge per bend.
	BendSurcharge float64
}

// EngineConfig gathers every tunable policy constant in one place.
// Values are loaded from the project configuration file; the defaults
// are a reasonable starting point, not a standard.
type EngineConfig struct {
	// GridSize is the pathfinding cell size, in plane units.
	GridSize float64

	// Complexity classifies routes for labour estimation.
	Complexity ComplexityThresholds

	// Severity maps clash penetration to severity bands.
	Severity SeverityBands

	// Electrical holds the compliance rule parameters.
	Electrical ElectricalRuleParams

	// Takeoff holds the material takeoff policy.
	Takeoff TakeoffParams
}

// DefaultEngineConfig returns the engine's built-in policy defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		GridSize: 50,
		Complexity: ComplexityThresholds{
			LowMaxBends:   2,
			LowMaxLength:  25,
			HighMinBends:  6,
			HighMinLength: 100,
		},
		Severity: SeverityBands{
			CriticalMM: 50,
			WarningMM:  10,
		},
		Electrical: ElectricalRuleParams{
			ArmouredDeratingFactor: 0.9,
			VoltageDropPerAmpMetre: 18,
			MaxVoltageDropPercent:  5,
			MinRouteLength:         0.5,
			MaxRouteLength:         200,
			MaxBendsBeforeWarning:  8,
		},
		Takeoff: TakeoffParams{
			WastageFactor:       1.05,
			SupportSpacing:      1.5,
			CableUnitPrice:      12.50,
			SupportUnitPrice:    3.20,
			InstallRatePerMetre: 8.75,
			BendSurcharge:       4.50,
		},
	}
}

// Validate rejects malformed engine configuration at load time.
func (c EngineConfig) Validate() error {
	if c.GridSize <= 0 {
		return ErrInvalidConfig
	}
	if c.Complexity.LowMaxBends < 0 || c.Complexity.HighMinBends < c.Complexity.LowMaxBends {
		return ErrInvalidConfig
	}
	if c.Complexity.LowMaxLength <= 0 || c.Complexity.HighMinLength < c.Complexity.LowMaxLength {
		return ErrInvalidConfig
	}
	if c.Severity.CriticalMM < c.Severity.WarningMM || c.Severity.WarningMM < 0 {
		return ErrInvalidConfig
	}
	if c.Electrical.ArmouredDeratingFactor <= 0 || c.Electrical.ArmouredDeratingFactor > 1 {
		return ErrInvalidConfig
	}
	if c.Electrical.VoltageDropPerAmpMetre <= 0 || c.Electrical.MaxVoltageDropPercent <= 0 {
		return ErrInvalidConfig
	}
	if c.Electrical.MaxRouteLength <= c.Electrical.MinRouteLength {
		return ErrInvalidConfig
	}
	if c.Takeoff.WastageFactor < 1 || c.Takeoff.SupportSpacing <= 0 {
		return ErrInvalidConfig
	}
	if c.Takeoff.CableUnitPrice < 0 || c.Takeoff.SupportUnitPrice < 0 || c.Takeoff.InstallRatePerMetre < 0 || c.Takeoff.BendSurcharge < 0 {
		return ErrInvalidConfig
	}
	return nil
}
