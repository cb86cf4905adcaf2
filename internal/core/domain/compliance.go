package domain

// ComplianceStatus is the outcome of one rule evaluation.
type ComplianceStatus string

const (
	StatusPass    ComplianceStatus = "pass"
	StatusFail    ComplianceStatus = "fail"
	StatusWarning ComplianceStatus = "warning"
	StatusInfo    ComplianceStatus = "info"
)

// ElectricalParams are the load parameters a route is evaluated against.
type ElectricalParams struct {
	// LoadCurrent is the design current in amperes.
	LoadCurrent float64

	// Voltage is the supply voltage in volts.
	Voltage float64

	// CableRating is the cable's current-carrying capacity in amperes.
	CableRating float64

	// IsArmoured reports whether the installed cable is armoured.
	// Armoured cable is derated for its installation method.
	IsArmoured bool
}

// ComplianceCheck is the finding from one regulation rule for one
// route evaluation. A failing check is data, not an error: callers
// always receive the complete checklist.
type ComplianceCheck struct {
	// ID is unique within one evaluation run.
	ID string

	// Regulation is the stable rule identifier (e.g. "BS7671-523.1"),
	// constant across runs so results can be diffed.
	Regulation string

	// Description says what the rule checks.
	Description string

	// Status is the rule outcome.
	Status ComplianceStatus

	// Message explains the outcome for this route.
	Message string

	// Suggestion is an optional remedial hint for failures and warnings.
	Suggestion string
}
