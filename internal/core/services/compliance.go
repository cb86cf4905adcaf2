package services

import (
	"context"
	"fmt"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driving"
	"github.com/sitewire-labs/cableroute/internal/logger"
)

// Ensure ComplianceService implements the interface.
var _ driving.ComplianceService = (*ComplianceService)(nil)

// ComplianceService runs the configured rule set over a route. Rules
// are registered once at startup; evaluation never mutates the set, so
// concurrent Evaluate calls are safe.
type ComplianceService struct {
	rules []driving.Rule
	codes map[string]bool
}

// NewComplianceService creates an empty compliance service. Callers
// register rules before first use; DefaultRules provides the built-in
// set parameterised from project configuration.
func NewComplianceService() *ComplianceService {
	return &ComplianceService{codes: make(map[string]bool)}
}

// Register adds a rule to the set. Registration order is evaluation
// order. Empty and duplicate regulation codes are rejected so findings
// stay diffable across runs.
func (s *ComplianceService) Register(rule driving.Rule) error {
	code := rule.Code()
	if code == "" {
		return fmt.Errorf("registering rule: %w", domain.ErrInvalidConfig)
	}
	if s.codes[code] {
		return fmt.Errorf("registering rule %s: %w", code, domain.ErrDuplicateRule)
	}
	s.codes[code] = true
	s.rules = append(s.rules, rule)
	return nil
}

// Evaluate runs every registered rule and returns all findings,
// including passes, so callers can render a complete checklist. A
// failing rule never short-circuits the rest.
func (s *ComplianceService) Evaluate(_ context.Context, route domain.CableRoute, params domain.ElectricalParams) ([]domain.ComplianceCheck, error) {
	if err := route.Validate(); err != nil {
		return nil, fmt.Errorf("evaluating compliance: %w", err)
	}
	if params.LoadCurrent <= 0 || params.Voltage <= 0 || params.CableRating <= 0 {
		return nil, fmt.Errorf("evaluating compliance: %w", domain.ErrInvalidInput)
	}

	checks := make([]domain.ComplianceCheck, 0, len(s.rules))
	for _, rule := range s.rules {
		check := rule.Evaluate(route, params)
		check.ID = fmt.Sprintf("%s-%s", route.ID, rule.Code())
		check.Regulation = rule.Code()
		checks = append(checks, check)
	}

	logger.Debug("compliance evaluation for route %s: %d rules run", route.ID, len(checks))
	return checks, nil
}

// DefaultRules returns the built-in rule set with its numeric bodies
// taken from project configuration.
func DefaultRules(params domain.ElectricalRuleParams) []driving.Rule {
	return []driving.Rule{
		&currentRatingRule{params: params},
		&voltageDropRule{params: params},
		&routeLengthRule{params: params},
		&bendCountRule{params: params},
	}
}

// currentRatingRule checks the cable's current-carrying capacity
// against the design current, derating armoured cable for its
// installation method.
type currentRatingRule struct {
	params domain.ElectricalRuleParams
}

func (r *currentRatingRule) Code() string { return "BS7671-433.1" }

func (r *currentRatingRule) Evaluate(route domain.CableRoute, params domain.ElectricalParams) domain.ComplianceCheck {
	check := domain.ComplianceCheck{
		Description: "Cable current rating against design current",
	}

	effectiveRating := params.CableRating
	if params.IsArmoured {
		effectiveRating *= r.params.ArmouredDeratingFactor
	}

	switch {
	case effectiveRating >= params.LoadCurrent*1.1:
		check.Status = domain.StatusPass
		check.Message = fmt.Sprintf("Effective rating %.1fA covers design current %.1fA", effectiveRating, params.LoadCurrent)
	case effectiveRating >= params.LoadCurrent:
		check.Status = domain.StatusWarning
		check.Message = fmt.Sprintf("Effective rating %.1fA barely covers design current %.1fA", effectiveRating, params.LoadCurrent)
		check.Suggestion = "Consider the next conductor size up for headroom"
	default:
		check.Status = domain.StatusFail
		check.Message = fmt.Sprintf("Effective rating %.1fA below design current %.1fA", effectiveRating, params.LoadCurrent)
		check.Suggestion = "Select a larger conductor or reduce the connected load"
	}
	return check
}

// voltageDropRule estimates voltage drop over the route length using
// the configured mV/A/m figure.
type voltageDropRule struct {
	params domain.ElectricalRuleParams
}

func (r *voltageDropRule) Code() string { return "BS7671-525.1" }

func (r *voltageDropRule) Evaluate(route domain.CableRoute, params domain.ElectricalParams) domain.ComplianceCheck {
	check := domain.ComplianceCheck{
		Description: "Voltage drop over route length",
	}

	dropVolts := r.params.VoltageDropPerAmpMetre / 1000 * params.LoadCurrent * route.Metrics.TotalLength
	dropPercent := dropVolts / params.Voltage * 100
	limit := r.params.MaxVoltageDropPercent

	switch {
	case dropPercent <= limit*0.8:
		check.Status = domain.StatusPass
		check.Message = fmt.Sprintf("Estimated drop %.2f%% within the %.1f%% limit", dropPercent, limit)
	case dropPercent <= limit:
		check.Status = domain.StatusWarning
		check.Message = fmt.Sprintf("Estimated drop %.2f%% close to the %.1f%% limit", dropPercent, limit)
		check.Suggestion = "Shorten the route or increase conductor size"
	default:
		check.Status = domain.StatusFail
		check.Message = fmt.Sprintf("Estimated drop %.2f%% exceeds the %.1f%% limit", dropPercent, limit)
		check.Suggestion = "Increase conductor size or re-route closer to the supply"
	}
	return check
}

// routeLengthRule sanity-checks the route length against practical
// pull bounds.
type routeLengthRule struct {
	params domain.ElectricalRuleParams
}

func (r *routeLengthRule) Code() string { return "SITE-ROUTE-001" }

func (r *routeLengthRule) Evaluate(route domain.CableRoute, _ domain.ElectricalParams) domain.ComplianceCheck {
	check := domain.ComplianceCheck{
		Description: "Route length sanity bounds",
	}

	length := route.Metrics.TotalLength
	switch {
	case length < r.params.MinRouteLength:
		check.Status = domain.StatusWarning
		check.Message = fmt.Sprintf("Route length %.2fm below the %.2fm minimum; likely a sketching error", length, r.params.MinRouteLength)
		check.Suggestion = "Verify the drawing scale calibration"
	case length > r.params.MaxRouteLength:
		check.Status = domain.StatusFail
		check.Message = fmt.Sprintf("Route length %.1fm exceeds the %.1fm single-pull maximum", length, r.params.MaxRouteLength)
		check.Suggestion = "Split the run with an intermediate junction box"
	default:
		check.Status = domain.StatusPass
		check.Message = fmt.Sprintf("Route length %.1fm within bounds", length)
	}
	return check
}

// bendCountRule flags routes with enough bends to make pulling and
// later maintenance difficult.
type bendCountRule struct {
	params domain.ElectricalRuleParams
}

func (r *bendCountRule) Code() string { return "SITE-ROUTE-002" }

func (r *bendCountRule) Evaluate(route domain.CableRoute, _ domain.ElectricalParams) domain.ComplianceCheck {
	check := domain.ComplianceCheck{
		Description: "Bend count serviceability",
	}

	bends := route.Metrics.BendCount
	if bends > r.params.MaxBendsBeforeWarning {
		check.Status = domain.StatusWarning
		check.Message = fmt.Sprintf("%d bends exceeds the %d recommended for a single pull", bends, r.params.MaxBendsBeforeWarning)
		check.Suggestion = "Straighten the route or add a pull point"
	} else {
		check.Status = domain.StatusPass
		check.Message = fmt.Sprintf("%d bends within recommended limits", bends)
	}
	return check
}
