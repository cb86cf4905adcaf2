package driving

import (
	"context"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

// Rule is one pluggable compliance check. Rules are pure functions of
// their inputs; registering a new regulation never touches the
// evaluation loop.
type Rule interface {
	// Code returns the stable regulation identifier for this rule.
	Code() string

	// Evaluate checks the route against the rule. A failing route is a
	// finding, not an error.
	Evaluate(route domain.CableRoute, params domain.ElectricalParams) domain.ComplianceCheck
}

// ComplianceService evaluates routes against the configured rule set.
type ComplianceService interface {
	// Register adds a rule to the set. Empty or duplicate regulation
	// codes are rejected.
	Register(rule Rule) error

	// Evaluate runs every registered rule unconditionally and returns
	// all findings, including passes, in registration order.
	Evaluate(ctx context.Context, route domain.CableRoute, params domain.ElectricalParams) ([]domain.ComplianceCheck, error)
}
