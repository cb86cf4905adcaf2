package driving

import (
	"context"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

// Estimator prices routes and produces material takeoffs.
type Estimator interface {
	// Estimate produces the bill of materials and cost breakdown for a
	// route. A nil template means unit multipliers. The input route is
	// never mutated, so the same route can be re-priced under
	// different templates.
	Estimate(ctx context.Context, route domain.CableRoute, template *domain.CostTemplate) (*domain.Takeoff, error)
}
