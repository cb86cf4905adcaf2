package services

import (
	"context"
	"fmt"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driven"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driving"
	"github.com/sitewire-labs/cableroute/internal/logger"
)

// Ensure Estimator implements the interface.
var _ driving.Estimator = (*Estimator)(nil)

// complexityLabourFactors scale the installation component by route
// complexity. The classification thresholds live in configuration;
// these factors are the labour model applied on top.
var complexityLabourFactors = map[domain.Complexity]float64{
	domain.ComplexityLow:    1.0,
	domain.ComplexityMedium: 1.25,
	domain.ComplexityHigh:   1.5,
}

// Estimator produces material takeoffs and cost estimates from route
// metrics. It is a pure function of route, template, and takeoff
// configuration: the input route is never mutated.
type Estimator struct {
	config driven.ConfigStore
}

// NewEstimator creates a new cost estimator.
func NewEstimator(config driven.ConfigStore) *Estimator {
	return &Estimator{config: config}
}

// Estimate prices the route under the given template. A nil template
// means unit multipliers. Material quantities sum consistently with
// the route's total length: cable quantity is length times the
// configured wastage factor, supports match the support count.
func (e *Estimator) Estimate(ctx context.Context, route domain.CableRoute, template *domain.CostTemplate) (*domain.Takeoff, error) {
	if err := route.Validate(); err != nil {
		return nil, fmt.Errorf("estimating route %s: %w", route.ID, err)
	}

	tmpl := domain.DefaultCostTemplate()
	if template != nil {
		tmpl = *template
	}
	if err := tmpl.Validate(); err != nil {
		return nil, fmt.Errorf("estimating route %s: template %s: %w", route.ID, tmpl.ID, err)
	}

	cfg, err := e.config.Engine(ctx)
	if err != nil {
		return nil, fmt.Errorf("estimating route %s: %w", route.ID, err)
	}
	takeoff := cfg.Takeoff

	metrics := route.Metrics
	cableQty := metrics.TotalLength * takeoff.WastageFactor
	supportQty := float64(metrics.SupportCount)

	materialCost := cableQty * takeoff.CableUnitPrice * tmpl.MaterialMultiplier
	supportsCost := supportQty * takeoff.SupportUnitPrice * tmpl.SupportsMultiplier

	labourFactor := complexityLabourFactors[metrics.Complexity]
	if labourFactor == 0 {
		labourFactor = 1
	}
	installationCost := (metrics.TotalLength*takeoff.InstallRatePerMetre +
		float64(metrics.BendCount)*takeoff.BendSurcharge) * labourFactor * tmpl.InstallationMultiplier
	labourCost := installationCost * tmpl.LaborRate / 100

	materials := []domain.Material{
		{
			Description: fmt.Sprintf("%s cable, %.0fmm", route.CableType, route.Diameter),
			PartNumber:  fmt.Sprintf("CBL-%s-%.0f", cablePartCode(route.CableType), route.Diameter),
			Quantity:    cableQty,
			Unit:        "m",
			UnitPrice:   takeoff.CableUnitPrice * tmpl.MaterialMultiplier,
			Notes:       fmt.Sprintf("includes %.0f%% cutting allowance", (takeoff.WastageFactor-1)*100),
		},
		{
			Description: "Cable supports and fixings",
			PartNumber:  "SUP-STD",
			Quantity:    supportQty,
			Unit:        "ea",
			UnitPrice:   takeoff.SupportUnitPrice * tmpl.SupportsMultiplier,
		},
	}

	result := &domain.Takeoff{
		RouteID:   route.ID,
		Materials: materials,
		Breakdown: domain.CostBreakdown{
			MaterialCost:     materialCost,
			InstallationCost: installationCost,
			SupportsCost:     supportsCost,
			LaborCost:        labourCost,
		},
		TotalCost: materialCost + installationCost + supportsCost + labourCost,
	}

	logger.Debug("estimated route %s under template %s: total %.2f", route.ID, tmpl.ID, result.TotalCost)
	return result, nil
}

// cablePartCode maps a cable type to its part number segment.
func cablePartCode(t domain.CableType) string {
	switch t {
	case domain.CablePVCSWA:
		return "SWA-PVC"
	case domain.CableXLPESWA:
		return "SWA-XLPE"
	case domain.CableLSZH:
		return "LSZH"
	default:
		return "PVC"
	}
}
