package driven

import (
	"context"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

// ConfigStore provides engine policy configuration and the cost
// template library. Implementations validate on load: a malformed
// template or threshold set is rejected here, never at evaluation time.
type ConfigStore interface {
	// Engine returns the current engine configuration.
	Engine(ctx context.Context) (domain.EngineConfig, error)

	// Templates returns all configured cost templates.
	Templates(ctx context.Context) ([]domain.CostTemplate, error)

	// Template retrieves a cost template by ID.
	Template(ctx context.Context, id string) (*domain.CostTemplate, error)
}
