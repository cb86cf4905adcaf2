package driving

import (
	"context"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

// ConverterService turns sketched 2D lines into engineered cable routes.
type ConverterService interface {
	// ConvertLine converts a single sketched line using the given
	// scale, producing a route with freshly computed metrics.
	ConvertLine(ctx context.Context, line domain.SupplyLine, scale domain.ScaleInfo) (*domain.CableRoute, error)

	// ConvertLines converts each line independently. A failing line
	// does not abort the batch: partial results are returned together
	// with one LineError per failure.
	ConvertLines(ctx context.Context, lines []domain.SupplyLine, scale domain.ScaleInfo) ([]domain.CableRoute, []domain.LineError)

	// ParseEncodedLine decodes a Google-encoded polyline string into
	// sketch-space points, for lines imported from the drawing layer.
	ParseEncodedLine(encoded string) ([]domain.Point2D, error)

	// ComputeMetrics recomputes a route's derived metrics in place.
	// Called after every geometry mutation.
	ComputeMetrics(ctx context.Context, route *domain.CableRoute) error
}
