package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/twpayne/go-polyline"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driven"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driving"
	"github.com/sitewire-labs/cableroute/internal/logger"
)

// Ensure Converter implements the interface.
var _ driving.ConverterService = (*Converter)(nil)

// Converter turns sketched supply lines into engineered cable routes.
// Complexity thresholds and support spacing come from the injected
// config store so they can be tuned per project.
type Converter struct {
	config driven.ConfigStore
}

// NewConverter creates a new route converter.
func NewConverter(config driven.ConfigStore) *Converter {
	return &Converter{config: config}
}

// ConvertLine converts a single sketched line into a CableRoute.
// Sketch coordinates are multiplied by the scale ratio to obtain
// metres; declared end heights land on the z of the first and last
// points. Metrics are computed before returning.
func (c *Converter) ConvertLine(ctx context.Context, line domain.SupplyLine, scale domain.ScaleInfo) (*domain.CableRoute, error) {
	if err := scale.Validate(); err != nil {
		return nil, fmt.Errorf("converting line %s: %w", line.ID, err)
	}
	if len(line.Points) == 0 {
		return nil, fmt.Errorf("converting line %s: %w", line.ID, domain.ErrEmptyPolyline)
	}

	points := make([]domain.RoutePoint, 0, len(line.Points))
	for _, p := range line.Points {
		scaled := domain.Point3D{X: p.X * scale.Ratio, Y: p.Y * scale.Ratio}
		// Freehand sketches repeat points where the pen lingered.
		if n := len(points); n > 0 && points[n-1].Point3D == scaled {
			continue
		}
		points = append(points, domain.RoutePoint{
			ID:      fmt.Sprintf("p%d", len(points)+1),
			Point3D: scaled,
		})
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("converting line %s: %w", line.ID, domain.ErrTooFewPoints)
	}

	points[0].Z = line.StartHeight
	points[len(points)-1].Z = line.EndHeight

	diameter := line.Diameter
	if diameter <= 0 {
		diameter = defaultCableDiameter
	}

	route := &domain.CableRoute{
		ID:        uuid.NewString(),
		Name:      routeName(line),
		Points:    points,
		CableType: domain.CableTypeFromString(string(line.CableType)),
		Diameter:  diameter,
		Timestamp: time.Now().UTC(),
	}

	if err := c.ComputeMetrics(ctx, route); err != nil {
		return nil, fmt.Errorf("converting line %s: %w", line.ID, err)
	}

	logger.Debug("converted line %s into route %s (%.2fm, %d bends)",
		line.ID, route.ID, route.Metrics.TotalLength, route.Metrics.BendCount)
	return route, nil
}

// defaultCableDiameter is used when the sketch carries no diameter, in
// millimetres.
const defaultCableDiameter = 25

// ConvertLines converts each line independently. Partial results are
// returned together with one LineError per failed line.
func (c *Converter) ConvertLines(ctx context.Context, lines []domain.SupplyLine, scale domain.ScaleInfo) ([]domain.CableRoute, []domain.LineError) {
	routes := make([]domain.CableRoute, 0, len(lines))
	var failures []domain.LineError

	for _, line := range lines {
		route, err := c.ConvertLine(ctx, line, scale)
		if err != nil {
			failures = append(failures, domain.LineError{LineID: line.ID, Err: err})
			continue
		}
		routes = append(routes, *route)
	}

	return routes, failures
}

// ParseEncodedLine decodes a Google-encoded polyline into sketch
// points. The drawing layer exports long freehand lines in this format
// to keep payloads small.
func (c *Converter) ParseEncodedLine(encoded string) ([]domain.Point2D, error) {
	if encoded == "" {
		return nil, fmt.Errorf("parsing encoded line: %w", domain.ErrEmptyPolyline)
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("parsing encoded line: %w", err)
	}

	points := make([]domain.Point2D, len(coords))
	for i, c := range coords {
		points[i] = domain.Point2D{X: c[0], Y: c[1]}
	}
	return points, nil
}

// ComputeMetrics recomputes the route's derived metrics in place.
// Total length is the 3D polyline length plus the declared drops held
// on the endpoint z values; bends are counted after collinear
// reduction so a wobbly-but-straight sketch does not inflate the
// figure. TotalCost is left for the estimator.
func (c *Converter) ComputeMetrics(ctx context.Context, route *domain.CableRoute) error {
	if err := route.Validate(); err != nil {
		return fmt.Errorf("computing metrics: %w", err)
	}

	cfg, err := c.config.Engine(ctx)
	if err != nil {
		return fmt.Errorf("computing metrics: %w", err)
	}

	polyline := route.Polyline()
	first, last := polyline[0], polyline[len(polyline)-1]
	totalLength := domain.PolylineLength(polyline) + math.Abs(first.Z) + math.Abs(last.Z)

	simplified := domain.SimplifyCollinear(polyline)
	bendCount := len(simplified) - 2

	route.Metrics.TotalLength = totalLength
	route.Metrics.BendCount = bendCount
	route.Metrics.SupportCount = int(math.Ceil(totalLength / cfg.Takeoff.SupportSpacing))
	route.Metrics.Complexity = cfg.Complexity.Classify(bendCount, totalLength)
	return nil
}

// routeName derives a display name from the line's end labels.
func routeName(line domain.SupplyLine) string {
	switch {
	case line.From != "" && line.To != "":
		return line.From + " to " + line.To
	case line.From != "":
		return line.From
	case line.To != "":
		return line.To
	default:
		return "Unnamed route"
	}
}
