package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitewire-labs/cableroute/internal/adapters/driven/storage/memory"
	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

func clashTestRoute(points ...domain.Point3D) domain.CableRoute {
	route := domain.CableRoute{
		ID:       "route-1",
		Name:     "DB-1 to AHU-3",
		Diameter: 50,
	}
	for i, p := range points {
		route.Points = append(route.Points, domain.RoutePoint{
			ID:      fmt.Sprintf("p%d", i+1),
			Point3D: p,
		})
	}
	return route
}

func testBeam(id string, pos domain.Point3D, dims domain.Dimensions) domain.BIMObject {
	return domain.BIMObject{
		ID:         id,
		Name:       "Beam " + id,
		Type:       domain.ObjectBeam,
		Discipline: domain.DisciplineMechanical,
		Position:   pos,
		Dimensions: dims,
	}
}

func TestDetect_ThroughBoxCentre(t *testing.T) {
	s := NewClashService(memory.NewConfigStore())

	route := clashTestRoute(
		domain.Point3D{X: 0, Y: 0, Z: 0},
		domain.Point3D{X: 10, Y: 0, Z: 0},
	)
	beam := testBeam("b1", domain.Point3D{X: 5, Y: 0, Z: 0}, domain.Dimensions{Width: 1, Depth: 1, Height: 1})

	clashes, err := s.Detect(t.Context(), route, []domain.BIMObject{beam})
	require.NoError(t, err)
	require.Len(t, clashes, 1)

	clash := clashes[0]
	assert.Equal(t, "route-1-s0-b1", clash.ID)
	assert.Equal(t, "b1", clash.ObjectID)
	assert.Equal(t, "Beam b1", clash.ObjectName)
	// Cable radius 25mm plus 500mm to the nearest face from the centre.
	assert.InDelta(t, 525, clash.PenetrationDepth, 1)
	assert.Equal(t, domain.SeverityCritical, clash.Severity)
	assert.InDelta(t, 5, clash.Position.X, 0.1)
	assert.InDelta(t, 0, clash.Position.Y, 0.1)
	assert.Contains(t, clash.Description, "beam")
}

func TestDetect_NearMiss(t *testing.T) {
	s := NewClashService(memory.NewConfigStore())

	route := clashTestRoute(
		domain.Point3D{X: 0, Y: 0, Z: 0},
		domain.Point3D{X: 10, Y: 0, Z: 0},
	)
	// Nearest face is 500mm from the route axis, well clear of the
	// 25mm cable radius.
	beam := testBeam("b1", domain.Point3D{X: 5, Y: 1, Z: 0}, domain.Dimensions{Width: 1, Depth: 1, Height: 1})

	clashes, err := s.Detect(t.Context(), route, []domain.BIMObject{beam})
	require.NoError(t, err)
	assert.Empty(t, clashes)
}

func TestDetect_SeverityBands(t *testing.T) {
	tests := []struct {
		name       string
		objectY    float64
		discipline domain.Discipline
		want       domain.Severity
	}{
		// Box half-depth is 0.5m; the route axis runs at y=0.
		{"minor graze", 0.52, domain.DisciplineMechanical, domain.SeverityMinor},
		{"warning band", 0.51, domain.DisciplineMechanical, domain.SeverityWarning},
		{"critical band", 0.45, domain.DisciplineMechanical, domain.SeverityCritical},
		{"structural escalation", 0.51, domain.DisciplineStructural, domain.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewClashService(memory.NewConfigStore())

			route := clashTestRoute(
				domain.Point3D{X: 0, Y: 0, Z: 0},
				domain.Point3D{X: 10, Y: 0, Z: 0},
			)
			beam := testBeam("b1", domain.Point3D{X: 5, Y: tt.objectY, Z: 0}, domain.Dimensions{Width: 1, Depth: 1, Height: 1})
			beam.Discipline = tt.discipline

			clashes, err := s.Detect(t.Context(), route, []domain.BIMObject{beam})
			require.NoError(t, err)
			require.Len(t, clashes, 1)
			assert.Equal(t, tt.want, clashes[0].Severity)
		})
	}
}

func TestDetect_OneClashPerSegmentObjectPair(t *testing.T) {
	s := NewClashService(memory.NewConfigStore())

	// Out and back through the same beam: two segments, two clashes.
	route := clashTestRoute(
		domain.Point3D{X: 0, Y: 0, Z: 0},
		domain.Point3D{X: 10, Y: 0, Z: 0},
		domain.Point3D{X: 0, Y: 0.2, Z: 0},
	)
	beam := testBeam("b1", domain.Point3D{X: 5, Y: 0, Z: 0}, domain.Dimensions{Width: 1, Depth: 1, Height: 1})

	clashes, err := s.Detect(t.Context(), route, []domain.BIMObject{beam})
	require.NoError(t, err)
	require.Len(t, clashes, 2)
	assert.Equal(t, "route-1-s0-b1", clashes[0].ID)
	assert.Equal(t, "route-1-s1-b1", clashes[1].ID)
}

func TestDetect_MultipleObjects(t *testing.T) {
	s := NewClashService(memory.NewConfigStore())

	route := clashTestRoute(
		domain.Point3D{X: 0, Y: 0, Z: 0},
		domain.Point3D{X: 20, Y: 0, Z: 0},
	)
	objects := []domain.BIMObject{
		testBeam("b1", domain.Point3D{X: 5, Y: 0, Z: 0}, domain.Dimensions{Width: 1, Depth: 1, Height: 1}),
		testBeam("b2", domain.Point3D{X: 15, Y: 0, Z: 0}, domain.Dimensions{Width: 1, Depth: 1, Height: 1}),
		testBeam("clear", domain.Point3D{X: 10, Y: 5, Z: 0}, domain.Dimensions{Width: 1, Depth: 1, Height: 1}),
	}

	clashes, err := s.Detect(t.Context(), route, objects)
	require.NoError(t, err)
	require.Len(t, clashes, 2)
	assert.Equal(t, "b1", clashes[0].ObjectID)
	assert.Equal(t, "b2", clashes[1].ObjectID)
}

func TestDetect_RotatedObject(t *testing.T) {
	s := NewClashService(memory.NewConfigStore())

	route := clashTestRoute(
		domain.Point3D{X: 0, Y: 1, Z: 0},
		domain.Point3D{X: 10, Y: 1, Z: 0},
	)

	// A long thin beam along x misses a route offset in y; rotated 90
	// degrees it lies across the route.
	beam := testBeam("b1", domain.Point3D{X: 5, Y: 0, Z: 0}, domain.Dimensions{Width: 4, Depth: 0.2, Height: 1})

	clashes, err := s.Detect(t.Context(), route, []domain.BIMObject{beam})
	require.NoError(t, err)
	assert.Empty(t, clashes)

	beam.Rotation = 90
	clashes, err = s.Detect(t.Context(), route, []domain.BIMObject{beam})
	require.NoError(t, err)
	require.Len(t, clashes, 1)
	assert.InDelta(t, 125, clashes[0].PenetrationDepth, 1)
}

func TestDetect_Deterministic(t *testing.T) {
	s := NewClashService(memory.NewConfigStore())

	route := clashTestRoute(
		domain.Point3D{X: 0, Y: 0, Z: 0},
		domain.Point3D{X: 10, Y: 0, Z: 0},
		domain.Point3D{X: 10, Y: 10, Z: 0},
	)
	objects := []domain.BIMObject{
		testBeam("b1", domain.Point3D{X: 5, Y: 0, Z: 0}, domain.Dimensions{Width: 1, Depth: 1, Height: 1}),
		testBeam("b2", domain.Point3D{X: 10, Y: 5, Z: 0}, domain.Dimensions{Width: 1, Depth: 1, Height: 1}),
	}

	first, err := s.Detect(t.Context(), route, objects)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := s.Detect(t.Context(), route, objects)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDetect_HiddenObjectsStillChecked(t *testing.T) {
	s := NewClashService(memory.NewConfigStore())

	route := clashTestRoute(
		domain.Point3D{X: 0, Y: 0, Z: 0},
		domain.Point3D{X: 10, Y: 0, Z: 0},
	)
	beam := testBeam("b1", domain.Point3D{X: 5, Y: 0, Z: 0}, domain.Dimensions{Width: 1, Depth: 1, Height: 1})
	beam.Visible = false

	clashes, err := s.Detect(t.Context(), route, []domain.BIMObject{beam})
	require.NoError(t, err)
	assert.Len(t, clashes, 1)
}

func TestDetect_InvalidRoute(t *testing.T) {
	s := NewClashService(memory.NewConfigStore())

	route := clashTestRoute(domain.Point3D{X: 0, Y: 0, Z: 0})
	clashes, err := s.Detect(t.Context(), route, nil)
	assert.ErrorIs(t, err, domain.ErrTooFewPoints)
	assert.Nil(t, clashes)
}
