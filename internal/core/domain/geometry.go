package domain

import "math"

// Point2D is a position in sketch (pixel) space.
type Point2D struct {
	// X is the horizontal coordinate.
	X float64

	// Y is the vertical coordinate.
	Y float64
}

// Point3D is a position in real-world space, in metres.
// Z is elevation; a negative Z models a drop below the routing plane.
type Point3D struct {
	// X is the horizontal coordinate in metres.
	X float64

	// Y is the depth coordinate in metres.
	Y float64

	// Z is the elevation in metres.
	Z float64
}

// RoutePoint is a vertex of a cable route polyline.
type RoutePoint struct {
	Point3D

	// ID is unique within the owning route.
	ID string

	// Label is an optional human-readable marker (e.g. "DB-1 gland").
	Label string
}

// Dimensions describes the axis-aligned extent of a building element.
type Dimensions struct {
	// Width is the extent along X in metres.
	Width float64

	// Height is the extent along Z in metres.
	Height float64

	// Depth is the extent along Y in metres.
	Depth float64
}

// Distance2D returns the Euclidean distance between two plane points.
func Distance2D(a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Distance3D returns the Euclidean distance between two spatial points.
func Distance3D(a, b Point3D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dz := b.Z - a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Collinear reports whether b lies on the straight line through a and c,
// projected onto the XY plane. The test is the exact cross-product
// equality, so it only collapses mathematically straight runs.
func Collinear(a, b, c Point3D) bool {
	return (b.X-a.X)*(c.Y-b.Y) == (b.Y-a.Y)*(c.X-b.X)
}

// SimplifyCollinear drops interior points that sit on the straight line
// between their neighbours. Endpoints are always retained, and running
// the reduction twice returns the same polyline.
func SimplifyCollinear(points []Point3D) []Point3D {
	if len(points) <= 2 {
		return points
	}

	simplified := make([]Point3D, 0, len(points))
	simplified = append(simplified, points[0])

	for i := 1; i < len(points)-1; i++ {
		if !Collinear(simplified[len(simplified)-1], points[i], points[i+1]) {
			simplified = append(simplified, points[i])
		}
	}

	simplified = append(simplified, points[len(points)-1])
	return simplified
}

// ClosestPointOnSegment returns the point on segment [a,b] nearest to p.
func ClosestPointOnSegment(p, a, b Point3D) Point3D {
	ab := Point3D{X: b.X - a.X, Y: b.Y - a.Y, Z: b.Z - a.Z}
	lenSq := ab.X*ab.X + ab.Y*ab.Y + ab.Z*ab.Z
	if lenSq == 0 {
		return a
	}

	ap := Point3D{X: p.X - a.X, Y: p.Y - a.Y, Z: p.Z - a.Z}
	t := (ap.X*ab.X + ap.Y*ab.Y + ap.Z*ab.Z) / lenSq
	t = math.Max(0, math.Min(1, t))

	return Point3D{
		X: a.X + t*ab.X,
		Y: a.Y + t*ab.Y,
		Z: a.Z + t*ab.Z,
	}
}

// PolylineLength returns the sum of 3D segment lengths over the points.
func PolylineLength(points []Point3D) float64 {
	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		total += Distance3D(points[i], points[i+1])
	}
	return total
}
