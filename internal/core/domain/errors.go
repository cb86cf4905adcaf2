package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTooFewPoints indicates a route polyline with fewer than two points.
	ErrTooFewPoints = errors.New("route requires at least two points")

	// ErrInvalidDiameter indicates a non-positive cable diameter.
	ErrInvalidDiameter = errors.New("cable diameter must be positive")

	// ErrCoincidentPoints indicates two consecutive route points at the
	// same position.
	ErrCoincidentPoints = errors.New("consecutive route points are coincident")

	// ErrOutOfBounds indicates a pathfinding endpoint outside the
	// routable plane.
	ErrOutOfBounds = errors.New("point outside plane bounds")

	// ErrInvalidConfig indicates a malformed cost template, rule set, or
	// engine configuration. Rejected at load time, not at evaluation time.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDuplicateRule indicates two compliance rules registered under
	// the same regulation code.
	ErrDuplicateRule = errors.New("duplicate regulation code")

	// ErrEmptyPolyline indicates a sketched line with no usable geometry.
	ErrEmptyPolyline = errors.New("polyline has no points")

	// ErrInvalidScale indicates a sketch scale with a non-positive ratio.
	ErrInvalidScale = errors.New("scale ratio must be positive")
)
