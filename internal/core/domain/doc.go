// Package domain defines the core business entities for the cable
// routing engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CableRoute: An engineered cable run with derived metrics
//   - BIMObject: A positioned building element routes are checked against
//   - Clash: A detected overlap between a route and a building element
//   - ComplianceCheck: The outcome of one regulation rule evaluation
//   - RouteVersion: An immutable snapshot of a route at save time
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
