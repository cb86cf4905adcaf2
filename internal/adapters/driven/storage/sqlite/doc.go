// Package sqlite provides a SQLite-backed implementation of the
// driven storage ports.
//
// A single Store owns the database connection; RouteStore and
// VersionStore views share it. Route geometry and metrics are stored
// as JSON columns: the engine never queries inside them, so a
// relational breakdown would buy nothing.
//
// Version rows are append-only. Listing orders by timestamp
// descending with rowid as the tie-breaker, so versions saved in the
// same clock tick still present in a stable reverse-insertion order.
package sqlite
