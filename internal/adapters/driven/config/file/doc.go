// Package file provides a TOML-backed implementation of the driven
// config port.
//
// The configuration file holds every tunable policy constant in the
// engine (complexity thresholds, clash severity bands, electrical rule
// parameters, takeoff factors) plus the cost template library. A
// missing file yields the engine defaults; a malformed file is
// rejected at load time, never at evaluation time.
//
// Watch re-reads the file on write events so thresholds can be tuned
// mid design session without restarting.
package file
