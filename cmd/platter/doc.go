// Package main hosts the platter CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// batch runs: genre ad grids, store inventory builds and syncs, price
// sheet round-trips, cover hunts, and configuration scaffolding. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the
// internal packages first, then surface it through dedicated commands
// or flags here.
package main
