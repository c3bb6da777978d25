// Package geometry implements the triangulation state of a causal
// dynamical triangulation in three dimensions: a periodic stack of
// spatial 2-sphere slices glued by tetrahedra that each span exactly
// two adjacent time slices.
//
// # Data model
//
// All entities (vertices, tetrahedra, and the derived triangles and
// half-edges) live in fixed-capacity pools and refer to each other
// through integer labels. This keeps the cyclic connectivity graph
// free of pointers and makes the Monte Carlo moves cheap: a move
// touches a bounded ring of tetrahedra around a randomly picked seed
// and patches labels in place.
//
// The Universe owns the pools, the membership bags used for uniform
// random sampling, and the per-slice volume counters. Five families of
// local moves mutate it; UpdateGeometry derives the per-slice
// half-edge and triangle connectivity consumed by measurements.
//
// # Error model
//
// Structural move preconditions fail softly (the move returns false
// and the state is untouched). Violations of internal invariants -
// bag preconditions, access to freed labels, broken neighbor
// reciprocity mid-move - are programmer errors and panic. Validate
// performs the full invariant sweep and returns structured errors for
// use in tests and the check command.
package geometry
