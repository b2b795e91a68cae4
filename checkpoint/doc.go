// Package checkpoint builds and verifies the signed roll-up of a canonical
// chain head (spec §4.6): a Checkpoint envelope carrying the corridor's
// genesis root, receipt count, final state root, and MMR accumulator state,
// signed by one or more parties. It also builds and verifies MMR inclusion
// proofs for individual receipts, optionally bound to a specific checkpoint
// via a digest reference.
//
// Like package chain, this package is pure once its inputs are in memory:
// trust-anchor and threshold policies are consumed as interfaces, never
// looked up from a global registry.
package checkpoint
