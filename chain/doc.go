// Package chain builds the canonical corridor receipt chain from an
// unordered set of receipts: validation and grouping, fork-point detection,
// fork-resolution application, checkpoint bootstrap, and MMR head
// computation.
//
// Build is pure once its inputs are in memory: no CAS access, no clock reads,
// no globals. Collaborators the core does not own — schema validation, trust
// anchors, signer-threshold policy — are consumed as interfaces so tests can
// supply fakes and so the authority/schema packages never need to be
// imported here.
package chain
