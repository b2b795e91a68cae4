// Package finality computes a corridor's finality level from the evidence
// available about its canonical head: the head itself, an optional verified
// checkpoint, an optional watcher quorum result, and optional anchor and
// arbitration-award attestations. Evaluate is a pure function: every input
// is a value or an already-verified result, never a store lookup performed
// internally.
package finality
