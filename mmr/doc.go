// Package mmr implements the Merkle Mountain Range accumulator used to bind
// corridor state receipts into a single, append-only, inclusion-provable
// commitment.
//
// # Shape
//
// Unlike a position-indexed flat MMR, this package tracks the accumulator as
// an explicit stack of (height, hash) peaks, strictly decreasing in height
// left to right. Appending a leaf merges the stack while the top peak's
// height equals the height of the value being carried in; this mirrors the
// "carry" step of binary addition, which is why an MMR of size n has exactly
// popcount(n) peaks.
//
// # Hashing
//
// All hashing uses SHA-256 with domain separation:
//
//	leaf node   = SHA256(0x00 || leafBytes)
//	interior    = SHA256(0x01 || left || right)
//
// The leading tag byte prevents a leaf hash from ever colliding with an
// interior node hash irrespective of their payloads.
//
// # Root
//
// The accumulator root is the "bagged" peaks: fold right to left using the
// interior node hash, so the rightmost (smallest) peak is nested innermost
// and the leftmost (tallest) peak is nested outermost. A single peak MMR has
// root == that peak's hash.
//
// # Inclusion proofs
//
// A proof for leaf i locates the peak that owns i (a power-of-two subtree),
// builds a standard balanced Merkle path from the leaf to that peak's root,
// and carries a snapshot of every other peak so the verifier can substitute
// the recomputed peak root back into the accumulator and re-bag.
package mmr
