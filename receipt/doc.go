// Package receipt implements the Corridor State Receipt: the primary
// entity of the hash chain, its digest-set normalization, its Transition
// Envelope, and next_root computation.
//
// A receipt's next_root is SHA256(canonical(receipt_without_proof_and_
// without_next_root)); any edit to a bound field changes next_root, and
// proof is excluded from that signing input so multiple parties can
// co-sign the same payload (see the proof package).
package receipt
