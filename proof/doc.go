// Package proof implements the MsezEd25519Signature2025 proof envelope: a
// compact, JOSE-header-free Ed25519 signature attached to a canonicalized
// object under its "proof" member.
//
// The signing input for any object is the canonical bytes (see the canon
// package) of that object with its "proof" member removed, which is what
// lets multiple parties co-sign the same payload independently: each
// signer computes the same signing input and appends its own proof rather
// than re-signing the others' proofs.
//
// "proof" may hold a single proof object or a list of them; Attach always
// normalizes toward a list once a second signer is added, and VerifyAll
// accepts either shape.
package proof
