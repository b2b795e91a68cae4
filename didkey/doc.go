// Package didkey implements the did:key method restricted to Ed25519, and
// the JWK encodings used to move Ed25519 keypairs in and out of files.
//
// A did:key identifier is "did:key:z" followed by the base58btc encoding of
// the multicodec-prefixed public key: the two bytes 0xED 0x01 (the
// ed25519-pub multicodec) followed by the raw 32-byte Ed25519 public key.
// Parsing also accepts a one-byte 0xED prefix for compatibility with
// encoders that drop the multicodec's varint continuation byte, but Encode
// never produces that shorter form.
package didkey
