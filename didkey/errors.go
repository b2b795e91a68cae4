package didkey

import "errors"

var (
	// ErrInvalidBase58 is returned by Decode for a string containing a
	// character outside the base58btc alphabet.
	ErrInvalidBase58 = errors.New("didkey: invalid base58 character")
	// ErrNotDIDKey is returned when a string does not begin with "did:key:z".
	ErrNotDIDKey = errors.New("didkey: not a did:key:z... identifier")
	// ErrUnrecognizedMulticodec is returned when the decoded multibase
	// payload does not begin with the ed25519-pub multicodec prefix.
	ErrUnrecognizedMulticodec = errors.New("didkey: multicodec prefix not recognized for Ed25519")
	// ErrWrongKeyLength is returned when the decoded public key is not 32
	// bytes.
	ErrWrongKeyLength = errors.New("didkey: ed25519 public key must be 32 bytes")
	// ErrUnsupportedJWK is returned for any JWK that is not an OKP/Ed25519
	// keypair.
	ErrUnsupportedJWK = errors.New("didkey: only OKP/Ed25519 JWK is supported")
	// ErrIncompleteJWK is returned when a private JWK is missing its 'x' or
	// 'd' member.
	ErrIncompleteJWK = errors.New("didkey: JWK must include both 'x' (public) and 'd' (private)")
)
