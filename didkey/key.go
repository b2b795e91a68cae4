package didkey

import (
	"crypto/ed25519"
	"fmt"
	"strings"
)

const (
	multicodecEd25519Pub byte = 0xED
	multicodecVarintTail byte = 0x01
)

// Encode returns the did:key:z... identifier for an Ed25519 public key.
func Encode(pub ed25519.PublicKey) (string, error) {
	if len(pub) != ed25519.PublicKeySize {
		return "", fmt.Errorf("%w: got %d", ErrWrongKeyLength, len(pub))
	}
	prefixed := make([]byte, 0, 2+ed25519.PublicKeySize)
	prefixed = append(prefixed, multicodecEd25519Pub, multicodecVarintTail)
	prefixed = append(prefixed, pub...)
	return "did:key:z" + base58Encode(prefixed), nil
}

// Decode parses a did:key:z... identifier (a verificationMethod with a
// fragment must be normalized with StripFragment first) and returns the
// Ed25519 public key it encodes.
func Decode(did string) (ed25519.PublicKey, error) {
	if !strings.HasPrefix(did, "did:key:z") {
		return nil, ErrNotDIDKey
	}
	z := strings.TrimPrefix(did, "did:key:")
	if !strings.HasPrefix(z, "z") {
		return nil, ErrNotDIDKey
	}

	decoded, err := base58Decode(z[1:])
	if err != nil {
		return nil, err
	}

	var raw []byte
	switch {
	case len(decoded) == 1+ed25519.PublicKeySize && decoded[0] == multicodecEd25519Pub:
		// A 33-byte payload is the one-byte form, even when the key itself
		// begins with 0x01.
		raw = decoded[1:]
	case len(decoded) >= 2 && decoded[0] == multicodecEd25519Pub && decoded[1] == multicodecVarintTail:
		raw = decoded[2:]
	case len(decoded) >= 1 && decoded[0] == multicodecEd25519Pub:
		// Compatibility path for encodings that drop the varint continuation byte.
		raw = decoded[1:]
	default:
		return nil, ErrUnrecognizedMulticodec
	}

	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: got %d", ErrWrongKeyLength, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

// StripFragment removes a "#..." verificationMethod fragment, returning the
// base did:key identifier.
func StripFragment(didOrVM string) string {
	if i := strings.IndexByte(didOrVM, '#'); i >= 0 {
		return didOrVM[:i]
	}
	return didOrVM
}
