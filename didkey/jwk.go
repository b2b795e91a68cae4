package didkey

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// JWK is an OKP/Ed25519 JSON Web Key, public or private.
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	D   string `json:"d,omitempty"`
	Kid string `json:"kid,omitempty"`
}

func b64url(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func unb64url(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}

// GenerateJWK creates a fresh Ed25519 OKP keypair and returns it as a
// private JWK.
func GenerateJWK(kid string) (JWK, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return JWK{}, err
	}
	return JWK{
		Kty: "OKP",
		Crv: "Ed25519",
		X:   b64url(pub),
		D:   b64url(priv.Seed()),
		Kid: kid,
	}, nil
}

// PublicJWK returns a copy of jwk with its private 'd' member removed.
func PublicJWK(jwk JWK) JWK {
	out := jwk
	out.D = ""
	return out
}

// LoadPrivateKey loads an Ed25519 private key from an OKP private JWK and
// returns it with the did:key identifier its public half encodes.
func LoadPrivateKey(jwk JWK) (ed25519.PrivateKey, string, error) {
	if jwk.Kty != "OKP" || jwk.Crv != "Ed25519" {
		return nil, "", ErrUnsupportedJWK
	}
	if jwk.D == "" || jwk.X == "" {
		return nil, "", ErrIncompleteJWK
	}

	seed, err := unb64url(jwk.D)
	if err != nil {
		return nil, "", fmt.Errorf("didkey: decode 'd': %w", err)
	}
	pubBytes, err := unb64url(jwk.X)
	if err != nil {
		return nil, "", fmt.Errorf("didkey: decode 'x': %w", err)
	}

	var priv ed25519.PrivateKey
	switch len(seed) {
	case ed25519.SeedSize:
		priv = ed25519.NewKeyFromSeed(seed)
	case ed25519.PrivateKeySize:
		priv = ed25519.PrivateKey(seed)
	default:
		return nil, "", fmt.Errorf("%w: 'd' must be a %d-byte seed or %d-byte expanded key, got %d",
			ErrIncompleteJWK, ed25519.SeedSize, ed25519.PrivateKeySize, len(seed))
	}

	did, err := Encode(ed25519.PublicKey(pubBytes))
	if err != nil {
		return nil, "", err
	}
	return priv, did, nil
}

// keyFileWrapper is the on-disk shape accepted by LoadProofKeypair: either a
// bare private JWK, or a wrapper naming an explicit verificationMethod.
type keyFileWrapper struct {
	PrivateJWK          *JWK   `json:"private_jwk,omitempty"`
	JWK                 *JWK   `json:"jwk,omitempty"`
	VerificationMethod  string `json:"verificationMethod,omitempty"`
	VerificationMethod2 string `json:"verification_method,omitempty"`
	VM                  string `json:"vm,omitempty"`
}

// LoadProofKeypair reads an Ed25519 keypair from a JSON file for use in
// signing proofs. It accepts either a bare private OKP JWK, or a wrapper
// object carrying "private_jwk"/"jwk" plus an explicit verificationMethod.
// When no explicit verificationMethod is present, it defaults to
// "<did:key>#<kid>" using the JWK's own "kid", or defaultKid when it has none.
func LoadProofKeypair(path string, defaultKid string) (ed25519.PrivateKey, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	var wrapper keyFileWrapper
	var bareJWK JWK
	var jwk JWK
	vm := ""

	// Try the wrapper shape first; fall back to a bare JWK object.
	if err := json.Unmarshal(raw, &wrapper); err == nil && (wrapper.PrivateJWK != nil || wrapper.JWK != nil) {
		if wrapper.PrivateJWK != nil {
			jwk = *wrapper.PrivateJWK
		} else {
			jwk = *wrapper.JWK
		}
		vm = firstNonEmpty(wrapper.VerificationMethod, wrapper.VerificationMethod2, wrapper.VM)
	} else {
		if err := json.Unmarshal(raw, &bareJWK); err != nil {
			return nil, "", fmt.Errorf("didkey: key file must be a JSON object: %w", err)
		}
		jwk = bareJWK
	}

	priv, did, err := LoadPrivateKey(jwk)
	if err != nil {
		return nil, "", err
	}

	kid := jwk.Kid
	if kid == "" {
		kid = defaultKid
	}
	if vm == "" {
		vm = did + "#" + kid
	}
	return priv, vm, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
