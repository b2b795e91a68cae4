package checkpoint

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/veraison/go-cose"

	"github.com/momentum-sez/corridor-core/canon"
	"github.com/momentum-sez/corridor-core/cas"
)

// EncodeCOSESign1 wraps a checkpoint's canonical JSON bytes (proof included)
// in a COSE_Sign1 envelope for compact gossip/wire transport. This is purely
// a transport alternative: the envelope's own signature authenticates the
// wire hop, it is never an input to DigestSHA256 or to the checkpoint's own
// verified proof list, both of which always operate on the canonical JSON
// bytes directly.
func EncodeCOSESign1(c Checkpoint, priv ed25519.PrivateKey, verificationMethod string) ([]byte, error) {
	payload, err := canon.Canonicalize(c.ToMap())
	if err != nil {
		return nil, err
	}

	signer, err := cose.NewSigner(cose.AlgorithmEdDSA, priv)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: cose signer: %w", err)
	}

	msg := &cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				cose.HeaderLabelAlgorithm: cose.AlgorithmEdDSA,
				cose.HeaderLabelKeyID:     []byte(verificationMethod),
			},
		},
		Payload: payload,
	}
	if err := msg.Sign(rand.Reader, nil, signer); err != nil {
		return nil, fmt.Errorf("checkpoint: cose sign: %w", err)
	}
	return msg.MarshalCBOR()
}

// DecodeCOSESign1 verifies and unwraps a COSE_Sign1-encoded checkpoint
// envelope, recovering the Checkpoint carried in its payload.
func DecodeCOSESign1(data []byte, pub ed25519.PublicKey) (Checkpoint, error) {
	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(data); err != nil {
		return Checkpoint{}, fmt.Errorf("checkpoint: cose decode: %w", err)
	}

	verifier, err := cose.NewVerifier(cose.AlgorithmEdDSA, pub)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("checkpoint: cose verifier: %w", err)
	}
	if err := msg.Verify(nil, verifier); err != nil {
		return Checkpoint{}, fmt.Errorf("checkpoint: cose verify: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(msg.Payload, &m); err != nil {
		return Checkpoint{}, fmt.Errorf("checkpoint: cose payload decode: %w", err)
	}
	return FromMap(m)
}

// PutCOSE encodes c as a COSE_Sign1 envelope and writes it into store under
// cas.TypeCheckpoint, returning the content digest of the encoded bytes. This
// is the gossip/compact wire form for a checkpoint: the store still holds
// whatever canonical-JSON checkpoint artifacts callers already put there
// under that same type, the COSE form is just another digest-addressed
// object alongside them. Verify and DigestSHA256 never see this encoding;
// they always operate on c.ToMap()'s canonical JSON, per spec.
func PutCOSE(store *cas.Store, c Checkpoint, priv ed25519.PrivateKey, verificationMethod string) (digest string, err error) {
	wire, err := EncodeCOSESign1(c, priv, verificationMethod)
	if err != nil {
		return "", err
	}
	return store.Put(cas.TypeCheckpoint, ".cose", wire)
}

// GetCOSE reads and decodes a COSE_Sign1-encoded checkpoint previously
// written by PutCOSE, verifying its envelope signature against pub.
func GetCOSE(store *cas.Store, digest string, pub ed25519.PublicKey) (Checkpoint, error) {
	wire, err := store.Get(cas.TypeCheckpoint, digest)
	if err != nil && !errors.Is(err, cas.ErrIntegrityWarning) {
		return Checkpoint{}, err
	}
	return DecodeCOSESign1(wire, pub)
}
