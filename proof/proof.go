package proof

import (
	"crypto/ed25519"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/momentum-sez/corridor-core/canon"
	"github.com/momentum-sez/corridor-core/didkey"
)

// Type is the only proof type this repository issues or accepts.
const Type = "MsezEd25519Signature2025"

// allowedPurposes holds the proofPurpose values this repository accepts;
// "assertionMethod" is its only entry. It is kept as a set rather than a
// constant comparison so a future purpose can be added without changing
// ValidateShape's call sites.
var allowedPurposes = map[string]bool{
	"assertionMethod": true,
}

var (
	rfc3339ZRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)
	b64urlRe   = regexp.MustCompile(`^[A-Za-z0-9_-]*$`)
)

// Proof is one MsezEd25519Signature2025 proof object.
type Proof struct {
	Type               string
	Created            string
	VerificationMethod string
	ProofPurpose       string
	JWS                string
}

// ToMap renders p as the map[string]any shape Canonicalize expects.
func (p Proof) ToMap() map[string]any {
	return map[string]any{
		"type":               p.Type,
		"created":            p.Created,
		"verificationMethod": p.VerificationMethod,
		"proofPurpose":       p.ProofPurpose,
		"jws":                p.JWS,
	}
}

// proofFromMap reads a Proof back out of a decoded map[string]any, tolerant
// of json.Unmarshal's default any-shaped output.
func proofFromMap(m map[string]any) Proof {
	str := func(k string) string {
		s, _ := m[k].(string)
		return s
	}
	return Proof{
		Type:               str("type"),
		Created:            str("created"),
		VerificationMethod: str("verificationMethod"),
		ProofPurpose:       str("proofPurpose"),
		JWS:                str("jws"),
	}
}

// SigningInput returns the canonical bytes of credential with its "proof"
// member removed.
func SigningInput(credential map[string]any) ([]byte, error) {
	signingObj := make(map[string]any, len(credential))
	for k, v := range credential {
		if k == "proof" {
			continue
		}
		signingObj[k] = v
	}
	return canon.Canonicalize(signingObj)
}

// ValidateShape validates a proof object's fields without verifying the
// signature: the type, created, verificationMethod, proofPurpose, and jws
// syntax invariants that let this repository produce tight error messages
// and enforce the proof profile before anything touches cryptography.
func ValidateShape(p Proof) error {
	if subtle.ConstantTimeCompare([]byte(p.Type), []byte(Type)) != 1 {
		return fmt.Errorf("%w: %q (expected %q)", ErrUnsupportedProofType, p.Type, Type)
	}
	if !rfc3339ZRe.MatchString(p.Created) {
		return fmt.Errorf("%w: %q", ErrInvalidCreated, p.Created)
	}
	vm := strings.TrimSpace(p.VerificationMethod)
	if vm == "" || !strings.HasPrefix(vm, "did:key:") {
		return fmt.Errorf("%w: %q", ErrInvalidVerificationMethod, p.VerificationMethod)
	}
	if !allowedPurposes[p.ProofPurpose] {
		return fmt.Errorf("%w: %q", ErrUnsupportedProofPurpose, p.ProofPurpose)
	}
	if p.JWS == "" || !b64urlRe.MatchString(p.JWS) {
		return fmt.Errorf("%w: %q", ErrInvalidJWS, p.JWS)
	}
	return nil
}

// proofsAsList normalizes credential["proof"] into a slice without
// silently dropping malformed entries, so a caller can detect any
// non-conformant proof downstream rather than have it disappear.
func proofsAsList(raw any) ([]map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return []map[string]any{v}, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, ErrMalformedProofShape
			}
			out = append(out, m)
		}
		return out, nil
	case []map[string]any:
		return v, nil
	default:
		return nil, ErrMalformedProofShape
	}
}

// Attach signs credential with priv under verificationMethod and appends a
// new proof to its "proof" member, preserving any existing proofs so
// multiple parties can co-sign the same payload. created should normally
// come from internal/clock.Now via the caller.
func Attach(credential map[string]any, priv ed25519.PrivateKey, verificationMethod, proofPurpose, created string) (map[string]any, error) {
	msg, err := SigningInput(credential)
	if err != nil {
		return nil, err
	}
	sig := ed25519.Sign(priv, msg)

	newProof := Proof{
		Type:               Type,
		Created:            created,
		VerificationMethod: verificationMethod,
		ProofPurpose:       proofPurpose,
		JWS:                base64.RawURLEncoding.EncodeToString(sig),
	}
	if err := ValidateShape(newProof); err != nil {
		return nil, err
	}

	out := make(map[string]any, len(credential)+1)
	for k, v := range credential {
		out[k] = v
	}

	existing, err := proofsAsList(credential["proof"])
	if err != nil {
		return nil, err
	}
	newProofMap := newProof.ToMap()
	switch len(existing) {
	case 0:
		out["proof"] = newProofMap
	default:
		list := make([]any, 0, len(existing)+1)
		for _, p := range existing {
			list = append(list, p)
		}
		list = append(list, newProofMap)
		out["proof"] = list
	}
	return out, nil
}

// Result records the outcome of verifying a single proof.
type Result struct {
	VerificationMethod string
	OK                 bool
	Err                error
}

// VerifyAll verifies every proof attached to credential against the
// canonical signing input (credential with "proof" removed). It returns one
// Result per proof found; a credential with no proof returns an empty
// slice, not an error, since "unsigned" is a state callers check for
// explicitly via len(results) == 0.
func VerifyAll(credential map[string]any) ([]Result, error) {
	msg, err := SigningInput(credential)
	if err != nil {
		return nil, err
	}

	proofs, err := proofsAsList(credential["proof"])
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(proofs))
	for _, raw := range proofs {
		p := proofFromMap(raw)
		vm := p.VerificationMethod
		res := Result{VerificationMethod: vm}

		if err := verifyOne(p, msg); err != nil {
			res.Err = err
		} else {
			res.OK = true
		}
		results = append(results, res)
	}
	return results, nil
}

func verifyOne(p Proof, msg []byte) error {
	if err := ValidateShape(p); err != nil {
		return err
	}

	did := didkey.StripFragment(p.VerificationMethod)
	pub, err := didkey.Decode(did)
	if err != nil {
		return err
	}

	sig, err := base64.RawURLEncoding.DecodeString(p.JWS)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJWS, err)
	}
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("%w: got %d", ErrWrongSignatureLength, len(sig))
	}

	if !ed25519.Verify(pub, msg, sig) {
		return ErrSignatureInvalid
	}
	return nil
}
