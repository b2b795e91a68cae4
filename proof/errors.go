package proof

import "errors"

var (
	// ErrUnsupportedProofType is returned when proof.type is not
	// MsezEd25519Signature2025.
	ErrUnsupportedProofType = errors.New("proof: unsupported proof.type")
	// ErrInvalidCreated is returned when proof.created is not an RFC3339
	// seconds-precision UTC timestamp.
	ErrInvalidCreated = errors.New("proof: created must be RFC3339 seconds precision with a Z suffix")
	// ErrInvalidVerificationMethod is returned when proof.verificationMethod
	// is empty or not a did:key identifier.
	ErrInvalidVerificationMethod = errors.New("proof: verificationMethod must be a non-empty did:key identifier")
	// ErrUnsupportedProofPurpose is returned for any proofPurpose outside
	// the allow-list.
	ErrUnsupportedProofPurpose = errors.New("proof: unsupported proofPurpose")
	// ErrInvalidJWS is returned when proof.jws is empty or not base64url.
	ErrInvalidJWS = errors.New("proof: jws must be a non-empty base64url string")
	// ErrWrongSignatureLength is returned when a decoded jws is not 64 bytes.
	ErrWrongSignatureLength = errors.New("proof: ed25519 signature must be 64 bytes")
	// ErrMalformedProofShape is returned when credential["proof"] is neither
	// a proof object, a list of them, nor absent.
	ErrMalformedProofShape = errors.New("proof: credential.proof must be an object, a list of objects, or absent")
	// ErrSignatureInvalid is reported in a VerifyAll Result's Err when the
	// signature does not match the signing input.
	ErrSignatureInvalid = errors.New("proof: signature verification failed")
)
