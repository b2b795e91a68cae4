package proof

import (
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentum-sez/corridor-core/didkey"
)

func newSigner(t *testing.T) (ed25519.PrivateKey, string) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	did, err := didkey.Encode(pub)
	require.NoError(t, err)
	return priv, did + "#key-1"
}

func baseCredential() map[string]any {
	return map[string]any{
		"id":   "urn:uuid:00000000-0000-0000-0000-000000000001",
		"kind": "test-credential",
	}
}

func TestAttachVerify_SingleSigner(t *testing.T) {
	priv, vm := newSigner(t)
	cred := baseCredential()

	signed, err := Attach(cred, priv, vm, "assertionMethod", "2026-07-31T00:00:00Z")
	require.NoError(t, err)

	results, err := VerifyAll(signed)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.True(t, results[0].OK)
	require.NoError(t, results[0].Err)
	require.Equal(t, vm, results[0].VerificationMethod)
}

func TestAttachVerify_MultiSignerAppends(t *testing.T) {
	priv1, vm1 := newSigner(t)
	priv2, vm2 := newSigner(t)
	cred := baseCredential()

	once, err := Attach(cred, priv1, vm1, "assertionMethod", "2026-07-31T00:00:00Z")
	require.NoError(t, err)

	twice, err := Attach(once, priv2, vm2, "assertionMethod", "2026-07-31T00:00:01Z")
	require.NoError(t, err)

	list, ok := twice["proof"].([]any)
	require.True(t, ok)
	require.Len(t, list, 2)

	results, err := VerifyAll(twice)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		require.True(t, r.OK, r.Err)
	}
}

func TestVerify_TamperedPayloadFails(t *testing.T) {
	priv, vm := newSigner(t)
	cred := baseCredential()

	signed, err := Attach(cred, priv, vm, "assertionMethod", "2026-07-31T00:00:00Z")
	require.NoError(t, err)

	signed["kind"] = "tampered"
	results, err := VerifyAll(signed)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.False(t, results[0].OK)
	require.ErrorIs(t, results[0].Err, ErrSignatureInvalid)
}

func TestVerify_UnsignedCredentialReturnsEmpty(t *testing.T) {
	results, err := VerifyAll(baseCredential())
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestValidateShape_RejectsWrongType(t *testing.T) {
	p := Proof{Type: "SomethingElse", Created: "2026-07-31T00:00:00Z", VerificationMethod: "did:key:zFoo", ProofPurpose: "assertionMethod", JWS: "abc"}
	err := ValidateShape(p)
	require.ErrorIs(t, err, ErrUnsupportedProofType)
}

func TestValidateShape_RejectsBadProofPurpose(t *testing.T) {
	p := Proof{Type: Type, Created: "2026-07-31T00:00:00Z", VerificationMethod: "did:key:zFoo", ProofPurpose: "authentication", JWS: "abc"}
	err := ValidateShape(p)
	require.ErrorIs(t, err, ErrUnsupportedProofPurpose)
}

func TestValidateDates_FutureIssuanceRejected(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	cred := map[string]any{"issuanceDate": "2026-07-31T13:00:00Z"}
	errs := ValidateDates(cred, now)
	require.Len(t, errs, 1)
}

func TestValidateDates_ExpiredRejected(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	cred := map[string]any{"expirationDate": "2026-07-30T12:00:00Z"}
	errs := ValidateDates(cred, now)
	require.Len(t, errs, 1)
}

func TestValidateDates_MissingExpirationNeverExpires(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	cred := map[string]any{"issuanceDate": "2020-01-01T00:00:00Z"}
	errs := ValidateDates(cred, now)
	require.Empty(t, errs)
}
