package didkey

import (
	"crypto/ed25519"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	did, err := Encode(pub)
	require.NoError(t, err)
	require.Regexp(t, `^did:key:z`, did)

	decoded, err := Decode(did)
	require.NoError(t, err)
	require.Equal(t, pub, decoded)
}

func TestDecode_CompatibilityShortPrefix(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	short := "did:key:z" + base58Encode(append([]byte{multicodecEd25519Pub}, pub...))
	decoded, err := Decode(short)
	require.NoError(t, err)
	require.Equal(t, pub, decoded)
}

func TestDecode_RejectsNonDIDKey(t *testing.T) {
	_, err := Decode("did:web:example.com")
	require.ErrorIs(t, err, ErrNotDIDKey)
}

func TestDecode_RejectsBadMulticodec(t *testing.T) {
	bogus := "did:key:z" + base58Encode([]byte{0x01, 0x02, 0x03})
	_, err := Decode(bogus)
	require.ErrorIs(t, err, ErrUnrecognizedMulticodec)
}

func TestStripFragment(t *testing.T) {
	require.Equal(t, "did:key:zABC", StripFragment("did:key:zABC#key-1"))
	require.Equal(t, "did:key:zABC", StripFragment("did:key:zABC"))
}

func TestBase58_RoundTripWithLeadingZeros(t *testing.T) {
	b := []byte{0x00, 0x00, 0x01, 0x02, 0x03}
	enc := base58Encode(b)
	dec, err := base58Decode(enc)
	require.NoError(t, err)
	require.Equal(t, b, dec)
}

func TestGenerateJWK_LoadPrivateKey_RoundTrip(t *testing.T) {
	jwk, err := GenerateJWK("key-1")
	require.NoError(t, err)
	require.Equal(t, "OKP", jwk.Kty)
	require.Equal(t, "Ed25519", jwk.Crv)

	priv, did, err := LoadPrivateKey(jwk)
	require.NoError(t, err)
	require.Regexp(t, `^did:key:z`, did)

	pub, err := Decode(did)
	require.NoError(t, err)
	require.Equal(t, ed25519.PublicKey(priv.Public().(ed25519.PublicKey)), pub)
}

func TestPublicJWK_StripsPrivateMember(t *testing.T) {
	jwk, err := GenerateJWK("key-1")
	require.NoError(t, err)
	pub := PublicJWK(jwk)
	require.Empty(t, pub.D)
	require.Equal(t, jwk.X, pub.X)
}

func TestLoadProofKeypair_BareJWK(t *testing.T) {
	jwk, err := GenerateJWK("key-1")
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "key.json")
	writeJSON(t, path, jwk)

	priv, vm, err := LoadProofKeypair(path, "key-1")
	require.NoError(t, err)
	require.NotNil(t, priv)
	require.Contains(t, vm, "#key-1")
}

func TestLoadProofKeypair_WrapperWithExplicitVM(t *testing.T) {
	jwk, err := GenerateJWK("key-1")
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "key.json")
	writeJSON(t, path, map[string]any{
		"private_jwk":        jwk,
		"verificationMethod": "did:key:zExplicit#key-9",
	})

	_, vm, err := LoadProofKeypair(path, "key-1")
	require.NoError(t, err)
	require.Equal(t, "did:key:zExplicit#key-9", vm)
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, json.NewEncoder(f).Encode(v))
}
