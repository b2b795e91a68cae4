package checkpoint

import (
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentum-sez/corridor-core/canon"
	"github.com/momentum-sez/corridor-core/cas"
)

func TestCOSE_EncodeDecodeRoundTrip(t *testing.T) {
	s := newSigner(t)
	head, _ := buildChain(t, s, 2)

	ck := Build(head, nil, nil, canon.UTC(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
	signed, err := Sign(ck, s.priv, s.vm, "2026-01-02T00:00:00Z")
	require.NoError(t, err)

	wire, err := EncodeCOSESign1(signed, s.priv, s.vm)
	require.NoError(t, err)

	pub := s.priv.Public().(ed25519.PublicKey)
	decoded, err := DecodeCOSESign1(wire, pub)
	require.NoError(t, err)

	gotDigest, err := decoded.DigestSHA256()
	require.NoError(t, err)
	wantDigest, err := signed.DigestSHA256()
	require.NoError(t, err)
	require.Equal(t, wantDigest, gotDigest)
}

func TestCOSE_TamperedEnvelopeRejected(t *testing.T) {
	s := newSigner(t)
	head, _ := buildChain(t, s, 1)
	ck := Build(head, nil, nil, canon.UTC(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
	signed, err := Sign(ck, s.priv, s.vm, "2026-01-02T00:00:00Z")
	require.NoError(t, err)

	wire, err := EncodeCOSESign1(signed, s.priv, s.vm)
	require.NoError(t, err)

	other := newSigner(t)
	_, err = DecodeCOSESign1(wire, other.priv.Public().(ed25519.PublicKey))
	require.Error(t, err)
}

func TestCOSE_StoreRoundTrip(t *testing.T) {
	s := newSigner(t)
	head, _ := buildChain(t, s, 2)
	ck := Build(head, nil, nil, canon.UTC(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
	signed, err := Sign(ck, s.priv, s.vm, "2026-01-02T00:00:00Z")
	require.NoError(t, err)

	store := cas.NewStore(t.TempDir())
	digest, err := PutCOSE(store, signed, s.priv, s.vm)
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	got, err := GetCOSE(store, digest, s.priv.Public().(ed25519.PublicKey))
	require.NoError(t, err)

	gotDigest, err := got.DigestSHA256()
	require.NoError(t, err)
	wantDigest, err := signed.DigestSHA256()
	require.NoError(t, err)
	require.Equal(t, wantDigest, gotDigest)
}
