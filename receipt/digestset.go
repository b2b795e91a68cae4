package receipt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/momentum-sez/corridor-core/canon"
)

// DigestRef is a single entry in a digest set: either a bare 64-hex digest,
// or a typed reference carrying an artifact_type alongside the digest and
// an optional locator URI. Either shape normalizes to the same underlying
// digest for sorting and set arithmetic.
type DigestRef struct {
	ArtifactType string
	DigestSHA256 string
	URI          string
	typed        bool
}

// Raw constructs an untyped DigestRef from a bare hex digest.
func Raw(digestHex string) DigestRef {
	return DigestRef{DigestSHA256: digestHex}
}

// Typed constructs a typed DigestRef.
func Typed(artifactType, digestHex, uri string) DigestRef {
	return DigestRef{ArtifactType: artifactType, DigestSHA256: digestHex, URI: uri, typed: true}
}

// IsTyped reports whether r carries an artifact_type/uri, as opposed to
// being a bare hex string.
func (r DigestRef) IsTyped() bool {
	return r.typed
}

// Digest returns the normalized lowercase hex digest this reference
// points at.
func (r DigestRef) Digest() string {
	return strings.ToLower(r.DigestSHA256)
}

// ToValue renders r as the value digest-set entries take in a canonical
// map: a bare string for Raw, or a map for Typed.
func (r DigestRef) ToValue() any {
	if !r.typed {
		return r.Digest()
	}
	m := map[string]any{
		"artifact_type": r.ArtifactType,
		"digest_sha256": r.Digest(),
	}
	if r.URI != "" {
		m["uri"] = r.URI
	}
	return m
}

// digestRefFromValue parses one digest-set entry out of a decoded
// map[string]any / string value.
func digestRefFromValue(v any) (DigestRef, error) {
	switch val := v.(type) {
	case string:
		if !canon.IsHex32(val) {
			return DigestRef{}, fmt.Errorf("%w: %q", ErrInvalidDigestRef, val)
		}
		return Raw(val), nil
	case map[string]any:
		digestHex, _ := val["digest_sha256"].(string)
		if !canon.IsHex32(digestHex) {
			return DigestRef{}, fmt.Errorf("%w: %v", ErrInvalidDigestRef, val)
		}
		artifactType, _ := val["artifact_type"].(string)
		uri, _ := val["uri"].(string)
		return Typed(artifactType, digestHex, uri), nil
	default:
		return DigestRef{}, fmt.Errorf("%w: unsupported shape %T", ErrInvalidDigestRef, v)
	}
}

// DigestSetFromValue parses a digest set ([]any of strings/typed objects)
// out of decoded JSON.
func DigestSetFromValue(v any) ([]DigestRef, error) {
	arr, ok := v.([]any)
	if !ok {
		if v == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: digest set must be an array", ErrInvalidDigestRef)
	}
	out := make([]DigestRef, 0, len(arr))
	for _, item := range arr {
		ref, err := digestRefFromValue(item)
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}

// NormalizeDigestSet sorts refs by their underlying digest and removes
// duplicates (same digest, regardless of raw-vs-typed shape — the first
// occurrence in sorted order wins).
func NormalizeDigestSet(refs []DigestRef) []DigestRef {
	sorted := make([]DigestRef, len(refs))
	copy(sorted, refs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Digest() < sorted[j].Digest()
	})

	out := make([]DigestRef, 0, len(sorted))
	seen := make(map[string]bool, len(sorted))
	for _, r := range sorted {
		d := r.Digest()
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, r)
	}
	return out
}

// DigestSetToValue renders a normalized digest set as the []any a
// canonical map expects.
func DigestSetToValue(refs []DigestRef) []any {
	normalized := NormalizeDigestSet(refs)
	out := make([]any, len(normalized))
	for i, r := range normalized {
		out[i] = r.ToValue()
	}
	return out
}

// digestsEqual reports whether two digest sets, compared only on their
// underlying digests, are identical sets.
func digestsEqual(a, b []DigestRef) bool {
	na, nb := NormalizeDigestSet(a), NormalizeDigestSet(b)
	if len(na) != len(nb) {
		return false
	}
	for i := range na {
		if na[i].Digest() != nb[i].Digest() {
			return false
		}
	}
	return true
}

// digestSetSupersetOf reports whether have includes every digest in want.
func digestSetSupersetOf(have, want []DigestRef) bool {
	haveSet := make(map[string]bool, len(have))
	for _, r := range NormalizeDigestSet(have) {
		haveSet[r.Digest()] = true
	}
	for _, r := range NormalizeDigestSet(want) {
		if !haveSet[r.Digest()] {
			return false
		}
	}
	return true
}
