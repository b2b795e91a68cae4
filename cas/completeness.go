package cas

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/momentum-sez/corridor-core/bloom"
)

// Ref names one artifact a completeness walk needs to find: its type and
// content digest.
type Ref struct {
	Type   ArtifactType
	Digest string
}

// completenessBitsPerElement and completenessK are tuned for a few thousand
// to a few hundred thousand artifacts per corridor at roughly a 1% false
// positive rate (about 1.2% for 10 bits per element and k=4); they are an I/O optimization, never a correctness
// guarantee (see bloom's package doc).
const (
	completenessBitsPerElement = 10
	completenessK              = 4
)

// CompletenessIndex is a bloom-filter prefilter over every digest currently
// present in a store, for one artifact type, built once by scanning the
// store's roots. A "definitely not present" answer lets a transitive
// completeness walk skip a filesystem Resolve entirely.
type CompletenessIndex struct {
	region []byte
}

// BuildCompletenessIndex scans every root of store for artifacts of type t
// and inserts their digests into a fresh bloom filter.
func BuildCompletenessIndex(store *Store, t ArtifactType) (*CompletenessIndex, error) {
	digests, err := listDigests(store, t)
	if err != nil {
		return nil, err
	}

	digestCount := uint64(len(digests))
	if digestCount == 0 {
		digestCount = 1 // bloom.InitFilter rejects a zero digest count.
	}
	mBits := bloom.MBitsSafeCast(bloom.MBits(digestCount, completenessBitsPerElement))
	region := make([]byte, bloom.RegionBytes(mBits))
	if err := bloom.InitFilter(region, digestCount, completenessBitsPerElement, completenessK); err != nil {
		return nil, err
	}

	for _, d := range digests {
		raw, err := hex.DecodeString(d)
		if err != nil {
			continue
		}
		if err := bloom.InsertDigest(region, 0, raw); err != nil {
			return nil, err
		}
	}
	return &CompletenessIndex{region: region}, nil
}

// listDigests enumerates every on-disk digest for type t across all of
// store's roots.
func listDigests(store *Store, t ArtifactType) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, root := range store.roots {
		dir := filepath.Join(root, string(t))
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			digest := strings.TrimSuffix(name, filepath.Ext(name))
			if !validDigest(digest) || seen[digest] {
				continue
			}
			seen[digest] = true
			out = append(out, digest)
		}
	}
	return out, nil
}

// MaybeContains consults the bloom prefilter for digest. false means
// digest is definitely absent; true means it may be present and must be
// confirmed against the store.
func (idx *CompletenessIndex) MaybeContains(digest string) (bool, error) {
	raw, err := hex.DecodeString(digest)
	if err != nil || len(raw) != bloom.ValueBytes {
		return false, fmt.Errorf("%w: %q", ErrInvalidDigest, digest)
	}
	return bloom.MaybeContainsDigest(idx.region, 0, raw)
}

// CheckCompleteness walks a transitive reference graph starting at roots,
// using expand to discover each artifact's child references, and confirms
// every reference resolves in store. The bloom index lets a definitely-
// absent digest fail fast without a filesystem Resolve; a maybe-present
// digest is always double-checked against the store itself, since Bloom
// filters can false-positive but never false-negative.
func CheckCompleteness(store *Store, idx *CompletenessIndex, roots []Ref, expand func(Ref, []byte) ([]Ref, error)) error {
	visited := make(map[Ref]bool)
	queue := append([]Ref{}, roots...)

	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]
		if visited[ref] {
			continue
		}
		visited[ref] = true

		if idx != nil {
			maybe, err := idx.MaybeContains(ref.Digest)
			if err == nil && !maybe {
				return fmt.Errorf("%w: %s/%s", ErrMissingTransitiveReference, ref.Type, ref.Digest)
			}
		}

		content, err := store.Get(ref.Type, ref.Digest)
		if err != nil && !errors.Is(err, ErrIntegrityWarning) {
			return fmt.Errorf("%w: %s/%s: %v", ErrMissingTransitiveReference, ref.Type, ref.Digest, err)
		}

		if expand == nil {
			continue
		}
		children, err := expand(ref, content)
		if err != nil {
			return err
		}
		queue = append(queue, children...)
	}
	return nil
}
