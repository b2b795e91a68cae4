package checkpoint

import (
	"encoding/hex"
	"fmt"

	"github.com/momentum-sez/corridor-core/mmr"
)

// PathStep is the wire form of one mmr.PathStep.
type PathStep struct {
	Side string // "left" or "right"
	Hash string
}

// CheckpointRef binds an inclusion proof to a specific checkpoint envelope.
type CheckpointRef struct {
	DigestSHA256 string
}

// InclusionProof is bound to a specific leaf index within an accumulator of
// a specific size (spec's Inclusion Proof entity).
type InclusionProof struct {
	LeafIndex       uint64
	ReceiptNextRoot string
	LeafHash        string
	PeakIndex       int
	PeakHeight      uint64
	Path            []PathStep
	Peaks           []PeakRef
	MMR             MMRSummary
	CheckpointRef   *CheckpointRef
}

// BuildInclusionProof builds an inclusion proof for leafIndex given the full,
// ordered sequence of receipt next_root hex digests (spec §4.6: "requires
// the full sequence 0..n-1; it cannot be built from just peaks"). When ref is
// non-nil, the resulting proof is bound to that checkpoint.
func BuildInclusionProof(receiptNextRoots []string, leafIndex uint64, ref *CheckpointRef) (InclusionProof, error) {
	leafValues := make([]mmr.Digest, len(receiptNextRoots))
	for i, s := range receiptNextRoots {
		raw, err := hex.DecodeString(s)
		if err != nil {
			return InclusionProof{}, fmt.Errorf("checkpoint: bad next_root %q: %w", s, err)
		}
		d, err := mmr.DigestFromBytes(raw)
		if err != nil {
			return InclusionProof{}, fmt.Errorf("checkpoint: bad next_root %q: %w", s, err)
		}
		leafValues[i] = d
	}

	p, err := mmr.BuildInclusionProof(leafValues, leafIndex)
	if err != nil {
		return InclusionProof{}, err
	}

	path := make([]PathStep, len(p.Path))
	for i, step := range p.Path {
		side := "right"
		if step.Side == mmr.SideLeft {
			side = "left"
		}
		path[i] = PathStep{Side: side, Hash: hex.EncodeToString(step.Hash[:])}
	}

	peaks := make([]PeakRef, len(p.Peaks))
	for i, pk := range p.Peaks {
		peaks[i] = PeakRef{Height: pk.Height, Hash: hex.EncodeToString(pk.Hash.Bytes())}
	}

	return InclusionProof{
		LeafIndex:       p.LeafIndex,
		ReceiptNextRoot: receiptNextRoots[leafIndex],
		LeafHash:        hex.EncodeToString(p.LeafHash.Bytes()),
		PeakIndex:       p.PeakIndex,
		PeakHeight:      p.PeakHeight,
		Path:            path,
		Peaks:           peaks,
		MMR:             MMRSummary{Size: p.Size, Root: hex.EncodeToString(p.Root.Bytes())},
		CheckpointRef:   ref,
	}, nil
}

// VerifyInclusionProof recomputes the leaf's peak root via the sibling path
// and re-bags the accumulator, requiring the result equal p.MMR.Root. When
// p.CheckpointRef is set, ck must be non-nil and its own digest must match
// the reference exactly.
func VerifyInclusionProof(p InclusionProof, ck *Checkpoint) (bool, error) {
	if p.CheckpointRef != nil {
		if ck == nil {
			return false, ErrCheckpointRequired
		}
		digest, err := ck.DigestSHA256()
		if err != nil {
			return false, err
		}
		if digest != p.CheckpointRef.DigestSHA256 {
			return false, ErrCheckpointRefMismatch
		}
	}

	leafValue, err := hexDigest(p.ReceiptNextRoot)
	if err != nil {
		return false, err
	}
	leafHash, err := hexDigest(p.LeafHash)
	if err != nil {
		return false, err
	}
	root, err := hexDigest(p.MMR.Root)
	if err != nil {
		return false, err
	}

	peaks := make([]mmr.Peak, len(p.Peaks))
	for i, pk := range p.Peaks {
		h, err := hexDigest(pk.Hash)
		if err != nil {
			return false, err
		}
		peaks[i] = mmr.Peak{Height: pk.Height, Hash: h}
	}

	path := make([]mmr.PathStep, len(p.Path))
	for i, step := range p.Path {
		h, err := hexDigest(step.Hash)
		if err != nil {
			return false, err
		}
		side := mmr.SideRight
		if step.Side == "left" {
			side = mmr.SideLeft
		}
		path[i] = mmr.PathStep{Side: side, Hash: h}
	}

	return mmr.VerifyInclusionProof(mmr.InclusionProof{
		Size:       p.MMR.Size,
		Root:       root,
		LeafIndex:  p.LeafIndex,
		LeafValue:  leafValue,
		LeafHash:   leafHash,
		PeakIndex:  p.PeakIndex,
		PeakHeight: p.PeakHeight,
		Path:       path,
		Peaks:      peaks,
	})
}

func hexDigest(s string) (mmr.Digest, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return mmr.Digest{}, fmt.Errorf("checkpoint: bad hex digest %q: %w", s, err)
	}
	return mmr.DigestFromBytes(raw)
}
