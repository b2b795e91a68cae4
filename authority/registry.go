package authority

// Registry is a corridor's trust-anchor allow-list: which DIDs may sign
// which attestation kinds. It implements the single-method TrustAnchors
// interface package chain, package checkpoint, and package watcher each
// define, so one Registry plugs into receipt, checkpoint, and watcher
// verification without adapters.
type Registry struct {
	byDID map[string]Anchor
}

// NewRegistry builds a Registry from a flat anchor list, the shape a
// per-corridor YAML trust-anchor file decodes into.
func NewRegistry(anchors []Anchor) Registry {
	byDID := make(map[string]Anchor, len(anchors))
	for _, a := range anchors {
		byDID[a.DID] = a
	}
	return Registry{byDID: byDID}
}

// IsTrustAnchor reports whether did is authorized to sign attestationKind in
// this registry.
func (r Registry) IsTrustAnchor(did, attestationKind string) bool {
	a, ok := r.byDID[did]
	if !ok {
		return false
	}
	return a.allows(attestationKind)
}

// Anchors returns the registry's entries in no particular order.
func (r Registry) Anchors() []Anchor {
	out := make([]Anchor, 0, len(r.byDID))
	for _, a := range r.byDID {
		out = append(out, a)
	}
	return out
}

// Intersect combines the module's own trust anchors with a registry reached
// through an authority-registry delegation chain (spec §4.9: "the effective
// allow-list is the leaf's, intersected (per attestation) with the module's
// trust anchors"). A DID is authorized for a kind in the result only if both
// registries authorize it for that kind.
func Intersect(module, leaf Registry) Registry {
	out := Registry{byDID: make(map[string]Anchor)}
	for did, leafAnchor := range leaf.byDID {
		moduleAnchor, ok := module.byDID[did]
		if !ok {
			continue
		}
		var kinds []string
		for _, k := range leafAnchor.AllowedAttestations {
			if moduleAnchor.allows(k) {
				kinds = append(kinds, k)
			}
		}
		if len(kinds) > 0 {
			out.byDID[did] = Anchor{DID: did, AllowedAttestations: kinds}
		}
	}
	return out
}
