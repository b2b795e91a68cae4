package authority

// Wildcard authorizes a DID for every attestation kind.
const Wildcard = "*"

// AuthorityRegistryKind is the attestation kind a delegation link must carry
// (alongside or instead of Wildcard) to hand registry-management authority
// down to its subject (spec §4.9: "Parent must delegate authority_registry
// (or *) to the child's issuer").
const AuthorityRegistryKind = "authority_registry"

// Anchor is one entry of a per-corridor trust-anchor list: a DID and the
// attestation kinds it is authorized to sign.
type Anchor struct {
	DID                 string
	AllowedAttestations []string
}

func (a Anchor) allows(kind string) bool {
	for _, k := range a.AllowedAttestations {
		if k == Wildcard || k == kind {
			return true
		}
	}
	return false
}
