package authority

import (
	"fmt"

	"github.com/momentum-sez/corridor-core/didkey"
	"github.com/momentum-sez/corridor-core/proof"
)

// DelegationLink is one hop of an authority-registry delegation chain (spec
// §4.9): issuer delegates the attestation kinds in DelegatedAttestations to
// subject. A treaty→national→zone chain is two links (treaty→national and
// national→zone), each signed by its issuer.
type DelegationLink struct {
	Issuer                string
	Subject               string
	DelegatedAttestations []string

	// Proof is opaque to this package: nil, a single proof map[string]any,
	// or a []any of them (see package proof).
	Proof any
}

func (l DelegationLink) boundFields() map[string]any {
	kinds := make([]any, len(l.DelegatedAttestations))
	for i, k := range l.DelegatedAttestations {
		kinds[i] = k
	}
	return map[string]any{
		"issuer":                 l.Issuer,
		"subject":                l.Subject,
		"delegated_attestations": kinds,
	}
}

// ToMap renders l, including proof, as the map[string]any shape used for
// storage, transmission, and signing.
func (l DelegationLink) ToMap() map[string]any {
	m := l.boundFields()
	if l.Proof != nil {
		m["proof"] = l.Proof
	}
	return m
}

// delegationLinkFromMap parses a DelegationLink back out of a decoded
// map[string]any.
func delegationLinkFromMap(m map[string]any) DelegationLink {
	var l DelegationLink
	l.Issuer, _ = m["issuer"].(string)
	l.Subject, _ = m["subject"].(string)
	if raw, ok := m["delegated_attestations"].([]any); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				l.DelegatedAttestations = append(l.DelegatedAttestations, s)
			}
		}
	}
	l.Proof = m["proof"]
	return l
}

func (l DelegationLink) delegatesRegistry() bool {
	for _, k := range l.DelegatedAttestations {
		if k == Wildcard || k == AuthorityRegistryKind {
			return true
		}
	}
	return false
}

// ValidateChain verifies a treaty→national→zone authority-registry
// delegation chain: each link's proof must verify against its claimed
// issuer, each link's subject must match the next link's issuer, and every
// link but the last must delegate authority_registry (or the wildcard) to
// its subject, since that is the authority being handed down the chain. It
// returns the leaf (final) link's subject DID, the eligible registry
// authority at the end of the chain.
func ValidateChain(docs []map[string]any) (leafDID string, err error) {
	if len(docs) == 0 {
		return "", ErrEmptyChain
	}

	links := make([]DelegationLink, len(docs))
	for i, doc := range docs {
		l := delegationLinkFromMap(doc)

		results, verr := proof.VerifyAll(doc)
		if verr != nil {
			return "", fmt.Errorf("link[%d]: %w", i, verr)
		}
		signed := false
		for _, res := range results {
			if res.OK && didkey.StripFragment(res.VerificationMethod) == l.Issuer {
				signed = true
				break
			}
		}
		if !signed {
			return "", fmt.Errorf("link[%d]: %w", i, ErrNoValidSignature)
		}

		links[i] = l
	}

	for i := 0; i < len(links)-1; i++ {
		if links[i].Subject != links[i+1].Issuer {
			return "", fmt.Errorf("link[%d]->[%d]: %w", i, i+1, ErrBrokenChain)
		}
		if !links[i].delegatesRegistry() {
			return "", fmt.Errorf("link[%d]: %w", i, ErrRegistryNotDelegated)
		}
	}

	return links[len(links)-1].Subject, nil
}
