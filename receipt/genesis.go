package receipt

import "github.com/momentum-sez/corridor-core/canon"

// GenesisInputs is everything a corridor genesis root binds: the corridor
// definition, the party-agreement set, and the pinned lawpack/ruleset
// versions.
type GenesisInputs struct {
	CorridorID              string
	DefinitionPayloadSHA256 string
	AgreementSetSHA256      string
	LawpackDigestSet        []DigestRef
	RulesetDigestSet        []DigestRef
}

// ComputeGenesisRoot computes genesis_root per §3:
// SHA256(canonical({tag, corridor_id, definition_payload_sha256,
// agreement_set_sha256, lawpack_digest_set, ruleset_digest_set})).
func ComputeGenesisRoot(in GenesisInputs) (string, error) {
	d, err := canon.ComputeDigest(map[string]any{
		"tag":                       "msez.corridor.state.genesis.v1",
		"corridor_id":               in.CorridorID,
		"definition_payload_sha256": in.DefinitionPayloadSHA256,
		"agreement_set_sha256":      in.AgreementSetSHA256,
		"lawpack_digest_set":        DigestSetToValue(in.LawpackDigestSet),
		"ruleset_digest_set":        DigestSetToValue(in.RulesetDigestSet),
	})
	if err != nil {
		return "", err
	}
	return d.Hex(), nil
}
