package authority

import "errors"

var (
	// ErrEmptyChain is returned when ValidateChain is given no links.
	ErrEmptyChain = errors.New("authority: empty delegation chain")
	// ErrBrokenChain is returned when a link's subject does not match the
	// next link's issuer.
	ErrBrokenChain = errors.New("authority: delegation chain is not contiguous")
	// ErrNoValidSignature is returned when a delegation link has no valid
	// proof from its claimed issuer.
	ErrNoValidSignature = errors.New("authority: delegation link has no valid signature from its issuer")
	// ErrRegistryNotDelegated is returned when a non-leaf link does not
	// delegate authority_registry (or the wildcard) to its subject.
	ErrRegistryNotDelegated = errors.New("authority: link does not delegate authority_registry to its subject")
)
