package watcher

import "time"

// TrustAnchors answers whether did is authorized for attestationKind within
// the corridor being verified (spec §4.9), the same seam package chain and
// package checkpoint define.
type TrustAnchors interface {
	IsTrustAnchor(did string, attestationKind string) bool
}

// AttestationKindWatcher is the attestation kind name Compare consults
// TrustAnchors with.
const AttestationKindWatcher = "corridor_watcher_attestation"

// DefaultMaxStaleness is the max-staleness window spec §4.7 names as the
// default when a caller does not override it.
const DefaultMaxStaleness = time.Hour

// Options configures a single Compare call.
type Options struct {
	TrustAnchors        TrustAnchors
	EnforceTrustAnchors bool
	MaxStaleness        time.Duration
	QuorumThreshold     string
	RegistrySize        int
	EnforceRegistrySize bool
}

// Option configures a Compare call.
type Option func(*Options)

// WithTrustAnchors enables allow-list enforcement on watcher signers.
func WithTrustAnchors(anchors TrustAnchors) Option {
	return func(o *Options) {
		o.TrustAnchors = anchors
		o.EnforceTrustAnchors = true
	}
}

// WithMaxStaleness overrides the default one-hour staleness window.
func WithMaxStaleness(d time.Duration) Option {
	return func(o *Options) { o.MaxStaleness = d }
}

// WithQuorumThreshold supplies the quorum spec ("majority" or "K/N")
// evaluated at step 7. Without it, Compare reports the agreed head (if any)
// but leaves QuorumReached false.
func WithQuorumThreshold(spec string) Option {
	return func(o *Options) { o.QuorumThreshold = spec }
}

// WithRegistrySize supplies |registry| — the authority-registry allow-list
// size — as the quorum population, per spec §4.7's "N = |registry| if
// enforcing else |distinct_watchers|". Without it, the population is the
// number of distinct watcher DIDs observed among fresh entries.
func WithRegistrySize(n int) Option {
	return func(o *Options) {
		o.RegistrySize = n
		o.EnforceRegistrySize = true
	}
}
