package watcher

// Severity classifies a detected divergence per spec §4.7 steps 4-6.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarn     Severity = "warn"
	SeverityCritical Severity = "critical"
)

// Divergence kinds.
const (
	DivergenceFork             = "fork"
	DivergenceLag              = "lag"
	DivergenceCheckpointDigest = "checkpoint_digest"
)

// Divergence is one detected disagreement among fresh attestations.
type Divergence struct {
	Kind         string
	Severity     Severity
	ReceiptCount uint64
	Details      string
}

// EntryStatus records the per-attestation outcome of steps 1-3.
type EntryStatus struct {
	WatcherDID           string
	Stale                bool
	Valid                bool
	Err                  error
	ReceiptCount         uint64
	FinalStateRoot       string
	HeadCommitmentDigest string
	DigestRecomputed     bool
}

// AgreedHead describes the head the largest fresh group of attestations
// agrees on.
type AgreedHead struct {
	HeadCommitmentDigestSHA256 string
	ReceiptCount               uint64
	FinalStateRoot             string
	WatcherCount               int
}

// Report is Compare's output: per-entry status, severity-classified
// divergences, and the agreed head (if any fresh entries survived).
type Report struct {
	Entries       []EntryStatus
	Divergences   []Divergence
	AgreedHead    *AgreedHead
	QuorumReached bool
	ForkDetected  bool
}
