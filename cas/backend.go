package cas

// Backend is the storage trait object operations are defined over. Store
// (the local filesystem implementation in store.go) satisfies it directly;
// azureblob.go provides a Blob Storage-backed alternative with identical
// (type, digest) addressing semantics, for deployments that replicate the
// artifact store centrally instead of on local disk.
type Backend interface {
	// Put content-addresses content under t, idempotently: byte-identical
	// content already at the resulting digest is a no-op success; different
	// content at that digest is ErrHashCollision.
	Put(t ArtifactType, ext string, content []byte) (digest string, err error)
	// Get reads the object at (t, digest). Returns ErrIntegrityWarning
	// (non-fatal, content still returned) if stored bytes no longer hash to
	// digest.
	Get(t ArtifactType, digest string) ([]byte, error)
	// Exists reports whether (t, digest) is present.
	Exists(t ArtifactType, digest string) bool
}

var _ Backend = (*Store)(nil)
