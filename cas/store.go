package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ArtifactType names one of the fixed content-addressed categories this
// store accepts.
type ArtifactType string

const (
	TypeLawpack         ArtifactType = "lawpack"
	TypeRuleset         ArtifactType = "ruleset"
	TypeSchema          ArtifactType = "schema"
	TypeVC              ArtifactType = "vc"
	TypeCheckpoint      ArtifactType = "checkpoint"
	TypeTransitionTypes ArtifactType = "transition-types"
	TypeCircuit         ArtifactType = "circuit"
	TypeBlob            ArtifactType = "blob"
)

// DefaultStoreDir is used when no explicit root and no MSEZ_ARTIFACT_STORE_DIRS
// environment variable is supplied.
const DefaultStoreDir = "dist/artifacts"

// EnvStoreDirs names the environment variable carrying additional,
// path-separator-joined CAS roots.
const EnvStoreDirs = "MSEZ_ARTIFACT_STORE_DIRS"

// Store is a local-filesystem content-addressed store rooted at
// <root>/<type>/<digest><ext>. Writes land in the first (primary) root;
// reads and resolution search the primary root followed by any additional
// roots, in order.
type Store struct {
	roots []string
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithAdditionalRoots appends extra read-only search roots after the
// primary root.
func WithAdditionalRoots(roots ...string) Option {
	return func(s *Store) {
		s.roots = append(s.roots, roots...)
	}
}

// WithEnvRoots appends the path-separator-joined roots named by the given
// environment variable (conventionally EnvStoreDirs).
func WithEnvRoots(envVar string) Option {
	return func(s *Store) {
		raw := strings.TrimSpace(os.Getenv(envVar))
		if raw == "" {
			return
		}
		for _, p := range strings.Split(raw, string(os.PathListSeparator)) {
			p = strings.TrimSpace(p)
			if p != "" {
				s.roots = append(s.roots, p)
			}
		}
	}
}

// NewStore constructs a Store whose primary (write) root is primaryRoot. If
// primaryRoot is empty, DefaultStoreDir is used.
func NewStore(primaryRoot string, opts ...Option) *Store {
	if primaryRoot == "" {
		primaryRoot = DefaultStoreDir
	}
	s := &Store{roots: []string{primaryRoot}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func digestHex(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func validDigest(d string) bool {
	if len(d) != 64 || strings.ToLower(d) != d {
		return false
	}
	_, err := hex.DecodeString(d)
	return err == nil
}

func (s *Store) primaryRoot() string {
	return s.roots[0]
}

func objectPath(root string, t ArtifactType, digest, ext string) string {
	return filepath.Join(root, string(t), digest+ext)
}

// Put content-addresses content under t, writing to <primary-root>/<t>/<sha256(content)><ext>.
// Writing is idempotent: if a file already exists at that digest and its
// content is byte-identical, Put succeeds without rewriting. If a file
// exists there with different content, Put returns ErrHashCollision. The
// write itself is atomic: content lands in a temp file in the same
// directory, then is renamed into place.
func (s *Store) Put(t ArtifactType, ext string, content []byte) (digest string, err error) {
	digest = digestHex(content)
	path := objectPath(s.primaryRoot(), t, digest, ext)

	if existing, err := os.ReadFile(path); err == nil {
		if string(existing) == string(content) {
			return digest, nil
		}
		return "", fmt.Errorf("%w: %s", ErrHashCollision, path)
	} else if !os.IsNotExist(err) {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	tmpPath := filepath.Join(dir, ".tmp-"+uuid.NewString())
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return "", err
	}
	tmpPath = ""
	return digest, nil
}

// Resolve locates the on-disk path for (t, digest) by globbing every root
// in order; it returns ErrNotFound if no root has a matching file.
func (s *Store) Resolve(t ArtifactType, digest string) (string, error) {
	if !validDigest(digest) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDigest, digest)
	}
	for _, root := range s.roots {
		matches, err := filepath.Glob(objectPath(root, t, digest, ".*"))
		if err != nil {
			return "", err
		}
		if len(matches) > 0 {
			return matches[0], nil
		}
		// Also accept an extension-free object name.
		bare := objectPath(root, t, digest, "")
		if _, err := os.Stat(bare); err == nil {
			return bare, nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s", ErrNotFound, t, digest)
}

// Exists reports whether (t, digest) resolves to an on-disk object in any
// root.
func (s *Store) Exists(t ArtifactType, digest string) bool {
	_, err := s.Resolve(t, digest)
	return err == nil
}

// Get reads the object at (t, digest) from whichever root has it. If the
// on-disk content no longer hashes to digest, Get still returns the bytes
// it found alongside ErrIntegrityWarning, so callers can decide whether a
// stale mismatch is fatal for their use case.
func (s *Store) Get(t ArtifactType, digest string) ([]byte, error) {
	path, err := s.Resolve(t, digest)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if digestHex(content) != digest {
		return content, fmt.Errorf("%w: %s", ErrIntegrityWarning, path)
	}
	return content, nil
}
