package cas

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// AzureBlobStore is a Backend that addresses artifacts as blobs named
// "<type>/<digest><ext>" inside a container named after the artifact type
// (one container per ArtifactType, see EnsureContainers), mirroring the
// local Store's path layout so the two are interchangeable behind Backend.
//
// Unlike Store, AzureBlobStore does not search multiple roots: it reads and
// writes only through the one client it wraps.
type AzureBlobStore struct {
	ctx    context.Context
	client *azblob.Client
	ext    map[ArtifactType]string
}

// NewAzureBlobStore wraps an already-authenticated azblob.Client. ctx bounds
// every subsequent operation; callers that need per-call cancellation should
// construct a fresh AzureBlobStore for that call's context.
func NewAzureBlobStore(ctx context.Context, client *azblob.Client, knownExtensions map[ArtifactType]string) *AzureBlobStore {
	return &AzureBlobStore{ctx: ctx, client: client, ext: knownExtensions}
}

func (a *AzureBlobStore) blobName(t ArtifactType, digest, ext string) string {
	return fmt.Sprintf("%s/%s%s", t, digest, ext)
}

// Put uploads content to "<t>/<digest><ext>", skipping the upload if a blob
// already exists there (verified by downloading and comparing, since Blob
// Storage has no native content-hash-addressed write). Existing content that
// differs from the new content is ErrHashCollision.
func (a *AzureBlobStore) Put(t ArtifactType, ext string, content []byte) (digest string, err error) {
	digest = digestHex(content)
	name := a.blobName(t, digest, ext)

	existing, err := a.download(t, name)
	switch {
	case err == nil:
		if !bytes.Equal(existing, content) {
			return "", fmt.Errorf("%w: %s", ErrHashCollision, name)
		}
		return digest, nil
	case !errors.Is(err, ErrNotFound):
		return "", err
	}

	_, err = a.client.UploadBuffer(a.ctx, a.containerName(t), name, content, nil)
	if err != nil {
		return "", fmt.Errorf("cas: azure upload %s: %w", name, err)
	}
	return digest, nil
}

// Get downloads the object at (t, digest), trying the registered extension
// for t first and falling back to an extension-free blob name.
func (a *AzureBlobStore) Get(t ArtifactType, digest string) ([]byte, error) {
	name := a.blobName(t, digest, a.ext[t])
	content, err := a.download(t, name)
	if errors.Is(err, ErrNotFound) && a.ext[t] != "" {
		content, err = a.download(t, a.blobName(t, digest, ""))
	}
	if err != nil {
		return nil, err
	}
	if digestHex(content) != digest {
		return content, fmt.Errorf("%w: %s", ErrIntegrityWarning, name)
	}
	return content, nil
}

// Exists reports whether (t, digest) resolves to a blob.
func (a *AzureBlobStore) Exists(t ArtifactType, digest string) bool {
	_, err := a.Get(t, digest)
	return err == nil || errors.Is(err, ErrIntegrityWarning)
}

func (a *AzureBlobStore) containerName(t ArtifactType) string {
	return string(t)
}

func (a *AzureBlobStore) download(t ArtifactType, name string) ([]byte, error) {
	resp, err := a.client.DownloadStream(a.ctx, a.containerName(t), name, &azblob.DownloadStreamOptions{
		Range: azblob.HTTPRange{},
	})
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("cas: azure download %s: %w", name, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cas: azure read %s: %w", name, err)
	}
	return body, nil
}

// EnsureContainers creates (or no-ops on already-exists) the per-ArtifactType
// containers this store will address, so a fresh corridor deployment does
// not need an out-of-band provisioning step.
func EnsureContainers(ctx context.Context, client *azblob.Client, types []ArtifactType) error {
	for _, t := range types {
		_, err := client.CreateContainer(ctx, string(t), &azblob.CreateContainerOptions{
			Access: to.Ptr(azblob.PublicAccessTypeNone),
		})
		if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return fmt.Errorf("cas: create container %s: %w", t, err)
		}
	}
	return nil
}
