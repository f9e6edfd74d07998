package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitReorderOnlyPatchesReorderedKeys(t *testing.T) {
	api := newFakeAPI(t, "a.jpg", "b.jpg")
	session := NewSession(api, "rest-1", nil)
	require.NoError(t, session.Load(context.Background()))

	session.List().Reorder(1, 0)
	require.NoError(t, session.Commit(context.Background()))

	assert.Equal(t, []string{"b.jpg", "a.jpg"}, api.patchedImages)
	assert.Zero(t, api.signedCalls, "no issuance call expected without staged files")
	assert.Empty(t, api.deletedKeys)
}

func TestCommitUploadsNewFileAndAppendsIssuedKey(t *testing.T) {
	api := newFakeAPI(t, "a.jpg")
	previews := newPreviewRecorder()
	session := NewSession(api, "rest-1", previews.create)
	require.NoError(t, session.Load(context.Background()))

	session.List().AddLocal(newFakeFile("photo.png"))
	require.NoError(t, session.Commit(context.Background()))

	require.Equal(t, 1, api.signedCalls)
	require.Equal(t, []FileInfo{{Filename: "photo.png", ContentType: "image/png"}}, api.signedRequests)
	require.Len(t, api.uploads, 1)
	assert.Equal(t, "image/png", api.uploads[0].contentType)

	require.Len(t, api.patchedImages, 2)
	assert.Equal(t, "a.jpg", api.patchedImages[0])
	assert.Equal(t, api.issuedKeys[0], api.patchedImages[1])

	// reseed: everything remote, preview released exactly once
	for _, it := range session.List().Items() {
		assert.Equal(t, KindRemote, it.Kind())
	}
	assert.Equal(t, 1, previews.closed)
	assert.False(t, previews.doubleClosed)
}

func TestCommitRemovedRemoteIsDeletedAndExcluded(t *testing.T) {
	api := newFakeAPI(t, "a.jpg")
	session := NewSession(api, "rest-1", nil)
	require.NoError(t, session.Load(context.Background()))

	session.List().Remove(session.List().Items()[0].ID())
	require.NoError(t, session.Commit(context.Background()))

	assert.Equal(t, []string{"a.jpg"}, api.deletedKeys)
	assert.Equal(t, []string{}, api.patchedImages)
	assert.Zero(t, session.List().Len())
}

func TestCommitSucceedsWhenDeletionFails(t *testing.T) {
	api := newFakeAPI(t, "a.jpg", "b.jpg")
	api.deleteErr = errors.New("store unavailable")
	session := NewSession(api, "rest-1", nil)
	require.NoError(t, session.Load(context.Background()))

	session.List().Remove(session.List().Items()[0].ID())
	require.NoError(t, session.Commit(context.Background()))

	assert.Equal(t, []string{"b.jpg"}, api.patchedImages)
}

func TestCommitAbortsWhenIssuanceFails(t *testing.T) {
	api := newFakeAPI(t, "a.jpg")
	api.signedErr = errors.New("network down")
	session := NewSession(api, "rest-1", nil)
	require.NoError(t, session.Load(context.Background()))

	session.List().AddLocal(newFakeFile("photo.png"))
	err := session.Commit(context.Background())

	require.ErrorIs(t, err, ErrIssuance)
	assert.Empty(t, api.uploads, "no upload may be attempted")
	assert.False(t, api.patched, "no metadata patch may be sent")
	assert.Equal(t, KindLocal, session.List().Items()[1].Kind(), "staged entry must survive for retry")
}

func TestCommitAbortsOnIssuanceCountMismatch(t *testing.T) {
	api := newFakeAPI(t, "a.jpg")
	api.truncateSigned = true
	session := NewSession(api, "rest-1", nil)
	require.NoError(t, session.Load(context.Background()))

	session.List().AddLocal(newFakeFile("x.png"), newFakeFile("y.png"))
	err := session.Commit(context.Background())

	require.ErrorIs(t, err, ErrIssuanceMismatch)
	assert.Empty(t, api.uploads, "zero uploads on mismatched mapping")
	assert.False(t, api.patched)
}

func TestCommitAbortsWhenUploadFails(t *testing.T) {
	api := newFakeAPI(t, "a.jpg")
	api.uploadErr = errors.New("expired url")
	session := NewSession(api, "rest-1", nil)
	require.NoError(t, session.Load(context.Background()))

	session.List().AddLocal(newFakeFile("photo.png"))
	err := session.Commit(context.Background())

	require.ErrorIs(t, err, ErrUpload)
	assert.False(t, api.patched, "no metadata patch after failed upload")
	assert.Empty(t, api.deletedKeys, "deletion must not run after an aborted upload step")
}

func TestCommitKeepsListWhenPatchFailsThenRetrySucceeds(t *testing.T) {
	api := newFakeAPI(t, "a.jpg")
	api.patchErr = errors.New("record locked")
	session := NewSession(api, "rest-1", nil)
	require.NoError(t, session.Load(context.Background()))

	session.List().AddLocal(newFakeFile("photo.png"))
	err := session.Commit(context.Background())
	require.ErrorIs(t, err, ErrPersist)

	// the uploaded entry is already remote; a retry must not re-upload
	items := session.List().Items()
	require.Len(t, items, 2)
	assert.Equal(t, KindRemote, items[1].Kind())

	api.patchErr = nil
	require.NoError(t, session.Commit(context.Background()))

	assert.Equal(t, 1, len(api.uploads), "retry must not re-upload")
	require.Len(t, api.patchedImages, 2)
	assert.Equal(t, api.issuedKeys[0], api.patchedImages[1])
}

func TestCommitEmptyStagedListPatchesEmpty(t *testing.T) {
	api := newFakeAPI(t)
	session := NewSession(api, "rest-1", nil)
	require.NoError(t, session.Load(context.Background()))

	require.NoError(t, session.Commit(context.Background()))

	assert.Zero(t, api.signedCalls)
	assert.Equal(t, []string{}, api.patchedImages)
}

// --- fakes ---

type uploadRecord struct {
	url         string
	contentType string
	body        string
}

type fakeAPI struct {
	t *testing.T

	mu sync.Mutex

	images         []string
	signedRequests []FileInfo
	signedCalls    int
	signedErr      error
	truncateSigned bool
	issuedKeys     []string

	uploads   []uploadRecord
	uploadErr error

	deletedKeys []string
	deleteErr   error

	patched       bool
	patchedImages []string
	patchErr      error
}

func newFakeAPI(t *testing.T, seededKeys ...string) *fakeAPI {
	t.Helper()
	return &fakeAPI{t: t, images: seededKeys}
}

func (f *fakeAPI) SignedURLs(ctx context.Context, files []FileInfo) ([]SignedURL, error) {
	f.signedCalls++
	f.signedRequests = append(f.signedRequests, files...)
	if f.signedErr != nil {
		return nil, f.signedErr
	}

	signed := make([]SignedURL, 0, len(files))
	for i, file := range files {
		key := fmt.Sprintf("restaurants/images/issued-%d-%s", i, file.Filename)
		f.issuedKeys = append(f.issuedKeys, key)
		signed = append(signed, SignedURL{UploadURL: "https://store.test/" + key, Key: key})
	}
	if f.truncateSigned && len(signed) > 0 {
		signed = signed[:len(signed)-1]
	}
	return signed, nil
}

func (f *fakeAPI) Upload(ctx context.Context, uploadURL, contentType string, body io.Reader) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.uploads = append(f.uploads, uploadRecord{url: uploadURL, contentType: contentType, body: string(data)})
	f.mu.Unlock()
	return nil
}

func (f *fakeAPI) DeleteFiles(ctx context.Context, keys []string) error {
	f.deletedKeys = append(f.deletedKeys, keys...)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return nil
}

func (f *fakeAPI) FetchImages(ctx context.Context, restaurantID string) ([]string, error) {
	return f.images, nil
}

func (f *fakeAPI) UpdateImages(ctx context.Context, restaurantID string, keys []string) error {
	if f.patchErr != nil {
		return f.patchErr
	}
	f.patched = true
	f.patchedImages = keys
	f.images = keys
	return nil
}
