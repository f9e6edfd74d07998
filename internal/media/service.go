package media

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/chloe-ha/menu-cms/internal/metrics"
	"github.com/minio/minio-go/v7"
)

// FileRequest names one file awaiting upload authorization.
type FileRequest struct {
	Filename    string
	ContentType string
}

// SignedURL pairs an issued upload URL with the storage key it is bound to.
type SignedURL struct {
	UploadURL string
	Key       string
}

// objectStore abstracts the MinIO operations the media service needs.
type objectStore interface {
	PresignHeader(ctx context.Context, method, bucketName, objectName string, expires time.Duration, reqParams url.Values, extraHeaders http.Header) (*url.URL, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// Service issues time-limited upload authorizations and performs
// best-effort object deletion. It never reads file contents.
type Service struct {
	store  objectStore
	bucket string
	urlTTL time.Duration
	keys   *KeyMaker
}

// NewService constructs a media service.
func NewService(store objectStore, bucket string, urlTTL time.Duration, keys *KeyMaker) *Service {
	return &Service{
		store:  store,
		bucket: bucket,
		urlTTL: urlTTL,
		keys:   keys,
	}
}

// SignedURLs derives one storage key per requested file and returns a
// matching upload URL for each, in input order. The declared content type
// is signed into the URL, so a mismatched upload is rejected by the store.
// Any individual failure fails the whole batch; no partial list is returned.
func (s *Service) SignedURLs(ctx context.Context, files []FileRequest) ([]SignedURL, error) {
	if len(files) == 0 {
		return nil, ErrEmptyBatch
	}

	signed := make([]SignedURL, 0, len(files))
	for _, f := range files {
		key := s.keys.Make(f.Filename)

		headers := http.Header{}
		headers.Set("Content-Type", f.ContentType)

		u, err := s.store.PresignHeader(ctx, http.MethodPut, s.bucket, key, s.urlTTL, url.Values{}, headers)
		if err != nil {
			log.Printf("media: presign %q: %v", key, err)
			return nil, fmt.Errorf("%w: %s", ErrSignFailed, f.Filename)
		}

		signed = append(signed, SignedURL{UploadURL: u.String(), Key: key})
	}

	metrics.SignedURLsIssued.Add(float64(len(signed)))
	return signed, nil
}

// DeleteAll attempts to remove every key independently and waits for all
// attempts to settle. Failures are logged for operational visibility and
// never surfaced to the caller: an orphaned object is a storage-cost
// concern, not a correctness concern, once metadata no longer references it.
func (s *Service) DeleteAll(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, key := range keys {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			metrics.DeleteAttempts.Inc()
			if err := s.store.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
				metrics.DeleteFailures.Inc()
				log.Printf("media: delete %q: %v", key, err)
			}
		}(key)
	}
	wg.Wait()
}
