package gallery

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
)

// cmsAPI is the slice of the CMS API a gallery edit session drives.
type cmsAPI interface {
	SignedURLs(ctx context.Context, files []FileInfo) ([]SignedURL, error)
	Upload(ctx context.Context, uploadURL, contentType string, body io.Reader) error
	DeleteFiles(ctx context.Context, keys []string) error
	FetchImages(ctx context.Context, restaurantID string) ([]string, error)
	UpdateImages(ctx context.Context, restaurantID string, keys []string) error
}

// Session binds a staged list to one restaurant record and reconciles the
// two on commit.
type Session struct {
	api          cmsAPI
	restaurantID string
	list         *List
}

// NewSession creates an edit session for the given restaurant.
func NewSession(api cmsAPI, restaurantID string, previews PreviewFunc) *Session {
	return &Session{
		api:          api,
		restaurantID: restaurantID,
		list:         NewList(previews),
	}
}

// List exposes the staged list for local edits.
func (s *Session) List() *List { return s.list }

// Load seeds the staged list from the persisted key list.
func (s *Session) Load(ctx context.Context) error {
	keys, err := s.api.FetchImages(ctx, s.restaurantID)
	if err != nil {
		return fmt.Errorf("load gallery: %w", err)
	}
	s.list.Seed(keys)
	return nil
}

// Discard abandons the session, releasing all staged previews.
func (s *Session) Discard() {
	s.list.Discard()
}

// Commit reconciles the staged list against storage and the restaurant
// record, in strict order: issue upload URLs for staged files, upload them
// (fail fast), request best-effort deletion of pending-delete keys, then
// persist the final ordered key list in a single whole-field patch and
// reseed the list from it.
//
// Issuance and upload failures abort before any persistence. A failed
// metadata patch leaves the freshly uploaded objects in storage and the
// staged list untouched: the entries are already remote, so a retried save
// re-references the same keys without re-uploading or re-picking files. No
// compensating delete is issued for them.
func (s *Session) Commit(ctx context.Context) error {
	items := s.list.items

	var toUpload []*Item
	var toDelete []string
	for _, it := range items {
		switch it.kind {
		case KindLocal:
			toUpload = append(toUpload, it)
		case KindPendingDelete:
			toDelete = append(toDelete, it.key)
		case KindRemote:
		}
	}

	if len(toUpload) > 0 {
		files := make([]FileInfo, 0, len(toUpload))
		for _, it := range toUpload {
			files = append(files, FileInfo{Filename: it.file.Name(), ContentType: it.file.ContentType()})
		}

		signed, err := s.api.SignedURLs(ctx, files)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIssuance, err)
		}
		if len(signed) != len(toUpload) {
			return ErrIssuanceMismatch
		}

		if err := s.uploadAll(ctx, toUpload, signed); err != nil {
			return err
		}
	}

	// Fire-and-forget: a failed delete leaves an orphaned object the
	// record no longer references, which must never block the save.
	if err := s.api.DeleteFiles(ctx, toDelete); err != nil {
		log.Printf("gallery: delete batch: %v", err)
	}

	finalKeys := make([]string, 0, len(items))
	for _, it := range items {
		switch it.kind {
		case KindRemote:
			finalKeys = append(finalKeys, it.key)
		case KindPendingDelete:
		case KindLocal:
			return fmt.Errorf("%w: entry %s still local after upload", ErrUpload, it.id)
		}
	}

	if err := s.api.UpdateImages(ctx, s.restaurantID, finalKeys); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	s.list.Seed(finalKeys)
	return nil
}

// uploadAll uploads every staged file concurrently, one request per file,
// pairing files with issued URLs by position. The first failure cancels
// the remaining uploads; entries whose upload already succeeded stay
// remote so a retry does not resend them.
func (s *Session) uploadAll(ctx context.Context, toUpload []*Item, signed []SignedURL) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, len(toUpload))
	var wg sync.WaitGroup
	for i, it := range toUpload {
		wg.Add(1)
		go func(it *Item, su SignedURL) {
			defer wg.Done()
			if err := s.uploadOne(ctx, it, su); err != nil {
				errs <- err
				cancel()
			}
		}(it, signed[i])
	}
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return nil
}

func (s *Session) uploadOne(ctx context.Context, it *Item, su SignedURL) error {
	body, err := it.file.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", it.file.Name(), err)
	}
	defer body.Close()

	if err := s.api.Upload(ctx, su.UploadURL, it.file.ContentType(), body); err != nil {
		return fmt.Errorf("upload %s: %w", it.file.Name(), err)
	}

	it.markUploaded(su.Key)
	return nil
}
