package gallery

import (
	"io"
	"strings"

	"github.com/google/uuid"
)

// Kind tags the variant an Item currently holds.
type Kind int

const (
	// KindRemote is an object already durably stored, referenced by key.
	KindRemote Kind = iota
	// KindPendingDelete is a remote entry the user marked for removal. It
	// keeps its list position until commit so other entries do not shift.
	KindPendingDelete
	// KindLocal is a freshly added file that has not been uploaded yet.
	KindLocal
)

// LocalFile supplies the name, declared content type and bytes of a file
// staged for upload.
type LocalFile interface {
	Name() string
	ContentType() string
	Open() (io.ReadCloser, error)
}

// Preview is a locally created display resource owned by the staged list.
// It must be closed exactly once, when its entry leaves the list.
type Preview interface {
	URL() string
	Close() error
}

// Item is one slot in the staged list. Position in the list is display and
// storage order. The identity token is client-generated, stable across
// reorders, and never sent to the server.
type Item struct {
	id      uuid.UUID
	kind    Kind
	key     string
	file    LocalFile
	preview Preview
}

// ID returns the entry's identity token.
func (it *Item) ID() uuid.UUID { return it.id }

// Kind returns the variant the entry currently holds.
func (it *Item) Kind() Kind { return it.kind }

// Key returns the storage key for remote and pending-delete entries.
func (it *Item) Key() string { return it.key }

// File returns the staged file for local entries, nil otherwise.
func (it *Item) File() LocalFile { return it.file }

// DisplayURL builds the URL to render this entry with: the local preview
// for staged files, the public object URL for stored ones.
func (it *Item) DisplayURL(publicBase string) string {
	switch it.kind {
	case KindLocal:
		if it.preview != nil {
			return it.preview.URL()
		}
		return ""
	case KindRemote, KindPendingDelete:
		return strings.TrimRight(publicBase, "/") + "/" + it.key
	}
	return ""
}

// markUploaded transitions a local entry to remote in place after a
// successful upload. The preview stays attached until the next reseed.
func (it *Item) markUploaded(key string) {
	it.kind = KindRemote
	it.key = key
	it.file = nil
}
