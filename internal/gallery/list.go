package gallery

import "github.com/google/uuid"

// PreviewFunc creates a preview resource for a staged file. The list owns
// every preview it creates and releases it when the entry leaves the list.
type PreviewFunc func(LocalFile) Preview

// List is the client-local working copy of a gallery. All operations are
// pure in-memory edits; nothing here touches the network. A List is not
// safe for concurrent use, matching its single edit-session lifecycle.
type List struct {
	previews PreviewFunc
	items    []*Item
}

// NewList builds an empty staged list. previews may be nil when the
// caller renders no local previews.
func NewList(previews PreviewFunc) *List {
	return &List{previews: previews}
}

// Seed replaces the list with one remote entry per key, preserving input
// order. Used on load and after a successful commit; previews belonging to
// the replaced entries are released here.
func (l *List) Seed(keys []string) {
	l.releaseAll()

	items := make([]*Item, 0, len(keys))
	for _, key := range keys {
		items = append(items, &Item{id: uuid.New(), kind: KindRemote, key: key})
	}
	l.items = items
}

// AddLocal appends one local entry per file, in input order, each with a
// fresh identity token and preview.
func (l *List) AddLocal(files ...LocalFile) {
	for _, f := range files {
		var preview Preview
		if l.previews != nil {
			preview = l.previews(f)
		}
		l.items = append(l.items, &Item{id: uuid.New(), kind: KindLocal, file: f, preview: preview})
	}
}

// Reorder moves the entry at from to position to, shifting the entries in
// between. Out-of-bounds or equal indices are a silent no-op.
func (l *List) Reorder(from, to int) {
	if from == to || from < 0 || to < 0 || from >= len(l.items) || to >= len(l.items) {
		return
	}

	moved := l.items[from]
	l.items = append(l.items[:from], l.items[from+1:]...)
	l.items = append(l.items, nil)
	copy(l.items[to+1:], l.items[to:])
	l.items[to] = moved
}

// Remove drops a local entry entirely (releasing its preview) or marks a
// remote entry for deletion in place. Removing an entry already pending
// delete, or an unknown token, is a no-op.
func (l *List) Remove(id uuid.UUID) {
	for i, it := range l.items {
		if it.id != id {
			continue
		}
		switch it.kind {
		case KindLocal:
			release(it)
			l.items = append(l.items[:i], l.items[i+1:]...)
		case KindRemote:
			it.kind = KindPendingDelete
		case KindPendingDelete:
		}
		return
	}
}

// Items returns the entries in order, including pending deletes.
func (l *List) Items() []*Item {
	out := make([]*Item, len(l.items))
	copy(out, l.items)
	return out
}

// Visible returns the entries in order, excluding pending deletes. This is
// the list as it will look after a successful commit.
func (l *List) Visible() []*Item {
	var out []*Item
	for _, it := range l.items {
		switch it.kind {
		case KindRemote, KindLocal:
			out = append(out, it)
		case KindPendingDelete:
		}
	}
	return out
}

// Len reports the number of staged entries, including pending deletes.
func (l *List) Len() int { return len(l.items) }

// Discard drops all entries and releases every preview. Called when an
// edit session is abandoned without committing.
func (l *List) Discard() {
	l.releaseAll()
	l.items = nil
}

func (l *List) releaseAll() {
	for _, it := range l.items {
		release(it)
	}
}

// release closes an entry's preview at most once.
func release(it *Item) {
	if it.preview != nil {
		_ = it.preview.Close()
		it.preview = nil
	}
}
