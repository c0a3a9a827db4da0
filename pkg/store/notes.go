package store

import (
	"context"
	"strconv"
)

// Notes stores free-text annotations keyed by resource and record id.
// Notes live only in the local store; they are never synced to the server
// and never evicted.
type Notes struct {
	store Store
}

// NewNotes creates a notes view over the given store.
func NewNotes(s Store) *Notes {
	return &Notes{store: s}
}

func (n *Notes) key(resource string, id int64) string {
	return Key("notes", resource, strconv.FormatInt(id, 10))
}

// Get returns the note for a record, or "" when none exists.
func (n *Notes) Get(ctx context.Context, resource string, id int64) string {
	note, err := n.store.Get(ctx, n.key(resource, id))
	if err != nil {
		return ""
	}
	return note
}

// Set writes the note for a record.
func (n *Notes) Set(ctx context.Context, resource string, id int64, note string) error {
	return n.store.Set(ctx, n.key(resource, id), note)
}

// Delete removes the note for a record.
func (n *Notes) Delete(ctx context.Context, resource string, id int64) error {
	return n.store.Delete(ctx, n.key(resource, id))
}
