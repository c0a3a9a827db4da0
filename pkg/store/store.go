// Package store provides the process-wide key/value state the dashboard
// keeps outside the API: the session token and profile, view and theme
// preferences, and local-only record notes.
//
// Two backends implement the same interface: an in-process map for a
// single run, and Redis for continuity across restarts.
package store

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound indicates the requested key has no value.
var ErrNotFound = errors.New("store: key not found")

// Store is a flat string key/value store.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes the value for key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// keyPrefix namespaces every key this module writes.
const keyPrefix = "erp"

// Key builds a deterministic namespaced key from its parts.
// Format: erp:area:part1:part2
func Key(parts ...string) string {
	return keyPrefix + ":" + strings.Join(parts, ":")
}
