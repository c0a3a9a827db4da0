// Package filter implements the in-memory predicate engine applied to a
// fetched collection: free-text search, enum equality and bucketed range
// filters, combined with logical AND. The input collection is never
// mutated; every application produces a new slice.
package filter

import (
	"strconv"
	"strings"
)

// All is the sentinel filter value meaning "no constraint", alongside the
// empty string.
const All = "all"

// Searchable is the minimal record surface the free-text predicate needs.
type Searchable interface {
	RecordID() int64
	SearchFields() []string
}

// Predicate decides whether a single record matches.
type Predicate[T any] func(T) bool

// State holds the active filter selections for one collection view.
// Empty values mean "no constraint". State is plain data; it is owned and
// mutated by the page controller, never shared.
type State struct {
	// Search is the free-text term matched against searchable fields.
	Search string

	// Enums maps filter name (status, tipo, categoria, estoque) to the
	// selected value.
	Enums map[string]string
}

// NewState returns an empty filter state.
func NewState() State {
	return State{Enums: make(map[string]string)}
}

// Enum returns the selected value for a named enum filter, or "".
func (s State) Enum(name string) string {
	return s.Enums[name]
}

// SetEnum returns a copy of the state with the named enum filter set.
func (s State) SetEnum(name, value string) State {
	enums := make(map[string]string, len(s.Enums)+1)
	for k, v := range s.Enums {
		enums[k] = v
	}
	enums[name] = value
	s.Enums = enums
	return s
}

// Empty reports whether no predicate is active, in which case Apply is the
// identity on the collection.
func (s State) Empty() bool {
	if s.Search != "" {
		return false
	}
	for _, v := range s.Enums {
		if !Skipped(v) {
			return false
		}
	}
	return true
}

// Skipped reports whether an enum filter value imposes no constraint.
func Skipped(value string) bool {
	return value == "" || value == All
}

// Apply runs the predicates over items with AND semantics and returns the
// matching records in their original order.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, pred := range preds {
			if pred != nil && !pred(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// FreeText matches term case-insensitively by substring containment
// against the record's searchable fields and its stringified id.
// An empty term matches everything.
func FreeText[T Searchable](term string) Predicate[T] {
	term = strings.ToLower(strings.TrimSpace(term))
	return func(item T) bool {
		if term == "" {
			return true
		}
		for _, field := range item.SearchFields() {
			if field == "" {
				// Missing field: non-matching for this field, keep looking.
				continue
			}
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return strings.Contains(strconv.FormatInt(item.RecordID(), 10), term)
	}
}

// EnumEquals matches by exact equality on the value extracted by get.
// Empty and "all" selections impose no constraint; a record whose field is
// empty never matches a concrete selection.
func EnumEquals[T any](selected string, get func(T) string) Predicate[T] {
	return func(item T) bool {
		if Skipped(selected) {
			return true
		}
		value := get(item)
		if value == "" {
			return false
		}
		return value == selected
	}
}

// Bucket matches a computed bucket name (stock level and similar range
// filters) against the selection. The bucket function must map every record
// to exactly one bucket.
func Bucket[T any](selected string, bucketOf func(T) string) Predicate[T] {
	return EnumEquals(selected, bucketOf)
}
