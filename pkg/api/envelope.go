package api

import (
	"encoding/json"
	"fmt"
	"sort"
)

// decodeCollection unwraps a collection response body. The envelope shape
// is inconsistent across endpoints: sometimes {"data": [...]}, sometimes
// keyed by the resource name ({"clientes": [...]}), sometimes a bare
// array. The fallback chain is: bare array, "data" field, resource-named
// field, then the first array-typed field in key order.
func decodeCollection(body []byte, resource string) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	for _, field := range []string{"data", resource} {
		if raw, ok := envelope[field]; ok {
			if err := json.Unmarshal(raw, &items); err == nil {
				return items, nil
			}
		}
	}

	// Last resort: any array-typed field, in sorted key order so the
	// choice is deterministic.
	keys := make([]string, 0, len(envelope))
	for key := range envelope {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := json.Unmarshal(envelope[key], &items); err == nil {
			return items, nil
		}
	}

	return nil, fmt.Errorf("no collection field in %s envelope", resource)
}

// decodeRecords unmarshals raw collection items into typed records,
// skipping nothing: a malformed item fails the whole decode so partial
// collections never render as complete.
func decodeRecords[T any](items []json.RawMessage) ([]T, error) {
	records := make([]T, 0, len(items))
	for i, raw := range items {
		var record T
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("decode record %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}
