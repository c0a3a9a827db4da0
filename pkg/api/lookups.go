package api

import (
	"context"
	"encoding/json"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FetchLookups fetches independent collections concurrently and joins them
// before returning. This is the fixed fan-out used at page initialization
// (a sale form needs clients and products at once), not a general
// concurrency primitive: the fan-out is 2-3 requests and the first error
// cancels the rest.
func (c *Client) FetchLookups(ctx context.Context, resources ...string) (map[string][]json.RawMessage, error) {
	results := make(map[string][]json.RawMessage, len(resources))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, resource := range resources {
		g.Go(func() error {
			body, err := c.Get(ctx, "/api/"+resource, nil)
			if err != nil {
				return err
			}
			items, err := decodeCollection(body, resource)
			if err != nil {
				return err
			}
			mu.Lock()
			results[resource] = items
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
