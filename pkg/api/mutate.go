package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// Create validates record client-side and POSTs it. A ValidationError
// means nothing was sent. On success the caller is responsible for a full
// collection re-fetch: server-computed fields (derived totals, timestamps)
// only exist in the next fetch, so there is no local cache patching.
func (c *Client) Create(ctx context.Context, resource string, record any) error {
	if err := c.validateRecord(record); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPost, "/api/"+resource, nil, record)
	return err
}

// Update validates record client-side and PUTs it to /api/{resource}/{id}.
func (c *Client) Update(ctx context.Context, resource string, id int64, record any) error {
	if err := c.validateRecord(record); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPut, "/api/"+resource+"/"+strconv.FormatInt(id, 10), nil, record)
	return err
}

// Delete issues DELETE /api/{resource}/{id}. Confirmation is the caller's
// concern; by the time Delete runs the user has already confirmed.
func (c *Client) Delete(ctx context.Context, resource string, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/"+resource+"/"+strconv.FormatInt(id, 10), nil, nil)
	return err
}

// validateRecord runs the client-side preconditions. Invalid records never
// reach the wire.
func (c *Client) validateRecord(record any) error {
	if record == nil {
		return &ValidationError{Err: fmt.Errorf("record is nil")}
	}
	if err := c.validate.Struct(record); err != nil {
		erpErrorsTotal.WithLabelValues(string(KindValidation)).Inc()
		return newValidationError(err)
	}
	return nil
}
