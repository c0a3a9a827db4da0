// Package api implements the authenticated HTTP client for the ERP REST
// API: collection fetching with envelope normalization, and the mutation
// dispatcher for create/update/delete.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gestorpme/erp-client/pkg/store"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for API client operations.
var (
	erpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_requests_total",
		Help: "Total ERP API requests by resource and status",
	}, []string{"resource", "status"})

	erpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "erp_request_duration_seconds",
		Help:    "ERP API request duration in seconds by resource",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"resource"})

	erpErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_errors_total",
		Help: "Total ERP API errors by kind",
	}, []string{"kind"})
)

// Query carries the optional query parameters of a collection GET.
// Zero values are omitted from the request.
type Query struct {
	Search string
	Status string
	Tipo   string
	Page   int
	Limit  int
}

// Values encodes the query for the request URL.
func (q Query) Values() url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Status != "" {
		values.Set("status", q.Status)
	}
	if q.Tipo != "" {
		values.Set("tipo", q.Tipo)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	return values
}

// Client is the authenticated ERP API client. A single failed request is
// surfaced to the caller immediately; there are no automatic retries.
type Client struct {
	httpClient *http.Client
	config     Config
	validate   *validator.Validate
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root, e.g. "https://erp.example.com".
	BaseURL string

	// Session provides the bearer token and is cleared on 401.
	Session *store.Session

	// OnUnauthorized runs after a 401 cleared the session. It is the
	// redirect-to-login analogue; the login flow itself is out of scope.
	OnUnauthorized func()

	// HTTPClient overrides the default client (30s timeout) when set.
	HTTPClient *http.Client

	// Validate overrides the default validator when set.
	Validate *validator.Validate
}

// New creates an ERP API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Session == nil {
		return nil, fmt.Errorf("session store is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	validate := cfg.Validate
	if validate == nil {
		validate = validator.New()
	}

	return &Client{
		httpClient: httpClient,
		config:     cfg,
		validate:   validate,
		logger:     log.With().Str("component", "erp-api").Logger(),
	}, nil
}

// do performs one authenticated request and returns the response body.
// 2xx returns the body; everything else returns a typed error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	resource := resourceOf(path)
	requestURL := c.config.BaseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	startTime := time.Now()
	defer func() {
		erpRequestDuration.WithLabelValues(resource).Observe(time.Since(startTime).Seconds())
	}()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.config.Session.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug().
		Str("resource", resource).
		Str("method", method).
		Msg("Executing ERP request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("resource", resource).Msg("HTTP request failed")
		erpErrorsTotal.WithLabelValues(string(KindNetwork)).Inc()
		erpRequestsTotal.WithLabelValues(resource, "network_error").Inc()
		return nil, &NetworkError{URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	erpRequestsTotal.WithLabelValues(resource, strconv.Itoa(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		erpErrorsTotal.WithLabelValues(string(KindNetwork)).Inc()
		return nil, &NetworkError{URL: requestURL, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, c.handleUnauthorized(ctx, resource)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(respBody, resp.StatusCode),
			Resource:   resource,
		}
		c.logger.Warn().
			Str("resource", resource).
			Int("status", resp.StatusCode).
			Str("message", apiErr.Message).
			Msg("ERP request error")
		erpErrorsTotal.WithLabelValues(string(KindAPI)).Inc()
		return nil, apiErr
	}

	return respBody, nil
}

// handleUnauthorized clears the session and fires the redirect hook.
// No banner is shown for a 401; the caller gets the APIError to stop
// its pipeline.
func (c *Client) handleUnauthorized(ctx context.Context, resource string) error {
	c.logger.Warn().Str("resource", resource).Msg("Unauthorized - clearing session")
	if err := c.config.Session.Clear(ctx); err != nil {
		c.logger.Error().Err(err).Msg("Failed to clear session")
	}
	if c.config.OnUnauthorized != nil {
		c.config.OnUnauthorized()
	}
	erpErrorsTotal.WithLabelValues(string(KindAPI)).Inc()
	return &APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    "sessão expirada",
		Resource:   resource,
	}
}

// Get performs a GET against an API path and returns the raw body.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// FetchCollection fetches one resource collection and normalizes the
// envelope into typed records.
func FetchCollection[T any](ctx context.Context, c *Client, resource string, q Query) ([]T, error) {
	body, err := c.Get(ctx, "/api/"+resource, q.Values())
	if err != nil {
		return nil, err
	}
	items, err := decodeCollection(body, resource)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", resource, err)
	}
	return decodeRecords[T](items)
}

// resourceOf extracts the resource name of an API path for metric labels,
// dropping record ids: /api/clientes/42 -> clientes.
func resourceOf(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "api" {
		return parts[1]
	}
	return path
}
