// Package metrics provides the Prometheus registry reference for the ERP
// collection engine. Metrics are defined in their owning packages (api,
// store, controller) to maintain modularity and avoid circular
// dependencies.
//
// This package documents the full metric catalog.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the engine.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/api):
//   - erp_requests_total{resource, status} (Counter): Total requests by resource and HTTP status
//   - erp_request_duration_seconds{resource} (Histogram): Request duration by resource
//   - erp_errors_total{kind} (Counter): Errors by kind (network, api, validation)
//
// Store Metrics (pkg/store):
//   - erp_store_ops_total{backend, operation} (Counter): Successful store operations
//   - erp_store_misses_total{backend} (Counter): Lookups of absent keys
//   - erp_store_errors_total{backend, operation} (Counter): Store operation errors
//
// Controller Metrics (pkg/controller):
//   - erp_renders_total{resource, view} (Counter): Fragment renders by resource and view
//   - erp_mutations_total{resource, operation, outcome} (Counter): Mutations by outcome
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(erp_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(erp_request_duration_seconds_bucket[5m]))
//
//   # Mutation Failure Ratio
//   sum(rate(erp_mutations_total{outcome="failure"}[5m])) /
//   sum(rate(erp_mutations_total[5m]))
//
//   # Card vs Table Usage
//   sum by (view) (rate(erp_renders_total[1h]))
