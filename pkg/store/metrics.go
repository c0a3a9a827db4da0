package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// storeOps tracks successful store operations by backend and operation.
	storeOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "erp_store_ops_total",
			Help: "Total successful state store operations",
		},
		[]string{"backend", "operation"}, // "memory"/"redis", "get"/"set"/"delete"
	)

	// storeMisses tracks lookups of absent keys by backend.
	storeMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "erp_store_misses_total",
			Help: "Total state store lookups that found no value",
		},
		[]string{"backend"},
	)

	// storeErrors tracks failed store operations by backend and operation.
	storeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "erp_store_errors_total",
			Help: "Total state store operation errors",
		},
		[]string{"backend", "operation"},
	)
)
