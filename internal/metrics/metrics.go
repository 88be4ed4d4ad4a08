// Package metrics holds Prometheus instruments that are used across the
// server.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveTenants = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_tenants",
			Help: "Number of tenant snapshots currently cached in memory.",
		})

	TenantLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_load_total",
			Help: "Cumulative number of tenant snapshots successfully loaded.",
		})

	TenantLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_load_errors_total",
			Help: "Cumulative number of tenant load errors.",
		})

	TenantEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_evict_total",
			Help: "Cumulative number of tenant snapshots evicted from the cache.",
		})

	SaveEditsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "editor_save_edits_total",
			Help: "Cumulative number of field edits accepted by the save pipeline.",
		})

	SaveFlushesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "editor_save_flushes_total",
			Help: "Cumulative number of save-queue flushes (single and batch).",
		})

	SaveFieldErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "editor_save_field_errors_total",
			Help: "Cumulative number of field writes that failed during a flush.",
		})

	SaveQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "editor_save_queue_depth",
			Help: "Pending edits currently waiting for a batch flush.",
		})
)

func init() {
	prometheus.MustRegister(
		ActiveTenants,
		TenantLoadTotal,
		TenantLoadErrorsTotal,
		TenantEvictTotal,
		SaveEditsTotal,
		SaveFlushesTotal,
		SaveFieldErrorsTotal,
		SaveQueueDepth,
	)
}
