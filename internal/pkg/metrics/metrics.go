// Package metrics exposes Prometheus collectors for monitoring the
// reconciliation engine.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ReconciliationPassesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reconciliation_passes_total",
			Help: "Total number of completed batch reconciliation passes",
		},
	)

	ReconciliationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reconciliation_failures_total",
			Help: "Total number of batch reconciliation passes aborted by a carrier failure",
		},
	)

	OrdersReconciledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_reconciled_total",
			Help: "Total number of orders matched against a carrier snapshot",
		},
	)

	StatusChangesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "status_changes_total",
			Help: "Total number of order status transitions recorded",
		},
	)

	ManualRefreshesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "manual_refreshes_total",
			Help: "Total number of on-demand single-order refreshes",
		},
	)

	CarrierRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "carrier_request_duration_seconds",
			Help:    "Duration of batch requests to the carrier API",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Register registers all Prometheus collectors with the default registry.
// Call once at process startup.
func Register() {
	prometheus.MustRegister(ReconciliationPassesTotal)
	prometheus.MustRegister(ReconciliationFailuresTotal)
	prometheus.MustRegister(OrdersReconciledTotal)
	prometheus.MustRegister(StatusChangesTotal)
	prometheus.MustRegister(ManualRefreshesTotal)
	prometheus.MustRegister(CarrierRequestDuration)
}
