package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ukydev/ev-fleet-dashboard/internal/models"
)

const namespace = "fleet_dashboard"

var (
	DashboardDerivations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "derivations_total",
		Help:      "Number of dashboard views derived",
	})
	MapCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "map_commands_total",
		Help:      "Commands sent to the mapping surface",
	}, []string{"type"})
	VehiclesByStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "vehicles",
		Help:      "Vehicles per derived status in the last derived list",
	}, []string{"status"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// ObserveStatuses sets the per-status gauge from a set of derived rows.
func ObserveStatuses(rows []models.VehicleRow) {
	counts := map[models.Status]float64{
		models.StatusActive:  0,
		models.StatusIdle:    0,
		models.StatusOffline: 0,
		models.StatusUnknown: 0,
	}
	for _, r := range rows {
		counts[r.Status]++
	}
	for status, n := range counts {
		VehiclesByStatus.WithLabelValues(string(status)).Set(n)
	}
}
