package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type AdminMetrics struct {
	Requests *prometheus.CounterVec
}

type ReconcileMetrics struct {
	Operations *prometheus.CounterVec
}

type MetricsRegistry struct {
	Admin     *AdminMetrics
	Reconcile *ReconcileMetrics
}

var Registry *MetricsRegistry

func init() {
	Registry = &MetricsRegistry{
		Admin: &AdminMetrics{
			Requests: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "admin_api_requests",
				Help: "The total number of admin API requests issued, by method and status",
			}, []string{"method", "status"}),
		},
		Reconcile: &ReconcileMetrics{
			Operations: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "reconcile_operations",
				Help: "The total number of reconcile operations performed, by resource kind and action",
			}, []string{"kind", "action"}),
		},
	}
}
