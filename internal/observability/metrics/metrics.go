package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garagetrack_auth_operations_total",
		Help: "Count of login and registration attempts by result",
	}, []string{"operation", "result"})

	crudOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garagetrack_crud_operations_total",
		Help: "Count of tenant-scoped CRUD operations by entity and result",
	}, []string{"entity", "operation", "result"})

	dbOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "garagetrack_db_operation_duration_seconds",
		Help:    "Duration of individual database statements",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// ObserveAuth records a login or registration attempt.
func ObserveAuth(operation, result string) {
	authOperations.WithLabelValues(operation, result).Inc()
}

// ObserveCRUD records a tenant-scoped CRUD operation.
func ObserveCRUD(entity, operation, result string) {
	crudOperations.WithLabelValues(entity, operation, result).Inc()
}

// TimeDBOperation returns a stop function observing the statement duration.
// Usage: defer metrics.TimeDBOperation("query")()
func TimeDBOperation(operation string) func() {
	start := time.Now()
	return func() {
		dbOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
