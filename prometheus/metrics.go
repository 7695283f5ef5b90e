package prometheus

import (
	"backoffice-service/internal/model"
	"backoffice-service/pkg/config"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthErrorsCounter *prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Catalog metrics
	CatalogOperationsCounter *prometheus.CounterVec
	SlugConflictsCounter     *prometheus.CounterVec

	// Order metrics
	OrdersCreatedCounter  prometheus.Counter
	OrderConflictsCounter prometheus.Counter
	OrdersByStatusGauge   *prometheus.GaugeVec
)

// InitMetrics registers the service metrics on the default registry
func InitMetrics(cfg *config.Config) {
	InitMetricsWith(prometheus.DefaultRegisterer, cfg.Metrics.Prefix)
}

// InitMetricsWith registers the service metrics on reg using namespace as prefix
func InitMetricsWith(reg prometheus.Registerer, namespace string) {
	factory := promauto.With(reg)

	HttpRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthErrorsCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_errors_total",
			Help:      "Total number of rejected bearer tokens",
		},
		[]string{"reason"},
	)

	DbOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_operation_duration_seconds",
			Help:      "Duration of database operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	CatalogOperationsCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_operations_total",
			Help:      "Total number of catalog write operations",
		},
		[]string{"entity", "operation"},
	)

	SlugConflictsCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slug_conflicts_total",
			Help:      "Total number of rejected writes because of a taken slug",
		},
		[]string{"entity"},
	)

	OrdersCreatedCounter = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Total number of orders created",
		},
	)

	OrderConflictsCounter = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_version_conflicts_total",
			Help:      "Total number of order writes rejected by the version check",
		},
	)

	OrdersByStatusGauge = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "orders_by_status",
			Help:      "Number of orders per status at the last dashboard refresh",
		},
		[]string{"status"},
	)
}

// ObserveHTTPRequest records one served request
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	if HttpRequestsTotal == nil {
		return
	}
	HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// HandlerFunc returns a HTTP handler for metrics endpoint
func HandlerFunc() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if DbOperationDuration == nil {
			return
		}
		DbOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordAuthError increments the rejected token counter
func RecordAuthError(reason string) {
	if AuthErrorsCounter != nil {
		AuthErrorsCounter.WithLabelValues(reason).Inc()
	}
}

// RecordCatalogOperation increments the counter for catalog operations
func RecordCatalogOperation(entity, operation string) {
	if CatalogOperationsCounter != nil {
		CatalogOperationsCounter.WithLabelValues(entity, operation).Inc()
	}
}

// RecordSlugConflict increments the slug conflict counter
func RecordSlugConflict(entity string) {
	if SlugConflictsCounter != nil {
		SlugConflictsCounter.WithLabelValues(entity).Inc()
	}
}

// RecordOrderCreated increments the orders created counter
func RecordOrderCreated() {
	if OrdersCreatedCounter != nil {
		OrdersCreatedCounter.Inc()
	}
}

// RecordOrderConflict increments the version conflict counter
func RecordOrderConflict() {
	if OrderConflictsCounter != nil {
		OrderConflictsCounter.Inc()
	}
}

// UpdateOrderStatusGauge publishes the latest per-status order counts
func UpdateOrderStatusGauge(counts map[model.OrderStatus]int64) {
	if OrdersByStatusGauge == nil {
		return
	}
	for status, count := range counts {
		OrdersByStatusGauge.WithLabelValues(string(status)).Set(float64(count))
	}
}
