package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP
// =============================================================================

// HttpRequestsTotal counts requests by service, method, route and status.
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database
// =============================================================================

var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka
// =============================================================================

var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Catalog
// =============================================================================

// CatalogMutations counts successful writes. operation: create, update, delete.
var CatalogMutations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_mutations_total",
		Help: "Total number of successful catalog writes",
	},
	[]string{"resource", "operation"},
)

// CatalogDeleteBlocked counts category deletions refused because products
// still reference the category.
var CatalogDeleteBlocked = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "catalog_delete_blocked_total",
		Help: "Total number of category deletions blocked by dependent products",
	},
)

var CatalogCategories = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "catalog_categories",
		Help: "Number of categories in the catalog",
	},
)

var CatalogProducts = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "catalog_products",
		Help: "Number of products in the catalog",
	},
)

var CatalogProductsOutOfStock = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "catalog_products_out_of_stock",
		Help: "Number of products with zero stock",
	},
)
