package providers

import (
	"time"

	"fihealth/internal/models"
	"fihealth/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncNotificationsTotal(kind string, outcome string)
	IncDeliveriesTotal(channel string, outcome string)
	ObserveDeliveryDuration(channel string, duration time.Duration)
	IncUpstreamErrors(upstream string)
}

type MetricsProvider struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	notificationsTotal *prometheus.CounterVec
	deliveriesTotal    *prometheus.CounterVec
	deliveryDuration   *prometheus.HistogramVec
	upstreamErrors     *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncNotificationsTotal(kind string, outcome string) {
	m.notificationsTotal.WithLabelValues(kind, outcome).Inc()
}

func (m *MetricsProvider) IncDeliveriesTotal(channel string, outcome string) {
	m.deliveriesTotal.WithLabelValues(channel, outcome).Inc()
}

func (m *MetricsProvider) ObserveDeliveryDuration(channel string, duration time.Duration) {
	m.deliveryDuration.WithLabelValues(channel).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncUpstreamErrors(upstream string) {
	m.upstreamErrors.WithLabelValues(upstream).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, store *models.RegionStore) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fihealth_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fihealth_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fihealth_cache_hits_total",
			Help: "Total number of listing cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fihealth_cache_misses_total",
			Help: "Total number of listing cache misses",
		}),

		notificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fihealth_notifications_total",
			Help: "Inbound context broker notifications by kind and outcome",
		}, []string{"kind", "outcome"}),

		deliveriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fihealth_fanout_deliveries_total",
			Help: "Downstream fan-out deliveries by channel and outcome",
		}, []string{"channel", "outcome"}),

		deliveryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fihealth_fanout_delivery_duration_seconds",
			Help:    "Downstream fan-out delivery duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"channel"}),

		upstreamErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fihealth_upstream_errors_total",
			Help: "Failed calls to upstream services",
		}, []string{"upstream"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fihealth_regions_total",
		Help: "Number of tracked regions",
	}, func() float64 {
		return float64(store.Len())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fihealth_regions_observed",
		Help: "Number of regions with a known sanity status",
	}, func() float64 {
		return float64(store.ObservedCount())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                                     {}
func (n *noopMetrics) IncCacheMisses()                                   {}
func (n *noopMetrics) IncNotificationsTotal(_ string, _ string)          {}
func (n *noopMetrics) IncDeliveriesTotal(_ string, _ string)             {}
func (n *noopMetrics) ObserveDeliveryDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncUpstreamErrors(_ string)                        {}
