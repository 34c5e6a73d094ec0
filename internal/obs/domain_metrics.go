package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuoteComputeTotal counts quote computations by outcome.
	QuoteComputeTotal *prometheus.CounterVec
	// QuoteComputeDuration records quote computation latency in milliseconds.
	QuoteComputeDuration prometheus.Histogram
	// QuoteSubmittedTotal counts persisted quote submissions by outcome.
	QuoteSubmittedTotal *prometheus.CounterVec
	// ROIEstimateTotal counts ROI estimate computations by outcome.
	ROIEstimateTotal *prometheus.CounterVec
	// CatalogCacheHits counts catalog cache lookups by result.
	CatalogCacheHits *prometheus.CounterVec
	// NotifyDeliveriesTotal tracks quote notification delivery outcomes.
	NotifyDeliveriesTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuoteComputeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_compute_total",
			Help:      "Count of quote computation outcomes.",
		}, []string{"result"})
		QuoteComputeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_compute_duration_ms",
			Help:      "Latency of quote computations in milliseconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		})
		QuoteSubmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_submitted_total",
			Help:      "Count of quote submission outcomes.",
		}, []string{"result"})
		ROIEstimateTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "roi_estimate_total",
			Help:      "Count of ROI estimate outcomes.",
		}, []string{"result"})
		CatalogCacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_cache_lookups_total",
			Help:      "Catalog cache lookups by result (hit, miss, error).",
		}, []string{"result"})
		NotifyDeliveriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_notify_deliveries_total",
			Help:      "Quote notification delivery outcomes.",
		}, []string{"channel", "result"})

		reg.MustRegister(
			QuoteComputeTotal,
			QuoteComputeDuration,
			QuoteSubmittedTotal,
			ROIEstimateTotal,
			CatalogCacheHits,
			NotifyDeliveriesTotal,
		)
	})
}
