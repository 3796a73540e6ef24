// Package metrics exposes the kit's Prometheus instrumentation. Collectors
// register on the default registry and are served by the /metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RebuildTotal counts site rebuilds by result ("ok" or "error").
	RebuildTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_rebuild_total",
		Help: "Site rebuilds by result",
	}, []string{"result"})

	// RebuildDuration tracks the time spent scanning content and
	// assembling the descriptor.
	RebuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "inkwell_rebuild_duration_seconds",
		Help:    "Time spent rebuilding the site descriptor",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})

	// ArticlesIndexed reports the number of articles in the current index.
	ArticlesIndexed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inkwell_articles_indexed",
		Help: "Articles currently in the index",
	})

	// ParseFailures counts content files rejected during a scan.
	ParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_content_parse_failures_total",
		Help: "Content files rejected during scan",
	})
)

// ObserveRebuild records one rebuild attempt.
func ObserveRebuild(result string, d time.Duration) {
	RebuildTotal.WithLabelValues(result).Inc()
	RebuildDuration.Observe(d.Seconds())
}
