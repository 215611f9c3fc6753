package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	Computations *prometheus.CounterVec // source label: api|watch|cli
	Failures     *prometheus.CounterVec // reason label
	Warnings     prometheus.Counter
	ParseErrors  prometheus.Counter

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	ComputeDuration prometheus.Histogram
	Waypoints       prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pacer_computations_total",
			Help: "Total schedule computations.",
		}, []string{"source"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pacer_failures_total",
			Help: "Total validation failures reported by schedule computations.",
		}, []string{"reason"}),
		Warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pacer_warnings_total",
			Help: "Total infeasible zone warnings.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pacer_parse_errors_total",
			Help: "Total roadmaps rejected by the parser.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pacer_cache_hits_total",
			Help: "Schedule requests served from the cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pacer_cache_misses_total",
			Help: "Schedule requests computed from scratch.",
		}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pacer_compute_duration_seconds",
			Help:    "Duration of the parse, preprocess and compute pipeline.",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 15),
		}),
		Waypoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pacer_waypoints",
			Help: "Number of waypoints in the last computed roadmap.",
		}),
	}

	reg.MustRegister(
		c.Computations, c.Failures, c.Warnings, c.ParseErrors,
		c.CacheHits, c.CacheMisses,
		c.ComputeDuration, c.Waypoints,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// ObserveRun records one pipeline run. reasons holds the failure reasons, empty when
// the roadmap was scheduled.
func (c *Collector) ObserveRun(source string, d time.Duration, waypoints, warnings int, reasons []string) {
	c.Computations.WithLabelValues(source).Inc()
	c.ComputeDuration.Observe(d.Seconds())
	c.Waypoints.Set(float64(waypoints))
	c.Warnings.Add(float64(warnings))
	for _, r := range reasons {
		c.Failures.WithLabelValues(r).Inc()
	}
}
