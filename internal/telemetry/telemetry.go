package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	collectDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gazeta",
		Name:      "collect_duration_seconds",
		Help:      "Duration of evidence collection runs by strategy mode.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	}, []string{"mode"})

	searchAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gazeta",
		Name:      "search_attempts_total",
		Help:      "Search backend attempts by engine and outcome.",
	}, []string{"engine", "outcome"})

	fetchResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gazeta",
		Name:      "fetch_results_total",
		Help:      "Page fetch outcomes.",
	}, []string{"outcome"})
)

func ObserveCollect(mode string, d time.Duration) {
	collectDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func CountSearchAttempt(engine, outcome string) {
	searchAttempts.WithLabelValues(engine, outcome).Inc()
}

func CountFetch(outcome string) {
	fetchResults.WithLabelValues(outcome).Inc()
}
