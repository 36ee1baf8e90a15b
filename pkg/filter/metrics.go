package filter

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var decisionCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tcf_filter_decisions_total",
	Help: "Number of filter decisions by outcome",
}, []string{"outcome", "filter"})

var stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "tcf_filter_stage_duration_seconds",
	Help:    "Duration of each filter pipeline stage",
	Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
}, []string{"stage"})

var cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tcf_decision_cache_requests_total",
	Help: "Decision cache lookups by result",
}, []string{"result"})

var cacheSize = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "tcf_decision_cache_entries",
	Help: "Current number of cached decisions",
})

// MetricsRecorder 将决策计入 prometheus
type MetricsRecorder struct{}

func (MetricsRecorder) Record(_ context.Context, _ Request, d Decision) error {
	decisionCount.WithLabelValues(string(d.Outcome), strconv.FormatBool(d.Filter)).Inc()
	return nil
}
