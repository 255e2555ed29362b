package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/freud/split-text-smartly/internal/core/domain"
)

const namespace = "textsplit"

// SplitMetrics describes the shape of split results. It satisfies the split
// use case's observer interface.
type SplitMetrics struct {
	service string

	splitsTotal     *prometheus.CounterVec
	rowsPerSplit    *prometheus.HistogramVec
	tokensPerSplit  *prometheus.HistogramVec
	overflowTotal   *prometheus.CounterVec
	paddedRowsTotal *prometheus.CounterVec
	splitDuration   *prometheus.HistogramVec
}

func newSplitMetrics(registry *prometheus.Registry, service string) *SplitMetrics {
	splitsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "split",
			Name:      "total",
			Help:      "Total completed splits by source and input kind.",
		},
		[]string{"service", "source", "input"},
	)
	rowsPerSplit := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "split",
			Name:      "rows",
			Help:      "Distribution of rows produced per split, padding included.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 50, 100},
		},
		[]string{"service", "source"},
	)
	tokensPerSplit := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "split",
			Name:      "tokens",
			Help:      "Distribution of tokens packed per split.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"service", "source"},
	)
	overflowTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "split",
			Name:      "overflow_total",
			Help:      "Splits whose last row exceeded the row length because the row cap was reached.",
		},
		[]string{"service", "source"},
	)
	paddedRowsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "split",
			Name:      "padded_rows_total",
			Help:      "Empty rows appended to reach the row cap.",
		},
		[]string{"service", "source"},
	)
	splitDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "split",
			Name:      "duration_seconds",
			Help:      "Split execution duration in seconds.",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		},
		[]string{"service", "source"},
	)

	registry.MustRegister(splitsTotal, rowsPerSplit, tokensPerSplit, overflowTotal, paddedRowsTotal, splitDuration)

	return &SplitMetrics{
		service:         service,
		splitsTotal:     splitsTotal,
		rowsPerSplit:    rowsPerSplit,
		tokensPerSplit:  tokensPerSplit,
		overflowTotal:   overflowTotal,
		paddedRowsTotal: paddedRowsTotal,
		splitDuration:   splitDuration,
	}
}

func (m *SplitMetrics) ObserveSplit(source string, result *domain.SplitResult, duration time.Duration) {
	if result == nil {
		return
	}
	if source == "" {
		source = "unknown"
	}

	input := "text"
	switch {
	case result.Tokens == 0 && len(result.Rows) == 0:
		input = "absent"
	case result.Tokens == 0:
		input = "blank"
	}

	m.splitsTotal.WithLabelValues(m.service, source, input).Inc()
	m.rowsPerSplit.WithLabelValues(m.service, source).Observe(float64(len(result.Rows)))
	m.tokensPerSplit.WithLabelValues(m.service, source).Observe(float64(result.Tokens))
	m.splitDuration.WithLabelValues(m.service, source).Observe(duration.Seconds())
	if result.Overflowed {
		m.overflowTotal.WithLabelValues(m.service, source).Inc()
	}
	if result.Padded > 0 {
		m.paddedRowsTotal.WithLabelValues(m.service, source).Add(float64(result.Padded))
	}
}
