package board

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments a Board updates as it runs.
// Each field is itself a prometheus.Collector, so callers register them
// directly with any prometheus.Registerer; Board never talks to a
// registry itself.
type Metrics struct {
	Reveals           prometheus.Counter
	CascadedReveals   prometheus.Counter
	ReplaceMinesCalls prometheus.Counter
	RecalcCalls       prometheus.Counter
	SolveDuration     prometheus.Histogram
}

// NewMetrics builds a Metrics set with the namespace/subsystem the rest
// of this engine uses for its instrumentation.
func NewMetrics() *Metrics {
	return &Metrics{
		Reveals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minesweeper",
			Subsystem: "board",
			Name:      "reveals_total",
			Help:      "Total number of tile reveals processed, cascaded or not.",
		}),
		CascadedReveals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minesweeper",
			Subsystem: "board",
			Name:      "cascaded_reveals_total",
			Help:      "Total number of reveals triggered by cascade propagation.",
		}),
		ReplaceMinesCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minesweeper",
			Subsystem: "board",
			Name:      "replace_mines_total",
			Help:      "Total number of mine-layout resamples.",
		}),
		RecalcCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minesweeper",
			Subsystem: "board",
			Name:      "recalc_total",
			Help:      "Total number of forced-determination propagation passes.",
		}),
		SolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "minesweeper",
			Subsystem: "board",
			Name:      "solve_duration_seconds",
			Help:      "Time spent in the pseudo-boolean solver per build-check(-model) sequence.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// MustRegister registers every instrument in m with reg, panicking on a
// duplicate-registration error the way prometheus's own MustRegister does.
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.Reveals, m.CascadedReveals, m.ReplaceMinesCalls, m.RecalcCalls, m.SolveDuration)
}

// collectors lists m's instruments in a fixed order, shared by Describe
// and Collect.
func (m *Metrics) collectors() [5]prometheus.Collector {
	return [5]prometheus.Collector{m.Reveals, m.CascadedReveals, m.ReplaceMinesCalls, m.RecalcCalls, m.SolveDuration}
}

// Describe implements prometheus.Collector by forwarding to each
// instrument's own Describe, the same fan-out MustRegister relies on.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors() {
		c.Describe(ch)
	}
}

// Collect implements prometheus.Collector by forwarding to each
// instrument's own Collect.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors() {
		c.Collect(ch)
	}
}

// Describe implements prometheus.Collector on Board itself, per spec: a
// caller may register a Board directly with its own registry instead of
// reaching into Config.Metrics. It is a no-op if the board was built
// without metrics.
func (b *Board) Describe(ch chan<- *prometheus.Desc) {
	if b.metrics != nil {
		b.metrics.Describe(ch)
	}
}

// Collect implements prometheus.Collector on Board itself.
func (b *Board) Collect(ch chan<- prometheus.Metric) {
	if b.metrics != nil {
		b.metrics.Collect(ch)
	}
}

// incMetric is a nil-safe helper: Board.metrics is optional, so every
// call site routes through here instead of checking nil itself.
func (b *Board) incMetric(f func(*Metrics)) {
	if b.metrics != nil {
		f(b.metrics)
	}
}

func (b *Board) observeSolve(d time.Duration) {
	if b.metrics != nil {
		b.metrics.SolveDuration.Observe(d.Seconds())
	}
}
