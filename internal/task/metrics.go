package task

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the scheduler collectors. A nil *Metrics records nothing.
type Metrics struct {
	polls  prometheus.Counter
	runs   prometheus.Counter
	panics *prometheus.CounterVec
	active prometheus.Gauge
	pollMs prometheus.Histogram
}

// NewMetrics creates the scheduler collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		polls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "demon",
			Subsystem: "task",
			Name:      "polls_total",
			Help:      "Total number of Poll calls",
		}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "demon",
			Subsystem: "task",
			Name:      "runs_total",
			Help:      "Total number of hook invocations",
		}),
		panics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "demon",
			Subsystem: "task",
			Name:      "panics_total",
			Help:      "Recovered hook panics by task",
		}, []string{"task"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "demon",
			Subsystem: "task",
			Name:      "active",
			Help:      "Number of registered tasks",
		}),
		pollMs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "demon",
			Subsystem: "task",
			Name:      "poll_duration_seconds",
			Help:      "Time spent running hooks per frame",
			Buckets:   []float64{.0001, .0005, .001, .004, .008, .016, .033, .1},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.polls, m.runs, m.panics, m.active, m.pollMs)
	}
	return m
}

func (m *Metrics) observePoll(seconds float64) {
	if m != nil {
		m.polls.Inc()
		m.pollMs.Observe(seconds)
	}
}

func (m *Metrics) incRun() {
	if m != nil {
		m.runs.Inc()
	}
}

func (m *Metrics) incPanic(name string) {
	if m != nil {
		m.panics.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) setActive(n int) {
	if m != nil {
		m.active.Set(float64(n))
	}
}
