package event

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the bus collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	triggered  prometheus.Counter
	delivered  *prometheus.CounterVec
	panics     *prometheus.CounterVec
	dispatched prometheus.Counter
	suppressed prometheus.Counter
}

// NewMetrics creates the bus collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		triggered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "demon",
			Subsystem: "event",
			Name:      "triggered_total",
			Help:      "Total number of Trigger calls",
		}),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "demon",
			Subsystem: "event",
			Name:      "delivered_total",
			Help:      "Callbacks invoked, by subscriber kind",
		}, []string{"kind"}),
		panics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "demon",
			Subsystem: "event",
			Name:      "panics_total",
			Help:      "Recovered callback panics, by subscriber kind",
		}, []string{"kind"}),
		dispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "demon",
			Subsystem: "event",
			Name:      "frame_events_total",
			Help:      "Raw events drained from the frame queue",
		}),
		suppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "demon",
			Subsystem: "event",
			Name:      "suppressed_total",
			Help:      "Pointer events withheld from Trigger",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.triggered, m.delivered, m.panics, m.dispatched, m.suppressed)
	}
	return m
}

const (
	kindSubscription = "subscription"
	kindListener     = "listener"
)

func (m *Metrics) incTriggered() {
	if m != nil {
		m.triggered.Inc()
	}
}

func (m *Metrics) incDelivered(kind string) {
	if m != nil {
		m.delivered.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) incPanic(kind string) {
	if m != nil {
		m.panics.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) incDispatched() {
	if m != nil {
		m.dispatched.Inc()
	}
}

func (m *Metrics) incSuppressed() {
	if m != nil {
		m.suppressed.Inc()
	}
}
