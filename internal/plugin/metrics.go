package plugin

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the loader collectors. One Metrics may be shared by
// several loaders; series are labelled with the loader name. A nil
// *Metrics records nothing.
type Metrics struct {
	loads     *prometheus.CounterVec
	unloads   *prometheus.CounterVec
	instances *prometheus.GaugeVec
	duration  *prometheus.HistogramVec
}

// NewMetrics creates the loader collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "demon",
			Subsystem: "plugin",
			Name:      "loads_total",
			Help:      "Load passes by loader and result",
		}, []string{"loader", "result"}),
		unloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "demon",
			Subsystem: "plugin",
			Name:      "unloads_total",
			Help:      "Modules unloaded by loader",
		}, []string{"loader"}),
		instances: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "demon",
			Subsystem: "plugin",
			Name:      "instances",
			Help:      "Live script instances by loader",
		}, []string{"loader"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "demon",
			Subsystem: "plugin",
			Name:      "load_duration_seconds",
			Help:      "Load pass duration",
			Buckets:   prometheus.DefBuckets,
		}, []string{"loader"}),
	}
	if reg != nil {
		reg.MustRegister(m.loads, m.unloads, m.instances, m.duration)
	}
	return m
}

func (m *Metrics) observeLoad(loader, result string, seconds float64) {
	if m != nil {
		m.loads.WithLabelValues(loader, result).Inc()
		m.duration.WithLabelValues(loader).Observe(seconds)
	}
}

func (m *Metrics) incUnload(loader string) {
	if m != nil {
		m.unloads.WithLabelValues(loader).Inc()
	}
}

func (m *Metrics) setInstances(loader string, n int) {
	if m != nil {
		m.instances.WithLabelValues(loader).Set(float64(n))
	}
}
