package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the shell collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	frames       prometheus.Counter
	frameSeconds prometheus.Histogram
	gameMode     prometheus.Gauge
	viewSize     prometheus.Gauge
	reloads      *prometheus.CounterVec
}

// NewMetrics creates the shell collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "demon",
			Subsystem: "app",
			Name:      "frames_total",
			Help:      "Frames run",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "demon",
			Subsystem: "app",
			Name:      "frame_duration_seconds",
			Help:      "Time spent in one frame",
			Buckets:   []float64{.0005, .001, .002, .004, .008, .016, .033, .066, .1},
		}),
		gameMode: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "demon",
			Subsystem: "app",
			Name:      "game_mode",
			Help:      "1 while game mode is enabled",
		}),
		viewSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "demon",
			Subsystem: "app",
			Name:      "game_view_size",
			Help:      "Current game viewport size as a fraction of the window",
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "demon",
			Subsystem: "app",
			Name:      "script_reloads_total",
			Help:      "Script reloads, by result",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.frames, m.frameSeconds, m.gameMode, m.viewSize, m.reloads)
	}
	return m
}

func (m *Metrics) observeFrame(seconds float64) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.frameSeconds.Observe(seconds)
}

func (m *Metrics) setGameMode(on bool) {
	if m == nil {
		return
	}
	if on {
		m.gameMode.Set(1)
	} else {
		m.gameMode.Set(0)
	}
}

func (m *Metrics) setViewSize(size float64) {
	if m == nil {
		return
	}
	m.viewSize.Set(size)
}

func (m *Metrics) incReload(result string) {
	if m == nil {
		return
	}
	m.reloads.WithLabelValues(result).Inc()
}

// Handler serves the collectors gathered by g in the Prometheus text
// format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
