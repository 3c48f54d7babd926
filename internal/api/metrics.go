package api

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"playground/internal/models"
)

type metrics struct {
	renders  *prometheus.CounterVec
	launches *prometheus.CounterVec
	entries  prometheus.Gauge
	fallback prometheus.Gauge
	registry *prometheus.Registry
}

func newMetrics(reg *prometheus.Registry) (*metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &metrics{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "playground",
			Name:      "renders_total",
			Help:      "Catalog page renders, by whether the empty state was shown.",
		}, []string{"empty"}),
		launches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "playground",
			Name:      "launches_total",
			Help:      "Launch requests, by dispatch kind.",
		}, []string{"kind"}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "playground",
			Name:      "catalog_entries",
			Help:      "Entries in the current catalog.",
		}),
		fallback: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "playground",
			Name:      "catalog_fallback",
			Help:      "1 when the built-in catalog is being served.",
		}),
		registry: reg,
	}
	for _, c := range []prometheus.Collector{m.renders, m.launches, m.entries, m.fallback} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *metrics) observeCatalog(c *models.Catalog) {
	if c == nil {
		m.entries.Set(0)
		m.fallback.Set(0)
		return
	}
	m.entries.Set(float64(len(c.Entries)))
	if c.Source == models.SourceFallback {
		m.fallback.Set(1)
	} else {
		m.fallback.Set(0)
	}
}

func (m *metrics) observeRender(empty bool) {
	m.renders.WithLabelValues(strconv.FormatBool(empty)).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
