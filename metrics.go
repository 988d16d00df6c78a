package garden

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records build and ingest activity on a private registry.
type Metrics struct {
	reg            *prom.Registry
	pagesRendered  *prom.CounterVec
	renderDuration *prom.HistogramVec
	renderErrors   prom.Counter
	buildDuration  prom.Histogram
	ingestedPages  prom.Gauge
	ingests        *prom.CounterVec
}

// NewMetrics constructs and registers the garden metrics. A nil registry
// gets a fresh one.
func NewMetrics(reg *prom.Registry) *Metrics {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	m := &Metrics{
		reg: reg,
		pagesRendered: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "garden",
			Name:      "pages_rendered_total",
			Help:      "Pages rendered by layout",
		}, []string{"layout"}),
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "garden",
			Name:      "render_duration_seconds",
			Help:      "Duration of single page renders",
			Buckets:   prom.DefBuckets,
		}, []string{"layout"}),
		renderErrors: prom.NewCounter(prom.CounterOpts{
			Namespace: "garden",
			Name:      "render_errors_total",
			Help:      "Pages that failed to render or write",
		}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "garden",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		ingestedPages: prom.NewGauge(prom.GaugeOpts{
			Namespace: "garden",
			Name:      "ingested_pages",
			Help:      "Pages in the index after the last ingest",
		}),
		ingests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "garden",
			Name:      "ingests_total",
			Help:      "Ingest runs by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.pagesRendered, m.renderDuration, m.renderErrors, m.buildDuration, m.ingestedPages, m.ingests,
		collectors.NewGoCollector())
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// requestMiddleware counts and times preview requests by route on the same
// registry. It registers its collectors, so it is built once per App.
func (m *Metrics) requestMiddleware() echo.MiddlewareFunc {
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "garden",
		Subsystem:  "http",
		Registerer: m.reg,
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/metrics"
		},
	})
}

func (m *Metrics) observeRender(layoutName string, d time.Duration, err error) {
	if err != nil {
		m.renderErrors.Inc()
		return
	}
	m.pagesRendered.WithLabelValues(layoutName).Inc()
	m.renderDuration.WithLabelValues(layoutName).Observe(d.Seconds())
}

func (m *Metrics) observeIngest(pages int, err error) {
	if err != nil {
		m.ingests.WithLabelValues("failure").Inc()
		return
	}
	m.ingests.WithLabelValues("success").Inc()
	m.ingestedPages.Set(float64(pages))
}

func (m *Metrics) observeBuild(d time.Duration) {
	m.buildDuration.Observe(d.Seconds())
}
