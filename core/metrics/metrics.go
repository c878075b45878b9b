package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "par"

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ImportRows          *prometheus.CounterVec
	ImportProducts      *prometheus.CounterVec
	ImportEntities      *prometheus.CounterVec
	ImportStageFailures *prometheus.CounterVec
	ImportDuration      *prometheus.HistogramVec
	ReportBuilds        prometheus.Counter
	ReportLines         prometheus.Gauge
	ReportUnits         prometheus.Gauge
}

// New registers every collector on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ImportRows: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "rows_total",
			Help:      "Imported rows by outcome (accepted, dropped).",
		}, []string{"outcome"}),
		ImportProducts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "products_total",
			Help:      "Committed product actions (inserted, updated, skipped).",
		}, []string{"action"}),
		ImportEntities: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "entities_created_total",
			Help:      "Reference entities created by imports.",
		}, []string{"kind"}),
		ImportStageFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "stage_failures_total",
			Help:      "Import commits that stopped at a stage.",
		}, []string{"stage"}),
		ImportDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "duration_seconds",
			Help:      "Import duration by variant (preview, commit).",
			Buckets:   prometheus.DefBuckets,
		}, []string{"variant"}),
		ReportBuilds: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "purchase_list",
			Name:      "builds_total",
			Help:      "Purchase lists computed.",
		}),
		ReportLines: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "purchase_list",
			Name:      "lines",
			Help:      "Lines in the most recent purchase list.",
		}),
		ReportUnits: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "purchase_list",
			Name:      "units",
			Help:      "Units to order in the most recent purchase list.",
		}),
	}
}

// Registry exposes the underlying registry for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveReport records a computed purchase list.
func (m *Metrics) ObserveReport(lines int, units int64) {
	if m == nil {
		return
	}
	m.ReportBuilds.Inc()
	m.ReportLines.Set(float64(lines))
	m.ReportUnits.Set(float64(units))
}

// ObserveRows records accepted and dropped import rows.
func (m *Metrics) ObserveRows(accepted, dropped int) {
	if m == nil {
		return
	}
	m.ImportRows.WithLabelValues("accepted").Add(float64(accepted))
	m.ImportRows.WithLabelValues("dropped").Add(float64(dropped))
}

// ObserveProducts records committed product actions.
func (m *Metrics) ObserveProducts(inserted, updated, skipped int) {
	if m == nil {
		return
	}
	m.ImportProducts.WithLabelValues("inserted").Add(float64(inserted))
	m.ImportProducts.WithLabelValues("updated").Add(float64(updated))
	m.ImportProducts.WithLabelValues("skipped").Add(float64(skipped))
}

// ObserveEntities records created reference entities of one kind.
func (m *Metrics) ObserveEntities(kind string, created int) {
	if m == nil || created == 0 {
		return
	}
	m.ImportEntities.WithLabelValues(kind).Add(float64(created))
}

// ObserveStageFailure records an import that stopped at stage.
func (m *Metrics) ObserveStageFailure(stage string) {
	if m == nil {
		return
	}
	m.ImportStageFailures.WithLabelValues(stage).Inc()
}

// ObserveDuration records how long an import variant took.
func (m *Metrics) ObserveDuration(variant string, seconds float64) {
	if m == nil {
		return
	}
	m.ImportDuration.WithLabelValues(variant).Observe(seconds)
}

// Register mounts GET /metrics and GET /health on the router.
func (m *Metrics) Register(r fiber.Router) {
	r.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	r.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})))
}
