package engine

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instrumentation for a single Execute call's
// fleet, mirroring the shape of the teacher's orchestrator metrics: a
// handful of counters and gauges registered once and passed down through
// the RunContext rather than reached for via globals.
type Metrics struct {
	tasksAdmitted  prometheus.Counter
	tasksCompleted *prometheus.CounterVec
	executorErrors *prometheus.CounterVec
	gateOccupancy  prometheus.Gauge
	pipelineTime   prometheus.Histogram
}

// NewMetrics creates and registers the fleet's metrics against reg. Passing
// a fresh *prometheus.Registry (rather than the global default) keeps
// repeated test runs from colliding on duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tasksAdmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrapeflow_tasks_admitted_total",
			Help: "Total number of tasks admitted into an Execute call.",
		}),
		tasksCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scrapeflow_tasks_completed_total",
			Help: "Total number of tasks whose pipeline finished, by outcome.",
		}, []string{"outcome"}),
		executorErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scrapeflow_executor_errors_total",
			Help: "Total number of recoverable executor errors, by executor and kind.",
		}, []string{"executor", "kind"}),
		gateOccupancy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scrapeflow_gate_occupancy",
			Help: "Number of tasks currently past the concurrency gate.",
		}),
		pipelineTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scrapeflow_pipeline_duration_seconds",
			Help:    "Wall-clock duration of a task's full executor pipeline.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.tasksAdmitted, m.tasksCompleted, m.executorErrors, m.gateOccupancy, m.pipelineTime)
	return m
}

func (m *Metrics) admitted(n int) {
	if m == nil {
		return
	}
	m.tasksAdmitted.Add(float64(n))
}

func (m *Metrics) completed(outcome string) {
	if m == nil {
		return
	}
	m.tasksCompleted.WithLabelValues(outcome).Inc()
}

func (m *Metrics) executorError(executor, kind string) {
	if m == nil {
		return
	}
	m.executorErrors.WithLabelValues(executor, kind).Inc()
}

func (m *Metrics) gateEnter() {
	if m == nil {
		return
	}
	m.gateOccupancy.Inc()
}

func (m *Metrics) gateLeave() {
	if m == nil {
		return
	}
	m.gateOccupancy.Dec()
}
