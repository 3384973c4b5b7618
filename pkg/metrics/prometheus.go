package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultNamespace = "landrank"
	defaultSubsystem = "pipeline"
)

// Manager owns the run metrics. A disabled Manager accepts every call and records nothing.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         *prometheus.Registry

	runs         prometheus.Counter
	runErrors    *prometheus.CounterVec
	epochsLoaded prometheus.Gauge
	landsLoaded  prometheus.Gauge
	stageEntries *prometheus.GaugeVec
	results      prometheus.Gauge
	runDuration  prometheus.Histogram
	parseErrors  prometheus.Counter
}

// NewManager creates a metrics manager registered on its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     map[string]string{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.registry = prometheus.NewRegistry()
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.runs = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_total",
		Help:        "Total number of pipeline runs",
		ConstLabels: labels,
	})

	m.runErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_errors_total",
		Help:        "Total number of failed pipeline runs by error kind",
		ConstLabels: labels,
	}, []string{"kind"})

	m.epochsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "epochs_loaded",
		Help:        "Number of epochs parsed in the last run",
		ConstLabels: labels,
	})

	m.landsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "lands_loaded",
		Help:        "Number of ranked lands parsed in the last run",
		ConstLabels: labels,
	})

	m.stageEntries = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stage_entries",
		Help:        "Entries surviving each pipeline stage in the last run",
		ConstLabels: labels,
	}, []string{"stage"})

	m.results = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "results_returned",
		Help:        "Number of lands in the last report",
		ConstLabels: labels,
	})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_milliseconds",
		Help:        "Histogram of end-to-end run duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.parseErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "parse_errors_total",
		Help:        "Total number of epoch documents that failed to parse",
		ConstLabels: labels,
	})
}

// Registry returns the registry the metrics live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRun counts a pipeline run.
func (m *Manager) RecordRun() {
	if !m.enabled {
		return
	}
	m.runs.Inc()
}

// RecordRunError counts a failed run under kind, e.g. "load", "filter", "report".
func (m *Manager) RecordRunError(kind string) {
	if !m.enabled {
		return
	}
	m.runErrors.WithLabelValues(kind).Inc()
}

// RecordParseError counts an epoch document that failed to parse.
func (m *Manager) RecordParseError() {
	if !m.enabled {
		return
	}
	m.parseErrors.Inc()
}

// SetLoaded records the size of the parsed collection.
func (m *Manager) SetLoaded(epochs, lands int) {
	if !m.enabled {
		return
	}
	m.epochsLoaded.Set(float64(epochs))
	m.landsLoaded.Set(float64(lands))
}

// SetStageEntries records how many entries survived stage.
func (m *Manager) SetStageEntries(stage string, entries int) {
	if !m.enabled {
		return
	}
	m.stageEntries.WithLabelValues(stage).Set(float64(entries))
}

// SetResults records the number of reported lands.
func (m *Manager) SetResults(n int) {
	if !m.enabled {
		return
	}
	m.results.Set(float64(n))
}

// ObserveRunDuration records the end-to-end duration of a run.
func (m *Manager) ObserveRunDuration(d time.Duration) {
	if !m.enabled {
		return
	}
	m.runDuration.Observe(float64(d) / float64(time.Millisecond))
}

// WriteTextfile writes every metric in the text exposition format to path,
// for pickup by a node_exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}
