package metrics

import (
	"context"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Error can also be returned from all the methods, but it is decided not to do so such that to keep the usage clean -
// as any errors are already being logged from here.

type Manager interface {
	NewCounter(name, desc string)
	NewHistogram(name, desc string, buckets ...float64)
	NewGauge(name, desc string)

	IncrementCounter(ctx context.Context, name string, labels ...string)
	RecordHistogram(ctx context.Context, name string, value float64, labels ...string)
	SetGauge(name string, value float64, labels ...string)
}

type Logger interface {
	Error(args ...any)
	Warnf(format string, args ...any)
}

type kind int

const (
	counterKind kind = iota
	histogramKind
	gaugeKind
)

// entry is a registered metric. The prometheus vector is created on first use, once the label names are known.
type entry struct {
	kind      kind
	desc      string
	buckets   []float64
	labelKeys []string
	collector prometheus.Collector
}

type metricsManager struct {
	mu       sync.Mutex
	registry *prometheus.Registry
	metrics  map[string]*entry
	logger   Logger
}

// NewMetricsManager returns a Manager registering into its own prometheus registry, so that several
// managers can coexist in one process. The registry starts with the Go runtime figures in it.
func NewMetricsManager(logger Logger) Manager {
	registry := prometheus.NewRegistry()
	registry.MustRegister(newRuntimeCollector())

	return &metricsManager{
		registry: registry,
		metrics:  make(map[string]*entry),
		logger:   logger,
	}
}

// NewCounter registers a counter whose value only increases.
//
//	Usage: m.NewCounter("requests_total", "Total number of requests")
func (m *metricsManager) NewCounter(name, desc string) {
	m.register(name, &entry{kind: counterKind, desc: desc})
}

// NewHistogram registers a histogram. With no buckets, prometheus.DefBuckets are used.
//
//	Usage: m.NewHistogram("app_http_response", "Response time of HTTP requests in seconds", .001, .01, .1, 1)
func (m *metricsManager) NewHistogram(name, desc string, buckets ...float64) {
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	m.register(name, &entry{kind: histogramKind, desc: desc, buckets: buckets})
}

// NewGauge registers a gauge, a metric that can be set to arbitrary values.
func (m *metricsManager) NewGauge(name, desc string) {
	m.register(name, &entry{kind: gaugeKind, desc: desc})
}

// IncrementCounter increases the counter by 1. Labels are key-value pairs:
//
//	m.IncrementCounter(ctx, "app_http_service_errors", "service", "users", "reason", "timeout")
func (m *metricsManager) IncrementCounter(_ context.Context, name string, labels ...string) {
	vec, values, ok := m.vector(name, counterKind, labels)
	if !ok {
		return
	}

	vec.(*prometheus.CounterVec).WithLabelValues(values...).Inc()
}

// RecordHistogram records value in the buckets of the histogram.
func (m *metricsManager) RecordHistogram(_ context.Context, name string, value float64, labels ...string) {
	vec, values, ok := m.vector(name, histogramKind, labels)
	if !ok {
		return
	}

	vec.(*prometheus.HistogramVec).WithLabelValues(values...).Observe(value)
}

// SetGauge sets the gauge to value.
func (m *metricsManager) SetGauge(name string, value float64, labels ...string) {
	vec, values, ok := m.vector(name, gaugeKind, labels)
	if !ok {
		return
	}

	vec.(*prometheus.GaugeVec).WithLabelValues(values...).Set(value)
}

func (m *metricsManager) register(name string, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.metrics[name]; ok {
		m.logger.Error(metricsAlreadyRegistered{metricsName: name})

		return
	}

	m.metrics[name] = e
}

// vector returns the collector for name, creating and registering it on first use.
func (m *metricsManager) vector(name string, k kind, labels []string) (prometheus.Collector, []string, bool) {
	keys, values := m.splitLabels(name, labels)

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.metrics[name]
	if !ok || e.kind != k {
		m.logger.Error(metricsNotRegistered{metricsName: name})

		return nil, nil, false
	}

	if e.collector != nil {
		if !slices.Equal(e.labelKeys, keys) {
			m.logger.Error(labelMismatch{metricsName: name, want: e.labelKeys, got: keys})

			return nil, nil, false
		}

		return e.collector, values, true
	}

	switch k {
	case counterKind:
		e.collector = prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: e.desc}, keys)
	case histogramKind:
		e.collector = prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: e.desc, Buckets: e.buckets}, keys)
	case gaugeKind:
		e.collector = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: e.desc}, keys)
	}

	if err := m.registry.Register(e.collector); err != nil {
		m.logger.Error(err)
		e.collector = nil

		return nil, nil, false
	}

	e.labelKeys = keys

	return e.collector, values, true
}

func (m *metricsManager) splitLabels(name string, labels []string) (keys, values []string) {
	if len(labels)%2 != 0 {
		m.logger.Warnf("Metrics %v label has invalid key-value pairs", name)

		labels = labels[:len(labels)-1]
	}

	keys = make([]string, 0, len(labels)/2)
	values = make([]string, 0, len(labels)/2)

	for i := 0; i < len(labels); i += 2 {
		keys = append(keys, labels[i])
		values = append(values, labels[i+1])
	}

	return keys, values
}
