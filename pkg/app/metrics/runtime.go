package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

// runtimeCollector reports process level figures of the Go runtime. Memory statistics are read once per
// scrape, so the values of one scrape are consistent with each other.
type runtimeCollector struct {
	goroutines  *prometheus.Desc
	memoryAlloc *prometheus.Desc
	totalAlloc  *prometheus.Desc
	numGC       *prometheus.Desc
	sys         *prometheus.Desc
}

func newRuntimeCollector() *runtimeCollector {
	return &runtimeCollector{
		goroutines:  prometheus.NewDesc("app_go_routines", "Number of Go routines running.", nil, nil),
		memoryAlloc: prometheus.NewDesc("app_sys_memory_alloc", "Number of bytes allocated for heap objects.", nil, nil),
		totalAlloc: prometheus.NewDesc("app_sys_total_alloc", "Number of cumulative bytes allocated for heap objects.",
			nil, nil),
		numGC: prometheus.NewDesc("app_go_numGC", "Number of completed Garbage Collector cycles.", nil, nil),
		sys:   prometheus.NewDesc("app_go_sys", "Number of total bytes of memory.", nil, nil),
	}
}

func (c *runtimeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.goroutines
	ch <- c.memoryAlloc
	ch <- c.totalAlloc
	ch <- c.numGC
	ch <- c.sys
}

func (c *runtimeCollector) Collect(ch chan<- prometheus.Metric) {
	var stats runtime.MemStats

	runtime.ReadMemStats(&stats)

	ch <- prometheus.MustNewConstMetric(c.goroutines, prometheus.GaugeValue, float64(runtime.NumGoroutine()))
	ch <- prometheus.MustNewConstMetric(c.memoryAlloc, prometheus.GaugeValue, float64(stats.Alloc))
	ch <- prometheus.MustNewConstMetric(c.totalAlloc, prometheus.CounterValue, float64(stats.TotalAlloc))
	ch <- prometheus.MustNewConstMetric(c.numGC, prometheus.CounterValue, float64(stats.NumGC))
	ch <- prometheus.MustNewConstMetric(c.sys, prometheus.GaugeValue, float64(stats.Sys))
}
