// Package prom exports clip paging and loader metrics to Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/clipcache/cache"
	"github.com/IvanBrykalov/clipcache/loader"
)

// Adapter implements cache.Metrics and loader.Metrics and exports Prometheus
// counters/gauges. Safe for concurrent use; all Prometheus metric types are
// goroutine-safe.
type Adapter struct {
	pageLoads   prometheus.Counter
	pageUnloads *prometheus.CounterVec
	loadedPages prometheus.Gauge
	loadedClips prometheus.Gauge
	overflows   prometheus.Counter
	overflowBy  prometheus.Gauge

	fetches  *prometheus.CounterVec
	discards *prometheus.CounterVec
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub, Name: name, Help: help, ConstLabels: constLabels,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: sub, Name: name, Help: help, ConstLabels: constLabels,
		})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub, Name: name, Help: help, ConstLabels: constLabels,
		}, labels)
	}

	a := &Adapter{
		pageLoads:   counter("page_loads_total", "Pages loaded"),
		pageUnloads: counterVec("page_unloads_total", "Pages unloaded by reason", "reason"),
		loadedPages: gauge("loaded_pages", "Number of pages in the loaded set"),
		loadedClips: gauge("loaded_clips", "Number of clips on loaded pages"),
		overflows:   counter("budget_overflows_total", "Updates that left the loaded-clip budget exceeded"),
		overflowBy:  gauge("budget_overflow_clips", "Clips above the budget after the last overflowing update"),
		fetches:     counterVec("fetches_total", "Applied clip fetch results by part and result", "part", "result"),
		discards:    counterVec("fetches_discarded_total", "Fetch results discarded for retired requests", "part"),
	}
	reg.MustRegister(
		a.pageLoads, a.pageUnloads, a.loadedPages, a.loadedClips,
		a.overflows, a.overflowBy, a.fetches, a.discards,
	)
	return a
}

// PageLoaded increments the page load counter.
func (a *Adapter) PageLoaded(int) { a.pageLoads.Inc() }

// PageUnloaded increments the page unload counter with a reason label.
func (a *Adapter) PageUnloaded(_ int, r cache.UnloadReason) {
	a.pageUnloads.WithLabelValues(r.String()).Inc()
}

// Size updates gauges for the loaded set.
func (a *Adapter) Size(pages, clips int) {
	a.loadedPages.Set(float64(pages))
	a.loadedClips.Set(float64(clips))
}

// Overflow counts an over-budget update and records by how much.
func (a *Adapter) Overflow(excess int) {
	a.overflows.Inc()
	a.overflowBy.Set(float64(excess))
}

// Fetched counts an applied fetch result.
func (a *Adapter) Fetched(part loader.Part, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	a.fetches.WithLabelValues(part.String(), result).Inc()
}

// Discarded counts a fetch result dropped for a retired request.
func (a *Adapter) Discarded(part loader.Part) {
	a.discards.WithLabelValues(part.String()).Inc()
}

// Compile-time checks.
var (
	_ cache.Metrics  = (*Adapter)(nil)
	_ loader.Metrics = (*Adapter)(nil)
)
