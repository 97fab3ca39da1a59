package prom

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/IvanBrykalov/clipcache/cache"
	"github.com/IvanBrykalov/clipcache/loader"
)

func TestAdapter_Counters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a := New(reg, "clipcache", "test", nil)

	a.PageLoaded(10)
	a.PageLoaded(10)
	a.PageUnloaded(10, cache.UnloadPlan)
	a.PageUnloaded(5, cache.UnloadRepaginate)
	a.Fetched(loader.Payload, true)
	a.Fetched(loader.Payload, false)
	a.Discarded(loader.Metadata)

	if got := testutil.ToFloat64(a.pageLoads); got != 2 {
		t.Fatalf("page loads = %v, want 2", got)
	}
	if got := testutil.ToFloat64(a.pageUnloads.WithLabelValues("repaginate")); got != 1 {
		t.Fatalf("repaginate unloads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(a.fetches.WithLabelValues("payload", "error")); got != 1 {
		t.Fatalf("failed payload fetches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(a.discards.WithLabelValues("metadata")); got != 1 {
		t.Fatalf("metadata discards = %v, want 1", got)
	}
}

func TestAdapter_Gauges(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a := New(reg, "clipcache", "test", prometheus.Labels{"app": "test"})

	a.Size(3, 30)
	a.Overflow(5)

	want := `
# HELP clipcache_test_loaded_clips Number of clips on loaded pages
# TYPE clipcache_test_loaded_clips gauge
clipcache_test_loaded_clips{app="test"} 30
# HELP clipcache_test_loaded_pages Number of pages in the loaded set
# TYPE clipcache_test_loaded_pages gauge
clipcache_test_loaded_pages{app="test"} 3
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want),
		"clipcache_test_loaded_clips", "clipcache_test_loaded_pages"); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(a.overflowBy); got != 5 {
		t.Fatalf("overflow gauge = %v, want 5", got)
	}
}
