package cache

import (
	"slices"
	"testing"

	"github.com/IvanBrykalov/clipcache/policy"
)

// --- test doubles ---

// fakeLoader completes loads synchronously and records every request.
type fakeLoader struct {
	resident map[int]bool
	loads    []int
	unloads  []int
}

func newFakeLoader() *fakeLoader { return &fakeLoader{resident: map[int]bool{}} }

func (f *fakeLoader) IsUnloaded(c int) bool { return !f.resident[c] }
func (f *fakeLoader) Load(c int)            { f.loads = append(f.loads, c); f.resident[c] = true }
func (f *fakeLoader) Unload(c int)          { f.unloads = append(f.unloads, c); delete(f.resident, c) }

func (f *fakeLoader) reset() { f.loads, f.unloads = nil, nil }

// recordingMetrics keeps the last reported values.
type recordingMetrics struct {
	loadedPages, unloadedPages int
	repaginateUnloads          int
	repaginateClips            int
	pages, clips               int
	overflows                  []int
}

func (r *recordingMetrics) PageLoaded(int) { r.loadedPages++ }
func (r *recordingMetrics) PageUnloaded(clips int, reason UnloadReason) {
	r.unloadedPages++
	if reason == UnloadRepaginate {
		r.repaginateUnloads++
		r.repaginateClips += clips
	}
}
func (r *recordingMetrics) Size(pages, clips int) { r.pages, r.clips = pages, clips }
func (r *recordingMetrics) Overflow(excess int)   { r.overflows = append(r.overflows, excess) }

// staticPolicy returns a fixed plan; used to exercise manager guards.
type staticPolicy struct{ plan policy.Plan }

func (s staticPolicy) New(policy.Hooks) policy.PagePolicy { return s }
func (s staticPolicy) RequiredPages(p int) []int          { return []int{p} }
func (s staticPolicy) UpdatePlan(int) policy.Plan         { return s.plan }

func clipRange(n int) []int {
	clips := make([]int, n)
	for i := range clips {
		clips[i] = i
	}
	return clips
}

func seq(start, end int) []int {
	var out []int
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}

// checkInvariant verifies that the running count matches the loaded pages
// and that every loaded page is fully loaded at clip level.
func checkInvariant[C any](t *testing.T, m Manager[C]) {
	t.Helper()

	p := m.Pagination()
	sum := 0
	for _, page := range m.LoadedPages() {
		sum += p.Size(page)
		if st := m.PageStatus(page); st != PageLoaded {
			t.Fatalf("page %d is in the loaded set but its status is %v", page, st)
		}
	}
	if got := m.LoadedClips(); got != sum {
		t.Fatalf("running loaded-clip count %d != sum over loaded pages %d (pages %v)", got, sum, m.LoadedPages())
	}
	if !slices.IsSorted(m.LoadedPages()) {
		t.Fatalf("LoadedPages must be ascending, got %v", m.LoadedPages())
	}
}
