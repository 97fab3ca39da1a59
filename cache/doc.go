// Package cache provides the clip paging manager: it keeps a bounded,
// policy-driven subset of pages resident while a viewer pages through a
// large, ordered clip collection.
//
// Design
//
//   - State: the manager owns the pagination (strictly increasing clip-index
//     boundaries), the current page number, the set of loaded pages and a
//     running count of loaded clips. The count always equals the sum of the
//     sizes of the loaded pages; every mutation path maintains it.
//
//   - Policies: what to load and unload is pluggable via the policy package.
//     policy/simple keeps only the current page; policy/preload keeps a window
//     of preceding/following pages within a loaded-clip budget, evicting the
//     loaded pages farthest from the window first.
//
//   - Loader: clip data moves through the Loader interface. Loads are
//     asynchronous; the manager counts a page as loaded as soon as load was
//     requested for all its clips. The loader package provides an
//     implementation with per-clip request tokens.
//
//   - Re-pagination: when the page boundaries change, the loaded set is
//     rebuilt from clip-level state. Fully loaded pages are re-registered,
//     partially loaded pages are completed when required for the target page
//     and cleared otherwise.
//
//   - Metrics: Options.Metrics receives page load/unload, size and budget
//     overflow signals. NoopMetrics is the default; metrics/prom exports them
//     to Prometheus.
//
// Basic usage
//
//	pg, _ := cache.Uniform(len(clips), 50)
//	m, err := cache.New(cache.Options[ClipID]{
//	    Config:     cache.Config{MaxLoadedClips: 300, NumPrecedingPreload: 1, NumFollowingPreload: 2},
//	    Clips:      clips,
//	    Pagination: pg,
//	    Loader:     ld,
//	    Policy:     preload.New(),
//	})
//	if err != nil {
//	    return err
//	}
//	// later, when the viewer changes page:
//	err = m.Update(pg, 4)
//
// # Thread-safety
//
// A Manager is not safe for concurrent use. Update never blocks: it only
// computes a plan and issues load/unload requests. Callers that drive it
// from several goroutines must serialize calls.
package cache
