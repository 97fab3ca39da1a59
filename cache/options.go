package cache

import (
	"log/slog"

	"github.com/IvanBrykalov/clipcache/policy"
)

// Config is the paging configuration; see policy.Config.
type Config = policy.Config

// UnloadReason explains why a page was unloaded.
type UnloadReason int

const (
	// UnloadPlan: unloaded by the active policy's plan (navigation/eviction).
	UnloadPlan UnloadReason = iota
	// UnloadRepaginate: a partially loaded page outside the required
	// window was cleared after the pagination changed.
	UnloadRepaginate
)

// String returns a stable label for the reason.
func (r UnloadReason) String() string {
	switch r {
	case UnloadRepaginate:
		return "repaginate"
	default:
		return "plan"
	}
}

// Metrics exposes manager-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	PageLoaded(clips int)
	PageUnloaded(clips int, reason UnloadReason)
	Size(pages, clips int)
	// Overflow reports how many clips the loaded set exceeds a positive
	// MaxLoadedClips by after an update.
	Overflow(excess int)
}

// Options configures a Manager. Defaults applied in New():
//   - nil Metrics => NoopMetrics
//   - nil Logger  => no-op logger
//
// Loader and Policy are required.
type Options[C any] struct {
	// Config is read by the policy (window sizes, loaded-clip budget).
	Config Config

	// Clips is the full ordered collection. Page boundaries index into it.
	Clips []C

	// Pagination and PageNum are applied by New as the first Update.
	Pagination Pagination
	PageNum    int

	// Loader moves clip data. Required.
	Loader Loader[C]

	// Policy decides which pages to load/unload (simple, preload, ...). Required.
	Policy policy.Policy

	// Observability
	Metrics Metrics
	Logger  *slog.Logger
}
