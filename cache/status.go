package cache

// PageStatus is the load status of a page, derived from its clips.
type PageStatus int

const (
	// PageUnloaded: every clip on the page is unloaded (also used for empty pages).
	PageUnloaded PageStatus = iota
	// PageLoaded: no clip on the page is unloaded.
	PageLoaded
	// PagePartiallyLoaded: the page mixes unloaded and not-unloaded clips.
	PagePartiallyLoaded
)

// String returns a stable label for the status.
func (s PageStatus) String() string {
	switch s {
	case PageLoaded:
		return "loaded"
	case PagePartiallyLoaded:
		return "partially loaded"
	default:
		return "unloaded"
	}
}

// InspectPage classifies a page from its clips in a single scan, stopping as
// soon as both a loaded and an unloaded clip were seen.
func InspectPage[C any](clips []C, isUnloaded func(C) bool) PageStatus {
	var sawLoaded, sawUnloaded bool
	for _, c := range clips {
		if isUnloaded(c) {
			sawUnloaded = true
		} else {
			sawLoaded = true
		}
		if sawLoaded && sawUnloaded {
			return PagePartiallyLoaded
		}
	}
	if sawLoaded {
		return PageLoaded
	}
	return PageUnloaded
}
