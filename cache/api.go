package cache

// Loader is the collaborator that actually moves clip data.
// The manager only requests state changes; completion is asynchronous and
// observed later through IsUnloaded.
type Loader[C any] interface {
	// IsUnloaded reports whether the clip's primary payload is unloaded.
	IsUnloaded(c C) bool
	// Load requests the clip's payload and metadata if not already
	// loaded or loading. Must be idempotent.
	Load(c C)
	// Unload discards the clip's data and cancels any in-flight load.
	// Must be idempotent.
	Unload(c C)
}

// Manager keeps a policy-driven subset of pages loaded while the caller
// pages through an ordered clip collection.
//
// A Manager is not safe for concurrent use: callers must serialize Update
// and the accessors. Its notion of "loaded" is optimistic: a page counts as
// loaded once load was requested for all of its clips.
type Manager[C any] interface {
	// Update applies a new pagination and/or current page number.
	// If the pagination differs from the stored one the loaded state is
	// reconciled against the new page boundaries first; then the policy's
	// plan for pageNum is applied. Identical arguments are a no-op.
	// Invalid arguments return an error and leave the state untouched.
	Update(pagination Pagination, pageNum int) error

	// Clips returns the clip sequence the manager was built with.
	// Callers must not modify it.
	Clips() []C
	// Config returns the paging configuration read by the policy.
	Config() Config
	// Pagination returns a copy of the current pagination.
	Pagination() Pagination
	// PageNum returns the current page number.
	PageNum() int

	// LoadedPages returns the loaded-page set in ascending order.
	LoadedPages() []int
	// LoadedClips returns the running loaded-clip count.
	LoadedClips() int
	// IsPageLoaded reports whether page p is in the loaded-page set.
	IsPageLoaded(p int) bool
	// PageStatus derives page p's status from clip-level load state.
	PageStatus(p int) PageStatus
}
