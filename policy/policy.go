package policy

import "fmt"

type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidConfig is returned by Config.Validate.
const ErrInvalidConfig = constError("policy: invalid config")

// Config carries the paging knobs a policy reads through Hooks.
// There are no implicit defaults: the caller decides every value.
type Config struct {
	// MaxLoadedClips is the loaded-clip budget the eviction step aims for.
	// Zero means "no budget" for metrics; the preloading policy still
	// evicts every non-required page under a zero budget.
	MaxLoadedClips int
	// NumPrecedingPreload is the number of pages before the current one
	// kept loaded.
	NumPrecedingPreload int
	// NumFollowingPreload is the number of pages after the current one
	// kept loaded.
	NumFollowingPreload int
}

// Validate rejects negative values.
func (c Config) Validate() error {
	switch {
	case c.MaxLoadedClips < 0:
		return fmt.Errorf("%w: max loaded clips must be >= 0, got %d", ErrInvalidConfig, c.MaxLoadedClips)
	case c.NumPrecedingPreload < 0:
		return fmt.Errorf("%w: preceding preload must be >= 0, got %d", ErrInvalidConfig, c.NumPrecedingPreload)
	case c.NumFollowingPreload < 0:
		return fmt.Errorf("%w: following preload must be >= 0, got %d", ErrInvalidConfig, c.NumFollowingPreload)
	}
	return nil
}

// Plan is the outcome of a page-number change: pages to unload and pages to
// load, each in the order they must be applied. The manager applies all
// unloads before any load so a budgeted policy can reclaim capacity first.
type Plan struct {
	Unload []int
	Load   []int
}

// Hooks expose a read-only view of the manager state to a policy.
// Implementations are provided by the manager.
//
// Concurrency: hooks are called only from inside Manager.Update, which
// callers serialize.
type Hooks interface {
	// Config returns the paging configuration the manager was built with.
	Config() Config
	// NumPages returns the number of pages in the current pagination.
	NumPages() int
	// PageNum returns the current page number, or -1 before the first page is set.
	PageNum() int
	// PageSize returns the number of clips on page p.
	PageSize(p int) int
	// IsLoaded reports whether page p is in the loaded-page set.
	IsLoaded(p int) bool
	// LoadedPages returns the loaded-page set in ascending page order.
	LoadedPages() []int
	// LoadedClips returns the running loaded-clip count.
	LoadedClips() int
}

// PagePolicy is a manager-local policy instance bound to the manager hooks.
//
// Semantics:
//   - RequiredPages lists the pages that must end up loaded when pageNum is
//     current, in preferred load order.
//   - UpdatePlan computes the unload/load plan for moving to pageNum. It must
//     not mutate manager state; the manager applies the plan. A policy may
//     update its own bookkeeping (e.g. visit recency), provided repeated calls
//     for the same page and manager state return the same plan.
type PagePolicy interface {
	RequiredPages(pageNum int) []int
	UpdatePlan(pageNum int) Plan
}

// Policy is a factory that creates a policy instance bound to a particular
// manager's hooks.
type Policy interface {
	New(Hooks) PagePolicy
}
