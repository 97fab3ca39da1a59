// Package preload implements the preloading paging policy.
package preload

import (
	"cmp"
	"slices"

	"github.com/IvanBrykalov/clipcache/policy"
)

// preload keeps the current page plus a window of preceding and following
// pages loaded, within a loaded-clip budget.
//
// Budget handling: when loading the missing window pages would push the
// loaded-clip count past MaxLoadedClips, loaded pages outside the window are
// evicted farthest-first until enough clips are reclaimed. Pages inside the
// required window are never evicted, so the budget may be exceeded when the
// window alone does not fit.
type preload struct {
	h policy.Hooks
}

type preloadPolicy struct{}

// New returns a Policy factory that constructs preloading policy instances.
// Window sizes and budget are read from the manager Config at plan time.
func New() policy.Policy { return preloadPolicy{} }

func (preloadPolicy) New(h policy.Hooks) policy.PagePolicy {
	return &preload{h: h}
}

// RequiredPages returns pageNum, then up to NumFollowingPreload following
// pages, then up to NumPrecedingPreload preceding pages, clipped to the
// pagination. The order is the preferred load order.
func (p *preload) RequiredPages(pageNum int) []int {
	cfg := p.h.Config()
	n := p.h.NumPages()

	pages := make([]int, 0, 1+cfg.NumFollowingPreload+cfg.NumPrecedingPreload)
	pages = append(pages, pageNum)
	for i := pageNum + 1; i <= pageNum+cfg.NumFollowingPreload && i < n; i++ {
		pages = append(pages, i)
	}
	for i := pageNum - 1; i >= pageNum-cfg.NumPrecedingPreload && i >= 0; i-- {
		pages = append(pages, i)
	}
	return pages
}

// UpdatePlan loads the required pages that are not loaded yet and, if that
// would exceed the budget, evicts non-required loaded pages farthest from
// the required window first. Ties go to the lower page number.
func (p *preload) UpdatePlan(pageNum int) policy.Plan {
	required := p.RequiredPages(pageNum)

	isRequired := make(map[int]struct{}, len(required))
	var (
		load  []int
		added int
	)
	for _, r := range required {
		isRequired[r] = struct{}{}
		if !p.h.IsLoaded(r) {
			load = append(load, r)
			added += p.h.PageSize(r)
		}
	}

	lo, hi := 0, p.h.NumPages()-1
	if len(required) > 0 {
		lo, hi = slices.Min(required), slices.Max(required)
	}

	excess := max(p.h.LoadedClips()+added-p.h.Config().MaxLoadedClips, 0)

	var unload []int
	if excess > 0 {
		// LoadedPages is ascending, so the stable sort keeps lower pages first on ties.
		var candidates []int
		for _, lp := range p.h.LoadedPages() {
			if _, ok := isRequired[lp]; !ok {
				candidates = append(candidates, lp)
			}
		}
		slices.SortStableFunc(candidates, func(a, b int) int {
			return cmp.Compare(Distance(b, lo, hi), Distance(a, lo, hi))
		})

		evicted := 0
		for _, c := range candidates {
			if evicted >= excess {
				break
			}
			unload = append(unload, c)
			evicted += p.h.PageSize(c)
		}
	}

	return policy.Plan{Unload: unload, Load: load}
}

// Distance returns how far page lies outside the [lo, hi] interval
// (0 when inside).
func Distance(page, lo, hi int) int {
	switch {
	case page < lo:
		return lo - page
	case page > hi:
		return page - hi
	default:
		return 0
	}
}
