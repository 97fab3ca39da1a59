// Package lru implements the least-recently-visited paging policy.
package lru

import (
	"slices"

	"github.com/IvanBrykalov/clipcache/policy"
)

// lru keeps recently visited pages loaded so that paging back is instant.
// Only the current page is required; when the loaded-clip budget would be
// exceeded, the loaded pages visited least recently are evicted first.
// Loaded pages the policy never saw visited (e.g. registered by a
// re-pagination) count as older than any visit, lowest page first.
type lru struct {
	h      policy.Hooks
	recent []int // visited pages, most recent first
}

type lruPolicy struct{}

// New returns a Policy factory that constructs least-recently-visited
// policy instances.
func New() policy.Policy { return lruPolicy{} }

// New implements policy.Policy by binding manager hooks.
func (lruPolicy) New(h policy.Hooks) policy.PagePolicy {
	return &lru{h: h}
}

// RequiredPages is only the page itself.
func (p *lru) RequiredPages(pageNum int) []int { return []int{pageNum} }

// UpdatePlan records pageNum as the most recent visit, loads it if needed and
// evicts least recently visited pages while the budget is exceeded.
func (p *lru) UpdatePlan(pageNum int) policy.Plan {
	p.touch(pageNum)

	var plan policy.Plan
	added := 0
	if !p.h.IsLoaded(pageNum) {
		plan.Load = []int{pageNum}
		added = p.h.PageSize(pageNum)
	}

	excess := p.h.LoadedClips() + added - p.h.Config().MaxLoadedClips
	for _, victim := range p.evictionOrder(pageNum) {
		if excess <= 0 {
			break
		}
		plan.Unload = append(plan.Unload, victim)
		excess -= p.h.PageSize(victim)
	}
	return plan
}

// touch moves page to the front of the recency list, dropping entries that
// no longer exist in the pagination.
func (p *lru) touch(page int) {
	n := p.h.NumPages()
	p.recent = slices.DeleteFunc(p.recent, func(q int) bool { return q == page || q >= n })
	p.recent = slices.Insert(p.recent, 0, page)
}

// evictionOrder lists loaded pages other than current, least recent first.
func (p *lru) evictionOrder(current int) []int {
	rank := make(map[int]int, len(p.recent))
	for i, q := range p.recent {
		rank[q] = i
	}
	var unseen, seen []int
	for _, q := range p.h.LoadedPages() {
		if q == current {
			continue
		}
		if _, ok := rank[q]; ok {
			seen = append(seen, q)
		} else {
			unseen = append(unseen, q)
		}
	}
	slices.SortFunc(seen, func(a, b int) int { return rank[b] - rank[a] })
	return append(unseen, seen...)
}
