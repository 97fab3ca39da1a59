// Package simple implements the single-page paging policy.
package simple

import "github.com/IvanBrykalov/clipcache/policy"

// simple keeps only the current page resident: moving to a new page unloads
// the page being left and loads the new one.
type simple struct {
	h policy.Hooks
}

type simplePolicy struct{}

// New returns a Policy factory that constructs simple policy instances.
func New() policy.Policy { return simplePolicy{} }

// New implements policy.Policy by binding manager hooks.
func (simplePolicy) New(h policy.Hooks) policy.PagePolicy {
	return &simple{h: h}
}

// RequiredPages is just the page itself.
func (p *simple) RequiredPages(pageNum int) []int { return []int{pageNum} }

// UpdatePlan unloads the current page and loads pageNum.
// Before the first page is set there is nothing to unload.
func (p *simple) UpdatePlan(pageNum int) policy.Plan {
	plan := policy.Plan{Load: []int{pageNum}}
	if cur := p.h.PageNum(); cur >= 0 {
		plan.Unload = []int{cur}
	}
	return plan
}
