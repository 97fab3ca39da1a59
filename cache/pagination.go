package cache

import (
	"fmt"
	"slices"

	"github.com/IvanBrykalov/clipcache/internal/util"
)

// Pagination is a strictly increasing sequence of clip indices of length
// NumPages()+1. Page i covers clip indices [p[i], p[i+1]).
type Pagination []int

// Uniform builds a pagination of pageSize-clip pages over numClips clips.
// The last page holds the remainder.
func Uniform(numClips, pageSize int) (Pagination, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: page size must be >= 1, got %d", ErrInvalidPagination, pageSize)
	}
	if numClips < 0 {
		return nil, fmt.Errorf("%w: clip count must be >= 0, got %d", ErrInvalidPagination, numClips)
	}
	p := Pagination(util.Range(0, numClips, pageSize))
	return append(p, numClips), nil
}

// NumPages returns the number of pages.
func (p Pagination) NumPages() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Range returns the clip index range [start, end) of page i.
func (p Pagination) Range(i int) (start, end int) { return p[i], p[i+1] }

// Size returns the number of clips on page i.
func (p Pagination) Size(i int) int { return p[i+1] - p[i] }

// Equal reports element-wise equality.
func (p Pagination) Equal(o Pagination) bool { return slices.Equal(p, o) }

// PageOf returns the page containing clipNum, or -1 if no page does.
func (p Pagination) PageOf(clipNum int) int {
	i := util.FindLastLE(p, clipNum)
	if i < 0 || i >= p.NumPages() {
		return -1
	}
	return i
}

// Validate checks that p is non-empty, strictly increasing and addresses
// clips in [0, numClips].
func (p Pagination) Validate(numClips int) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidPagination)
	}
	if p[0] < 0 {
		return fmt.Errorf("%w: first boundary %d is negative", ErrInvalidPagination, p[0])
	}
	for i := 1; i < len(p); i++ {
		if p[i] <= p[i-1] {
			return fmt.Errorf("%w: boundary %d (%d) not greater than boundary %d (%d)",
				ErrInvalidPagination, i, p[i], i-1, p[i-1])
		}
	}
	if last := p[len(p)-1]; last > numClips {
		return fmt.Errorf("%w: last boundary %d exceeds clip count %d", ErrInvalidPagination, last, numClips)
	}
	return nil
}
