package cache

type constError string

func (e constError) Error() string { return string(e) }

const (
	// ErrNoLoader is returned by New when Options.Loader is nil.
	ErrNoLoader = constError("cache: no Loader provided")
	// ErrNoPolicy is returned by New when Options.Policy is nil: nothing
	// implements RequiredPages/UpdatePlan.
	ErrNoPolicy = constError("cache: paging policy not implemented")
	// ErrInvalidPagination is returned for empty, non-increasing or
	// out-of-bounds page boundaries.
	ErrInvalidPagination = constError("cache: invalid pagination")
	// ErrPageOutOfRange is returned when the page number is outside [0, NumPages).
	ErrPageOutOfRange = constError("cache: page number out of range")
)
