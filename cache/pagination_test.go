package cache

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUniform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		numClips, pageSize int
		want               Pagination
	}{
		{40, 10, Pagination{0, 10, 20, 30, 40}},
		{25, 10, Pagination{0, 10, 20, 25}},
		{5, 10, Pagination{0, 5}},
		{0, 10, Pagination{0}},
	}
	for _, tc := range tests {
		got, err := Uniform(tc.numClips, tc.pageSize)
		if err != nil {
			t.Fatalf("Uniform(%d, %d): %v", tc.numClips, tc.pageSize, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("Uniform(%d, %d) mismatch (-want +got):\n%s", tc.numClips, tc.pageSize, diff)
		}
		if err := got.Validate(tc.numClips); err != nil {
			t.Fatalf("Uniform result must validate: %v", err)
		}
	}

	if _, err := Uniform(10, 0); !errors.Is(err, ErrInvalidPagination) {
		t.Fatalf("Uniform with zero page size = %v, want ErrInvalidPagination", err)
	}
}

func TestPagination_Accessors(t *testing.T) {
	t.Parallel()

	p := Pagination{0, 3, 7, 10}
	if p.NumPages() != 3 {
		t.Fatalf("NumPages = %d, want 3", p.NumPages())
	}
	if s, e := p.Range(1); s != 3 || e != 7 {
		t.Fatalf("Range(1) = [%d,%d), want [3,7)", s, e)
	}
	if p.Size(2) != 3 {
		t.Fatalf("Size(2) = %d, want 3", p.Size(2))
	}
	if !p.Equal(Pagination{0, 3, 7, 10}) || p.Equal(Pagination{0, 3, 7}) {
		t.Fatal("Equal must compare element-wise")
	}
	if (Pagination{}).NumPages() != 0 {
		t.Fatal("empty pagination has no pages")
	}
}

func TestPagination_PageOf(t *testing.T) {
	t.Parallel()

	p := Pagination{0, 3, 7, 10}
	tests := map[int]int{-1: -1, 0: 0, 2: 0, 3: 1, 6: 1, 7: 2, 9: 2, 10: -1, 42: -1}
	for clip, want := range tests {
		if got := p.PageOf(clip); got != want {
			t.Fatalf("PageOf(%d) = %d, want %d", clip, got, want)
		}
	}
}

func TestPagination_Validate(t *testing.T) {
	t.Parallel()

	valid := []Pagination{{0, 10}, {0, 5, 10}, {2, 4}, {0}}
	for _, p := range valid {
		if err := p.Validate(10); err != nil {
			t.Fatalf("Validate(%v) = %v, want nil", p, err)
		}
	}
	invalid := []Pagination{nil, {}, {-1, 5}, {0, 5, 5}, {0, 7, 3}, {0, 11}}
	for _, p := range invalid {
		if err := p.Validate(10); !errors.Is(err, ErrInvalidPagination) {
			t.Fatalf("Validate(%v) = %v, want ErrInvalidPagination", p, err)
		}
	}
}
