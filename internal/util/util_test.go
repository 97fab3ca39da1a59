package util

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		start, end, step int
		want             []int
	}{
		{"ascending", 0, 5, 1, []int{0, 1, 2, 3, 4}},
		{"stride", 0, 40, 10, []int{0, 10, 20, 30}},
		{"stride overshoot", 0, 41, 10, []int{0, 10, 20, 30, 40}},
		{"descending", 5, 0, -2, []int{5, 3, 1}},
		{"empty same", 3, 3, 1, nil},
		{"wrong direction", 5, 0, 1, nil},
		{"wrong direction negative", 0, 5, -1, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Range(tc.start, tc.end, tc.step)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Range(%d, %d, %d) mismatch (-want +got):\n%s", tc.start, tc.end, tc.step, diff)
			}
		})
	}
}

// Every produced element is strictly monotonic in the step direction and
// lies inside [start, end).
func TestRange_Monotonic(t *testing.T) {
	t.Parallel()

	for start := -6; start <= 6; start++ {
		for end := -6; end <= 6; end++ {
			for _, step := range []int{-3, -2, -1, 1, 2, 3} {
				got := Range(start, end, step)
				for i, v := range got {
					if v != start+i*step {
						t.Fatalf("Range(%d,%d,%d)[%d] = %d, want %d", start, end, step, i, v, start+i*step)
					}
					if step > 0 && (v < start || v >= end) || step < 0 && (v > start || v <= end) {
						t.Fatalf("Range(%d,%d,%d) produced out-of-span %d", start, end, step, v)
					}
				}
				// The next value after the last one must fall outside the span.
				next := start + len(got)*step
				if step > 0 && next < end || step < 0 && next > end {
					t.Fatalf("Range(%d,%d,%d) stopped early at %v", start, end, step, got)
				}
			}
		}
	}
}

func TestRange_Float(t *testing.T) {
	t.Parallel()

	got := Range(0.0, 1.0, 0.25)
	want := []float64{0, 0.25, 0.5, 0.75}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("float Range mismatch (-want +got):\n%s", diff)
	}
}

func TestRange_UnsignedNoWrap(t *testing.T) {
	t.Parallel()

	got := Range[uint8](250, 255, 10)
	if diff := cmp.Diff([]uint8{250}, got); diff != "" {
		t.Fatalf("unsigned Range must not wrap (-want +got):\n%s", diff)
	}
}

func TestRange_ZeroStepPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("Range with zero step must panic")
		}
	}()
	Range(0, 10, 0)
}

func TestFindLastLE(t *testing.T) {
	t.Parallel()

	xs := []int{0, 10, 10, 20, 30}
	tests := []struct {
		x    int
		want int
	}{
		{-1, -1},
		{0, 0},
		{5, 0},
		{10, 2}, // last of the duplicates
		{19, 2},
		{20, 3},
		{30, 4},
		{1000, 4},
	}
	for _, tc := range tests {
		if got := FindLastLE(xs, tc.x); got != tc.want {
			t.Fatalf("FindLastLE(%v, %d) = %d, want %d", xs, tc.x, got, tc.want)
		}
	}

	if got := FindLastLE([]int(nil), 3); got != -1 {
		t.Fatalf("FindLastLE on empty slice = %d, want -1", got)
	}
}

// Cross-check against a linear scan.
func TestFindLastLE_Linear(t *testing.T) {
	t.Parallel()

	xs := []float64{-2.5, -1, 0, 0, 0.5, 3, 3, 3, 7}
	for x := -4.0; x <= 8; x += 0.25 {
		want := -1
		for i, v := range xs {
			if v <= x {
				want = i
			}
		}
		if got := FindLastLE(xs, x); got != want {
			t.Fatalf("FindLastLE(%v) = %d, want %d", x, got, want)
		}
	}
}
