package cache

import "testing"

func TestInspectPage(t *testing.T) {
	t.Parallel()

	unloaded := func(c bool) bool { return !c } // true == resident

	tests := []struct {
		name  string
		clips []bool
		want  PageStatus
	}{
		{"all loaded", []bool{true, true, true}, PageLoaded},
		{"all unloaded", []bool{false, false}, PageUnloaded},
		{"mixed", []bool{true, false, true}, PagePartiallyLoaded},
		{"mixed unloaded first", []bool{false, true}, PagePartiallyLoaded},
		{"empty", nil, PageUnloaded},
		{"single loaded", []bool{true}, PageLoaded},
	}
	for _, tc := range tests {
		if got := InspectPage(tc.clips, unloaded); got != tc.want {
			t.Fatalf("%s: InspectPage = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// The scan stops as soon as both kinds were seen.
func TestInspectPage_ShortCircuits(t *testing.T) {
	t.Parallel()

	calls := 0
	isUnloaded := func(c int) bool { calls++; return c%2 == 1 }
	if got := InspectPage([]int{0, 1, 2, 3, 4, 5}, isUnloaded); got != PagePartiallyLoaded {
		t.Fatalf("InspectPage = %v, want partially loaded", got)
	}
	if calls != 2 {
		t.Fatalf("predicate called %d times, want 2", calls)
	}
}

func TestPageStatus_String(t *testing.T) {
	t.Parallel()

	for s, want := range map[PageStatus]string{
		PageUnloaded:        "unloaded",
		PageLoaded:          "loaded",
		PagePartiallyLoaded: "partially loaded",
	} {
		if s.String() != want {
			t.Fatalf("String(%d) = %q, want %q", s, s.String(), want)
		}
	}
}
