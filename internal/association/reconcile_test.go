package association

import (
	"slices"
	"testing"
)

type course struct {
	ID    int
	Title string
}

func courseID(c course) int { return c.ID }

func ids(items []course) []int {
	out := make([]int, 0, len(items))
	for _, c := range items {
		out = append(out, c.ID)
	}
	return out
}

func TestReconcileAddsInUniverseOrderAndDropsUnselected(t *testing.T) {
	universe := []course{{ID: 5}, {ID: 7}, {ID: 9}}
	current := []course{{ID: 5}}

	delta := Reconcile(NewSet(7, 9), &current, universe, courseID)

	if got := ids(current); !slices.Equal(got, []int{7, 9}) {
		t.Fatalf("current: want=[7 9] got=%v", got)
	}
	if got := ids(delta.Added); !slices.Equal(got, []int{7, 9}) {
		t.Fatalf("added: want=[7 9] got=%v", got)
	}
	if got := ids(delta.Removed); !slices.Equal(got, []int{5}) {
		t.Fatalf("removed: want=[5] got=%v", got)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	universe := []course{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	current := []course{{ID: 4}, {ID: 1}}
	desired := NewSet(1, 3)

	Reconcile(desired, &current, universe, courseID)
	once := slices.Clone(current)

	delta := Reconcile(desired, &current, universe, courseID)
	if !delta.Empty() {
		t.Fatalf("second pass should not mutate, got delta=%+v", delta)
	}
	if !slices.Equal(ids(current), ids(once)) {
		t.Fatalf("second pass changed order: once=%v twice=%v", ids(once), ids(current))
	}
}

func TestReconcileEmptyDesiredClearsCurrent(t *testing.T) {
	universe := []course{{ID: 1}, {ID: 2}, {ID: 3}}
	current := []course{{ID: 3}, {ID: 1}}

	delta := Reconcile(NewSet[int](), &current, universe, courseID)
	if len(current) != 0 {
		t.Fatalf("current should be empty, got=%v", ids(current))
	}
	if got := ids(delta.Removed); !slices.Equal(got, []int{1, 3}) {
		t.Fatalf("removed: want=[1 3] got=%v", got)
	}
}

func TestReconcileWithCurrentIDsIsNoop(t *testing.T) {
	universe := []course{{ID: 10}, {ID: 20}, {ID: 30}}
	current := []course{{ID: 30}, {ID: 10}}

	delta := Reconcile(IDs(current, courseID), &current, universe, courseID)
	if !delta.Empty() {
		t.Fatalf("expected no-op, got delta=%+v", delta)
	}
	if got := ids(current); !slices.Equal(got, []int{30, 10}) {
		t.Fatalf("order must be preserved: got=%v", got)
	}
}

func TestReconcileIgnoresIDsOutsideUniverse(t *testing.T) {
	universe := []course{{ID: 1}, {ID: 2}}
	current := []course{}

	delta := Reconcile(NewSet(2, 99), &current, universe, courseID)
	if got := ids(current); !slices.Equal(got, []int{2}) {
		t.Fatalf("current: want=[2] got=%v", got)
	}
	if len(delta.Added) != 1 {
		t.Fatalf("added: want=1 got=%d", len(delta.Added))
	}
}

func TestReconcilePreservesOrderOfUntouchedMembers(t *testing.T) {
	universe := []course{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	current := []course{{ID: 4}, {ID: 2}, {ID: 3}}

	Reconcile(NewSet(4, 3, 1), &current, universe, courseID)
	if got := ids(current); !slices.Equal(got, []int{4, 3, 1}) {
		t.Fatalf("current: want=[4 3 1] got=%v", got)
	}
}

func TestReconcileNilCurrentIsSafe(t *testing.T) {
	delta := Reconcile[course, int](NewSet(1), nil, []course{{ID: 1}}, courseID)
	if !delta.Empty() {
		t.Fatalf("expected empty delta, got=%+v", delta)
	}
}

func TestParseSelection(t *testing.T) {
	set, err := ParseSelection(nil)
	if err != nil || set != nil {
		t.Fatalf("nil selection: want nil set, got set=%v err=%v", set, err)
	}

	set, err = ParseSelection([]string{})
	if err != nil || set == nil || set.Len() != 0 {
		t.Fatalf("empty selection: want empty set, got set=%v err=%v", set, err)
	}

	set, err = ParseSelection([]string{"1050", " 4022 ", ""})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !set.Has(1050) || !set.Has(4022) || set.Len() != 2 {
		t.Fatalf("unexpected set: %v", set)
	}

	if _, err := ParseSelection([]string{"abc"}); err == nil {
		t.Fatalf("expected error for non-numeric id")
	}
}
