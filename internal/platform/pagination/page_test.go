package pagination

import "testing"

func TestNew(t *testing.T) {
	p := New([]string{"a", "b", "c"}, 8, 2, 3)
	if p.TotalPages != 3 || !p.HasPreviousPage || !p.HasNextPage {
		t.Fatalf("middle page: got=%+v", p)
	}
	last := New([]string{"g", "h"}, 8, 3, 3)
	if last.HasNextPage || !last.HasPreviousPage {
		t.Fatalf("last page: got=%+v", last)
	}
	empty := New[int](nil, 0, 0, 3)
	if empty.PageIndex != 1 || empty.TotalPages != 0 || empty.HasNextPage || empty.Items == nil {
		t.Fatalf("empty page: got=%+v", empty)
	}
}

func TestOffset(t *testing.T) {
	cases := []struct{ page, size, want int }{
		{1, 3, 0},
		{2, 3, 3},
		{0, 3, 0},
		{4, 10, 30},
	}
	for _, c := range cases {
		if got := Offset(c.page, c.size); got != c.want {
			t.Fatalf("Offset(%d,%d): want=%d got=%d", c.page, c.size, c.want, got)
		}
	}
}
