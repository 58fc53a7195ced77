package pager_test

import (
	"testing"

	"github.com/Tiliavir/pet-assistant/internal/pager"
)

func TestPageCount(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 1},
		{1, 1},
		{6, 1},
		{7, 2},
		{12, 2},
		{13, 3},
	}
	for _, tt := range tests {
		got := pager.PageCount(tt.n, pager.DefaultSize)
		if got != tt.want {
			t.Errorf("PageCount(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestSlice(t *testing.T) {
	items := make([]int, 13)
	for i := range items {
		items[i] = i + 1
	}

	if got := pager.Slice(items, 0, 6); len(got) != 6 || got[0] != 1 || got[5] != 6 {
		t.Errorf("page 0 = %v", got)
	}
	if got := pager.Slice(items, 1, 6); len(got) != 6 || got[0] != 7 {
		t.Errorf("page 1 = %v", got)
	}
	if got := pager.Slice(items, 2, 6); len(got) != 1 || got[0] != 13 {
		t.Errorf("page 2 = %v, want [13]", got)
	}
	if got := pager.Slice(items, 3, 6); len(got) != 0 {
		t.Errorf("page 3 = %v, want empty", got)
	}
	if got := pager.Slice([]int{}, 0, 6); len(got) != 0 {
		t.Errorf("empty page = %v, want empty", got)
	}
}

func TestAbsoluteIndex(t *testing.T) {
	if got := pager.AbsoluteIndex(2, 0, 6); got != 12 {
		t.Errorf("AbsoluteIndex(2, 0) = %d, want 12", got)
	}
	if got := pager.AbsoluteIndex(0, 5, 6); got != 5 {
		t.Errorf("AbsoluteIndex(0, 5) = %d, want 5", got)
	}
}

func TestPagerNavigation(t *testing.T) {
	const n = 13
	p := pager.New(0)
	if p.Size != pager.DefaultSize {
		t.Fatalf("Size = %d, want %d", p.Size, pager.DefaultSize)
	}

	p.Prev(n)
	if p.Page() != 0 {
		t.Errorf("Prev on first page moved to %d", p.Page())
	}
	p.Next(n)
	p.Next(n)
	p.Next(n)
	if p.Page() != 2 {
		t.Errorf("Next past last page = %d, want 2", p.Page())
	}
	if got := p.Index(0); got != 12 {
		t.Errorf("Index(0) on page 2 = %d, want 12", got)
	}

	items := make([]string, n)
	if got := pager.Visible(p, items); len(got) != 1 {
		t.Errorf("Visible on last page = %d items, want 1", len(got))
	}

	p.Select(9, n)
	if p.Page() != 2 {
		t.Errorf("Select(9) = %d, want clamp to 2", p.Page())
	}
	p.Select(1, n)
	if p.Page() != 1 {
		t.Errorf("Select(1) = %d", p.Page())
	}
	// Shrinking the list clamps the next move.
	p.Next(0)
	if p.Page() != 0 {
		t.Errorf("Next on empty list = %d, want 0", p.Page())
	}
}
