package layout

import "testing"

func pagerWith(t *testing.T, rowsPerPage int) *Pager {
	t.Helper()
	// MarginY 96 and RowHeight 60 on Letter give 10 rows; scale from there.
	c := mustConfig(t, 612, 792, Overrides{MarginY: 96, RowHeight: 600 / float64(rowsPerPage)})
	if got := c.RowsPerPage(); got != rowsPerPage {
		t.Fatalf("RowsPerPage() = %d, want %d", got, rowsPerPage)
	}
	return c.NewPager()
}

func TestPagerStartsOnFirstPage(t *testing.T) {
	p := pagerWith(t, 10)
	if got := p.Page(); got != 0 {
		t.Fatalf("fresh pager on page %d, want 0", got)
	}
}

func TestPagerSinglePageCrossesNoBoundary(t *testing.T) {
	p := pagerWith(t, 10)
	for row := 0; row < 10; row++ {
		if breaks := p.Advance(row); breaks != 0 {
			t.Fatalf("Advance(%d) = %d breaks, want 0", row, breaks)
		}
	}
	if got := p.Page(); got != 0 {
		t.Fatalf("pager on page %d after rows 0..9, want 0", got)
	}
}

func TestPagerFirstOverflowRow(t *testing.T) {
	p := pagerWith(t, 10)
	if breaks := p.Advance(10); breaks != 1 {
		t.Fatalf("Advance(10) = %d breaks, want 1", breaks)
	}
	if got := p.Page(); got != 1 {
		t.Fatalf("pager on page %d, want 1", got)
	}
}

func TestPagerLastRowOfSecondPage(t *testing.T) {
	// Rows 0..2*rpp-1 fill exactly two pages: one boundary crossed.
	p := pagerWith(t, 10)
	breaks := 0
	for row := 0; row < 2*10; row++ {
		breaks += p.Advance(row)
	}
	if breaks != 1 {
		t.Fatalf("rows 0..19 crossed %d boundaries, want 1", breaks)
	}
	if got := p.Page(); got != 1 {
		t.Fatalf("pager on page %d, want 1", got)
	}
}

func TestPagerSkipsWholePages(t *testing.T) {
	p := pagerWith(t, 10)
	if breaks := p.Advance(35); breaks != 3 {
		t.Fatalf("Advance(35) = %d breaks, want 3", breaks)
	}
	if got := p.Page(); got != 3 {
		t.Fatalf("pager on page %d, want 3", got)
	}
}

func TestPagerNeverRetreats(t *testing.T) {
	p := pagerWith(t, 10)
	p.Advance(25)
	if breaks := p.Advance(3); breaks != 0 {
		t.Fatalf("Advance(3) after Advance(25) = %d breaks, want 0", breaks)
	}
	if got := p.Page(); got != 2 {
		t.Fatalf("pager retreated to page %d, want 2", got)
	}
}
