package layout

// Pager tracks which page a render pass is on. The zero value is not useful;
// obtain one from Config.NewPager. A pager belongs to exactly one render
// pass and must not be shared.
type Pager struct {
	rowsPerPage int
	page        int
}

// NewPager returns a pager positioned on the first page.
func (c Config) NewPager() *Pager {
	return &Pager{rowsPerPage: c.rowsPerPage}
}

// Page returns the current 0-based page index. It never decreases.
func (p *Pager) Page() int { return p.page }

// Advance moves the pager forward until row fits on the current page and
// returns how many page boundaries were crossed. A row several pages ahead
// crosses one boundary per skipped page, so the caller can emit one
// page-break event per increment. Rows at or behind the current page cross
// none.
func (p *Pager) Advance(row int) int {
	breaks := 0
	for row >= (p.page+1)*p.rowsPerPage {
		p.page++
		breaks++
	}
	return breaks
}
