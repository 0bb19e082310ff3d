// Package layout maps logical grid positions to absolute page coordinates
// and decides where page boundaries fall.
//
// Fields are placed on a uniform grid: rows stack downward from the top
// margin at a fixed row height, columns run rightward from the left margin at
// a fixed column width. The logical row space is continuous across the whole
// document; each page reuses the same vertical band, so a row's vertical
// offset depends only on its index modulo the page capacity.
package layout

import (
	"errors"
	"math"
)

// Defaults applied when a geometry override is absent or non-positive.
const (
	DefaultMarginX     = 50
	DefaultMarginY     = 50
	DefaultRowHeight   = 30
	DefaultColumnWidth = 120

	// DefaultExplicitWidth is the width reported for explicitly positioned
	// content that declares none.
	DefaultExplicitWidth = 100
)

// ErrNoRowCapacity reports a page geometry that cannot fit a single row.
var ErrNoRowCapacity = errors.New("layout: page cannot fit a single row")

// Overrides carries per-document geometry overrides, in points. Zero or
// negative values fall back to the package defaults.
type Overrides struct {
	MarginX     float64
	MarginY     float64
	RowHeight   float64
	ColumnWidth float64
}

// Config is the resolved page geometry for one document. It is computed once
// per render pass and read-only thereafter.
type Config struct {
	PageWidth   float64
	PageHeight  float64
	MarginX     float64
	MarginY     float64
	RowHeight   float64
	ColumnWidth float64

	rowsPerPage int
}

// New computes the layout configuration for a page of the given size,
// applying the overrides. It fails with ErrNoRowCapacity when the usable
// height fits no complete row.
func New(pageWidth, pageHeight float64, o Overrides) (Config, error) {
	c := Config{
		PageWidth:   pageWidth,
		PageHeight:  pageHeight,
		MarginX:     orDefault(o.MarginX, DefaultMarginX),
		MarginY:     orDefault(o.MarginY, DefaultMarginY),
		RowHeight:   orDefault(o.RowHeight, DefaultRowHeight),
		ColumnWidth: orDefault(o.ColumnWidth, DefaultColumnWidth),
	}
	c.rowsPerPage = int(math.Floor((pageHeight - 2*c.MarginY) / c.RowHeight))
	if c.rowsPerPage < 1 {
		return Config{}, ErrNoRowCapacity
	}
	return c, nil
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

// RowsPerPage returns the number of grid rows one page holds.
func (c Config) RowsPerPage() int { return c.rowsPerPage }

// LocalRow returns row's vertical band within whichever page it lands on.
func (c Config) LocalRow(row int) int {
	if row < 0 {
		return 0
	}
	return row % c.rowsPerPage
}

// Position locates content either on the grid (Row, Col, Span) or at an
// explicit point. When both X and Y are set the grid attributes are ignored
// for coordinate resolution, though Row still takes part in page-break
// decisions.
type Position struct {
	Row  int
	Col  int
	Span int // column span; values below 1 are treated as 1

	// Explicit placement, bypassing the grid when both X and Y are set.
	X, Y  *float64
	Width *float64
}

// Explicit reports whether p bypasses grid resolution.
func (p Position) Explicit() bool { return p.X != nil && p.Y != nil }

// Resolve translates p into an absolute bottom-up coordinate pair and a
// width, all in points. Grid positions wrap vertically modulo the page
// capacity; no bounds checking is performed, so indices that place content
// off the page are returned as-is.
func (c Config) Resolve(p Position) (x, y, width float64) {
	if p.Explicit() {
		width = DefaultExplicitWidth
		if p.Width != nil {
			width = *p.Width
		}
		return *p.X, *p.Y, width
	}

	span := p.Span
	if span < 1 {
		span = 1
	}
	x = c.MarginX + float64(p.Col)*c.ColumnWidth
	y = c.PageHeight - c.MarginY - float64(c.LocalRow(p.Row))*c.RowHeight
	width = float64(span) * c.ColumnWidth
	return x, y, width
}

// Cell resolves a plain grid cell. It is shorthand for Resolve with no
// explicit coordinates.
func (c Config) Cell(row, col, span int) (x, y, width float64) {
	return c.Resolve(Position{Row: row, Col: col, Span: span})
}
