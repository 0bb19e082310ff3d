// Package gridform generates multi-page PDF documents with interactive
// AcroForm fields.
//
// The root package provides Canvas, a drawing surface that accumulates pages,
// static content (text, lines, images) and interactive widgets (text fields,
// checkboxes, radio groups), and serializes everything to a PDF file. Higher
// level layout lives in the layout and formtpl subpackages.
package gridform

import (
	"bytes"
	"fmt"
	"image"
)

// Canvas is a PDF drawing surface. A new canvas starts with one open page;
// AddPage finishes the current page and begins the next. The canvas is not
// safe for concurrent use; all draw calls must come from a single goroutine.
//
// Draw methods do not return errors. The first failure is latched and every
// subsequent call becomes a no-op; Err reports the latched error and Output
// returns it instead of writing a document.
type Canvas struct {
	size   SizeType
	title  string
	author string

	fontSize  float64
	lineWidth float64

	pages  []*canvasPage
	cur    *canvasPage
	radios []*radioGroup
	images []*imageXObject

	err    error
	closed bool
}

type canvasPage struct {
	content bytes.Buffer
	fields  []string // self-contained widget dictionaries, in draw order
	images  []string // XObject resource names referenced by the content
}

// NewCanvas creates a canvas with one open page. The default page size is
// Letter; use WithPageSize to change it.
func NewCanvas(opts ...Option) *Canvas {
	cfg := &canvasConfig{size: PageSizeLetter}
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Canvas{
		size:      cfg.size,
		title:     cfg.title,
		author:    cfg.author,
		fontSize:  12,
		lineWidth: 1,
	}
	if cfg.size.Wd <= 0 || cfg.size.Ht <= 0 {
		c.err = newCanvasError("NewCanvas", ErrInvalidParam)
	}
	c.cur = &canvasPage{}
	c.pages = append(c.pages, c.cur)
	return c
}

// Err returns the first error encountered by any canvas operation, or nil.
func (c *Canvas) Err() error { return c.err }

// PageSize returns the fixed page size of the document in points.
func (c *Canvas) PageSize() SizeType { return c.size }

// PageCount returns the number of pages begun so far, including the open one.
func (c *Canvas) PageCount() int { return len(c.pages) }

// AddPage finishes the current page and begins a new one.
func (c *Canvas) AddPage() {
	if c.bad("AddPage") {
		return
	}
	c.cur = &canvasPage{}
	c.pages = append(c.pages, c.cur)
}

// SetFontSize sets the size, in points, used by subsequent Text calls.
func (c *Canvas) SetFontSize(size float64) {
	if c.bad("SetFontSize") {
		return
	}
	if size > 0 {
		c.fontSize = size
	}
}

// SetLineWidth sets the stroke width, in points, used by subsequent Line calls.
func (c *Canvas) SetLineWidth(width float64) {
	if c.bad("SetLineWidth") {
		return
	}
	if width > 0 {
		c.lineWidth = width
	}
}

// Text draws s in Helvetica at the current font size, with the baseline
// starting at (x, y). Coordinates are in points from the bottom-left corner.
func (c *Canvas) Text(x, y float64, s string) {
	if c.bad("Text") {
		return
	}
	fmt.Fprintf(&c.cur.content, "BT /Helv %s Tf %s %s Td (%s) Tj ET\n",
		num(c.fontSize), num(x), num(y), escapePDFString(s))
}

// TextRight draws s so that it ends at x, using the built-in Helvetica
// metrics to measure the string.
func (c *Canvas) TextRight(x, y float64, s string) {
	if c.bad("TextRight") {
		return
	}
	c.Text(x-c.TextWidth(s), y, s)
}

// TextWidth returns the width of s, in points, at the current font size.
func (c *Canvas) TextWidth(s string) float64 {
	return helveticaWidth(s) * c.fontSize / 1000
}

// Line draws a straight segment from (x1, y1) to (x2, y2) at the current
// line width.
func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	if c.bad("Line") {
		return
	}
	fmt.Fprintf(&c.cur.content, "%s w %s %s m %s %s l S\n",
		num(c.lineWidth), num(x1), num(y1), num(x2), num(y2))
}

// Image draws img scaled into the w×h rectangle whose bottom-left corner is
// at (x, y). The image is embedded once per call as a flate-compressed
// XObject.
func (c *Canvas) Image(img image.Image, x, y, w, h float64) {
	if c.bad("Image") {
		return
	}
	if img == nil || w <= 0 || h <= 0 {
		c.err = newCanvasError("Image", ErrInvalidParam)
		return
	}
	xo, err := encodeImage(img)
	if err != nil {
		c.err = newCanvasError("Image", err)
		return
	}
	xo.name = fmt.Sprintf("Im%d", len(c.images)+1)
	c.images = append(c.images, xo)
	c.cur.images = append(c.cur.images, xo.name)
	fmt.Fprintf(&c.cur.content, "q %s 0 0 %s %s %s cm /%s Do Q\n",
		num(w), num(h), num(x), num(y), xo.name)
}

func (c *Canvas) bad(op string) bool {
	if c.err != nil {
		return true
	}
	if c.closed {
		c.err = newCanvasError(op, ErrClosed)
		return true
	}
	return false
}

// num formats a coordinate or dimension for a content stream or dictionary.
func num(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	// Trim trailing zeros to keep the output compact.
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
