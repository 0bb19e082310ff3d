// Package formtpl renders data-bound JSON form descriptions into PDF
// documents with interactive fields.
//
// A form description is JSON with a layout block and an ordered field list.
// Fields sit on a uniform grid (row, col, col_span) or at explicit
// coordinates, and are drawn in source order; rows past the page capacity
// start new pages automatically.
//
// Example JSON:
//
//	{
//	  "layout": {"margin_y": 40, "row_height": 24},
//	  "fields": [
//	    {"kind": "text", "row": 0, "col": 0, "text": "Customer name:"},
//	    {"kind": "fillable", "row": 0, "col": 1, "col_span": 2, "name": "customer_name"},
//	    {"kind": "checkbox", "row": 1, "col": 0, "name": "subscribe", "label": "Subscribe"}
//	  ]
//	}
//
// Descriptions are usually produced from a template (see Load) that binds
// external data before the JSON is decoded.
package formtpl

import (
	"encoding/json"
	"fmt"

	"github.com/lvillar/gridform/layout"
)

// Field is one renderable item of a form description. The set of
// implementations is closed: Text, Fillable, Checkbox, Radio, Line, Image
// and Barcode. Unknown kinds are rejected when a description is decoded.
type Field interface {
	// PageRow returns the logical row used for page-break decisions. For
	// explicitly positioned fields the coordinates ignore the grid, but the
	// row still takes part in pagination.
	PageRow() int

	sealed()
}

// Text is a static string drawn at a grid or explicit position.
type Text struct {
	Pos      layout.Position
	Text     string
	FontSize float64 // default 10
}

// Fillable is an interactive text-input box.
type Fillable struct {
	Pos    layout.Position
	Name   string  // required
	Label  string  // shown as the field tooltip
	Value  string  // initial content
	Height float64 // default 20
}

// Checkbox is a square on/off toggle.
type Checkbox struct {
	Pos     layout.Position
	Name    string // required
	Label   string
	Size    float64 // default 12
	Checked bool
}

// Radio is a group of mutually exclusive circular options. Each option
// carries its own position. Exactly one option should be selected, but this
// is not validated; duplicates pass through to the canvas unchanged.
type Radio struct {
	Row     int    // grid row used for pagination only
	Name    string // required
	Label   string
	Options []RadioOption
}

// RadioOption is one choice within a Radio group.
type RadioOption struct {
	Pos      layout.Position
	Value    string // required export value
	Selected bool
	Size     float64 // default 12
}

// Line is a straight segment between two grid cells. Both endpoints resolve
// against the same vertical band, so a line whose rows straddle a page
// boundary folds onto one page rather than failing.
type Line struct {
	Row        int // grid row used for pagination only
	Col1, Row1 int
	Col2, Row2 int
	Width      float64 // stroke width, default 1
}

// Image embeds a raster image loaded from a file. PNG, JPEG and GIF are
// always supported; BMP, TIFF and WebP are registered as well.
type Image struct {
	Pos    layout.Position
	Src    string  // required file path
	Height float64 // default 30
}

// Barcode draws a machine-readable code generated from its content.
type Barcode struct {
	Pos       layout.Position
	Content   string  // required
	Symbology string  // code128 (default), qr, ean, pdf417
	Height    float64 // default 40
}

func (f *Text) PageRow() int     { return f.Pos.Row }
func (f *Fillable) PageRow() int { return f.Pos.Row }
func (f *Checkbox) PageRow() int { return f.Pos.Row }
func (f *Radio) PageRow() int    { return f.Row }
func (f *Line) PageRow() int     { return f.Row }
func (f *Image) PageRow() int    { return f.Pos.Row }
func (f *Barcode) PageRow() int  { return f.Pos.Row }

func (*Text) sealed()     {}
func (*Fillable) sealed() {}
func (*Checkbox) sealed() {}
func (*Radio) sealed()    {}
func (*Line) sealed()     {}
func (*Image) sealed()    {}
func (*Barcode) sealed()  {}

// Document is an immutable form description: geometry overrides plus the
// ordered field list. It may be shared across concurrent render passes.
type Document struct {
	Layout layout.Overrides
	Fields []Field
}

// Wire representation of a form description.

type rawDocument struct {
	Layout rawLayout  `json:"layout"`
	Fields []rawField `json:"fields"`
}

type rawLayout struct {
	MarginX     float64 `json:"margin_x"`
	MarginY     float64 `json:"margin_y"`
	RowHeight   float64 `json:"row_height"`
	ColumnWidth float64 `json:"column_width"`
}

type rawField struct {
	Kind    string   `json:"kind"`
	Row     int      `json:"row"`
	Col     int      `json:"col"`
	ColSpan int      `json:"col_span"`
	X       *float64 `json:"x"`
	Y       *float64 `json:"y"`
	Width   *float64 `json:"width"`

	Text     string  `json:"text"`
	FontSize float64 `json:"font_size"`

	Name   string  `json:"name"`
	Label  string  `json:"label"`
	Value  string  `json:"value"`
	Height float64 `json:"height"`

	Size    float64 `json:"size"`
	Checked bool    `json:"checked"`

	Options []rawOption `json:"options"`

	Col1 int `json:"col1"`
	Row1 int `json:"row1"`
	Col2 int `json:"col2"`
	Row2 int `json:"row2"`

	Src string `json:"src"`

	Content   string `json:"content"`
	Symbology string `json:"symbology"`
}

type rawOption struct {
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	ColSpan  int      `json:"col_span"`
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Width    *float64 `json:"width"`
	Value    string   `json:"value"`
	Selected bool     `json:"selected"`
	Size     float64  `json:"size"`
}

// Decode parses a JSON form description and maps it onto the closed field
// set. Unknown field kinds and missing required attributes are rejected here,
// before anything is drawn.
func Decode(data []byte) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("formtpl: parsing description: %w", err)
	}

	doc := &Document{
		Layout: layout.Overrides{
			MarginX:     raw.Layout.MarginX,
			MarginY:     raw.Layout.MarginY,
			RowHeight:   raw.Layout.RowHeight,
			ColumnWidth: raw.Layout.ColumnWidth,
		},
		Fields: make([]Field, 0, len(raw.Fields)),
	}

	for i, rf := range raw.Fields {
		f, err := rf.field()
		if err != nil {
			return nil, fmt.Errorf("formtpl: field %d: %w", i, err)
		}
		doc.Fields = append(doc.Fields, f)
	}
	return doc, nil
}

func (rf rawField) position() layout.Position {
	return layout.Position{
		Row:   rf.Row,
		Col:   rf.Col,
		Span:  rf.ColSpan,
		X:     rf.X,
		Y:     rf.Y,
		Width: rf.Width,
	}
}

func (rf rawField) field() (Field, error) {
	switch rf.Kind {
	case "text":
		return &Text{Pos: rf.position(), Text: rf.Text, FontSize: rf.FontSize}, nil

	case "fillable":
		if rf.Name == "" {
			return nil, fmt.Errorf("fillable: missing required attribute %q", "name")
		}
		return &Fillable{Pos: rf.position(), Name: rf.Name, Label: rf.Label, Value: rf.Value, Height: rf.Height}, nil

	case "checkbox":
		if rf.Name == "" {
			return nil, fmt.Errorf("checkbox: missing required attribute %q", "name")
		}
		return &Checkbox{Pos: rf.position(), Name: rf.Name, Label: rf.Label, Size: rf.Size, Checked: rf.Checked}, nil

	case "radio":
		if rf.Name == "" {
			return nil, fmt.Errorf("radio: missing required attribute %q", "name")
		}
		opts := make([]RadioOption, len(rf.Options))
		for j, ro := range rf.Options {
			if ro.Value == "" {
				return nil, fmt.Errorf("radio %q: option %d: missing required attribute %q", rf.Name, j, "value")
			}
			opts[j] = RadioOption{
				Pos: layout.Position{
					Row:   ro.Row,
					Col:   ro.Col,
					Span:  ro.ColSpan,
					X:     ro.X,
					Y:     ro.Y,
					Width: ro.Width,
				},
				Value:    ro.Value,
				Selected: ro.Selected,
				Size:     ro.Size,
			}
		}
		return &Radio{Row: rf.Row, Name: rf.Name, Label: rf.Label, Options: opts}, nil

	case "line":
		var width float64
		if rf.Width != nil {
			width = *rf.Width
		}
		return &Line{
			Row:  rf.Row,
			Col1: rf.Col1, Row1: rf.Row1,
			Col2: rf.Col2, Row2: rf.Row2,
			Width: width,
		}, nil

	case "image":
		if rf.Src == "" {
			return nil, fmt.Errorf("image: missing required attribute %q", "src")
		}
		return &Image{Pos: rf.position(), Src: rf.Src, Height: rf.Height}, nil

	case "barcode":
		if rf.Content == "" {
			return nil, fmt.Errorf("barcode: missing required attribute %q", "content")
		}
		if _, err := symbologyOf(rf.Symbology); err != nil {
			return nil, fmt.Errorf("barcode: %w", err)
		}
		return &Barcode{Pos: rf.position(), Content: rf.Content, Symbology: rf.Symbology, Height: rf.Height}, nil

	default:
		return nil, fmt.Errorf("unknown field kind %q", rf.Kind)
	}
}
