package formtpl

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lvillar/gridform/layout"
)

func TestDecodeDocument(t *testing.T) {
	data := []byte(`{
		"layout": {"margin_y": 40, "row_height": 24},
		"fields": [
			{"kind": "text", "row": 0, "col": 0, "text": "Customer name:", "font_size": 12},
			{"kind": "fillable", "row": 0, "col": 1, "col_span": 2, "name": "customer_name", "label": "Customer name", "value": "ACME"},
			{"kind": "checkbox", "row": 1, "col": 0, "name": "subscribe", "checked": true},
			{"kind": "radio", "row": 2, "name": "size", "options": [
				{"row": 2, "col": 0, "value": "S", "selected": true},
				{"row": 2, "col": 1, "value": "M"}
			]},
			{"kind": "line", "row": 3, "col1": 0, "row1": 3, "col2": 4, "row2": 3, "width": 2},
			{"kind": "image", "row": 4, "col": 0, "src": "logo.png", "height": 48},
			{"kind": "barcode", "row": 5, "col": 0, "content": "INV-0042", "symbology": "qr"}
		]
	}`)

	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if diff := cmp.Diff(layout.Overrides{MarginY: 40, RowHeight: 24}, doc.Layout); diff != "" {
		t.Errorf("layout overrides mismatch (-want +got):\n%s", diff)
	}

	want := []Field{
		&Text{Pos: layout.Position{Row: 0, Col: 0}, Text: "Customer name:", FontSize: 12},
		&Fillable{Pos: layout.Position{Row: 0, Col: 1, Span: 2}, Name: "customer_name", Label: "Customer name", Value: "ACME"},
		&Checkbox{Pos: layout.Position{Row: 1, Col: 0}, Name: "subscribe", Checked: true},
		&Radio{Row: 2, Name: "size", Options: []RadioOption{
			{Pos: layout.Position{Row: 2, Col: 0}, Value: "S", Selected: true},
			{Pos: layout.Position{Row: 2, Col: 1}, Value: "M"},
		}},
		&Line{Row: 3, Col1: 0, Row1: 3, Col2: 4, Row2: 3, Width: 2},
		&Image{Pos: layout.Position{Row: 4, Col: 0}, Src: "logo.png", Height: 48},
		&Barcode{Pos: layout.Position{Row: 5, Col: 0}, Content: "INV-0042", Symbology: "qr"},
	}
	if diff := cmp.Diff(want, doc.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeExplicitPosition(t *testing.T) {
	doc, err := Decode([]byte(`{"fields": [
		{"kind": "text", "x": 50, "y": 700, "width": 240, "text": "hello"}
	]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	f := doc.Fields[0].(*Text)
	if !f.Pos.Explicit() {
		t.Fatal("position with x and y not marked explicit")
	}
	if *f.Pos.X != 50 || *f.Pos.Y != 700 || *f.Pos.Width != 240 {
		t.Errorf("explicit position = (%v, %v, %v), want (50, 700, 240)", *f.Pos.X, *f.Pos.Y, *f.Pos.Width)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			"unknown kind",
			`{"fields": [{"kind": "sparkline", "row": 0}]}`,
			`unknown field kind "sparkline"`,
		},
		{
			"fillable without name",
			`{"fields": [{"kind": "fillable", "row": 0}]}`,
			`missing required attribute "name"`,
		},
		{
			"checkbox without name",
			`{"fields": [{"kind": "checkbox", "row": 0}]}`,
			`missing required attribute "name"`,
		},
		{
			"radio without name",
			`{"fields": [{"kind": "radio", "row": 0, "options": [{"value": "a"}]}]}`,
			`missing required attribute "name"`,
		},
		{
			"radio option without value",
			`{"fields": [{"kind": "radio", "row": 0, "name": "g", "options": [{"row": 0, "col": 0}]}]}`,
			`missing required attribute "value"`,
		},
		{
			"image without src",
			`{"fields": [{"kind": "image", "row": 0}]}`,
			`missing required attribute "src"`,
		},
		{
			"barcode without content",
			`{"fields": [{"kind": "barcode", "row": 0}]}`,
			`missing required attribute "content"`,
		},
		{
			"barcode with unknown symbology",
			`{"fields": [{"kind": "barcode", "row": 0, "content": "x", "symbology": "aztec"}]}`,
			`unknown barcode symbology "aztec"`,
		},
		{
			"malformed json",
			`{"fields": [`,
			"parsing description",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.json))
			if err == nil {
				t.Fatal("Decode succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDecodeErrorNamesFieldIndex(t *testing.T) {
	_, err := Decode([]byte(`{"fields": [
		{"kind": "text", "row": 0, "text": "ok"},
		{"kind": "fillable", "row": 1}
	]}`))
	if err == nil {
		t.Fatal("Decode succeeded, want error")
	}
	if !strings.Contains(err.Error(), "field 1") {
		t.Errorf("error %q does not locate the offending field", err)
	}
}

func TestDecodeLineWidth(t *testing.T) {
	doc, err := Decode([]byte(`{"fields": [
		{"kind": "line", "row": 0, "col1": 0, "row1": 0, "col2": 3, "row2": 0, "width": 2.5}
	]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := doc.Fields[0].(*Line).Width; got != 2.5 {
		t.Errorf("line width = %v, want 2.5", got)
	}
}

func TestPageRow(t *testing.T) {
	tests := []struct {
		name string
		f    Field
		want int
	}{
		{"text", &Text{Pos: layout.Position{Row: 7}}, 7},
		{"radio uses its own row", &Radio{Row: 12, Options: []RadioOption{{Pos: layout.Position{Row: 40}}}}, 12},
		{"line ignores endpoint rows", &Line{Row: 3, Row1: 90, Row2: 91}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.PageRow(); got != tt.want {
				t.Errorf("PageRow() = %d, want %d", got, tt.want)
			}
		})
	}
}
