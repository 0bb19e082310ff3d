// Package reader parses PDF documents back into their object structure, page
// list and form fields. It understands the subset of PDF that gridform emits:
// classic cross-reference tables, uncompressed object syntax and
// flate-compressed streams. It exists chiefly so generated documents can be
// verified without an external viewer.
package reader

import "fmt"

// Object is the interface satisfied by all PDF object types. The unexported
// method keeps the set closed.
type Object interface {
	pdfObject()
}

// Null is the PDF null object.
type Null struct{}

// Boolean is a PDF boolean.
type Boolean bool

// Integer is a PDF integer.
type Integer int64

// Real is a PDF real number.
type Real float64

// Name is a PDF name object, stored without the leading slash.
type Name string

// String is a PDF string, literal or hexadecimal, with escapes resolved.
type String []byte

// Array is a PDF array.
type Array []Object

// Dict is a PDF dictionary keyed by name.
type Dict map[Name]Object

// Stream is a PDF stream: its dictionary plus the raw (possibly compressed)
// data between the stream keywords.
type Stream struct {
	Dict Dict
	Data []byte
}

// Reference is an indirect object reference such as "10 0 R".
type Reference struct {
	Number     int
	Generation int
}

func (Null) pdfObject()      {}
func (Boolean) pdfObject()   {}
func (Integer) pdfObject()   {}
func (Real) pdfObject()      {}
func (Name) pdfObject()      {}
func (String) pdfObject()    {}
func (Array) pdfObject()     {}
func (Dict) pdfObject()      {}
func (Stream) pdfObject()    {}
func (Reference) pdfObject() {}

// Number converts a numeric object to float64.
func toNumber(o Object) (float64, bool) {
	switch n := o.(type) {
	case Integer:
		return float64(n), true
	case Real:
		return float64(n), true
	}
	return 0, false
}

// GetName returns the name stored under key, or "".
func (d Dict) GetName(key Name) Name {
	n, _ := d[key].(Name)
	return n
}

// GetInt returns the integer stored under key.
func (d Dict) GetInt(key Name) (int, bool) {
	if f, ok := toNumber(d[key]); ok {
		return int(f), true
	}
	return 0, false
}

// GetString returns the string stored under key, or "".
func (d Dict) GetString(key Name) string {
	s, _ := d[key].(String)
	return string(s)
}

// GetArray returns the array stored under key, or nil.
func (d Dict) GetArray(key Name) Array {
	a, _ := d[key].(Array)
	return a
}

// Rectangle is a PDF rectangle, lower-left to upper-right.
type Rectangle struct {
	LLX, LLY, URX, URY float64
}

// Width returns the horizontal extent of r.
func (r Rectangle) Width() float64 { return r.URX - r.LLX }

// Height returns the vertical extent of r.
func (r Rectangle) Height() float64 { return r.URY - r.LLY }

func toRectangle(o Object) (Rectangle, error) {
	arr, ok := o.(Array)
	if !ok || len(arr) != 4 {
		return Rectangle{}, fmt.Errorf("reader: rectangle must be a 4-element array")
	}
	var vals [4]float64
	for i, v := range arr {
		f, ok := toNumber(v)
		if !ok {
			return Rectangle{}, fmt.Errorf("reader: rectangle element %d is not numeric", i)
		}
		vals[i] = f
	}
	return Rectangle{LLX: vals[0], LLY: vals[1], URX: vals[2], URY: vals[3]}, nil
}
