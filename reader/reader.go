package reader

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Document is a parsed PDF document.
type Document struct {
	Version string // from the file header, e.g. "1.4"

	data    []byte
	xref    map[int]int // object number to byte offset
	trailer Dict
	pages   []Dict
}

// Open parses the PDF file at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reader: opening %s: %w", path, err)
	}
	return parse(data)
}

// ReadFrom parses a PDF document from r, reading it entirely into memory for
// random access.
func ReadFrom(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reader: reading input: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Document, error) {
	d := &Document{data: data, Version: parseVersion(data)}

	start, err := findStartXRef(data)
	if err != nil {
		return nil, err
	}
	if err := d.parseXRef(start); err != nil {
		return nil, err
	}
	if err := d.buildPageList(); err != nil {
		return nil, err
	}
	return d, nil
}

func parseVersion(data []byte) string {
	head := string(data[:min(16, len(data))])
	if rest, ok := strings.CutPrefix(head, "%PDF-"); ok {
		if i := strings.IndexAny(rest, "\r\n"); i >= 0 {
			return rest[:i]
		}
	}
	return ""
}

// findStartXRef locates the cross-reference table offset recorded at the end
// of the file.
func findStartXRef(data []byte) (int, error) {
	tail := data[max(0, len(data)-1024):]
	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx < 0 {
		return 0, fmt.Errorf("reader: startxref not found")
	}
	p := &parser{data: tail[idx+len("startxref"):]}
	off, err := strconv.Atoi(p.readToken())
	if err != nil {
		return 0, fmt.Errorf("reader: invalid startxref offset: %w", err)
	}
	return off, nil
}

// parseXRef reads a classic cross-reference table and the trailer behind it.
func (d *Document) parseXRef(offset int) error {
	if offset < 0 || offset >= len(d.data) {
		return fmt.Errorf("reader: xref offset %d out of bounds", offset)
	}
	p := &parser{data: d.data, pos: offset}
	if tok := p.readToken(); tok != "xref" {
		return fmt.Errorf("reader: expected xref table at offset %d, found %q", offset, tok)
	}

	d.xref = make(map[int]int)
	for {
		saved := p.pos
		tok := p.readToken()
		if tok == "trailer" {
			break
		}
		p.pos = saved

		first, err := strconv.Atoi(p.readToken())
		if err != nil {
			return fmt.Errorf("reader: bad xref subsection start: %w", err)
		}
		count, err := strconv.Atoi(p.readToken())
		if err != nil {
			return fmt.Errorf("reader: bad xref subsection count: %w", err)
		}
		for i := 0; i < count; i++ {
			off, err := strconv.Atoi(p.readToken())
			if err != nil {
				return fmt.Errorf("reader: bad xref entry offset: %w", err)
			}
			p.readToken() // generation
			if kind := p.readToken(); kind == "n" {
				d.xref[first+i] = off
			}
		}
	}

	obj, err := p.parseObject()
	if err != nil {
		return fmt.Errorf("reader: parsing trailer: %w", err)
	}
	trailer, ok := obj.(Dict)
	if !ok {
		return fmt.Errorf("reader: trailer is not a dictionary")
	}
	d.trailer = trailer
	return nil
}

// Trailer returns the document's trailer dictionary.
func (d *Document) Trailer() Dict { return d.trailer }

// Resolve follows o if it is an indirect reference and returns the referenced
// object; any other object is returned unchanged.
func (d *Document) Resolve(o Object) (Object, error) {
	ref, ok := o.(Reference)
	if !ok {
		return o, nil
	}
	offset, ok := d.xref[ref.Number]
	if !ok {
		return nil, fmt.Errorf("reader: object %d not in xref table", ref.Number)
	}
	p := &parser{data: d.data, pos: offset}
	num, err := strconv.Atoi(p.readToken())
	if err != nil || num != ref.Number {
		return nil, fmt.Errorf("reader: xref offset for object %d does not point at it", ref.Number)
	}
	p.readToken() // generation
	if tok := p.readToken(); tok != "obj" {
		return nil, fmt.Errorf("reader: object %d: expected obj keyword, found %q", ref.Number, tok)
	}
	return p.parseObject()
}

func (d *Document) resolveDict(o Object) (Dict, error) {
	resolved, err := d.Resolve(o)
	if err != nil {
		return nil, err
	}
	dict, ok := resolved.(Dict)
	if !ok {
		return nil, fmt.Errorf("reader: expected dictionary, found %T", resolved)
	}
	return dict, nil
}

// Catalog returns the document catalog (the trailer's /Root).
func (d *Document) Catalog() (Dict, error) {
	root, ok := d.trailer["Root"]
	if !ok {
		return nil, fmt.Errorf("reader: missing /Root in trailer")
	}
	return d.resolveDict(root)
}

// Info returns the document information dictionary, or nil when absent.
func (d *Document) Info() (Dict, error) {
	info, ok := d.trailer["Info"]
	if !ok {
		return nil, nil
	}
	return d.resolveDict(info)
}

func (d *Document) buildPageList() error {
	catalog, err := d.Catalog()
	if err != nil {
		return err
	}
	pages, err := d.resolveDict(catalog["Pages"])
	if err != nil {
		return fmt.Errorf("reader: resolving page tree: %w", err)
	}
	return d.appendPages(pages)
}

// appendPages walks a page tree node depth-first.
func (d *Document) appendPages(node Dict) error {
	for _, kid := range node.GetArray("Kids") {
		kidDict, err := d.resolveDict(kid)
		if err != nil {
			return fmt.Errorf("reader: resolving page tree kid: %w", err)
		}
		if kidDict.GetName("Type") == "Pages" {
			if err := d.appendPages(kidDict); err != nil {
				return err
			}
			continue
		}
		d.pages = append(d.pages, kidDict)
	}
	return nil
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int { return len(d.pages) }

// Page returns the dictionary of the 1-based nth page.
func (d *Document) Page(n int) (Dict, error) {
	if n < 1 || n > len(d.pages) {
		return nil, fmt.Errorf("reader: page %d out of range 1..%d", n, len(d.pages))
	}
	return d.pages[n-1], nil
}

// MediaBox returns the media box of the 1-based nth page.
func (d *Document) MediaBox(n int) (Rectangle, error) {
	page, err := d.Page(n)
	if err != nil {
		return Rectangle{}, err
	}
	return toRectangle(page["MediaBox"])
}

// PageContent returns the decoded content stream of the 1-based nth page.
// Flate-compressed streams are decompressed; other filters are rejected.
func (d *Document) PageContent(n int) ([]byte, error) {
	page, err := d.Page(n)
	if err != nil {
		return nil, err
	}
	content, err := d.Resolve(page["Contents"])
	if err != nil {
		return nil, fmt.Errorf("reader: resolving page %d contents: %w", n, err)
	}
	stream, ok := content.(Stream)
	if !ok {
		return nil, fmt.Errorf("reader: page %d contents is not a stream", n)
	}
	return decodeStream(stream)
}

func decodeStream(s Stream) ([]byte, error) {
	switch filter := s.Dict.GetName("Filter"); filter {
	case "":
		return s.Data, nil
	case "FlateDecode":
		zr, err := zlib.NewReader(bytes.NewReader(s.Data))
		if err != nil {
			return nil, fmt.Errorf("reader: opening flate stream: %w", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("reader: inflating stream: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("reader: unsupported stream filter /%s", filter)
	}
}
