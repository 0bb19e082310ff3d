package reader

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// parser is a recursive descent parser over raw PDF bytes.
type parser struct {
	data []byte
	pos  int
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

func isDelimiter(b byte) bool {
	return strings.IndexByte("()<>[]{}/%", b) >= 0
}

func isRegular(b byte) bool {
	return !isWhitespace(b) && !isDelimiter(b)
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.data) {
		switch b := p.data[p.pos]; {
		case isWhitespace(b):
			p.pos++
		case b == '%':
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
		default:
			return
		}
	}
}

// readToken reads the next run of regular characters.
func (p *parser) readToken() string {
	p.skipWhitespace()
	start := p.pos
	for p.pos < len(p.data) && isRegular(p.data[p.pos]) {
		p.pos++
	}
	return string(p.data[start:p.pos])
}

// parseObject parses the next object at the current position.
func (p *parser) parseObject() (Object, error) {
	p.skipWhitespace()
	if p.pos >= len(p.data) {
		return nil, io.ErrUnexpectedEOF
	}

	switch b := p.data[p.pos]; {
	case b == '<':
		if p.pos+1 < len(p.data) && p.data[p.pos+1] == '<' {
			return p.parseDict()
		}
		return p.parseHexString()
	case b == '(':
		return p.parseLiteralString()
	case b == '/':
		return p.parseName()
	case b == '[':
		return p.parseArray()
	case b >= '0' && b <= '9', b == '+', b == '-', b == '.':
		return p.parseNumberOrRef()
	default:
		switch tok := p.readToken(); tok {
		case "true":
			return Boolean(true), nil
		case "false":
			return Boolean(false), nil
		case "null":
			return Null{}, nil
		default:
			return nil, fmt.Errorf("reader: unexpected token %q at position %d", tok, p.pos)
		}
	}
}

func (p *parser) parseName() (Name, error) {
	p.pos++ // consume '/'
	var b strings.Builder
	for p.pos < len(p.data) && isRegular(p.data[p.pos]) {
		ch := p.data[p.pos]
		if ch == '#' && p.pos+2 < len(p.data) {
			if v, err := strconv.ParseUint(string(p.data[p.pos+1:p.pos+3]), 16, 8); err == nil {
				b.WriteByte(byte(v))
				p.pos += 3
				continue
			}
		}
		b.WriteByte(ch)
		p.pos++
	}
	return Name(b.String()), nil
}

func (p *parser) parseLiteralString() (String, error) {
	p.pos++ // consume '('
	var out []byte
	depth := 1
	for p.pos < len(p.data) {
		ch := p.data[p.pos]
		p.pos++
		switch ch {
		case '\\':
			if p.pos >= len(p.data) {
				return nil, io.ErrUnexpectedEOF
			}
			esc := p.data[p.pos]
			p.pos++
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			default:
				out = append(out, esc)
			}
		case '(':
			depth++
			out = append(out, ch)
		case ')':
			depth--
			if depth == 0 {
				return String(out), nil
			}
			out = append(out, ch)
		default:
			out = append(out, ch)
		}
	}
	return nil, io.ErrUnexpectedEOF
}

func (p *parser) parseHexString() (String, error) {
	p.pos++ // consume '<'
	var hex []byte
	for p.pos < len(p.data) && p.data[p.pos] != '>' {
		if !isWhitespace(p.data[p.pos]) {
			hex = append(hex, p.data[p.pos])
		}
		p.pos++
	}
	if p.pos >= len(p.data) {
		return nil, io.ErrUnexpectedEOF
	}
	p.pos++ // consume '>'
	if len(hex)%2 == 1 {
		hex = append(hex, '0')
	}
	out := make([]byte, len(hex)/2)
	for i := range out {
		v, err := strconv.ParseUint(string(hex[2*i:2*i+2]), 16, 8)
		if err != nil {
			return nil, fmt.Errorf("reader: bad hex string digit: %w", err)
		}
		out[i] = byte(v)
	}
	return String(out), nil
}

func (p *parser) parseArray() (Array, error) {
	p.pos++ // consume '['
	var arr Array
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, io.ErrUnexpectedEOF
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		obj, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

func (p *parser) parseDict() (Object, error) {
	p.pos += 2 // consume '<<'
	dict := make(Dict)
	for {
		p.skipWhitespace()
		if p.pos+1 < len(p.data) && p.data[p.pos] == '>' && p.data[p.pos+1] == '>' {
			p.pos += 2
			break
		}
		if p.pos >= len(p.data) {
			return nil, io.ErrUnexpectedEOF
		}
		if p.data[p.pos] != '/' {
			return nil, fmt.Errorf("reader: dictionary key at position %d is not a name", p.pos)
		}
		key, err := p.parseName()
		if err != nil {
			return nil, err
		}
		value, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		dict[key] = value
	}

	// A stream keyword after the dictionary turns it into a stream object.
	saved := p.pos
	if tok := p.readToken(); tok != "stream" {
		p.pos = saved
		return dict, nil
	}
	if p.pos < len(p.data) && p.data[p.pos] == '\r' {
		p.pos++
	}
	if p.pos < len(p.data) && p.data[p.pos] == '\n' {
		p.pos++
	}
	length, ok := dict.GetInt("Length")
	if !ok || p.pos+length > len(p.data) {
		return nil, fmt.Errorf("reader: stream with missing or oversized /Length")
	}
	data := p.data[p.pos : p.pos+length]
	p.pos += length
	return Stream{Dict: dict, Data: data}, nil
}

// parseNumberOrRef disambiguates "12", "12.5" and "12 0 R".
func (p *parser) parseNumberOrRef() (Object, error) {
	first := p.readToken()
	if strings.ContainsAny(first, ".eE") {
		f, err := strconv.ParseFloat(first, 64)
		if err != nil {
			return nil, fmt.Errorf("reader: bad number %q: %w", first, err)
		}
		return Real(f), nil
	}
	n, err := strconv.ParseInt(first, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("reader: bad number %q: %w", first, err)
	}

	saved := p.pos
	genTok := p.readToken()
	gen, err := strconv.Atoi(genTok)
	if err == nil {
		if tok := p.readToken(); tok == "R" {
			return Reference{Number: int(n), Generation: gen}, nil
		}
	}
	p.pos = saved
	return Integer(n), nil
}
