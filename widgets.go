package gridform

import (
	"fmt"
	"strings"
)

// Field flag bits from the PDF specification (table 8.70).
const (
	ffNoToggleToOff = 1 << 14 // Bit 15: radio group keeps one option on
	ffRadio         = 1 << 15 // Bit 16: button field is a radio group
)

type radioGroup struct {
	name    string
	tooltip string
	value   string // export value of the selected option, "" when none
	kids    []radioKid
}

type radioKid struct {
	pageIndex int
	value     string
	x, y      float64
	size      float64
}

// TextField draws an interactive single-line text input named name, sized
// w×h with its bottom-left corner at (x, y). The field shows an underlined
// border, is pre-populated with value, and uses tooltip as its alternate
// description.
func (c *Canvas) TextField(name, tooltip string, x, y, w, h float64, value string) {
	if c.bad("TextField") {
		return
	}
	if name == "" {
		c.err = newCanvasError("TextField", fmt.Errorf("%w: empty field name", ErrInvalidParam))
		return
	}

	dict := fmt.Sprintf("<</Type /Annot /Subtype /Widget /FT /Tx /T (%s) /Rect [%s %s %s %s] /F 4",
		escapePDFString(name), num(x), num(y), num(x+w), num(y+h))
	if tooltip != "" {
		dict += fmt.Sprintf(" /TU (%s)", escapePDFString(tooltip))
	}
	if value != "" {
		dict += fmt.Sprintf(" /V (%s)", escapePDFString(value))
	}
	dict += " /DA (/Helv 0 Tf 0 g) /BS <</W 1 /S /U>> /MK <</BC [0 0 0]>>>>"
	c.cur.fields = append(c.cur.fields, dict)
}

// Checkbox draws a square toggle of the given size named name with its
// bottom-left corner at (x, y), initially on when checked is true.
func (c *Canvas) Checkbox(name, tooltip string, x, y, size float64, checked bool) {
	if c.bad("Checkbox") {
		return
	}
	if name == "" {
		c.err = newCanvasError("Checkbox", fmt.Errorf("%w: empty field name", ErrInvalidParam))
		return
	}

	state := "/Off"
	if checked {
		state = "/Yes"
	}
	dict := fmt.Sprintf("<</Type /Annot /Subtype /Widget /FT /Btn /T (%s) /Rect [%s %s %s %s] /F 4",
		escapePDFString(name), num(x), num(y), num(x+size), num(y+size))
	if tooltip != "" {
		dict += fmt.Sprintf(" /TU (%s)", escapePDFString(tooltip))
	}
	// ZapfDingbats "4" is the conventional check glyph.
	dict += fmt.Sprintf(" /DA (/ZaDb 0 Tf 0 g) /MK <</CA (4) /BC [0 0 0]>> /V %s /AS %s>>", state, state)
	c.cur.fields = append(c.cur.fields, dict)
}

// RadioOption draws one circular option of the radio group named name on the
// current page. Options drawn with the same name anywhere in the document
// share one group; the export value of an option drawn with selected true
// becomes the group's value. Selection uniqueness is not enforced: when
// several options claim selection, the last one drawn wins.
func (c *Canvas) RadioOption(name, tooltip, value string, selected bool, x, y, size float64) {
	if c.bad("RadioOption") {
		return
	}
	if name == "" || value == "" {
		c.err = newCanvasError("RadioOption", fmt.Errorf("%w: empty group name or option value", ErrInvalidParam))
		return
	}

	g := c.radioGroup(name, tooltip)
	if selected {
		g.value = value
	}
	g.kids = append(g.kids, radioKid{
		pageIndex: len(c.pages) - 1,
		value:     value,
		x:         x,
		y:         y,
		size:      size,
	})
}

func (c *Canvas) radioGroup(name, tooltip string) *radioGroup {
	for _, g := range c.radios {
		if g.name == name {
			if g.tooltip == "" {
				g.tooltip = tooltip
			}
			return g
		}
	}
	g := &radioGroup{name: name, tooltip: tooltip}
	c.radios = append(c.radios, g)
	return g
}

// parentDict builds the group's field dictionary given the object numbers of
// its widget kids.
func (g *radioGroup) parentDict(kidRefs []int) string {
	refs := make([]string, len(kidRefs))
	for i, n := range kidRefs {
		refs[i] = fmt.Sprintf("%d 0 R", n)
	}
	dict := fmt.Sprintf("<</FT /Btn /Ff %d /T (%s)", ffRadio|ffNoToggleToOff, escapePDFString(g.name))
	if g.tooltip != "" {
		dict += fmt.Sprintf(" /TU (%s)", escapePDFString(g.tooltip))
	}
	if g.value != "" {
		dict += " /V /" + escapePDFName(g.value)
	} else {
		dict += " /V /Off"
	}
	dict += fmt.Sprintf(" /DA (/ZaDb 0 Tf 0 g) /Kids [%s]>>", strings.Join(refs, " "))
	return dict
}

// kidDict builds one widget annotation for a radio option, given the object
// number of the group's parent field.
func (k radioKid) kidDict(parentRef int, groupValue string) string {
	state := "/Off"
	if k.value == groupValue {
		state = "/" + escapePDFName(k.value)
	}
	// ZapfDingbats "l" is the conventional filled-circle glyph.
	return fmt.Sprintf("<</Type /Annot /Subtype /Widget /Parent %d 0 R /Rect [%s %s %s %s] /F 4 /MK <</CA (l) /BC [0 0 0]>> /AS %s>>",
		parentRef, num(k.x), num(k.y), num(k.x+k.size), num(k.y+k.size), state)
}

// escapePDFString escapes special characters in a PDF literal string.
func escapePDFString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `(`, `\(`)
	s = strings.ReplaceAll(s, `)`, `\)`)
	return s
}

// escapePDFName escapes a string for use as a PDF name object, replacing
// delimiters and non-regular characters with #xx sequences.
func escapePDFName(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch <= ' ' || ch > '~':
			fmt.Fprintf(&b, "#%02X", ch)
		case strings.IndexByte("()<>[]{}/%#", ch) >= 0:
			fmt.Fprintf(&b, "#%02X", ch)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
