package gridform

// helveticaWidths holds the advance widths of the printable ASCII range of
// the built-in Helvetica font, in 1/1000 em, indexed from code 32.
var helveticaWidths = [95]int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, // ' ' .. ')'
	389, 584, 278, 333, 278, 278, 556, 556, 556, 556, // '*' .. '3'
	556, 556, 556, 556, 556, 556, 278, 278, 584, 584, // '4' .. '='
	584, 556, 1015, 667, 667, 722, 722, 667, 611, 778, // '>' .. 'G'
	722, 278, 500, 667, 556, 833, 722, 778, 667, 778, // 'H' .. 'Q'
	722, 667, 611, 722, 667, 944, 667, 667, 611, 278, // 'R' .. '['
	278, 278, 469, 556, 333, 556, 556, 500, 556, 556, // '\' .. 'e'
	278, 556, 556, 222, 222, 500, 222, 833, 556, 556, // 'f' .. 'o'
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, // 'p' .. 'y'
	500, 334, 260, 334, 584, // 'z' .. '~'
}

// helveticaWidth returns the width of s in 1/1000 em at nominal size.
// Characters outside printable ASCII are treated as average-width glyphs.
func helveticaWidth(s string) float64 {
	total := 0
	for _, r := range s {
		if r >= 32 && r < 127 {
			total += helveticaWidths[r-32]
		} else {
			total += 556
		}
	}
	return float64(total)
}
