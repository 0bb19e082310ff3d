package gridform

// SizeType holds a page size in points.
type SizeType struct {
	Wd float64
	Ht float64
}

// Standard page sizes, in points.
var (
	PageSizeLetter = SizeType{Wd: 612, Ht: 792}
	PageSizeLegal  = SizeType{Wd: 612, Ht: 1008}
	PageSizeA4     = SizeType{Wd: 595.28, Ht: 841.89}
	PageSizeA5     = SizeType{Wd: 420.94, Ht: 595.28}
)

// PageSizeByName returns the page size registered under the given name
// ("Letter", "Legal", "A4", "A5"; case-sensitive). The second return value
// reports whether the name is known.
func PageSizeByName(name string) (SizeType, bool) {
	switch name {
	case "Letter":
		return PageSizeLetter, true
	case "Legal":
		return PageSizeLegal, true
	case "A4":
		return PageSizeA4, true
	case "A5":
		return PageSizeA5, true
	}
	return SizeType{}, false
}

// Option is a functional option for configuring a new canvas via NewCanvas.
type Option func(*canvasConfig)

type canvasConfig struct {
	size   SizeType
	title  string
	author string
}

// WithPageSize sets the page size for the whole document. The size is fixed
// for every page the canvas produces.
func WithPageSize(size SizeType) Option {
	return func(c *canvasConfig) {
		c.size = size
	}
}

// WithTitle sets the document title recorded in the PDF info dictionary.
func WithTitle(title string) Option {
	return func(c *canvasConfig) {
		c.title = title
	}
}

// WithAuthor sets the document author recorded in the PDF info dictionary.
func WithAuthor(author string) Option {
	return func(c *canvasConfig) {
		c.author = author
	}
}
