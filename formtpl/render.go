package formtpl

import (
	"fmt"
	"image"
	"io"
	"os"

	// Register decoders for the image field kind beyond the stdlib formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lvillar/gridform"
	"github.com/lvillar/gridform/layout"
)

// Canvas is the drawing surface a render pass emits to. *gridform.Canvas
// implements it; tests and custom destinations can substitute their own.
// Implementations latch their first error and expose it through Err.
type Canvas interface {
	SetFontSize(size float64)
	Text(x, y float64, s string)
	TextRight(x, y float64, s string)
	SetLineWidth(width float64)
	Line(x1, y1, x2, y2 float64)
	TextField(name, tooltip string, x, y, w, h float64, value string)
	Checkbox(name, tooltip string, x, y, size float64, checked bool)
	RadioOption(name, tooltip, value string, selected bool, x, y, size float64)
	Image(img image.Image, x, y, w, h float64)
	AddPage()
	Err() error
}

// RenderOption configures one render pass.
type RenderOption func(*renderConfig)

type renderConfig struct {
	size       gridform.SizeType
	pageLabels bool
	canvasOpts []gridform.Option
}

// WithPageSize sets the page size used by Write and WriteFile. The default
// is Letter.
func WithPageSize(size gridform.SizeType) RenderOption {
	return func(c *renderConfig) {
		c.size = size
	}
}

// WithPageLabels controls whether each page begun by a page break is stamped
// with a "Page N" label in its bottom-right corner. Enabled by default.
func WithPageLabels(enabled bool) RenderOption {
	return func(c *renderConfig) {
		c.pageLabels = enabled
	}
}

// WithCanvasOptions passes extra options (title, author) through to the
// canvas that Write and WriteFile create.
func WithCanvasOptions(opts ...gridform.Option) RenderOption {
	return func(c *renderConfig) {
		c.canvasOpts = append(c.canvasOpts, opts...)
	}
}

func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{
		size:       gridform.PageSizeLetter,
		pageLabels: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Write renders the document onto a fresh canvas and writes the finished PDF
// to w.
func (d *Document) Write(w io.Writer, opts ...RenderOption) error {
	cfg := newRenderConfig(opts)
	canvasOpts := append([]gridform.Option{gridform.WithPageSize(cfg.size)}, cfg.canvasOpts...)
	c := gridform.NewCanvas(canvasOpts...)
	if err := d.renderTo(c, cfg.size, cfg); err != nil {
		return err
	}
	return c.Output(w)
}

// WriteFile renders the document to the named PDF file.
func (d *Document) WriteFile(path string, opts ...RenderOption) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("formtpl: creating %s: %w", path, err)
	}
	if err := d.Write(f, opts...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RenderTo runs one render pass onto a caller-supplied canvas producing
// pages of the given size. The canvas is not finalized; the caller decides
// when and where to persist it. The pass owns the canvas for its duration
// and must not share it with concurrent passes.
func (d *Document) RenderTo(c Canvas, size gridform.SizeType, opts ...RenderOption) error {
	return d.renderTo(c, size, newRenderConfig(opts))
}

func (d *Document) renderTo(c Canvas, size gridform.SizeType, cfg renderConfig) error {
	lc, err := layout.New(size.Wd, size.Ht, d.Layout)
	if err != nil {
		return err
	}

	pager := lc.NewPager()
	for i, f := range d.Fields {
		breaks := pager.Advance(f.PageRow())
		for n := breaks; n > 0; n-- {
			c.AddPage()
			if cfg.pageLabels {
				stampPageLabel(c, size, pager.Page()-n+1)
			}
		}

		if err := drawField(c, lc, f); err != nil {
			return fmt.Errorf("formtpl: field %d: %w", i, err)
		}
		if err := c.Err(); err != nil {
			return fmt.Errorf("formtpl: field %d: %w", i, err)
		}
	}
	return c.Err()
}

// stampPageLabel draws "Page N" near the bottom-right corner of the page the
// pass just began. page is the 0-based page index.
func stampPageLabel(c Canvas, size gridform.SizeType, page int) {
	c.SetFontSize(8)
	c.TextRight(size.Wd-40, 20, fmt.Sprintf("Page %d", page+1))
}

func drawField(c Canvas, lc layout.Config, f Field) error {
	switch f := f.(type) {
	case *Text:
		x, y, _ := lc.Resolve(f.Pos)
		c.SetFontSize(orDefault(f.FontSize, 10))
		c.Text(x, y, f.Text)

	case *Fillable:
		x, y, w := lc.Resolve(f.Pos)
		c.TextField(f.Name, f.Label, x, y, w, orDefault(f.Height, 20), f.Value)

	case *Checkbox:
		x, y, _ := lc.Resolve(f.Pos)
		c.Checkbox(f.Name, f.Label, x, y, orDefault(f.Size, 12), f.Checked)

	case *Radio:
		for _, opt := range f.Options {
			x, y, _ := lc.Resolve(opt.Pos)
			c.RadioOption(f.Name, f.Label, opt.Value, opt.Selected, x, y, orDefault(opt.Size, 12))
		}

	case *Line:
		x1, y1, _ := lc.Cell(f.Row1, f.Col1, 1)
		x2, y2, _ := lc.Cell(f.Row2, f.Col2, 1)
		c.SetLineWidth(orDefault(f.Width, 1))
		c.Line(x1, y1, x2, y2)

	case *Image:
		img, err := loadImage(f.Src)
		if err != nil {
			return err
		}
		x, y, w := lc.Resolve(f.Pos)
		c.Image(img, x, y, w, orDefault(f.Height, 30))

	case *Barcode:
		x, y, w := lc.Resolve(f.Pos)
		h := orDefault(f.Height, 40)
		img, err := barcodeImage(f.Content, f.Symbology, int(w), int(h))
		if err != nil {
			return err
		}
		c.Image(img, x, y, w, h)

	default:
		// Unreachable: the Field set is closed.
		return fmt.Errorf("unhandled field type %T", f)
	}
	return nil
}

func loadImage(src string) (image.Image, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("loading image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", src, err)
	}
	return img, nil
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
