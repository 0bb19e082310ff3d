package gridform_test

import (
	"bytes"
	"errors"
	"image"
	"strconv"
	"strings"
	"testing"

	"github.com/lvillar/gridform"
)

func output(t *testing.T, c *gridform.Canvas) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Output(&buf); err != nil {
		t.Fatalf("output: %v", err)
	}
	return buf.Bytes()
}

func TestEmptyCanvasProducesOnePage(t *testing.T) {
	c := gridform.NewCanvas()
	pdf := output(t, c)

	if !bytes.HasPrefix(pdf, []byte("%PDF-1.4")) {
		t.Error("expected %PDF-1.4 header")
	}
	if !bytes.Contains(pdf, []byte("/Count 1")) {
		t.Error("expected a single page in the page tree")
	}
	if !bytes.HasSuffix(pdf, []byte("%%EOF\n")) {
		t.Errorf("expected %%%%EOF trailer")
	}
	t.Logf("Empty PDF: %d bytes", len(pdf))
}

func TestTextInContentStream(t *testing.T) {
	c := gridform.NewCanvas()
	c.SetFontSize(14)
	c.Text(50, 742, "hello world")
	pdf := output(t, c)

	if !bytes.Contains(pdf, []byte("BT /Helv 14 Tf 50 742 Td (hello world) Tj ET")) {
		t.Error("expected text operator sequence in content stream")
	}
}

func TestTextRightEndsAtX(t *testing.T) {
	c := gridform.NewCanvas()
	c.SetFontSize(10)
	w := c.TextWidth("Page 1")
	if w <= 0 {
		t.Fatalf("TextWidth = %v, want positive", w)
	}
	c.TextRight(572, 20, "Page 1")
	pdf := output(t, c)

	if bytes.Contains(pdf, []byte(" 572 20 Td")) {
		t.Error("TextRight drew at x instead of x minus the string width")
	}
	if !bytes.Contains(pdf, []byte("(Page 1) Tj")) {
		t.Error("expected the label in the content stream")
	}
}

func TestTextEscapesDelimiters(t *testing.T) {
	c := gridform.NewCanvas()
	c.Text(10, 10, `50% off (today) \o/`)
	pdf := output(t, c)

	if !bytes.Contains(pdf, []byte(`(50% off \(today\) \\o/) Tj`)) {
		t.Error("expected parentheses and backslash escaped in literal string")
	}
}

func TestLineOperators(t *testing.T) {
	c := gridform.NewCanvas()
	c.SetLineWidth(2.5)
	c.Line(50, 682, 410, 682)
	pdf := output(t, c)

	if !bytes.Contains(pdf, []byte("2.5 w 50 682 m 410 682 l S")) {
		t.Error("expected stroke operator sequence in content stream")
	}
}

func TestAddPageGrowsPageTree(t *testing.T) {
	c := gridform.NewCanvas()
	c.Text(10, 10, "one")
	c.AddPage()
	c.Text(10, 10, "two")
	c.AddPage()

	if got := c.PageCount(); got != 3 {
		t.Fatalf("PageCount() = %d, want 3", got)
	}
	pdf := output(t, c)
	if !bytes.Contains(pdf, []byte("/Count 3")) {
		t.Error("expected three pages in the page tree")
	}
}

func TestTextFieldWidget(t *testing.T) {
	c := gridform.NewCanvas()
	c.TextField("email", "Email address", 50, 712, 240, 20, "a@b.c")
	pdf := output(t, c)

	for _, want := range []string{
		"/AcroForm",
		"/NeedAppearances true",
		"/FT /Tx",
		"/T (email)",
		"/TU (Email address)",
		"/V (a@b.c)",
		"/Rect [50 712 290 732]",
		"/BS <</W 1 /S /U>>",
	} {
		if !bytes.Contains(pdf, []byte(want)) {
			t.Errorf("expected %q in PDF output", want)
		}
	}
}

func TestCheckboxWidget(t *testing.T) {
	c := gridform.NewCanvas()
	c.Checkbox("subscribe", "", 50, 742, 12, true)
	pdf := output(t, c)

	for _, want := range []string{
		"/FT /Btn",
		"/T (subscribe)",
		"/MK <</CA (4)",
		"/V /Yes /AS /Yes",
	} {
		if !bytes.Contains(pdf, []byte(want)) {
			t.Errorf("expected %q in PDF output", want)
		}
	}

	c = gridform.NewCanvas()
	c.Checkbox("subscribe", "", 50, 742, 12, false)
	pdf = output(t, c)
	if !bytes.Contains(pdf, []byte("/V /Off /AS /Off")) {
		t.Error("expected unchecked box to rest in the Off state")
	}
}

func TestRadioGroupStructure(t *testing.T) {
	c := gridform.NewCanvas()
	c.RadioOption("size", "Shirt size", "S", false, 50, 742, 12)
	c.RadioOption("size", "", "M", true, 170, 742, 12)
	pdf := output(t, c)

	for _, want := range []string{
		"/FT /Btn /Ff 49152 /T (size)",
		"/TU (Shirt size)",
		"/V /M",
		"/Kids [",
		"/Parent",
		"/MK <</CA (l)",
		"/AS /M",
		"/AS /Off",
	} {
		if !bytes.Contains(pdf, []byte(want)) {
			t.Errorf("expected %q in PDF output", want)
		}
	}
}

func TestRadioGroupLastSelectionWins(t *testing.T) {
	c := gridform.NewCanvas()
	c.RadioOption("size", "", "S", true, 50, 742, 12)
	c.RadioOption("size", "", "M", true, 170, 742, 12)
	pdf := output(t, c)

	if !bytes.Contains(pdf, []byte("/V /M")) {
		t.Error("expected the last selected option to hold the group value")
	}
}

func TestRadioGroupValueEscapedAsName(t *testing.T) {
	c := gridform.NewCanvas()
	c.RadioOption("choice", "", "a b/c", true, 50, 742, 12)
	pdf := output(t, c)

	if !bytes.Contains(pdf, []byte("/V /a#20b#2Fc")) {
		t.Error("expected the export value escaped as a PDF name")
	}
}

func TestRadioOptionsSpanPages(t *testing.T) {
	c := gridform.NewCanvas()
	c.RadioOption("size", "", "S", true, 50, 742, 12)
	c.AddPage()
	c.RadioOption("size", "", "M", false, 50, 742, 12)
	pdf := output(t, c)

	// One parent field, two widget kids on different pages.
	if got := bytes.Count(pdf, []byte("/Ff 49152")); got != 1 {
		t.Errorf("found %d radio parents, want 1", got)
	}
	if got := bytes.Count(pdf, []byte("/MK <</CA (l)")); got != 2 {
		t.Errorf("found %d radio widgets, want 2", got)
	}
}

func TestImageEmbedding(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	c := gridform.NewCanvas()
	c.Image(img, 50, 700, 120, 30)
	pdf := output(t, c)

	for _, want := range []string{
		"/Subtype /Image /Width 4 /Height 2 /ColorSpace /DeviceGray",
		"/Filter /FlateDecode",
		"/XObject <</Im1",
		"q 120 0 0 30 50 700 cm /Im1 Do Q",
	} {
		if !bytes.Contains(pdf, []byte(want)) {
			t.Errorf("expected %q in PDF output", want)
		}
	}
}

func TestImageRGB(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	c := gridform.NewCanvas()
	c.Image(img, 0, 0, 10, 10)
	pdf := output(t, c)

	if !bytes.Contains(pdf, []byte("/ColorSpace /DeviceRGB")) {
		t.Error("expected non-grayscale image stored as DeviceRGB")
	}
}

func TestImageRejectsBadArguments(t *testing.T) {
	c := gridform.NewCanvas()
	c.Image(nil, 0, 0, 10, 10)
	if !errors.Is(c.Err(), gridform.ErrInvalidParam) {
		t.Fatalf("Err() = %v, want ErrInvalidParam", c.Err())
	}
}

func TestEmptyFieldNameLatchesError(t *testing.T) {
	c := gridform.NewCanvas()
	c.TextField("", "", 0, 0, 10, 10, "")
	if !errors.Is(c.Err(), gridform.ErrInvalidParam) {
		t.Fatalf("Err() = %v, want ErrInvalidParam", c.Err())
	}

	var ce *gridform.CanvasError
	if !errors.As(c.Err(), &ce) || ce.Op != "TextField" {
		t.Errorf("Err() = %v, want CanvasError naming TextField", c.Err())
	}
}

func TestErrorsAreSticky(t *testing.T) {
	c := gridform.NewCanvas()
	c.Checkbox("", "", 0, 0, 10, false)
	first := c.Err()
	if first == nil {
		t.Fatal("expected latched error")
	}

	c.Text(10, 10, "ignored")
	c.AddPage()
	if c.Err() != first {
		t.Errorf("Err() = %v, want the first error %v", c.Err(), first)
	}
	if err := c.Output(&bytes.Buffer{}); err != first {
		t.Errorf("Output returned %v, want the latched error %v", err, first)
	}
}

func TestOutputClosesCanvas(t *testing.T) {
	c := gridform.NewCanvas()
	output(t, c)

	if err := c.Output(&bytes.Buffer{}); !errors.Is(err, gridform.ErrClosed) {
		t.Fatalf("second Output = %v, want ErrClosed", err)
	}
	c.Text(10, 10, "late")
	if !errors.Is(c.Err(), gridform.ErrClosed) {
		t.Errorf("draw after Output: Err() = %v, want ErrClosed", c.Err())
	}
}

func TestDocumentMetadata(t *testing.T) {
	c := gridform.NewCanvas(
		gridform.WithPageSize(gridform.PageSizeA4),
		gridform.WithTitle("Order form"),
		gridform.WithAuthor("ACME"),
	)
	pdf := output(t, c)

	for _, want := range []string{
		"/MediaBox [0 0 595.28 841.89]",
		"/Title (Order form)",
		"/Author (ACME)",
		"/Producer (gridform)",
		"/ID [<",
	} {
		if !bytes.Contains(pdf, []byte(want)) {
			t.Errorf("expected %q in PDF output", want)
		}
	}
}

func TestPageSizeByName(t *testing.T) {
	size, ok := gridform.PageSizeByName("A4")
	if !ok {
		t.Fatal("PageSizeByName(A4) not found")
	}
	if size != gridform.PageSizeA4 {
		t.Errorf("PageSizeByName(A4) = %+v, want A4", size)
	}

	if _, ok := gridform.PageSizeByName("Tabloid"); ok {
		t.Error("expected unknown page size name to be rejected")
	}
}

func TestTextWidthScalesWithFontSize(t *testing.T) {
	c := gridform.NewCanvas()
	c.SetFontSize(10)
	narrow := c.TextWidth("iiii")
	wide := c.TextWidth("MMMM")
	if narrow >= wide {
		t.Errorf("TextWidth(iiii) = %v, TextWidth(MMMM) = %v; want proportional metrics", narrow, wide)
	}

	small := c.TextWidth("sample")
	c.SetFontSize(20)
	if got := c.TextWidth("sample"); got != 2*small {
		t.Errorf("TextWidth at 20pt = %v, want double the 10pt width %v", got, small)
	}
}

func TestXrefOffsets(t *testing.T) {
	c := gridform.NewCanvas()
	c.Text(50, 742, "offsets")
	pdf := output(t, c)

	// Every xref entry must point at an "N 0 obj" line.
	idx := bytes.Index(pdf, []byte("xref\n"))
	if idx < 0 {
		t.Fatal("no xref table")
	}
	lines := strings.Split(string(pdf[idx:]), "\n")
	for _, line := range lines[3:] { // skip "xref", subsection header, free entry
		if len(line) != 19 || !strings.HasSuffix(line, " 00000 n ") {
			break
		}
		off, err := strconv.Atoi(line[:10])
		if err != nil {
			t.Fatalf("bad xref entry %q: %v", line, err)
		}
		if !bytes.Contains(pdf[off:off+20], []byte(" 0 obj")) {
			t.Errorf("xref offset %d does not point at an object header", off)
		}
	}
}
