package gridform

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Output finalizes the document and writes it to w. The open page is always
// emitted, so even a canvas with no draw calls produces a one-page document.
// After Output the canvas is closed and every further operation fails with
// ErrClosed.
func (c *Canvas) Output(w io.Writer) error {
	if c.err != nil {
		return c.err
	}
	if c.closed {
		c.err = newCanvasError("Output", ErrClosed)
		return c.err
	}
	c.closed = true

	if _, err := w.Write(c.serialize()); err != nil {
		c.err = newCanvasError("Output", err)
		return c.err
	}
	return nil
}

// OutputFile finalizes the document and writes it to the named file.
func (c *Canvas) OutputFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return newCanvasError("OutputFile", err)
	}
	if err := c.Output(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return newCanvasError("OutputFile", err)
	}
	return nil
}

// Fixed object numbers; everything else is allocated behind them.
const (
	objCatalog = 1
	objPages   = 2
	objHelv    = 3
	objZaDb    = 4
	objInfo    = 5
	objFirst   = 6
)

func (c *Canvas) serialize() []byte {
	next := objFirst
	alloc := func() int {
		n := next
		next++
		return n
	}

	pageNums := make([]int, len(c.pages))
	contentNums := make([]int, len(c.pages))
	for i := range c.pages {
		pageNums[i] = alloc()
		contentNums[i] = alloc()
	}

	// Self-contained widgets keep their page association by position.
	widgetNums := make([][]int, len(c.pages))
	for i, p := range c.pages {
		widgetNums[i] = make([]int, len(p.fields))
		for j := range p.fields {
			widgetNums[i][j] = alloc()
		}
	}

	parentNums := make([]int, len(c.radios))
	kidNums := make([][]int, len(c.radios))
	for i, g := range c.radios {
		parentNums[i] = alloc()
		kidNums[i] = make([]int, len(g.kids))
		for j := range g.kids {
			kidNums[i][j] = alloc()
		}
	}

	imageNums := make(map[string]int, len(c.images))
	for _, x := range c.images {
		imageNums[x.name] = alloc()
	}

	objects := make([]string, next) // 1-based; index 0 unused

	// Interactive fields referenced from the AcroForm dictionary.
	var fieldRefs []string
	for i := range c.pages {
		for _, n := range widgetNums[i] {
			fieldRefs = append(fieldRefs, fmt.Sprintf("%d 0 R", n))
		}
	}
	for _, n := range parentNums {
		fieldRefs = append(fieldRefs, fmt.Sprintf("%d 0 R", n))
	}

	catalog := fmt.Sprintf("<</Type /Catalog /Pages %d 0 R", objPages)
	if len(fieldRefs) > 0 {
		catalog += fmt.Sprintf(" /AcroForm <</Fields [%s] /DR <</Font <</Helv %d 0 R /ZaDb %d 0 R>>>> /DA (/Helv 0 Tf 0 g) /NeedAppearances true>>",
			strings.Join(fieldRefs, " "), objHelv, objZaDb)
	}
	catalog += ">>"
	objects[objCatalog] = catalog

	kids := make([]string, len(pageNums))
	for i, n := range pageNums {
		kids[i] = fmt.Sprintf("%d 0 R", n)
	}
	objects[objPages] = fmt.Sprintf("<</Type /Pages /Kids [%s] /Count %d>>",
		strings.Join(kids, " "), len(c.pages))

	objects[objHelv] = "<</Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding>>"
	objects[objZaDb] = "<</Type /Font /Subtype /Type1 /BaseFont /ZapfDingbats>>"
	objects[objInfo] = c.infoDict()

	for i, p := range c.pages {
		annots := append([]int(nil), widgetNums[i]...)
		for gi, g := range c.radios {
			for ki, k := range g.kids {
				if k.pageIndex == i {
					annots = append(annots, kidNums[gi][ki])
				}
			}
		}
		objects[pageNums[i]] = c.pageDict(p, contentNums[i], annots, imageNums)
		objects[contentNums[i]] = streamObject("<</Length %d>>", p.content.Bytes())

		for j, dict := range p.fields {
			objects[widgetNums[i][j]] = dict
		}
	}

	for gi, g := range c.radios {
		objects[parentNums[gi]] = g.parentDict(kidNums[gi])
		for ki, k := range g.kids {
			objects[kidNums[gi][ki]] = k.kidDict(parentNums[gi], g.value)
		}
	}

	for _, x := range c.images {
		objects[imageNums[x.name]] = streamObject(x.dict(), x.data)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, next)
	for n := 1; n < next; n++ {
		offsets[n] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", n, objects[n])
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", next)
	buf.WriteString("0000000000 65535 f \n")
	for n := 1; n < next; n++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[n])
	}

	permID, changeID := uuid.New(), uuid.New()
	fmt.Fprintf(&buf, "trailer\n<</Size %d /Root %d 0 R /Info %d 0 R /ID [<%X> <%X>]>>\nstartxref\n%d\n%%%%EOF\n",
		next, objCatalog, objInfo, permID[:], changeID[:], xrefStart)

	return buf.Bytes()
}

func (c *Canvas) pageDict(p *canvasPage, contentNum int, annots []int, imageNums map[string]int) string {
	res := fmt.Sprintf("/Font <</Helv %d 0 R /ZaDb %d 0 R>>", objHelv, objZaDb)
	if len(p.images) > 0 {
		var xo []string
		for _, name := range p.images {
			xo = append(xo, fmt.Sprintf("/%s %d 0 R", name, imageNums[name]))
		}
		res += " /XObject <<" + strings.Join(xo, " ") + ">>"
	}
	dict := fmt.Sprintf("<</Type /Page /Parent %d 0 R /MediaBox [0 0 %s %s] /Resources <<%s>> /Contents %d 0 R",
		objPages, num(c.size.Wd), num(c.size.Ht), res, contentNum)
	if len(annots) > 0 {
		refs := make([]string, len(annots))
		for i, n := range annots {
			refs[i] = fmt.Sprintf("%d 0 R", n)
		}
		dict += " /Annots [" + strings.Join(refs, " ") + "]"
	}
	return dict + ">>"
}

func (c *Canvas) infoDict() string {
	dict := "<</Producer (gridform)"
	if c.title != "" {
		dict += fmt.Sprintf(" /Title (%s)", escapePDFString(c.title))
	}
	if c.author != "" {
		dict += fmt.Sprintf(" /Author (%s)", escapePDFString(c.author))
	}
	dict += fmt.Sprintf(" /CreationDate (D:%sZ)>>", time.Now().UTC().Format("20060102150405"))
	return dict
}

func streamObject(dictFormat string, data []byte) string {
	var b strings.Builder
	if strings.Contains(dictFormat, "%d") {
		fmt.Fprintf(&b, dictFormat, len(data))
	} else {
		b.WriteString(dictFormat)
	}
	b.WriteString("\nstream\n")
	b.Write(data)
	b.WriteString("\nendstream")
	return b.String()
}
