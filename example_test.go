package gridform_test

import (
	"bytes"
	"fmt"

	"github.com/lvillar/gridform"
)

func ExampleCanvas() {
	c := gridform.NewCanvas(
		gridform.WithTitle("Delivery survey"),
		gridform.WithAuthor("Acme Corp"),
	)

	c.SetFontSize(14)
	c.Text(50, 742, "Delivery survey")
	c.Line(50, 736, 562, 736)

	c.SetFontSize(10)
	c.Text(50, 700, "Full name:")
	c.TextField("full_name", "Full name", 170, 692, 240, 20, "")

	c.Checkbox("subscribe", "Subscribe to updates", 50, 660, 12, true)

	c.Text(50, 630, "Delivery rating:")
	c.RadioOption("rating", "Delivery rating", "good", true, 170, 628, 12)
	c.RadioOption("rating", "", "poor", false, 230, 628, 12)

	var buf bytes.Buffer
	if err := c.Output(&buf); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Generated PDF: %d bytes\n", buf.Len())
	// Output pattern: Generated PDF: NNNN bytes
}

func ExampleCanvas_multiPage() {
	c := gridform.NewCanvas(gridform.WithPageSize(gridform.PageSizeA4))

	for page := 1; page <= 3; page++ {
		if page > 1 {
			c.AddPage()
		}
		c.SetFontSize(8)
		c.TextRight(gridform.PageSizeA4.Wd-40, 20, fmt.Sprintf("Page %d", page))
	}

	fmt.Printf("Pages: %d\n", c.PageCount())
	// Output: Pages: 3
}
