// Command gridform renders a form description template and a binding context
// into a PDF file.
//
// Usage:
//
//	gridform -template invoice.json.tmpl -context values.yaml -out invoice.pdf
//
// The context file holds the values bound into the template and may be JSON
// (.json) or YAML (any other extension). Omitting -context renders the
// template with no bindings, which suits templates that are already plain
// JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lvillar/gridform"
	"github.com/lvillar/gridform/formtpl"
)

func main() {
	var (
		templatePath = flag.String("template", "", "form description template file (required)")
		contextPath  = flag.String("context", "", "binding context file, JSON or YAML")
		outPath      = flag.String("out", "out.pdf", "output PDF file")
		sizeName     = flag.String("size", "Letter", "page size: Letter, Legal, A4, A5")
		title        = flag.String("title", "", "document title")
		author       = flag.String("author", "", "document author")
		noLabels     = flag.Bool("no-page-labels", false, "suppress the page-number stamp on continuation pages")
	)
	flag.Parse()

	if *templatePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*templatePath, *contextPath, *outPath, *sizeName, *title, *author, !*noLabels); err != nil {
		fmt.Fprintf(os.Stderr, "gridform: %v\n", err)
		os.Exit(1)
	}
}

func run(templatePath, contextPath, outPath, sizeName, title, author string, pageLabels bool) error {
	size, ok := gridform.PageSizeByName(sizeName)
	if !ok {
		return fmt.Errorf("unknown page size %q", sizeName)
	}

	context, err := loadContext(contextPath)
	if err != nil {
		return err
	}

	tpl, err := formtpl.Load(templatePath)
	if err != nil {
		return err
	}
	doc, err := tpl.Render(context)
	if err != nil {
		return err
	}

	opts := []formtpl.RenderOption{
		formtpl.WithPageSize(size),
		formtpl.WithPageLabels(pageLabels),
	}
	if title != "" {
		opts = append(opts, formtpl.WithCanvasOptions(gridform.WithTitle(title)))
	}
	if author != "" {
		opts = append(opts, formtpl.WithCanvasOptions(gridform.WithAuthor(author)))
	}

	if err := doc.WriteFile(outPath, opts...); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d fields)\n", outPath, len(doc.Fields))
	return nil
}

// loadContext reads the binding context from a JSON or YAML file. An empty
// path yields an empty context.
func loadContext(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading context: %w", err)
	}

	context := map[string]any{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &context); err != nil {
			return nil, fmt.Errorf("parsing context %s: %w", path, err)
		}
		return context, nil
	}
	if err := yaml.Unmarshal(data, &context); err != nil {
		return nil, fmt.Errorf("parsing context %s: %w", path, err)
	}
	return context, nil
}
