package formtpl

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"
	"text/template"
)

// Template is a parsed form-description template. Executing it with a
// binding context yields the JSON description that Decode consumes.
type Template struct {
	name string
	tpl  *template.Template
}

// Load parses the template file at path.
func Load(path string) (*Template, error) {
	tpl, err := template.ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("formtpl: loading template %s: %w", path, err)
	}
	return &Template{name: filepath.Base(path), tpl: tpl}, nil
}

// LoadFS parses the named template file from fsys.
func LoadFS(fsys fs.FS, name string) (*Template, error) {
	tpl, err := template.ParseFS(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("formtpl: loading template %s: %w", name, err)
	}
	return &Template{name: name, tpl: tpl}, nil
}

// Parse parses a template from source text.
func Parse(name, text string) (*Template, error) {
	tpl, err := template.New(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("formtpl: parsing template %s: %w", name, err)
	}
	return &Template{name: name, tpl: tpl}, nil
}

// Name returns the template's name.
func (t *Template) Name() string { return t.name }

// Render binds context into the template and decodes the resulting JSON
// description. The returned document is independent of the template and may
// be rendered any number of times.
func (t *Template) Render(context any) (*Document, error) {
	var buf bytes.Buffer
	if err := t.tpl.Execute(&buf, context); err != nil {
		return nil, fmt.Errorf("formtpl: executing template %s: %w", t.name, err)
	}
	return Decode(buf.Bytes())
}
