package mcp

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lvillar/gridform"
	"github.com/lvillar/gridform/formtpl"
	"github.com/lvillar/gridform/layout"
)

// registerTools adds the built-in gridform tools to the server.
func registerTools(s *Server) {
	s.AddTool(renderFormTool())
	s.AddTool(validateTemplateTool())
	s.AddTool(gridCellTool())
}

func pageSizeArg(name string) (gridform.SizeType, error) {
	if name == "" {
		return gridform.PageSizeLetter, nil
	}
	size, ok := gridform.PageSizeByName(name)
	if !ok {
		return gridform.SizeType{}, fmt.Errorf("unknown page size %q", name)
	}
	return size, nil
}

func renderFormTool() Tool {
	return Tool{
		Name:        "render_form",
		Description: "Render a grid form template to a PDF. The template is JSON with a layout block and a fields array, optionally containing Go template actions bound against the context object. Returns the PDF as base64 unless outputPath is set.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"template": map[string]any{
					"type":        "string",
					"description": "Form description template (JSON, optionally with template actions)",
				},
				"context": map[string]any{
					"type":        "object",
					"description": "Values bound into the template before decoding",
				},
				"pageSize": map[string]any{
					"type":        "string",
					"description": "Letter (default), Legal, A4, or A5",
				},
				"outputPath": map[string]any{
					"type":        "string",
					"description": "Optional file path to save the PDF. If omitted, returns base64.",
				},
			},
			"required": []string{"template"},
		},
		Handler: handleRenderForm,
	}
}

func handleRenderForm(args json.RawMessage) (ToolResult, error) {
	var params struct {
		Template   string         `json:"template"`
		Context    map[string]any `json:"context"`
		PageSize   string         `json:"pageSize"`
		OutputPath string         `json:"outputPath"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return ToolResult{}, fmt.Errorf("decoding arguments: %w", err)
	}
	if params.Template == "" {
		return ToolResult{}, fmt.Errorf("missing 'template' argument")
	}

	size, err := pageSizeArg(params.PageSize)
	if err != nil {
		return ToolResult{}, err
	}

	tpl, err := formtpl.Parse("render_form", params.Template)
	if err != nil {
		return ToolResult{}, err
	}
	doc, err := tpl.Render(params.Context)
	if err != nil {
		return ToolResult{}, err
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf, formtpl.WithPageSize(size)); err != nil {
		return ToolResult{}, err
	}

	if params.OutputPath != "" {
		if err := os.WriteFile(params.OutputPath, buf.Bytes(), 0644); err != nil {
			return ToolResult{}, fmt.Errorf("writing file: %w", err)
		}
		return textResult("PDF created: %s (%d bytes)", params.OutputPath, buf.Len()), nil
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return textResult("PDF created (%d bytes). Base64 data:\n%s", buf.Len(), encoded), nil
}

func validateTemplateTool() Tool {
	return Tool{
		Name:        "validate_template",
		Description: "Bind a context into a form template, validate the resulting description, and report its layout, field counts, and estimated page count without producing a PDF.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"template": map[string]any{
					"type":        "string",
					"description": "Form description template (JSON, optionally with template actions)",
				},
				"context": map[string]any{
					"type":        "object",
					"description": "Values bound into the template before decoding",
				},
				"pageSize": map[string]any{
					"type":        "string",
					"description": "Letter (default), Legal, A4, or A5",
				},
			},
			"required": []string{"template"},
		},
		Handler: handleValidateTemplate,
	}
}

func handleValidateTemplate(args json.RawMessage) (ToolResult, error) {
	var params struct {
		Template string         `json:"template"`
		Context  map[string]any `json:"context"`
		PageSize string         `json:"pageSize"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return ToolResult{}, fmt.Errorf("decoding arguments: %w", err)
	}
	if params.Template == "" {
		return ToolResult{}, fmt.Errorf("missing 'template' argument")
	}

	size, err := pageSizeArg(params.PageSize)
	if err != nil {
		return ToolResult{}, err
	}

	tpl, err := formtpl.Parse("validate_template", params.Template)
	if err != nil {
		return ToolResult{}, err
	}
	doc, err := tpl.Render(params.Context)
	if err != nil {
		return ToolResult{}, err
	}

	lc, err := layout.New(size.Wd, size.Ht, doc.Layout)
	if err != nil {
		return ToolResult{}, err
	}

	counts := make(map[string]int)
	maxRow := 0
	for _, f := range doc.Fields {
		counts[fieldKind(f)]++
		if row := f.PageRow(); row > maxRow {
			maxRow = row
		}
	}

	report := map[string]any{
		"fields":       len(doc.Fields),
		"fieldsByKind": counts,
		"rowsPerPage":  lc.RowsPerPage(),
		"pages":        maxRow/lc.RowsPerPage() + 1,
		"layout": map[string]float64{
			"margin_x":     lc.MarginX,
			"margin_y":     lc.MarginY,
			"row_height":   lc.RowHeight,
			"column_width": lc.ColumnWidth,
		},
	}
	out, _ := json.MarshalIndent(report, "", "  ")
	return textResult("%s", out), nil
}

func fieldKind(f formtpl.Field) string {
	switch f.(type) {
	case *formtpl.Text:
		return "text"
	case *formtpl.Fillable:
		return "fillable"
	case *formtpl.Checkbox:
		return "checkbox"
	case *formtpl.Radio:
		return "radio"
	case *formtpl.Line:
		return "line"
	case *formtpl.Image:
		return "image"
	case *formtpl.Barcode:
		return "barcode"
	}
	return "unknown"
}

func gridCellTool() Tool {
	return Tool{
		Name:        "grid_cell",
		Description: "Resolve a grid cell (row, col, colSpan) to absolute page coordinates for a given page size and layout overrides. Useful for previewing where a field will land.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"row":     map[string]any{"type": "number"},
				"col":     map[string]any{"type": "number"},
				"colSpan": map[string]any{"type": "number"},
				"pageSize": map[string]any{
					"type":        "string",
					"description": "Letter (default), Legal, A4, or A5",
				},
				"layout": map[string]any{
					"type":        "object",
					"description": "Geometry overrides: margin_x, margin_y, row_height, column_width",
				},
			},
			"required": []string{"row"},
		},
		Handler: handleGridCell,
	}
}

func handleGridCell(args json.RawMessage) (ToolResult, error) {
	var params struct {
		Row      int    `json:"row"`
		Col      int    `json:"col"`
		ColSpan  int    `json:"colSpan"`
		PageSize string `json:"pageSize"`
		Layout   struct {
			MarginX     float64 `json:"margin_x"`
			MarginY     float64 `json:"margin_y"`
			RowHeight   float64 `json:"row_height"`
			ColumnWidth float64 `json:"column_width"`
		} `json:"layout"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return ToolResult{}, fmt.Errorf("decoding arguments: %w", err)
	}

	size, err := pageSizeArg(params.PageSize)
	if err != nil {
		return ToolResult{}, err
	}

	lc, err := layout.New(size.Wd, size.Ht, layout.Overrides{
		MarginX:     params.Layout.MarginX,
		MarginY:     params.Layout.MarginY,
		RowHeight:   params.Layout.RowHeight,
		ColumnWidth: params.Layout.ColumnWidth,
	})
	if err != nil {
		return ToolResult{}, err
	}

	x, y, w := lc.Cell(params.Row, params.Col, params.ColSpan)
	report := map[string]any{
		"x":           x,
		"y":           y,
		"width":       w,
		"page":        params.Row / lc.RowsPerPage(),
		"localRow":    lc.LocalRow(params.Row),
		"rowsPerPage": lc.RowsPerPage(),
	}
	out, _ := json.MarshalIndent(report, "", "  ")
	return textResult("%s", out), nil
}
