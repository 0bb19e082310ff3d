// Command gridform-mcp is an MCP (Model Context Protocol) server that exposes
// gridform's form rendering to AI assistants.
//
// # Installation
//
//	go install github.com/lvillar/gridform/cmd/gridform-mcp@latest
//
// # Configuration for Claude Desktop
//
// Add to ~/.config/claude/claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "gridform": {
//	      "command": "gridform-mcp"
//	    }
//	  }
//	}
//
// # Available Tools
//
//   - render_form: render a form template plus binding context to a PDF
//   - validate_template: validate a template and report layout and field info
//   - grid_cell: resolve a grid position to absolute page coordinates
package main

import (
	"fmt"
	"os"

	"github.com/lvillar/gridform/mcp"
)

func main() {
	server := mcp.NewServer()

	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "gridform-mcp: %v\n", err)
		os.Exit(1)
	}
}
