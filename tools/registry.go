// Package tools defines the fixed catalog of window-automation tools the
// assistant may invoke, the conversions of that catalog into each provider's
// wire format, and the dispatcher that executes parsed invocations.
package tools

import (
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Tool names. The catalog is static: these three are the whole surface.
const (
	ToolCaptureScreenshot = "capture_screenshot"
	ToolTypeText          = "type_text"
	ToolSendShortcut      = "send_shortcut"
)

// Param describes one tool parameter for the textual catalog.
type Param struct {
	Name        string
	Type        string // "string" or "boolean"
	Description string
	Required    bool
}

// Definition describes one invocable tool.
//
// RequiresFollowUp marks tools whose result must be sent back to the model
// before the session may stop: the model has to see the outcome to decide
// its next step.
type Definition struct {
	Name             string
	Summary          string
	Params           []Param
	RequiresFollowUp bool

	schema mcptypes.Tool
}

// MCPTool returns the tool's schema for providers with structured tool
// support.
func (d Definition) MCPTool() mcptypes.Tool {
	return d.schema
}

// Registry is the static catalog of invocable tools.
type Registry struct {
	defs   []Definition
	byName map[string]Definition
}

// NewRegistry builds the fixed tool catalog.
func NewRegistry() *Registry {
	defs := []Definition{
		{
			Name:             ToolCaptureScreenshot,
			Summary:          "Capture a screenshot of the selected window. The image is saved for the user to review.",
			RequiresFollowUp: true,
			schema: mcptypes.NewTool(ToolCaptureScreenshot,
				mcptypes.WithDescription("Capture a screenshot of the selected window. The image is saved for the user to review."),
			),
		},
		{
			Name:    ToolTypeText,
			Summary: "Type text into the selected window as keyboard input.",
			Params: []Param{
				{Name: "text", Type: "string", Description: "The text to type", Required: true},
			},
			schema: mcptypes.NewTool(ToolTypeText,
				mcptypes.WithDescription("Type text into the selected window as keyboard input."),
				mcptypes.WithString("text",
					mcptypes.Required(),
					mcptypes.Description("The text to type"),
				),
			),
		},
		{
			Name:    ToolSendShortcut,
			Summary: "Send a keyboard shortcut to the selected window.",
			Params: []Param{
				{Name: "key", Type: "string", Description: "The key to press (e.g. \"s\", \"tab\", \"return\")", Required: true},
				{Name: "command", Type: "boolean", Description: "Hold the command/super modifier"},
				{Name: "option", Type: "boolean", Description: "Hold the option/alt modifier"},
				{Name: "control", Type: "boolean", Description: "Hold the control modifier"},
				{Name: "shift", Type: "boolean", Description: "Hold the shift modifier"},
			},
			schema: mcptypes.NewTool(ToolSendShortcut,
				mcptypes.WithDescription("Send a keyboard shortcut to the selected window."),
				mcptypes.WithString("key",
					mcptypes.Required(),
					mcptypes.Description("The key to press (e.g. \"s\", \"tab\", \"return\")"),
				),
				mcptypes.WithBoolean("command", mcptypes.Description("Hold the command/super modifier")),
				mcptypes.WithBoolean("option", mcptypes.Description("Hold the option/alt modifier")),
				mcptypes.WithBoolean("control", mcptypes.Description("Hold the control modifier")),
				mcptypes.WithBoolean("shift", mcptypes.Description("Hold the shift modifier")),
			),
		},
	}

	byName := make(map[string]Definition, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}

	return &Registry{defs: defs, byName: byName}
}

// Definitions returns every tool definition in catalog order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Lookup returns the definition for a tool name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// MCPTools returns the schemas of every tool, for providers that advertise
// structured tool definitions.
func (r *Registry) MCPTools() []mcptypes.Tool {
	out := make([]mcptypes.Tool, len(r.defs))
	for i, d := range r.defs {
		out[i] = d.schema
	}
	return out
}

// RenderCatalog produces the textual tool catalog for the system preamble:
// every tool with its parameters (required parameters marked), followed by
// the exact reply instruction for requesting a tool.
func (r *Registry) RenderCatalog() string {
	var b strings.Builder

	b.WriteString("You can act on the selected window with these tools:\n")
	for _, d := range r.defs {
		b.WriteString("\n- ")
		b.WriteString(d.Name)
		b.WriteString(": ")
		b.WriteString(d.Summary)
		for _, p := range d.Params {
			b.WriteString("\n    ")
			b.WriteString(p.Name)
			b.WriteString(" (")
			b.WriteString(p.Type)
			if p.Required {
				b.WriteString(", required")
			}
			b.WriteString("): ")
			b.WriteString(p.Description)
		}
	}

	b.WriteString("\n\n")
	b.WriteString(strings.Join([]string{
		"To use a tool, reply with ONLY a single JSON object in a fenced code block:",
		"```json",
		`{"tool": "<tool_name>", "arguments": {"<param>": <value>}}`,
		"```",
		"If no tool is needed, answer in plain language instead.",
	}, "\n"))

	return b.String()
}
