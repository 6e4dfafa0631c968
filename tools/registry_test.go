package tools

import (
	"strings"
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{ToolCaptureScreenshot, ToolTypeText, ToolSendShortcut} {
		def, ok := r.Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) not found", name)
		}
		if def.Name != name {
			t.Errorf("Lookup(%q).Name = %q", name, def.Name)
		}
	}

	if _, ok := r.Lookup("open_terminal"); ok {
		t.Error("Lookup of an unknown tool should fail")
	}
}

func TestRegistryFollowUpFlags(t *testing.T) {
	r := NewRegistry()

	capture, _ := r.Lookup(ToolCaptureScreenshot)
	if !capture.RequiresFollowUp {
		t.Error("capture_screenshot must require a follow-up turn")
	}

	for _, name := range []string{ToolTypeText, ToolSendShortcut} {
		def, _ := r.Lookup(name)
		if def.RequiresFollowUp {
			t.Errorf("%s should be fire-and-forget", name)
		}
	}
}

func TestRegistrySchemas(t *testing.T) {
	r := NewRegistry()

	schemas := r.MCPTools()
	if len(schemas) != 3 {
		t.Fatalf("got %d schemas, want 3", len(schemas))
	}

	typeText, _ := r.Lookup(ToolTypeText)
	schema := typeText.MCPTool()
	if len(schema.InputSchema.Required) != 1 || schema.InputSchema.Required[0] != "text" {
		t.Errorf("type_text required = %v, want [text]", schema.InputSchema.Required)
	}

	shortcut, _ := r.Lookup(ToolSendShortcut)
	props := shortcut.MCPTool().InputSchema.Properties
	for _, p := range []string{"key", "command", "option", "control", "shift"} {
		if _, ok := props[p]; !ok {
			t.Errorf("send_shortcut schema missing property %q", p)
		}
	}
}

func TestRenderCatalog(t *testing.T) {
	catalog := NewRegistry().RenderCatalog()

	for _, want := range []string{
		ToolCaptureScreenshot,
		ToolTypeText,
		ToolSendShortcut,
		"text (string, required)",
		"key (string, required)",
		`{"tool": "<tool_name>", "arguments": {"<param>": <value>}}`,
	} {
		if !strings.Contains(catalog, want) {
			t.Errorf("catalog missing %q", want)
		}
	}
}
