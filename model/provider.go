package model

import (
	"context"
	"interact/ollama"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Response is the normalized result of one model turn: optional assistant
// text plus any structured tool calls the provider reported.
type Response struct {
	Text      string
	ToolCalls []ToolCall
}

// Provider abstracts LLM provider implementations (Ollama, OpenAI, Anthropic)
// using provider-agnostic types from the model layer.
//
// This interface is defined in the model package (not provider package) to
// avoid import cycles: provider implementations can import model, and callers
// can use the Provider interface without importing the provider package.
type Provider interface {
	// CheckAvailability reports whether the provider endpoint is reachable.
	// It never returns an error: any failure collapses to false.
	CheckAvailability(ctx context.Context) bool

	// ListModels returns the models available on this provider, filtered
	// and annotated per provider convention. It fails with a connectivity
	// or credential error, never silently.
	ListModels(ctx context.Context) ([]ollama.ModelInfo, error)

	// GenerateResponse requests one non-streaming model turn over the full
	// message history, advertising the given tool schemas where the
	// provider supports them.
	GenerateResponse(ctx context.Context, modelName string, messages []Message, tools []mcptypes.Tool) (*Response, error)
}
