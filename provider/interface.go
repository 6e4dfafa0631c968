// Package provider implements the LLM backends behind the model.Provider
// interface, plus the shared response parsing that recovers tool requests
// from assistant output.
//
// Three backends are supported:
//   - provider.OllamaProvider: local Ollama server, no credential
//   - provider.OpenAIProvider: OpenAI-compatible API, bearer credential
//   - provider.AnthropicProvider: Anthropic API, bearer credential
//
// provider.NewProvider() is the factory that creates backends from config.
// All backends normalize their network responses into model.Response
// (text + structured tool calls), so callers never branch on provider type.
package provider

// Type identifies the provider implementation.
type Type string

const (
	TypeOllama    Type = "ollama"
	TypeOpenAI    Type = "openai"
	TypeAnthropic Type = "anthropic"
)

// Config holds provider-specific connection settings.
type Config struct {
	Type    Type
	Host    string // Ollama host, may omit the scheme
	Port    int    // Ollama port (0 = default 11434)
	BaseURL string // Cloud provider endpoint
	APIKey  string // Bearer credential (unused for Ollama)
}
