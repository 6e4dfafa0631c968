package provider

import (
	"fmt"

	"interact/model"
)

// NewProvider creates a backend from configuration. This is the one place
// that dispatches on provider type; everything downstream works against
// model.Provider.
func NewProvider(cfg Config) (model.Provider, error) {
	switch cfg.Type {
	case TypeOllama:
		return NewOllamaProvider(cfg.Host, cfg.Port)
	case TypeOpenAI:
		return NewOpenAIProvider(cfg.BaseURL, cfg.APIKey), nil
	case TypeAnthropic:
		return NewAnthropicProvider(cfg.BaseURL, cfg.APIKey), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}

// MapProviderIDToType converts a user-facing provider ID to a Type.
// OpenRouter is OpenAI-compatible, so it maps to the OpenAI backend.
// Unknown IDs pass through unchanged; the factory rejects them.
func MapProviderIDToType(id string) Type {
	switch id {
	case "ollama":
		return TypeOllama
	case "openai", "openrouter":
		return TypeOpenAI
	case "anthropic":
		return TypeAnthropic
	default:
		return Type(id)
	}
}
