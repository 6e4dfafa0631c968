package provider

import (
	"context"
	"errors"
	"testing"

	"interact/model"
	"interact/provider/testutil"
)

// The mock must keep satisfying the interface the factory returns.
var _ model.Provider = (*testutil.MockProvider)(nil)

func TestMapProviderIDToType(t *testing.T) {
	tests := []struct {
		id   string
		want Type
	}{
		{"ollama", TypeOllama},
		{"openai", TypeOpenAI},
		{"openrouter", TypeOpenAI},
		{"anthropic", TypeAnthropic},
		{"something-else", Type("something-else")},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := MapProviderIDToType(tt.id); got != tt.want {
				t.Errorf("MapProviderIDToType(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestNewProviderUnknownType(t *testing.T) {
	_, err := NewProvider(Config{Type: Type("bogus")})
	if err == nil {
		t.Fatal("NewProvider() with unknown type should fail")
	}
}

func TestNewProviderOllama(t *testing.T) {
	p, err := NewProvider(Config{Type: TypeOllama, Host: "localhost", Port: 11434})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	if _, ok := p.(*OllamaProvider); !ok {
		t.Errorf("NewProvider() = %T, want *OllamaProvider", p)
	}
}

func TestCredentialedProvidersFailFastWithoutKey(t *testing.T) {
	// No network may be touched: the credential check happens first.
	providers := map[string]func() error{
		"openai generate": func() error {
			p := NewOpenAIProvider("", "")
			_, err := p.GenerateResponse(context.Background(), "gpt-4o-mini", testutil.SingleUserMessage("hi"), nil)
			return err
		},
		"openai list": func() error {
			p := NewOpenAIProvider("", "")
			_, err := p.ListModels(context.Background())
			return err
		},
		"anthropic generate": func() error {
			p := NewAnthropicProvider("", "")
			_, err := p.GenerateResponse(context.Background(), "claude-sonnet-4-5-20250929", testutil.SingleUserMessage("hi"), nil)
			return err
		},
		"anthropic list": func() error {
			p := NewAnthropicProvider("", "")
			_, err := p.ListModels(context.Background())
			return err
		},
	}

	for name, call := range providers {
		t.Run(name, func(t *testing.T) {
			err := call()
			if !errors.Is(err, ErrMissingCredential) {
				t.Errorf("error = %v, want ErrMissingCredential", err)
			}
		})
	}
}

func TestOpenAIGenerateRequiresModel(t *testing.T) {
	p := NewOpenAIProvider("", "sk-test")
	_, err := p.GenerateResponse(context.Background(), "", testutil.SingleUserMessage("hi"), nil)
	if !errors.Is(err, ErrNoModelSelected) {
		t.Errorf("error = %v, want ErrNoModelSelected", err)
	}
}
