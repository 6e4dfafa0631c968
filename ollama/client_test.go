package ollama

import "testing"

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name string
		host string
		port int
		want string
	}{
		{"empty defaults", "", 0, "http://localhost:11434"},
		{"bare host", "localhost", 11434, "http://localhost:11434"},
		{"bare host default port", "ollama.lan", 0, "http://ollama.lan:11434"},
		{"custom port", "localhost", 8080, "http://localhost:8080"},
		{"scheme preserved", "https://ollama.example.com", 443, "https://ollama.example.com:443"},
		{"scheme with port kept", "http://localhost:9999", 11434, "http://localhost:9999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveBaseURL(tt.host, tt.port)
			if got != tt.want {
				t.Errorf("ResolveBaseURL(%q, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
			}
		})
	}
}

func TestContextWindowHint(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  int64
	}{
		{"gpt-4o before gpt-4", "gpt-4o-mini", 128000},
		{"plain gpt-4", "gpt-4-0613", 8192},
		{"gpt-4.1 most specific", "gpt-4.1-nano", 1047576},
		{"claude family", "claude-sonnet-4-5-20250929", 200000},
		{"llama point release", "llama3.1:8b", 131072},
		{"llama base", "llama3:latest", 8192},
		{"case insensitive", "Qwen2.5:14B", 32768},
		{"unknown model", "phi4:latest", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContextWindowHint(tt.model); got != tt.want {
				t.Errorf("ContextWindowHint(%q) = %d, want %d", tt.model, got, tt.want)
			}
		})
	}
}
