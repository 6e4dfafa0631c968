package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// Client wraps the Ollama API client for a single server.
type Client struct {
	client  *api.Client
	baseURL string
}

// NewClient creates a client for the Ollama server at host:port.
// A host without a scheme is normalized to plain HTTP; a host that already
// carries a scheme is used as-is (port appended when missing).
func NewClient(host string, port int) (*Client, error) {
	baseURL := ResolveBaseURL(host, port)

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	client := api.NewClient(parsedURL, http.DefaultClient)

	return &Client{
		client:  client,
		baseURL: baseURL,
	}, nil
}

// ResolveBaseURL builds the server base URL from a host string and port.
// "localhost" + 11434 → "http://localhost:11434"; a scheme in the host is
// preserved; an empty host defaults to localhost.
func ResolveBaseURL(host string, port int) string {
	if host == "" {
		host = "localhost"
	}
	if port == 0 {
		port = 11434
	}

	if !strings.Contains(host, "://") {
		host = "http://" + host
	}

	parsed, err := url.Parse(host)
	if err != nil || parsed.Host == "" {
		return fmt.Sprintf("http://%s:%d", strings.TrimPrefix(host, "http://"), port)
	}
	if parsed.Port() == "" {
		parsed.Host = fmt.Sprintf("%s:%d", parsed.Hostname(), port)
	}
	return parsed.String()
}

// BaseURL returns the resolved server URL, used in connectivity error messages.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ChatModel sends a non-streaming chat request and returns the final message.
func (c *Client) ChatModel(ctx context.Context, modelName string, messages []api.Message, tools []api.Tool) (*api.Message, error) {
	req := &api.ChatRequest{
		Model:    modelName,
		Messages: messages,
		Tools:    tools,
		Stream:   func(b bool) *bool { return &b }(false),
	}
	return c.chat(ctx, req)
}

func (c *Client) chat(ctx context.Context, req *api.ChatRequest) (*api.Message, error) {
	var last api.Message
	var got bool

	respFunc := func(resp api.ChatResponse) error {
		last = resp.Message
		got = true
		return nil
	}

	if err := c.client.Chat(ctx, req, respFunc); err != nil {
		return nil, err
	}
	if !got {
		return nil, fmt.Errorf("ollama returned no response message")
	}
	return &last, nil
}

// ModelInfo describes one model as reported by a provider.
type ModelInfo struct {
	Name          string // Display name
	InternalName  string // Full API name
	Size          int64
	Provider      string // Provider ID: "ollama", "openai", "anthropic"
	ContextLength int64  // Context-window hint, 0 when unknown
}

// ListModels returns the models available on the Ollama server (GET /api/tags).
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	resp, err := c.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	models := make([]ModelInfo, len(resp.Models))
	for i, model := range resp.Models {
		models[i] = ModelInfo{
			Name:          model.Name,
			InternalName:  model.Name,
			Size:          model.Size,
			Provider:      "ollama",
			ContextLength: ContextWindowHint(model.Name),
		}
	}

	return models, nil
}

// Ping checks if the Ollama server is reachable (availability probe).
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.client.List(ctx)
	return err
}

// contextWindows maps model-name fragments to context-window sizes.
// This is a curated list based on published model cards; models not listed
// here carry no context-length hint.
var contextWindows = map[string]int64{
	"gpt-4.1":       1047576,
	"gpt-4o":        128000,
	"gpt-4-turbo":   128000,
	"gpt-4":         8192,
	"gpt-3.5":       16385,
	"o1":            200000,
	"o3":            200000,
	"claude":        200000,
	"llama3.1":      131072,
	"llama3.2":      131072,
	"llama3.3":      131072,
	"llama3":        8192,
	"qwen":          32768,
	"mistral":       32768,
	"command-r":     128000,
	"deepseek":      65536,
}

// orderedFragments defines the order to match name fragments.
// IMPORTANT: Most specific fragments first to avoid false matches
// (e.g. "gpt-4o" must be checked before "gpt-4").
var orderedFragments = []string{
	"gpt-4.1", "gpt-4o", "gpt-4-turbo", "gpt-4", "gpt-3.5",
	"o1", "o3",
	"claude",
	"llama3.1", "llama3.2", "llama3.3", "llama3",
	"command-r", "qwen", "mistral", "deepseek",
}

// ContextWindowHint returns the known context-window size for a model name,
// or 0 when the model is not in the curated table.
func ContextWindowHint(modelName string) int64 {
	name := strings.ToLower(modelName)

	for _, fragment := range orderedFragments {
		if strings.Contains(name, fragment) {
			return contextWindows[fragment]
		}
	}

	return 0
}
