package provider

import (
	"context"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"interact/model"
	"interact/ollama"
	"interact/tools"
)

// OllamaProvider talks to a local or remote Ollama server. It needs no
// credential: reachability is the only precondition.
type OllamaProvider struct {
	client *ollama.Client
}

// NewOllamaProvider creates a provider for the Ollama server at host:port.
// Scheme-less hosts are treated as plain HTTP.
func NewOllamaProvider(host string, port int) (*OllamaProvider, error) {
	client, err := ollama.NewClient(host, port)
	if err != nil {
		return nil, err
	}
	return &OllamaProvider{client: client}, nil
}

// CheckAvailability implements model.Provider.
func (p *OllamaProvider) CheckAvailability(ctx context.Context) bool {
	return p.client.Ping(ctx) == nil
}

// ListModels implements model.Provider.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	models, err := p.client.ListModels(ctx)
	if err != nil {
		return nil, classifyTransportError(err, p.client.BaseURL())
	}
	return models, nil
}

// GenerateResponse implements model.Provider.
func (p *OllamaProvider) GenerateResponse(ctx context.Context, modelName string, messages []model.Message, schemas []mcptypes.Tool) (*model.Response, error) {
	if strings.TrimSpace(modelName) == "" {
		return nil, ErrNoModelSelected
	}

	msg, err := p.client.ChatModel(ctx, modelName, ConvertToOllamaMessages(messages), tools.ToOllama(schemas))
	if err != nil {
		return nil, classifyTransportError(err, p.client.BaseURL())
	}

	resp := &model.Response{Text: msg.Content}
	for _, call := range msg.ToolCalls {
		resp.ToolCalls = append(resp.ToolCalls, model.ToolCall{
			Name:      call.Function.Name,
			Arguments: CoerceArguments(call.Function.Arguments),
		})
	}

	if resp.Text == "" && len(resp.ToolCalls) == 0 {
		return nil, ErrEmptyResponse
	}
	return resp, nil
}
