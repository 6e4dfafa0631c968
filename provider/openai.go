package provider

import (
	"context"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"interact/model"
	"interact/ollama"
	"interact/tools"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIProvider talks to OpenAI or any OpenAI-compatible endpoint.
//
// The credential is checked on every call, before any network attempt, so a
// misconfigured key fails fast with ErrMissingCredential instead of a
// confusing HTTP 401.
type OpenAIProvider struct {
	client  openai.Client
	baseURL string
	apiKey  string
}

// NewOpenAIProvider creates an OpenAI-compatible provider. An empty baseURL
// targets the official API. A missing key is not an error here; every call
// checks it.
func NewOpenAIProvider(baseURL, apiKey string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenAIProvider{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (p *OpenAIProvider) checkCredential() error {
	if strings.TrimSpace(p.apiKey) == "" {
		return ErrMissingCredential
	}
	return nil
}

// CheckAvailability implements model.Provider.
func (p *OpenAIProvider) CheckAvailability(ctx context.Context) bool {
	if p.checkCredential() != nil {
		return false
	}
	_, err := p.client.Models.List(ctx)
	return err == nil
}

// ListModels implements model.Provider. The endpoint's full model inventory
// is narrowed to the chat-capable GPT and o-series families.
func (p *OpenAIProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	if err := p.checkCredential(); err != nil {
		return nil, err
	}

	page, err := p.client.Models.List(ctx)
	if err != nil {
		return nil, classifyTransportError(err, p.baseURL)
	}

	result := make([]ollama.ModelInfo, 0, len(page.Data))
	for _, m := range page.Data {
		if !isChatModel(m.ID) {
			continue
		}
		result = append(result, ollama.ModelInfo{
			Name:          m.ID,
			InternalName:  m.ID,
			Provider:      "openai",
			ContextLength: ollama.ContextWindowHint(m.ID),
		})
	}
	return result, nil
}

// isChatModel filters out embeddings, audio, image and moderation models.
func isChatModel(id string) bool {
	lower := strings.ToLower(id)
	for _, fragment := range []string{"embedding", "whisper", "tts", "dall-e", "moderation", "audio", "realtime", "transcribe", "image"} {
		if strings.Contains(lower, fragment) {
			return false
		}
	}
	return strings.HasPrefix(lower, "gpt-") || strings.HasPrefix(lower, "o1") ||
		strings.HasPrefix(lower, "o3") || strings.HasPrefix(lower, "o4") ||
		strings.HasPrefix(lower, "chatgpt-")
}

// GenerateResponse implements model.Provider. The request streams under the
// hood and is accumulated into one normalized response; callers only ever
// see the complete turn.
func (p *OpenAIProvider) GenerateResponse(ctx context.Context, modelName string, messages []model.Message, schemas []mcptypes.Tool) (*model.Response, error) {
	if err := p.checkCredential(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(modelName) == "" {
		return nil, ErrNoModelSelected
	}

	params := openai.ChatCompletionNewParams{
		Messages: ConvertToOpenAIMessages(messages),
		Model:    openai.ChatModel(modelName),
	}
	if len(schemas) > 0 {
		params.Tools = tools.ToOpenAI(schemas)
	}

	stream := p.client.Chat.Completions.NewStreaming(ctx, params)
	acc := openai.ChatCompletionAccumulator{}

	resp := &model.Response{}
	var content strings.Builder

	for stream.Next() {
		chunk := stream.Current()
		acc.AddChunk(chunk)

		if call, ok := acc.JustFinishedToolCall(); ok {
			// A malformed argument payload drops that call, not the turn.
			if args, ok := DecodeCallArguments(call.Arguments); ok {
				resp.ToolCalls = append(resp.ToolCalls, model.ToolCall{
					Name:      call.Name,
					Arguments: args,
				})
			}
		}

		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			content.WriteString(chunk.Choices[0].Delta.Content)
		}
	}
	if err := stream.Err(); err != nil {
		return nil, classifyTransportError(err, p.baseURL)
	}

	resp.Text = content.String()
	if resp.Text == "" && len(resp.ToolCalls) == 0 {
		return nil, ErrEmptyResponse
	}
	return resp, nil
}
