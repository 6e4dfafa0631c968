package provider

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"interact/model"
	"interact/ollama"
	"interact/tools"
)

const defaultAnthropicBaseURL = "https://api.anthropic.com"

// anthropicMaxTokens caps each turn; the API requires an explicit limit.
const anthropicMaxTokens = 4096

// AnthropicProvider talks to the Anthropic Messages API. Like the OpenAI
// backend it defers credential validation to call time.
type AnthropicProvider struct {
	client  anthropic.Client
	baseURL string
	apiKey  string
}

// NewAnthropicProvider creates an Anthropic provider. An empty baseURL
// targets the official API.
func NewAnthropicProvider(baseURL, apiKey string) *AnthropicProvider {
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &AnthropicProvider{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (p *AnthropicProvider) checkCredential() error {
	if strings.TrimSpace(p.apiKey) == "" {
		return ErrMissingCredential
	}
	return nil
}

// CheckAvailability implements model.Provider. Anthropic has no health
// endpoint, so this sends a one-token probe request.
func (p *AnthropicProvider) CheckAvailability(ctx context.Context) bool {
	if p.checkCredential() != nil {
		return false
	}

	_, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaudeSonnet4_5_20250929,
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	return err == nil
}

// ListModels implements model.Provider. There is no list endpoint, so this
// returns a curated set of current Claude models.
func (p *AnthropicProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	if err := p.checkCredential(); err != nil {
		return nil, err
	}

	known := []anthropic.Model{
		anthropic.ModelClaudeSonnet4_5_20250929,
		anthropic.ModelClaude3_5Haiku20241022,
		anthropic.ModelClaude_3_Opus_20240229,
		anthropic.ModelClaude_3_Haiku_20240307,
	}

	result := make([]ollama.ModelInfo, 0, len(known))
	for _, m := range known {
		result = append(result, ollama.ModelInfo{
			Name:          string(m),
			InternalName:  string(m),
			Provider:      "anthropic",
			ContextLength: ollama.ContextWindowHint(string(m)),
		})
	}
	return result, nil
}

// GenerateResponse implements model.Provider.
func (p *AnthropicProvider) GenerateResponse(ctx context.Context, modelName string, messages []model.Message, schemas []mcptypes.Tool) (*model.Response, error) {
	if err := p.checkCredential(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(modelName) == "" {
		return nil, ErrNoModelSelected
	}

	anthropicMessages, systemBlocks := convertToAnthropicMessages(messages)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(modelName),
		Messages:  anthropicMessages,
		MaxTokens: anthropicMaxTokens,
	}
	if len(systemBlocks) > 0 {
		params.System = systemBlocks
	}
	if len(schemas) > 0 {
		params.Tools = tools.ToAnthropic(schemas)
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, classifyTransportError(err, p.baseURL)
	}

	resp := &model.Response{}
	var text strings.Builder
	for _, block := range msg.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			text.WriteString(variant.Text)
		case anthropic.ToolUseBlock:
			dec := json.NewDecoder(strings.NewReader(string(variant.Input)))
			dec.UseNumber()
			var raw map[string]any
			if err := dec.Decode(&raw); err != nil {
				continue
			}
			resp.ToolCalls = append(resp.ToolCalls, model.ToolCall{
				Name:      variant.Name,
				Arguments: CoerceArguments(raw),
			})
		}
	}

	resp.Text = text.String()
	if resp.Text == "" && len(resp.ToolCalls) == 0 {
		return nil, ErrEmptyResponse
	}
	return resp, nil
}

// convertToAnthropicMessages splits system messages into the separate system
// parameter Anthropic requires and converts the rest, including image parts.
func convertToAnthropicMessages(messages []model.Message) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var systemBlocks []anthropic.TextBlockParam
	out := make([]anthropic.MessageParam, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case model.RoleSystem:
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{Text: msg.PlainText()})
		case model.RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.PlainText())))
		default:
			out = append(out, anthropic.NewUserMessage(anthropicContentBlocks(msg)...))
		}
	}

	return out, systemBlocks
}

func anthropicContentBlocks(msg model.Message) []anthropic.ContentBlockParamUnion {
	var blocks []anthropic.ContentBlockParamUnion
	for _, part := range msg.Parts {
		switch part.Type {
		case model.PartText:
			if part.Text != "" {
				blocks = append(blocks, anthropic.NewTextBlock(part.Text))
			}
		case model.PartImage:
			// Anthropic wants the bare base64 payload, not a data URL.
			if idx := strings.Index(part.ImageURL, ";base64,"); idx != -1 {
				b64 := part.ImageURL[idx+len(";base64,"):]
				blocks = append(blocks, anthropic.NewImageBlockBase64("image/png", b64))
			}
		}
	}
	if len(blocks) == 0 {
		blocks = append(blocks, anthropic.NewTextBlock(msg.PlainText()))
	}
	return blocks
}
