package tools

import (
	"github.com/anthropics/anthropic-sdk-go"
	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
)

// The catalog only uses flat object schemas with string and boolean
// properties, so these converters handle exactly that shape.

// ToOllama converts tool schemas to the Ollama API tool format.
func ToOllama(schemas []mcptypes.Tool) []api.Tool {
	out := make([]api.Tool, 0, len(schemas))
	for _, schema := range schemas {
		out = append(out, api.Tool{
			Type: "function",
			Function: api.ToolFunction{
				Name:        schema.Name,
				Description: schema.Description,
				Parameters: api.ToolFunctionParameters{
					Type:       schema.InputSchema.Type,
					Required:   schema.InputSchema.Required,
					Properties: ollamaProperties(schema.InputSchema.Properties),
				},
			},
		})
	}
	return out
}

func ollamaProperties(props map[string]any) map[string]api.ToolProperty {
	out := make(map[string]api.ToolProperty, len(props))
	for name, value := range props {
		prop := api.ToolProperty{}
		if m, ok := value.(map[string]any); ok {
			if t, ok := m["type"].(string); ok {
				prop.Type = api.PropertyType{t}
			}
			if desc, ok := m["description"].(string); ok {
				prop.Description = desc
			}
		}
		out[name] = prop
	}
	return out
}

// ToOpenAI converts tool schemas to the OpenAI function-tool format. The
// input schema is already JSON Schema, so it maps straight into
// FunctionParameters.
func ToOpenAI(schemas []mcptypes.Tool) []openai.ChatCompletionToolUnionParam {
	if len(schemas) == 0 {
		return nil
	}

	out := make([]openai.ChatCompletionToolUnionParam, len(schemas))
	for i, schema := range schemas {
		params := openai.FunctionParameters{
			"type":       schema.InputSchema.Type,
			"properties": schema.InputSchema.Properties,
		}
		if len(schema.InputSchema.Required) > 0 {
			params["required"] = schema.InputSchema.Required
		}

		out[i] = openai.ChatCompletionFunctionTool(
			openai.FunctionDefinitionParam{
				Name:        schema.Name,
				Description: openai.String(schema.Description),
				Parameters:  params,
			},
		)
	}
	return out
}

// ToAnthropic converts tool schemas to Anthropic's tool-use format.
func ToAnthropic(schemas []mcptypes.Tool) []anthropic.ToolUnionParam {
	if len(schemas) == 0 {
		return nil
	}

	out := make([]anthropic.ToolUnionParam, len(schemas))
	for i, schema := range schemas {
		inputSchema := anthropic.ToolInputSchemaParam{
			Properties: schema.InputSchema.Properties,
		}
		if len(schema.InputSchema.Required) > 0 {
			inputSchema.Required = schema.InputSchema.Required
		}

		out[i] = anthropic.ToolUnionParamOfTool(inputSchema, schema.Name)
		if schema.Description != "" {
			out[i].OfTool.Description = anthropic.String(schema.Description)
		}
	}
	return out
}
