package provider

import (
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"

	"interact/model"
)

// ConvertToOllamaMessages converts model.Message to Ollama api.Message.
// Image parts are decoded from their data URLs into raw PNG bytes, which is
// how the Ollama chat API accepts images for vision-capable models.
func ConvertToOllamaMessages(messages []model.Message) []api.Message {
	result := make([]api.Message, len(messages))
	for i, msg := range messages {
		out := api.Message{
			Role:    msg.Role,
			Content: msg.PlainText(),
		}
		for _, imageURL := range msg.Images() {
			if data, ok := model.DecodeDataURL(imageURL); ok {
				out.Images = append(out.Images, api.ImageData(data))
			}
		}
		result[i] = out
	}
	return result
}

// ConvertToOpenAIMessages converts model.Message to the OpenAI chat format.
// A text-only message is sent as a plain string; a message with image parts
// becomes an array of typed content parts (text + image_url).
func ConvertToOpenAIMessages(messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))

	for i, msg := range messages {
		switch msg.Role {
		case model.RoleSystem:
			result[i] = openai.SystemMessage(msg.PlainText())
		case model.RoleAssistant:
			result[i] = openai.AssistantMessage(msg.PlainText())
		case model.RoleUser:
			if msg.IsTextOnly() {
				result[i] = openai.UserMessage(msg.PlainText())
				break
			}
			parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(msg.Parts))
			for _, part := range msg.Parts {
				switch part.Type {
				case model.PartText:
					parts = append(parts, openai.TextContentPart(part.Text))
				case model.PartImage:
					parts = append(parts, openai.ImageContentPart(
						openai.ChatCompletionContentPartImageImageURLParam{
							URL: part.ImageURL,
						},
					))
				}
			}
			result[i] = openai.UserMessage(parts)
		default:
			result[i] = openai.UserMessage(msg.PlainText())
		}
	}

	return result
}
