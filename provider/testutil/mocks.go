// Package testutil provides a scriptable Provider implementation for tests.
package testutil

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"interact/model"
	"interact/ollama"
)

// MockProvider is a scriptable model.Provider. Each hook may be nil, in
// which case a benign default is used.
type MockProvider struct {
	GenerateResponseFunc func(ctx context.Context, modelName string, messages []model.Message, tools []mcptypes.Tool) (*model.Response, error)
	ListModelsFunc       func(ctx context.Context) ([]ollama.ModelInfo, error)
	Available            bool

	// Calls records the message history passed to each GenerateResponse.
	Calls [][]model.Message
}

// NewMockProvider returns a mock that answers every turn with plain text.
func NewMockProvider() *MockProvider {
	return &MockProvider{Available: true}
}

func (m *MockProvider) CheckAvailability(ctx context.Context) bool {
	return m.Available
}

func (m *MockProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	if m.ListModelsFunc != nil {
		return m.ListModelsFunc(ctx)
	}
	return []ollama.ModelInfo{{Name: "mock-model", InternalName: "mock-model", Provider: "mock"}}, nil
}

func (m *MockProvider) GenerateResponse(ctx context.Context, modelName string, messages []model.Message, tools []mcptypes.Tool) (*model.Response, error) {
	m.Calls = append(m.Calls, messages)
	if m.GenerateResponseFunc != nil {
		return m.GenerateResponseFunc(ctx, modelName, messages, tools)
	}
	return &model.Response{Text: "ok"}, nil
}

// SingleUserMessage builds a one-message history.
func SingleUserMessage(text string) []model.Message {
	return []model.Message{model.NewTextMessage(model.RoleUser, text)}
}
