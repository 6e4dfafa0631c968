package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"interact/automation"
	"interact/model"
	"interact/provider/testutil"
	"interact/tools"
)

type nopController struct {
	typed []string
}

func (c *nopController) ListWindows(ctx context.Context) ([]automation.Window, error) {
	return nil, nil
}

func (c *nopController) CaptureWindow(ctx context.Context, w automation.Window) ([]byte, error) {
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func (c *nopController) TypeText(ctx context.Context, w automation.Window, text string) error {
	c.typed = append(c.typed, text)
	return nil
}

func (c *nopController) SendShortcut(ctx context.Context, w automation.Window, key string, mods automation.Modifiers) error {
	return nil
}

func newTestSession(t *testing.T, p model.Provider) (*Session, *nopController) {
	t.Helper()
	controller := &nopController{}
	dispatcher := tools.NewDispatcher(tools.NewRegistry(), controller, t.TempDir())
	dispatcher.SetWindow(automation.Window{ID: "0x7", Title: "Notes"})
	return NewSession(p, "test-model", dispatcher), controller
}

// scripted returns a provider that plays back responses in order.
func scripted(responses ...*model.Response) *testutil.MockProvider {
	p := testutil.NewMockProvider()
	i := 0
	p.GenerateResponseFunc = func(ctx context.Context, modelName string, messages []model.Message, schemas []mcptypes.Tool) (*model.Response, error) {
		if i >= len(responses) {
			return &model.Response{Text: "nothing left to do"}, nil
		}
		r := responses[i]
		i++
		return r, nil
	}
	return p
}

func TestStartPlainAnswerFinishes(t *testing.T) {
	p := scripted(&model.Response{Text: "The file is already saved."})
	s, _ := newTestSession(t, p)

	if err := s.Start(context.Background(), "save the file"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want idle", s.State())
	}

	entries := s.Transcript()
	if len(entries) != 2 {
		t.Fatalf("transcript has %d entries, want 2", len(entries))
	}
	if entries[0].Author != AuthorUser || entries[1].Author != AuthorAssistant {
		t.Errorf("transcript authors = %s, %s", entries[0].Author, entries[1].Author)
	}
}

func TestStartRejectsBlankInstruction(t *testing.T) {
	s, _ := newTestSession(t, testutil.NewMockProvider())

	if err := s.Start(context.Background(), "   "); err == nil {
		t.Fatal("blank instruction must be rejected")
	}
	if len(s.Transcript()) != 0 {
		t.Error("rejected instruction must not touch the transcript")
	}
}

func TestStartRequiresWindow(t *testing.T) {
	dispatcher := tools.NewDispatcher(tools.NewRegistry(), &nopController{}, t.TempDir())
	s := NewSession(testutil.NewMockProvider(), "test-model", dispatcher)

	if err := s.Start(context.Background(), "do something"); err == nil {
		t.Fatal("starting without a window must fail")
	}
}

func TestCaptureFollowUpReachesModel(t *testing.T) {
	p := scripted(
		&model.Response{ToolCalls: []model.ToolCall{{Name: tools.ToolCaptureScreenshot}}},
		&model.Response{Text: "The window shows an empty document."},
	)
	s, _ := newTestSession(t, p)

	if err := s.Start(context.Background(), "what's on screen?"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if len(p.Calls) != 2 {
		t.Fatalf("provider called %d times, want 2", len(p.Calls))
	}

	// The second turn must end with a user message carrying the screenshot.
	second := p.Calls[1]
	last := second[len(second)-1]
	if last.Role != model.RoleUser {
		t.Fatalf("last message role = %s, want user", last.Role)
	}
	if len(last.Images()) != 1 {
		t.Error("follow-up message must embed the captured image")
	}
	if !strings.Contains(last.PlainText(), "Screenshot captured") {
		t.Errorf("follow-up text = %q", last.PlainText())
	}

	// Each turn gets exactly one fresh system preamble at the front.
	for i, call := range p.Calls {
		if call[0].Role != model.RoleSystem {
			t.Errorf("call %d does not start with the system preamble", i)
		}
		for _, msg := range call[1:] {
			if msg.Role == model.RoleSystem {
				t.Errorf("call %d has a persisted system message", i)
			}
		}
	}
}

func TestFireAndForgetToolEndsInstruction(t *testing.T) {
	p := scripted(
		&model.Response{ToolCalls: []model.ToolCall{{Name: tools.ToolTypeText, Arguments: map[string]string{"text": "hello"}}}},
	)
	s, controller := newTestSession(t, p)

	if err := s.Start(context.Background(), "type hello"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if len(controller.typed) != 1 || controller.typed[0] != "hello" {
		t.Errorf("typed = %v", controller.typed)
	}
	if len(p.Calls) != 1 {
		t.Errorf("provider called %d times, want 1 (no follow-up needed)", len(p.Calls))
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want idle", s.State())
	}
}

func TestLeakedJSONToolCallIsRecovered(t *testing.T) {
	p := scripted(
		&model.Response{Text: "```json\n{\"tool\": \"type_text\", \"arguments\": {\"text\": \"hi\"}}\n```"},
	)
	s, controller := newTestSession(t, p)

	if err := s.Start(context.Background(), "type hi"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if len(controller.typed) != 1 || controller.typed[0] != "hi" {
		t.Errorf("typed = %v, leaked call was not recovered", controller.typed)
	}
}

func TestRepeatedInvocationStops(t *testing.T) {
	call := model.ToolCall{Name: tools.ToolCaptureScreenshot}
	p := scripted(
		&model.Response{ToolCalls: []model.ToolCall{call}},
		&model.Response{ToolCalls: []model.ToolCall{call}},
		&model.Response{ToolCalls: []model.ToolCall{call}},
	)
	s, _ := newTestSession(t, p)

	if err := s.Start(context.Background(), "look at the screen"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// First capture runs; the identical second request trips the guard.
	if len(p.Calls) != 2 {
		t.Errorf("provider called %d times, want 2", len(p.Calls))
	}

	entries := s.Transcript()
	lastEntry := entries[len(entries)-1]
	if lastEntry.Author != AuthorSystem || !strings.Contains(lastEntry.Content, "Repeated tool request") {
		t.Errorf("last entry = %+v, want the repeat notice", lastEntry)
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want idle", s.State())
	}
}

func TestTurnCeiling(t *testing.T) {
	p := testutil.NewMockProvider()
	turn := 0
	p.GenerateResponseFunc = func(ctx context.Context, modelName string, messages []model.Message, schemas []mcptypes.Tool) (*model.Response, error) {
		turn++
		// Vary the arguments so the repeat guard never fires.
		return &model.Response{ToolCalls: []model.ToolCall{
			{Name: tools.ToolCaptureScreenshot},
			{Name: tools.ToolTypeText, Arguments: map[string]string{"text": fmt.Sprintf("step %d", turn)}},
		}}, nil
	}

	s, _ := newTestSession(t, p)
	s.SetMaxTurns(3)

	if err := s.Start(context.Background(), "never finish"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if len(p.Calls) != 3 {
		t.Errorf("provider called %d times, want 3", len(p.Calls))
	}
	entries := s.Transcript()
	lastEntry := entries[len(entries)-1]
	if lastEntry.Author != AuthorSystem || !strings.Contains(lastEntry.Content, "Stopped after 3 turns") {
		t.Errorf("last entry = %+v, want the turn-ceiling notice", lastEntry)
	}
}

func TestProviderErrorFailsSession(t *testing.T) {
	p := testutil.NewMockProvider()
	boom := errors.New("connection refused")
	p.GenerateResponseFunc = func(ctx context.Context, modelName string, messages []model.Message, schemas []mcptypes.Tool) (*model.Response, error) {
		return nil, boom
	}

	s, _ := newTestSession(t, p)

	err := s.Start(context.Background(), "do something")
	if !errors.Is(err, boom) {
		t.Fatalf("Start() error = %v, want wrapped provider error", err)
	}
	if s.State() != StateFailed {
		t.Errorf("state = %v, want failed", s.State())
	}
	if !errors.Is(s.LastError(), boom) {
		t.Errorf("LastError() = %v", s.LastError())
	}
}

func TestResetConversation(t *testing.T) {
	p := scripted(&model.Response{Text: "done"})
	s, _ := newTestSession(t, p)

	if err := s.Start(context.Background(), "first"); err != nil {
		t.Fatal(err)
	}
	if len(s.Transcript()) == 0 {
		t.Fatal("expected transcript entries before reset")
	}

	s.ResetConversation()
	if len(s.Transcript()) != 0 {
		t.Error("reset must clear the transcript")
	}
	if s.State() != StateIdle {
		t.Errorf("state after reset = %v", s.State())
	}

	// A fresh instruction starts from an empty history.
	p2 := testutil.NewMockProvider()
	s2, _ := newTestSession(t, p2)
	if err := s2.Start(context.Background(), "only"); err != nil {
		t.Fatal(err)
	}
	if got := len(p2.Calls[0]); got != 2 { // preamble + instruction
		t.Errorf("first call carries %d messages, want 2", got)
	}
}

func TestSameInvocationSet(t *testing.T) {
	a := model.ToolCall{Name: "type_text", Arguments: map[string]string{"text": "x"}}
	b := model.ToolCall{Name: "type_text", Arguments: map[string]string{"text": "y"}}
	c := model.ToolCall{Name: "capture_screenshot"}

	tests := []struct {
		name string
		x, y []model.ToolCall
		want bool
	}{
		{"identical single", []model.ToolCall{a}, []model.ToolCall{a}, true},
		{"different args", []model.ToolCall{a}, []model.ToolCall{b}, false},
		{"order ignored", []model.ToolCall{a, c}, []model.ToolCall{c, a}, true},
		{"different lengths", []model.ToolCall{a}, []model.ToolCall{a, c}, false},
		{"both empty", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameInvocationSet(tt.x, tt.y); got != tt.want {
				t.Errorf("sameInvocationSet() = %v, want %v", got, tt.want)
			}
		})
	}
}
