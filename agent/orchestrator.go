// Package agent runs the automation loop: it carries the conversation with
// the model, turns tool requests into dispatched actions, feeds results back,
// and stops on plain answers, repeated requests, errors, or the turn ceiling.
package agent

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"interact/config"
	"interact/model"
	"interact/provider"
	"interact/tools"
)

// State is the session lifecycle state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateFailed  State = "failed"
)

// Entry author kinds for the user-facing transcript.
const (
	AuthorUser      = "user"
	AuthorAssistant = "assistant"
	AuthorTool      = "tool"
	AuthorSystem    = "system"
)

// Entry is one line of the user-facing transcript. The transcript is what
// the user reads; the model conversation is kept separately.
type Entry struct {
	ID        string
	Author    string
	Content   string
	Timestamp time.Time
}

// DefaultMaxTurns caps model turns per instruction so a confused model
// cannot loop forever.
const DefaultMaxTurns = 25

const defaultSystemPrompt = "You are an assistant operating a desktop application window on the user's behalf. " +
	"Work in small, careful steps: inspect the window before acting when unsure, and stop with a plain-language summary when the task is done or cannot proceed."

// Session drives one automation conversation against a single provider,
// model, and window. Methods are safe for concurrent use.
type Session struct {
	provider   model.Provider
	modelName  string
	dispatcher *tools.Dispatcher

	systemPrompt string
	maxTurns     int

	mu         sync.Mutex
	state      State
	history    []model.Message // model-facing conversation
	transcript []Entry         // user-facing log
	lastErr    error
}

// NewSession creates an idle session. The dispatcher's selected window is
// the automation target; starting without one fails.
func NewSession(p model.Provider, modelName string, dispatcher *tools.Dispatcher) *Session {
	return &Session{
		provider:     p,
		modelName:    modelName,
		dispatcher:   dispatcher,
		systemPrompt: defaultSystemPrompt,
		maxTurns:     DefaultMaxTurns,
		state:        StateIdle,
	}
}

// SetSystemPrompt overrides the default behavior prompt. Takes effect on the
// next Start.
func (s *Session) SetSystemPrompt(prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(prompt) != "" {
		s.systemPrompt = prompt
	}
}

// SetMaxTurns overrides the per-instruction turn ceiling.
func (s *Session) SetMaxTurns(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > 0 {
		s.maxTurns = n
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the error that moved the session to StateFailed, if any.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Transcript returns a copy of the user-facing transcript.
func (s *Session) Transcript() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// ResetConversation clears the conversation history and transcript. It is a
// no-op while an instruction is running.
func (s *Session) ResetConversation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRunning {
		return
	}
	s.history = nil
	s.transcript = nil
	s.state = StateIdle
	s.lastErr = nil
}

// Start runs one instruction to completion: it loops model turns and tool
// dispatches until the model answers in plain language, repeats itself, hits
// the turn ceiling, or fails.
//
// Starting while already running is a no-op. A blank instruction and a
// missing window selection are rejected before any model call.
func (s *Session) Start(ctx context.Context, instruction string) error {
	s.mu.Lock()
	if s.state == StateRunning {
		s.mu.Unlock()
		return nil
	}
	if strings.TrimSpace(instruction) == "" {
		s.mu.Unlock()
		return errors.New("instruction is empty")
	}
	if _, ok := s.dispatcher.Window(); !ok {
		s.mu.Unlock()
		return errors.New("no window selected")
	}

	// Each instruction starts a fresh conversation.
	s.state = StateRunning
	s.lastErr = nil
	s.history = []model.Message{model.NewTextMessage(model.RoleUser, instruction)}
	s.transcript = nil
	s.appendEntryLocked(AuthorUser, instruction)
	s.mu.Unlock()

	err := s.runLoop(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailed
		s.lastErr = err
		s.appendEntryLocked(AuthorSystem, fmt.Sprintf("Automation failed: %v", err))
		return err
	}
	s.state = StateIdle
	return nil
}

func (s *Session) runLoop(ctx context.Context) error {
	var previous []model.ToolCall

	for turn := 0; ; turn++ {
		if turn >= s.maxTurns {
			s.recordNotice(fmt.Sprintf("Stopped after %d turns without completing the instruction.", s.maxTurns))
			return nil
		}

		resp, err := s.provider.GenerateResponse(ctx, s.modelName, s.conversation(), s.dispatcher.Registry().MCPTools())
		if err != nil {
			return fmt.Errorf("model turn failed: %w", err)
		}

		if strings.TrimSpace(resp.Text) != "" {
			s.mu.Lock()
			s.history = append(s.history, model.NewTextMessage(model.RoleAssistant, resp.Text))
			s.appendEntryLocked(AuthorAssistant, resp.Text)
			s.mu.Unlock()
		}

		calls := resp.ToolCalls
		if len(calls) == 0 && resp.Text != "" {
			// Models without native tool support leak the request as JSON
			// inside their text; recover it before treating the turn as a
			// plain answer.
			if leaked := provider.ParseLeakedToolCall(resp.Text); leaked != nil {
				calls = []model.ToolCall{*leaked}
			}
		}

		if len(calls) == 0 {
			return nil // plain answer, instruction finished
		}

		if sameInvocationSet(calls, previous) {
			s.recordNotice("Repeated tool request detected, stopping automation.")
			return nil
		}
		previous = calls

		needsFollowUp, err := s.dispatchAll(ctx, calls)
		if err != nil {
			return err
		}
		if !needsFollowUp {
			return nil
		}
	}
}

// dispatchAll executes the turn's tool calls in order and appends their
// results. It reports whether any executed tool requires its result to be
// sent back to the model.
func (s *Session) dispatchAll(ctx context.Context, calls []model.ToolCall) (bool, error) {
	needsFollowUp := false

	for _, call := range calls {
		result, err := s.dispatcher.Dispatch(ctx, call)
		if err != nil {
			return false, fmt.Errorf("tool %s: %w", call.Name, err)
		}

		s.mu.Lock()
		s.appendEntryLocked(AuthorTool, result.Message)
		s.mu.Unlock()

		def, _ := s.dispatcher.Registry().Lookup(call.Name)
		if def.RequiresFollowUp {
			needsFollowUp = true
			followUp := model.NewTextMessage(model.RoleUser, result.Message)
			if result.ImageURL != "" {
				followUp = model.NewUserImageMessage(result.Message, result.ImageURL)
			}
			s.mu.Lock()
			s.history = append(s.history, followUp)
			s.mu.Unlock()
		} else if config.Debug && config.DebugLog != nil {
			config.DebugLog.Printf("tool %s dispatched fire-and-forget", call.Name)
		}
	}

	return needsFollowUp, nil
}

// conversation builds the model-facing message list: a fresh system preamble
// (behavior prompt + current tool catalog) prepended to the persistent
// history. The preamble is rebuilt each turn, never stored.
func (s *Session) conversation() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	preamble := s.systemPrompt + "\n\n" + s.dispatcher.Registry().RenderCatalog()
	msgs := make([]model.Message, 0, len(s.history)+1)
	msgs = append(msgs, model.NewTextMessage(model.RoleSystem, preamble))
	msgs = append(msgs, s.history...)
	return msgs
}

func (s *Session) recordNotice(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendEntryLocked(AuthorSystem, text)
}

func (s *Session) appendEntryLocked(author, content string) {
	s.transcript = append(s.transcript, Entry{
		ID:        uuid.NewString(),
		Author:    author,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// sameInvocationSet reports whether two turns requested the same multiset of
// tool calls, which signals the model is stuck.
func sameInvocationSet(a, b []model.ToolCall) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}

	fa := make([]string, len(a))
	fb := make([]string, len(b))
	for i := range a {
		fa[i] = fingerprint(a[i])
		fb[i] = fingerprint(b[i])
	}
	sort.Strings(fa)
	sort.Strings(fb)

	for i := range fa {
		if fa[i] != fb[i] {
			return false
		}
	}
	return true
}

func fingerprint(call model.ToolCall) string {
	keys := make([]string, 0, len(call.Arguments))
	for k := range call.Arguments {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(call.Name)
	for _, k := range keys {
		b.WriteString("\x00")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(call.Arguments[k])
	}
	return b.String()
}
