package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"interact/automation"
	"interact/config"
	"interact/model"
)

// ErrUnknownTool reports a request for a tool outside the catalog.
var ErrUnknownTool = errors.New("unknown tool")

// ErrNoWindow reports dispatch before a target window was selected.
var ErrNoWindow = errors.New("no window selected")

// MissingArgumentError reports a tool call without one of its required
// arguments. Nothing is executed when this is returned.
type MissingArgumentError struct {
	Tool     string
	Argument string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("tool %s: missing required argument %q", e.Tool, e.Argument)
}

const captureTimeout = 5 * time.Second

// Recorder receives a record of every executed tool call, for audit logging.
// Recording failures never affect dispatch.
type Recorder func(tool string, args map[string]string, summary string)

// Dispatcher validates parsed tool calls and executes them against the
// selected window.
type Dispatcher struct {
	registry   *Registry
	controller automation.Controller
	scratchDir string
	recorder   Recorder

	window    automation.Window
	hasWindow bool
}

// NewDispatcher creates a dispatcher. scratchDir is where captured
// screenshots are persisted for user review.
func NewDispatcher(registry *Registry, controller automation.Controller, scratchDir string) *Dispatcher {
	return &Dispatcher{
		registry:   registry,
		controller: controller,
		scratchDir: scratchDir,
	}
}

// SetRecorder installs the audit hook.
func (d *Dispatcher) SetRecorder(r Recorder) {
	d.recorder = r
}

// SetWindow selects the window all subsequent calls act on.
func (d *Dispatcher) SetWindow(w automation.Window) {
	d.window = w
	d.hasWindow = true
}

// Window returns the selected window, if one was set.
func (d *Dispatcher) Window() (automation.Window, bool) {
	return d.window, d.hasWindow
}

// Registry returns the tool catalog backing this dispatcher.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch validates and executes one tool call. Validation errors (unknown
// tool, missing required argument) are returned before anything executes.
func (d *Dispatcher) Dispatch(ctx context.Context, call model.ToolCall) (*model.ToolResult, error) {
	def, ok := d.registry.Lookup(call.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, call.Name)
	}
	if !d.hasWindow {
		return nil, ErrNoWindow
	}

	for _, p := range def.Params {
		if !p.Required {
			continue
		}
		if strings.TrimSpace(call.Arguments[p.Name]) == "" {
			return nil, &MissingArgumentError{Tool: call.Name, Argument: p.Name}
		}
	}

	var result *model.ToolResult
	var err error
	switch call.Name {
	case ToolCaptureScreenshot:
		result, err = d.captureScreenshot(ctx)
	case ToolTypeText:
		result, err = d.typeText(ctx, call.Arguments)
	case ToolSendShortcut:
		result, err = d.sendShortcut(ctx, call.Arguments)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, call.Name)
	}

	if err == nil && d.recorder != nil {
		d.recorder(call.Name, call.Arguments, result.Message)
	}
	return result, err
}

func (d *Dispatcher) captureScreenshot(ctx context.Context) (*model.ToolResult, error) {
	ctx, cancel := context.WithTimeout(ctx, captureTimeout)
	defer cancel()

	png, err := d.controller.CaptureWindow(ctx, d.window)
	if err != nil {
		return nil, err
	}

	path, persistErr := d.persistScreenshot(png)
	if persistErr != nil {
		// The capture itself succeeded; report it without the saved copy
		// rather than failing the call.
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Printf("screenshot persist failed: %v", persistErr)
		}
		return &model.ToolResult{
			Message:  "Screenshot captured, but saving it for review failed; the image below is the only copy. A human should verify any conclusions drawn from it.",
			ImageURL: model.EncodeDataURL(png),
		}, nil
	}

	return &model.ToolResult{
		Message:  fmt.Sprintf("Screenshot captured and saved to %s. A human should verify any conclusions drawn from it.", path),
		ImageURL: model.EncodeDataURL(png),
	}, nil
}

func (d *Dispatcher) persistScreenshot(png []byte) (string, error) {
	if err := os.MkdirAll(d.scratchDir, 0o700); err != nil {
		return "", err
	}
	name := fmt.Sprintf("capture-%s-%s.png", time.Now().Format("20060102-150405"), uuid.NewString()[:8])
	path := filepath.Join(d.scratchDir, name)
	if err := os.WriteFile(path, png, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func (d *Dispatcher) typeText(ctx context.Context, args map[string]string) (*model.ToolResult, error) {
	text := args["text"]
	if err := d.controller.TypeText(ctx, d.window, text); err != nil {
		return nil, err
	}
	return &model.ToolResult{
		Message: fmt.Sprintf("Typed %d characters into %q.", len(text), d.window.Title),
	}, nil
}

func (d *Dispatcher) sendShortcut(ctx context.Context, args map[string]string) (*model.ToolResult, error) {
	key := strings.TrimSpace(args["key"])
	mods := automation.Modifiers{
		Command: parseBoolArg(args["command"]),
		Option:  parseBoolArg(args["option"]),
		Control: parseBoolArg(args["control"]),
		Shift:   parseBoolArg(args["shift"]),
	}

	if err := d.controller.SendShortcut(ctx, d.window, key, mods); err != nil {
		return nil, err
	}
	return &model.ToolResult{
		Message: fmt.Sprintf("Sent shortcut %s to %q.", describeShortcut(key, mods), d.window.Title),
	}, nil
}

// parseBoolArg interprets the string-coerced modifier flags. Anything other
// than an affirmative value counts as false.
func parseBoolArg(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func describeShortcut(key string, mods automation.Modifiers) string {
	var parts []string
	if mods.Command {
		parts = append(parts, "command")
	}
	if mods.Control {
		parts = append(parts, "control")
	}
	if mods.Option {
		parts = append(parts, "option")
	}
	if mods.Shift {
		parts = append(parts, "shift")
	}
	parts = append(parts, key)
	return strings.Join(parts, "+")
}
